package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

func TestDMLCommentDetector(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{
			name: "procedure dml with leading comment",
			sql: "CREATE PROCEDURE P_LOAD AS\nBEGIN\n" +
				"  -- LOAD DAILY ROWS\n  INSERT INTO T_LOG VALUES (1);\nEND;",
			want: 0,
		},
		{
			name: "procedure dml with trailing comment",
			sql: "CREATE PROCEDURE P_LOAD AS\nBEGIN\n" +
				"  INSERT INTO T_LOG VALUES (1); -- LOAD DAILY ROWS\nEND;",
			want: 0,
		},
		{
			name: "procedure dml with block comment",
			sql: "CREATE PROCEDURE P_LOAD AS\nBEGIN\n" +
				"  /* LOAD DAILY ROWS */\n  INSERT INTO T_LOG VALUES (1);\nEND;",
			want: 0,
		},
		{
			name: "procedure dml without comment",
			sql: "CREATE PROCEDURE P_LOAD AS\nBEGIN\n" +
				"  INSERT INTO T_LOG VALUES (1);\nEND;",
			want: 1,
		},
		{
			name: "function dml without comment",
			sql: "CREATE FUNCTION F_LOAD RETURN NUMBER AS\nBEGIN\n" +
				"  UPDATE T_LOG SET N = N + 1;\n  RETURN 1;\nEND;",
			want: 1,
		},
		{
			name: "two dml statements one commented",
			sql: "CREATE PROCEDURE P_LOAD AS\nBEGIN\n" +
				"  -- FIRST LOAD\n  INSERT INTO T_A VALUES (1);\n" +
				"  INSERT INTO T_B VALUES (2);\nEND;",
			want: 1,
		},
		{
			name: "dml outside procedures is not checked",
			sql:  "INSERT INTO T_LOG VALUES (1);",
			want: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := check(test.sql, &DMLCommentDetector{})
			require.Len(t, issues, test.want)
			if test.want > 0 {
				require.Equal(t, detect.RuleDMLRequireComment, issues[0].RuleID)
				require.Equal(t, types.SeverityError, issues[0].Severity)
			}
		})
	}
}

func TestDMLCommentDetectorEvidence(t *testing.T) {
	sql := "CREATE PROCEDURE P_LOAD AS\nBEGIN\n  DELETE FROM T_LOG WHERE DT < SYSDATE;\nEND;"
	issues := check(sql, &DMLCommentDetector{})

	require.Len(t, issues, 1)
	require.Equal(t, "DELETE FROM T_LOG WHERE DT < SYSDATE;", issues[0].Evidence)
	require.Equal(t, "P_LOAD", issues[0].Object)
}
