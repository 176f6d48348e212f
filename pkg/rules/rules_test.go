package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// check runs one detector against a fresh context for sql.
func check(sql string, d detect.Detector) []*types.Issue {
	return d.Check(detect.NewContext(sql))
}

// ruleIDs projects the issue stream onto its rule ids, in order.
func ruleIDs(issues []*types.Issue) []string {
	var ids []string
	for _, issue := range issues {
		ids = append(ids, issue.RuleID)
	}
	return ids
}

func TestNoCJKDetector(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{name: "ascii only", sql: "CREATE TABLE T_USER (ID INT COMMENT 'X') COMMENT 'X';", want: 0},
		{name: "cjk identifier", sql: "CREATE TABLE T_用户 (ID INT);", want: 1},
		{name: "hangul identifier", sql: "CREATE TABLE T_사용자 (ID INT);", want: 1},
		{name: "katakana identifier", sql: "CREATE TABLE T_ユーザ (ID INT);", want: 1},
		{name: "cjk inside comment is allowed", sql: "CREATE TABLE T_USER (ID INT) -- 用户表", want: 0},
		{name: "cjk inside string is allowed", sql: "CREATE TABLE T_USER (ID INT COMMENT '用户');", want: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := check(test.sql, &NoCJKDetector{})
			require.Len(t, issues, test.want)
			if test.want > 0 {
				require.Equal(t, detect.RuleNoCJK, issues[0].RuleID)
				require.Equal(t, types.SeverityError, issues[0].Severity)
			}
		})
	}
}

func TestNoCJKDetectorReportsFirstHitOnly(t *testing.T) {
	issues := check("CREATE TABLE T_用户 (名称 INT);", &NoCJKDetector{})
	require.Len(t, issues, 1)
	require.Equal(t, 15, issues[0].Offset, "offset points at the first CJK byte")
}

func TestUppercaseDetector(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{name: "all uppercase", sql: "CREATE TABLE T_USER (ID INT);", want: 0},
		{name: "lowercase keyword", sql: "create TABLE T_USER (ID INT);", want: 1},
		{name: "lowercase identifier", sql: "CREATE TABLE t_user (ID INT);", want: 1},
		{name: "lowercase only in string", sql: "CREATE TABLE T_USER (ID INT COMMENT 'user id');", want: 0},
		{name: "lowercase only in comment", sql: "CREATE TABLE T_USER (ID INT); -- user table", want: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := check(test.sql, &UppercaseDetector{})
			require.Len(t, issues, test.want)
			if test.want > 0 {
				require.Equal(t, detect.RuleUppercase, issues[0].RuleID)
				require.Equal(t, types.SeverityWarning, issues[0].Severity)
			}
		})
	}
}

func TestUppercaseDetectorSingleFinding(t *testing.T) {
	issues := check("select 1;\nselect 2;", &UppercaseDetector{})
	require.Len(t, issues, 1, "one finding per script regardless of hit count")
}

func TestTriggerDetector(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{name: "no trigger", sql: "CREATE TABLE T_USER (ID INT);", want: 0},
		{name: "create trigger", sql: "CREATE TRIGGER TRG_AUDIT BEFORE INSERT ON T_USER BEGIN NULL; END;", want: 1},
		{name: "create or replace trigger", sql: "CREATE OR REPLACE TRIGGER TRG_AUDIT BEFORE INSERT ON T_USER BEGIN NULL; END;", want: 1},
		{name: "commented trigger is inert", sql: "-- CREATE TRIGGER TRG_AUDIT\nCREATE TABLE T_USER (ID INT);", want: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := check(test.sql, &TriggerDetector{})
			require.Len(t, issues, test.want)
			if test.want > 0 {
				require.Equal(t, detect.RuleNoTrigger, issues[0].RuleID)
			}
		})
	}
}

func TestViewNestingDetector(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want int
	}{
		{
			name: "flat view",
			sql:  "CREATE VIEW V_USERS AS SELECT ID FROM T_USER",
			want: 0,
		},
		{
			name: "three selects at the limit",
			sql:  "CREATE VIEW V_DEEP AS SELECT A FROM (SELECT B FROM (SELECT C FROM T_X))",
			want: 0,
		},
		{
			name: "four selects over the limit",
			sql:  "CREATE VIEW V_DEEP AS SELECT A FROM (SELECT B FROM (SELECT C FROM (SELECT D FROM T_X)))",
			want: 1,
		},
		{
			name: "select keyword in string is inert",
			sql:  "CREATE VIEW V_X AS SELECT 'SELECT SELECT SELECT' FROM T_X",
			want: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := check(test.sql, &ViewNestingDetector{})
			require.Len(t, issues, test.want)
			if test.want > 0 {
				require.Equal(t, detect.RuleViewNestingLimit, issues[0].RuleID)
				require.Equal(t, "V_DEEP", issues[0].Object)
			}
		})
	}
}
