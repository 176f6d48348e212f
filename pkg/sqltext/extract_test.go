package sqltext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatementEnd(t *testing.T) {
	masked := "CREATE TABLE T_A (X INT); CREATE TABLE T_B (Y INT);"

	require.Equal(t, 26, StatementEnd(masked, 0), "statement ends where the next CREATE begins")
	require.Equal(t, len(masked), StatementEnd(masked, 26), "last statement runs to end of text")
	require.Equal(t, len(masked), StatementEnd(masked, len(masked)-1))
}

func TestStatementEndWordBoundary(t *testing.T) {
	masked := "CREATE TABLE T_RECREATED (X INT)"
	require.Equal(t, len(masked), StatementEnd(masked, 0), "CREATE inside an identifier must not terminate the statement")
}

func TestExtractStatement(t *testing.T) {
	source := "CREATE TABLE T_A (X INT); CREATE TABLE T_B (Y INT);"
	masked := Mask(source)

	require.Equal(t, "CREATE TABLE T_A (X INT); ", ExtractStatement(source, masked, 0))
	require.Equal(t, "CREATE TABLE T_B (Y INT);", ExtractStatement(source, masked, 26))
}

func TestFindMatchingParen(t *testing.T) {
	require.Equal(t, 6, FindMatchingParen("(A(B)C)", 0))
	require.Equal(t, 4, FindMatchingParen("(A(B)C)", 2))
	require.Equal(t, -1, FindMatchingParen("(A(B)C", 0), "unbalanced parens report -1")
}

func TestSplitTopLevelColumns(t *testing.T) {
	source := "A INT, B DECIMAL(10,2), C INT"
	segments := SplitTopLevelColumns(source, source, 0, len(source))

	require.Len(t, segments, 3)
	require.Equal(t, "A INT", segments[0].Text)
	require.Equal(t, " B DECIMAL(10,2)", segments[1].Text, "commas inside parens are not split points")
	require.Equal(t, " C INT", segments[2].Text)
	require.Equal(t, 0, segments[0].Start)
	require.Equal(t, 5, segments[0].End)
}

func TestFindStatementTerminator(t *testing.T) {
	require.Equal(t, 3, FindStatementTerminator("AB;CD", 0))
	require.Equal(t, 5, FindStatementTerminator("ABCDE", 0), "no terminator runs to end of text")
}

func TestIterDMLSegments(t *testing.T) {
	statement := "BEGIN INSERT INTO T VALUES (1); UPDATE T SET X = 2; END"
	spans := IterDMLSegments(statement)

	require.Len(t, spans, 2)
	require.Equal(t, "INSERT INTO T VALUES (1);", statement[spans[0].Start:spans[0].End])
	require.Equal(t, "UPDATE T SET X = 2;", statement[spans[1].Start:spans[1].End])
}

func TestIterDMLSegmentsIgnoresComments(t *testing.T) {
	statement := "-- DELETE EVERYTHING\nINSERT INTO T VALUES (1);"
	spans := IterDMLSegments(statement)

	require.Len(t, spans, 1)
	require.Equal(t, "INSERT", statement[spans[0].Start:spans[0].Start+6])
}

func TestHasAdjacentComment(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		dml       string
		want      bool
	}{
		{
			name:      "no comment anywhere",
			statement: "SET X = 1;\nINSERT INTO T VALUES (1);",
			dml:       "INSERT INTO T VALUES (1);",
			want:      false,
		},
		{
			name:      "line comment on preceding line",
			statement: "-- LOAD DAILY ROWS\nINSERT INTO T VALUES (1);",
			dml:       "INSERT INTO T VALUES (1);",
			want:      true,
		},
		{
			name:      "line comment separated by a blank line",
			statement: "-- LOAD DAILY ROWS\n\nINSERT INTO T VALUES (1);",
			dml:       "INSERT INTO T VALUES (1);",
			want:      true,
		},
		{
			name:      "block comment immediately before",
			statement: "/* LOAD */\nINSERT INTO T VALUES (1);",
			dml:       "INSERT INTO T VALUES (1);",
			want:      true,
		},
		{
			name:      "trailing comment after the statement",
			statement: "INSERT INTO T VALUES (1); -- LOAD",
			dml:       "INSERT INTO T VALUES (1);",
			want:      true,
		},
		{
			name:      "unrelated preceding line",
			statement: "SELECT 1;\n\nINSERT INTO T VALUES (1);",
			dml:       "INSERT INTO T VALUES (1);",
			want:      false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			start := strings.Index(test.statement, test.dml)
			require.GreaterOrEqual(t, start, 0)
			got := HasAdjacentComment(test.statement, start, start+len(test.dml))
			require.Equal(t, test.want, got)
		})
	}
}

func TestLastIdentifier(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{token: "T_USER", want: "T_USER"},
		{token: "SCHEMA.T_USER", want: "T_USER"},
		{token: "`T_USER`", want: "T_USER"},
		{token: `"T_USER"`, want: "T_USER"},
		{token: "[T_USER]", want: "T_USER"},
		{token: `"S"."T_USER"`, want: "T_USER"},
		{token: "  T_USER  ", want: "T_USER"},
	}
	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			require.Equal(t, test.want, LastIdentifier(test.token))
		})
	}
}
