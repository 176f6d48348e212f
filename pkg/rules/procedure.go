package rules

import (
	"fmt"
	"regexp"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var truncateKeywordRe = regexp.MustCompile(`(?i)\bTRUNCATE\b`)

// isComparisonPrefix reports whether b forms a comparison operator when it
// precedes '=' (<=, >=, !=, ==).
func isComparisonPrefix(b byte) bool {
	return b == '<' || b == '>' || b == '!' || b == '='
}

func isSpacingByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// equalSignsMissingLeftSpace returns the offsets of every '=' that is not
// preceded by whitespace, excluding comparison operators.
func equalSignsMissingLeftSpace(s string) []int {
	var offsets []int
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			continue
		}
		if i > 0 && (isSpacingByte(s[i-1]) || isComparisonPrefix(s[i-1])) {
			continue
		}
		offsets = append(offsets, i)
	}
	return offsets
}

// equalSignsMissingRightSpace returns the offsets of every '=' that is not
// followed by whitespace or a second '='. Unlike the left-side scan, the
// preceding byte is not consulted, so the trailing '=' of an unpadded
// comparison operator (>=1, !=1) still fires.
func equalSignsMissingRightSpace(s string) []int {
	var offsets []int
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && (s[i+1] == '=' || isSpacingByte(s[i+1])) {
			continue
		}
		offsets = append(offsets, i)
	}
	return offsets
}

// ProcedureRulesDetector checks each CREATE PROCEDURE statement for
// unpadded assignment operators and forbidden TRUNCATE usage.
type ProcedureRulesDetector struct{}

// Name returns the detector name.
func (*ProcedureRulesDetector) Name() string { return "procedure-rules" }

// Check emits all left-side spacing findings before the right-side ones,
// which fixes the order they aggregate in.
func (*ProcedureRulesDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, obj := range ctx.Objects(detect.ProcedureObject) {
		statement := ctx.Statement(obj)

		for _, off := range equalSignsMissingLeftSpace(statement) {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleEqualSignSpacing,
				Severity: types.SeverityWarning,
				Message:  "equal signs inside procedure bodies require a space on both sides",
				Object:   obj.Name,
				Offset:   obj.Offset + off,
				Evidence: sqltext.LineSnippet(ctx.Source, obj.Offset+off, 0),
			})
		}
		for _, off := range equalSignsMissingRightSpace(statement) {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleEqualSignSpacing,
				Severity: types.SeverityWarning,
				Message:  "equal signs inside procedure bodies require a space on both sides",
				Object:   obj.Name,
				Offset:   obj.Offset + off,
				Evidence: sqltext.LineSnippet(ctx.Source, obj.Offset+off, 0),
			})
		}

		if truncateKeywordRe.MatchString(statement) {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleProcedureNoTruncate,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("TRUNCATE is not allowed inside procedure %s", obj.Name),
				Object:   obj.Name,
				Offset:   obj.Offset,
				Evidence: obj.Name,
			})
		}
	}
	return issues
}
