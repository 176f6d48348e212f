package rules

import (
	"regexp"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var lowercaseRe = regexp.MustCompile(`[a-z]`)

// UppercaseDetector flags the whole script when any lowercase letter
// appears outside comments and strings. One finding per script.
type UppercaseDetector struct{}

// Name returns the detector name.
func (*UppercaseDetector) Name() string { return "uppercase" }

// Check reports the first lowercase letter in the masked text.
func (*UppercaseDetector) Check(ctx *detect.Context) []*types.Issue {
	loc := lowercaseRe.FindStringIndex(ctx.Masked)
	if loc == nil {
		return nil
	}
	return []*types.Issue{{
		RuleID:   detect.RuleUppercase,
		Severity: types.SeverityWarning,
		Message:  "scripts must use upper-case letters; lowercase characters detected",
		Offset:   loc[0],
		Evidence: sqltext.LineSnippet(ctx.Source, loc[0], 0),
	}}
}
