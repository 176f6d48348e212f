package rules

import (
	"regexp"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var createTriggerRe = regexp.MustCompile(`(?i)\bCREATE\s+(?:OR\s+REPLACE\s+)?TRIGGER\b`)

// TriggerDetector disallows CREATE TRIGGER outright.
type TriggerDetector struct{}

// Name returns the detector name.
func (*TriggerDetector) Name() string { return "trigger" }

// Check reports every CREATE [OR REPLACE] TRIGGER in the masked text.
func (*TriggerDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, loc := range createTriggerRe.FindAllStringIndex(ctx.Masked, -1) {
		issues = append(issues, &types.Issue{
			RuleID:   detect.RuleNoTrigger,
			Severity: types.SeverityError,
			Message:  "creating triggers is not allowed",
			Offset:   loc[0],
			Evidence: sqltext.LineSnippet(ctx.Source, loc[0], 0),
		})
	}
	return issues
}
