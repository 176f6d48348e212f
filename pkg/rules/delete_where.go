package rules

import (
	"fmt"
	"regexp"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var (
	deleteFromRe = regexp.MustCompile(`(?is)\bDELETE\s+FROM\s+([` + "`" + `"\[\]\w.$#@]+)([^;]*)`)
	whereRe      = regexp.MustCompile(`(?i)\bWHERE\b`)
)

// DeleteRequireWhereDetector flags DELETE statements whose text up to the
// next ';' contains no WHERE clause, recommending TRUNCATE instead.
type DeleteRequireWhereDetector struct{}

// Name returns the detector name.
func (*DeleteRequireWhereDetector) Name() string { return "delete-require-where" }

// Check masks only block comments, so a WHERE inside a line comment does
// not hide a full-table delete.
func (*DeleteRequireWhereDetector) Check(ctx *detect.Context) []*types.Issue {
	masked := sqltext.MaskBlockComments(ctx.Source)

	var issues []*types.Issue
	for _, loc := range deleteFromRe.FindAllStringSubmatchIndex(masked, -1) {
		tail := masked[loc[4]:loc[5]]
		if whereRe.MatchString(tail) {
			continue
		}
		table := sqltext.LastIdentifier(ctx.Source[loc[2]:loc[3]])
		issues = append(issues, &types.Issue{
			RuleID:         detect.RuleDeleteRequireWhere,
			Severity:       types.SeverityError,
			Message:        fmt.Sprintf("full-table delete detected on %s (DELETE without WHERE); use TRUNCATE", table),
			Object:         table,
			Offset:         loc[0],
			Evidence:       masked[loc[0]:loc[1]],
			Recommendation: fmt.Sprintf("use TRUNCATE TABLE %s instead of an unfiltered DELETE", table),
		})
	}
	return issues
}
