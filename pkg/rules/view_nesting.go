package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var selectKeywordRe = regexp.MustCompile(`(?i)\bSELECT\b`)

// maxViewSelects is the SELECT count above which a view body is considered
// too deeply nested.
const maxViewSelects = 3

// ViewNestingDetector counts SELECT keywords inside each view body (the
// text after the first " AS ") as a proxy for nesting depth.
type ViewNestingDetector struct{}

// Name returns the detector name.
func (*ViewNestingDetector) Name() string { return "view-nesting" }

// Check re-masks the extracted body so literals inside it stay inert.
func (*ViewNestingDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, obj := range ctx.Objects(detect.ViewObject) {
		statement := ctx.Statement(obj)
		body := statement
		if idx := strings.Index(strings.ToUpper(statement), " AS "); idx != -1 {
			body = statement[idx+4:]
		}
		selects := len(selectKeywordRe.FindAllStringIndex(sqltext.Mask(body), -1))
		if selects > maxViewSelects {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleViewNestingLimit,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("view %s appears to nest more than %d levels (%d SELECT keywords found)", obj.Name, maxViewSelects, selects),
				Object:   obj.Name,
				Offset:   obj.NameOffset,
				Evidence: obj.Name,
			})
		}
	}
	return issues
}
