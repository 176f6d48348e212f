package rules

import (
	"fmt"
	"strings"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// DMLCommentDetector requires every INSERT/UPDATE/DELETE sub-statement
// inside a procedure or function body to carry an adjacent comment, in
// either leading or trailing annotation style.
type DMLCommentDetector struct{}

// Name returns the detector name.
func (*DMLCommentDetector) Name() string { return "dml-comment" }

// Check walks procedures first, then functions.
func (*DMLCommentDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, kind := range []detect.ObjectKind{detect.ProcedureObject, detect.FunctionObject} {
		for _, obj := range ctx.Objects(kind) {
			statement := ctx.Statement(obj)
			for _, span := range sqltext.IterDMLSegments(statement) {
				if sqltext.HasAdjacentComment(statement, span.Start, span.End) {
					continue
				}
				issues = append(issues, &types.Issue{
					RuleID:   detect.RuleDMLRequireComment,
					Severity: types.SeverityError,
					Message:  fmt.Sprintf("%s %s contains a DML statement without a comment", obj.Kind, obj.Name),
					Object:   obj.Name,
					Offset:   obj.Offset + span.Start,
					Evidence: strings.TrimSpace(statement[span.Start:span.End]),
				})
			}
		}
	}
	return issues
}
