package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var columnNameRe = regexp.MustCompile("^[`\"\\[\\]\\w#@$]+")

// constraintKeywords are leading keywords of segments that define
// constraints rather than columns; those segments skip column checks.
var constraintKeywords = map[string]bool{
	"CONSTRAINT": true,
	"PRIMARY":    true,
	"FOREIGN":    true,
	"UNIQUE":     true,
	"CHECK":      true,
	"KEY":        true,
}

// historyTableSuffix marks history tables, which must carry a DT_DATE column.
const historyTableSuffix = "_HIS"

// historyDateColumn is the column history tables must declare.
const historyDateColumn = "DT_DATE"

// TableDefinitionDetector checks CREATE TABLE bodies: a table-level COMMENT,
// a COMMENT on every column definition, column identifier naming, and the
// DT_DATE requirement for history tables.
type TableDefinitionDetector struct{}

// Name returns the detector name.
func (*TableDefinitionDetector) Name() string { return "table-definition" }

// Check scopes each check to one statement via the next-CREATE heuristic.
// An unbalanced or missing column list skips the column-level checks for
// that table.
func (*TableDefinitionDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, obj := range ctx.Objects(detect.TableObject) {
		statement := ctx.Statement(obj)

		if !strings.Contains(strings.ToUpper(statement), "COMMENT") {
			evidence := obj.Name
			if trimmed := strings.TrimSpace(statement); trimmed != "" {
				evidence = strings.SplitN(trimmed, "\n", 2)[0]
			}
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleTableComment,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("table %s is missing a comment (COMMENT)", obj.Name),
				Object:   obj.Name,
				Offset:   obj.Offset,
				Evidence: evidence,
			})
		}

		parenStart := strings.IndexByte(ctx.Masked[obj.NameEnd:], '(')
		if parenStart == -1 {
			continue
		}
		parenStart += obj.NameEnd
		parenEnd := sqltext.FindMatchingParen(ctx.Masked, parenStart)
		if parenEnd == -1 {
			continue
		}

		hasDateColumn := false
		for _, seg := range sqltext.SplitTopLevelColumns(ctx.Source, ctx.Masked, parenStart+1, parenEnd) {
			raw := strings.TrimSpace(seg.Text)
			if raw == "" {
				continue
			}
			if constraintKeywords[strings.ToUpper(strings.Fields(raw)[0])] {
				continue
			}

			trimmed := strings.TrimLeftFunc(seg.Text, unicode.IsSpace)
			leading := len(seg.Text) - len(trimmed)
			nameMatch := columnNameRe.FindString(trimmed)
			if nameMatch == "" {
				continue
			}
			columnName := sqltext.LastIdentifier(nameMatch)
			nameOffset := seg.Start + leading

			issues = append(issues, identifierIssues(columnName, nameOffset, fmt.Sprintf("table %s column", obj.Name))...)

			if strings.ToUpper(columnName) == historyDateColumn {
				hasDateColumn = true
			}

			if !strings.Contains(strings.ToUpper(raw), "COMMENT") {
				issues = append(issues, &types.Issue{
					RuleID:   detect.RuleColumnComment,
					Severity: types.SeverityError,
					Message:  fmt.Sprintf("table %s column %s is missing a comment", obj.Name, columnName),
					Object:   obj.Name + "." + columnName,
					Offset:   nameOffset,
					Evidence: raw,
				})
			}
		}

		if strings.HasSuffix(strings.ToUpper(obj.Name), historyTableSuffix) && !hasDateColumn {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleHistoryDateColumn,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("history table %s must declare a %s column", obj.Name, historyDateColumn),
				Object:   obj.Name,
				Offset:   obj.NameOffset,
				Evidence: obj.Name,
			})
		}
	}
	return issues
}
