package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// funcCallRe matches an identifier token immediately followed by an opening
// parenthesis, i.e. a function call rather than a grouping paren.
var funcCallRe = regexp.MustCompile(`(?i)\b[A-Z_][A-Z0-9_]*\s*\(`)

const (
	// maxCallDepth is the hard function-call nesting limit.
	maxCallDepth = 3
	// recommendedCallDepth is the advisory nesting limit.
	recommendedCallDepth = 2
	// maxFunctionLines is the maximum statement length for functions.
	maxFunctionLines = 200
)

// maxFunctionCallDepth computes the maximum nesting depth counted only at
// function-call parentheses. Grouping parens still participate in balance
// tracking but never increase the depth.
func maxFunctionCallDepth(masked string) int {
	callParens := make(map[int]bool)
	for _, loc := range funcCallRe.FindAllStringIndex(masked, -1) {
		callParens[loc[1]-1] = true
	}

	var stack []bool
	depth, maxDepth := 0, 0
	for i := 0; i < len(masked); i++ {
		switch masked[i] {
		case '(':
			isCall := callParens[i]
			stack = append(stack, isCall)
			if isCall {
				depth++
				if depth > maxDepth {
					maxDepth = depth
				}
			}
		case ')':
			if n := len(stack); n > 0 {
				isCall := stack[n-1]
				stack = stack[:n-1]
				if isCall && depth > 0 {
					depth--
				}
			}
		}
	}
	return maxDepth
}

// FunctionRulesDetector checks each CREATE FUNCTION statement for excessive
// call nesting and excessive length.
type FunctionRulesDetector struct{}

// Name returns the detector name.
func (*FunctionRulesDetector) Name() string { return "function-rules" }

// Check emits an ERROR above the hard nesting limit and a WARNING at it,
// then checks the newline-delimited statement length.
func (*FunctionRulesDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, obj := range ctx.Objects(detect.FunctionObject) {
		statement := ctx.Statement(obj)
		depth := maxFunctionCallDepth(sqltext.Mask(statement))
		if depth > maxCallDepth {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleFunctionCallNesting,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("function %s call nesting depth %d exceeds the %d-level limit", obj.Name, depth, maxCallDepth),
				Object:   obj.Name,
				Offset:   obj.Offset,
				Evidence: obj.Name,
			})
		} else if depth > recommendedCallDepth {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleFunctionCallNesting,
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("function %s call nesting depth is %d; keeping it within %d levels is recommended", obj.Name, depth, recommendedCallDepth),
				Object:   obj.Name,
				Offset:   obj.Offset,
				Evidence: obj.Name,
			})
		}

		if lines := strings.Count(statement, "\n") + 1; lines > maxFunctionLines {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleFunctionMaxLength,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("function %s is %d lines long, exceeding the %d-line limit", obj.Name, lines, maxFunctionLines),
				Object:   obj.Name,
				Offset:   obj.Offset,
				Evidence: obj.Name,
			})
		}
	}
	return issues
}
