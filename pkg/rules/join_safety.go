package rules

import (
	"regexp"
	"strings"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var (
	fromKeywordRe   = regexp.MustCompile(`(?i)\bFROM\b`)
	joinKeywordRe   = regexp.MustCompile(`(?i)\bJOIN\b`)
	clauseEndRe     = regexp.MustCompile(`(?i)\bWHERE\b|\bGROUP\b|\bORDER\b|\bHAVING\b|\bLIMIT\b|;`)
	joinBoundaryRe  = regexp.MustCompile(`(?i)\bJOIN\b|\bWHERE\b|\bGROUP\b|\bORDER\b|\bHAVING\b|\bLIMIT\b|;`)
	joinPredicateRe = regexp.MustCompile(`(?i)\bON\b|\bUSING\b|\bNATURAL\b|\bCROSS\b`)
)

// JoinSafetyDetector flags implicit cross joins (comma in a FROM clause
// without any JOIN keyword) and JOIN clauses without a join predicate
// (ON/USING/NATURAL/CROSS), both of which risk Cartesian products.
type JoinSafetyDetector struct{}

// Name returns the detector name.
func (*JoinSafetyDetector) Name() string { return "join-safety" }

// Check bounds each FROM clause at the next WHERE/GROUP/ORDER/HAVING/LIMIT
// or ';', and each JOIN segment additionally at the next JOIN.
func (*JoinSafetyDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue

	for _, loc := range fromKeywordRe.FindAllStringIndex(ctx.Masked, -1) {
		start := loc[1]
		end := len(ctx.Masked)
		if endLoc := clauseEndRe.FindStringIndex(ctx.Masked[start:]); endLoc != nil {
			end = start + endLoc[0]
		}
		fragment := ctx.Masked[start:end]
		if strings.Contains(fragment, ",") && !joinKeywordRe.MatchString(fragment) {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleNoImplicitCrossJoin,
				Severity: types.SeverityError,
				Message:  "FROM clause uses a comma for an implicit join, which easily produces a Cartesian product; use an explicit JOIN ... ON",
				Offset:   start,
				Evidence: strings.TrimSpace(ctx.Source[start:end]),
			})
		}
	}

	for _, loc := range joinKeywordRe.FindAllStringIndex(ctx.Masked, -1) {
		segStart := loc[1]
		segEnd := len(ctx.Masked)
		if endLoc := joinBoundaryRe.FindStringIndex(ctx.Masked[segStart:]); endLoc != nil {
			segEnd = segStart + endLoc[0]
		}
		if !joinPredicateRe.MatchString(ctx.Masked[segStart:segEnd]) {
			issues = append(issues, &types.Issue{
				RuleID:   detect.RuleJoinRequirePredicate,
				Severity: types.SeverityError,
				Message:  "JOIN without ON/USING/NATURAL detected (may cause a Cartesian product or unclear semantics)",
				Offset:   loc[0],
				Evidence: strings.TrimSpace(ctx.Source[loc[0]:segEnd]),
			})
		}
	}

	return issues
}
