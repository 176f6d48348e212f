package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nsxbet/sql-analyzer/pkg/detect"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

var identifierFormatRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// maxIdentifierWords is the maximum number of underscore-separated parts an
// identifier may have.
const maxIdentifierWords = 3

// stagingPrefix is the forbidden triple-staging table prefix.
const stagingPrefix = "TMP_TMP_TMP"

// objectPrefixes maps each object kind to its required name prefix.
var objectPrefixes = map[detect.ObjectKind]string{
	detect.TableObject:     "T_",
	detect.ViewObject:      "V_",
	detect.ProcedureObject: "P_",
	detect.FunctionObject:  "F_",
}

// identifierIssues returns format and word-count issues for one name.
// objDesc names the offending object in messages, e.g. "table name" or
// "table T_USER column".
func identifierIssues(name string, offset int, objDesc string) []*types.Issue {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return nil
	}

	var issues []*types.Issue
	if !identifierFormatRe.MatchString(clean) {
		issues = append(issues, &types.Issue{
			RuleID:   detect.RuleIdentifierFormat,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("%s %s does not match the naming convention (upper-case letters, digits and underscores, starting with a letter)", objDesc, clean),
			Object:   clean,
			Offset:   offset,
			Evidence: clean,
		})
	}

	words := 0
	for _, part := range strings.Split(clean, "_") {
		if part != "" {
			words++
		}
	}
	if words > maxIdentifierWords {
		issues = append(issues, &types.Issue{
			RuleID:   detect.RuleIdentifierWordLimit,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("%s %s exceeds %d underscore-separated words", objDesc, clean, maxIdentifierWords),
			Object:   clean,
			Offset:   offset,
			Evidence: clean,
		})
	}
	return issues
}

// ObjectNamingDetector enforces the identifier format, the word-count limit,
// the per-kind object name prefixes, and the staging-prefix prohibition.
type ObjectNamingDetector struct{}

// Name returns the detector name.
func (*ObjectNamingDetector) Name() string { return "object-naming" }

// Check walks tables, views, procedures and functions in that order.
func (*ObjectNamingDetector) Check(ctx *detect.Context) []*types.Issue {
	var issues []*types.Issue
	for _, kind := range []detect.ObjectKind{
		detect.TableObject,
		detect.ViewObject,
		detect.ProcedureObject,
		detect.FunctionObject,
	} {
		prefix := objectPrefixes[kind]
		for _, obj := range ctx.Objects(kind) {
			issues = append(issues, identifierIssues(obj.Name, obj.NameOffset, kind.String()+" name")...)

			if !strings.HasPrefix(strings.ToUpper(obj.Name), prefix) {
				issues = append(issues, &types.Issue{
					RuleID:   detect.RuleObjectPrefix,
					Severity: types.SeverityError,
					Message:  fmt.Sprintf("%s name must start with %s: found %s", obj.Kind, prefix, obj.Name),
					Object:   obj.Name,
					Offset:   obj.Offset,
					Evidence: obj.MatchText,
				})
			}

			if kind == detect.TableObject && strings.HasPrefix(strings.ToUpper(obj.Name), stagingPrefix) {
				issues = append(issues, &types.Issue{
					RuleID:   detect.RuleNoStagingPrefix,
					Severity: types.SeverityError,
					Message:  fmt.Sprintf("staging tables must not use the %s prefix: found %s", stagingPrefix, obj.Name),
					Object:   obj.Name,
					Offset:   obj.Offset,
					Evidence: obj.MatchText,
				})
			}
		}
	}
	return issues
}
