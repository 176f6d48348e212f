// Package types defines the data model shared by the analyzer core:
// raw issue events, per-line aggregated records, and the final report.
package types

// Severity is the severity level of a single issue.
type Severity string

const (
	// SeverityError marks violations that must be fixed.
	SeverityError Severity = "ERROR"
	// SeverityWarning marks style findings that should be fixed.
	SeverityWarning Severity = "WARNING"
)

// RuleLevel is the configured level for a rule.
type RuleLevel string

const (
	// RuleLevelError reports the rule's findings as errors.
	RuleLevelError RuleLevel = "ERROR"
	// RuleLevelWarning reports the rule's findings as warnings.
	RuleLevelWarning RuleLevel = "WARNING"
	// RuleLevelDisabled drops the rule's findings entirely.
	RuleLevelDisabled RuleLevel = "DISABLED"
)

// RuleConfig is the per-rule configuration entry.
type RuleConfig struct {
	ID    string    `yaml:"id" json:"id"`
	Level RuleLevel `yaml:"level" json:"level"`
}

// Issue is one raw rule violation as emitted by a detector.
// Offset is an absolute byte offset into the original source text;
// line/column/snippet are resolved during aggregation. Evidence may be
// empty, in which case the full source line is used.
type Issue struct {
	RuleID         string
	Severity       Severity
	Message        string
	Object         string
	Offset         int
	Evidence       string
	Recommendation string
}

// AggregatedIssue is one report entry holding every issue detected on a
// single source line, in first-seen order. The parallel arrays always have
// equal length. The singular RuleID/Severity/Message/Evidence fields mirror
// the first entry for consumers of the pre-aggregation schema.
type AggregatedIssue struct {
	RuleID          string     `json:"rule_id" yaml:"rule_id"`
	RuleIDs         []string   `json:"rule_ids" yaml:"rule_ids"`
	Severity        Severity   `json:"severity" yaml:"severity"`
	SeverityLevels  []Severity `json:"severity_levels" yaml:"severity_levels"`
	Message         string     `json:"message" yaml:"message"`
	Messages        []string   `json:"issues" yaml:"issues"`
	Object          string     `json:"object" yaml:"object"`
	Line            int        `json:"line" yaml:"line"`
	Columns         []int      `json:"column" yaml:"column"`
	Snippet         string     `json:"snippet" yaml:"snippet"`
	Evidence        string     `json:"evidence" yaml:"evidence"`
	EvidenceList    []string   `json:"evidence_list" yaml:"evidence_list"`
	Recommendations []string   `json:"recommendation" yaml:"recommendation"`
	FixedCode       string     `json:"fixed_code" yaml:"fixed_code"`
}

// Len returns the number of issues merged into this record.
func (a *AggregatedIssue) Len() int {
	return len(a.RuleIDs)
}

// Summary provides aggregate statistics about a report.
type Summary struct {
	Message        string         `json:"message,omitempty" yaml:"message,omitempty"`
	TotalIssues    int            `json:"total_issues" yaml:"total_issues"`
	ByRule         map[string]int `json:"by_rule,omitempty" yaml:"by_rule,omitempty"`
	FileExtension  string         `json:"file_extension,omitempty" yaml:"file_extension,omitempty"`
	AnalysisSource string         `json:"analysis_source,omitempty" yaml:"analysis_source,omitempty"`
}

// Metadata identifies which engine variant produced a report.
type Metadata struct {
	AnalysisSource string `json:"analysis_source" yaml:"analysis_source"`
	Engine         string `json:"engine" yaml:"engine"`
}

// Report is the result of one analysis call. It is built once and never
// mutated after construction.
type Report struct {
	Summary        *Summary           `json:"summary" yaml:"summary"`
	Issues         []*AggregatedIssue `json:"issues" yaml:"issues"`
	AnalysisSource string             `json:"analysis_source" yaml:"analysis_source"`
	Metadata       Metadata           `json:"metadata" yaml:"metadata"`
}

// IsClean returns true if the report contains no issues.
func (r *Report) IsClean() bool {
	return len(r.Issues) == 0
}

// CountBySeverity returns the number of individual issues with the given
// severity across all aggregated records.
func (r *Report) CountBySeverity(severity Severity) int {
	count := 0
	for _, record := range r.Issues {
		for _, level := range record.SeverityLevels {
			if level == severity {
				count++
			}
		}
	}
	return count
}

// HasErrors returns true if any ERROR-level issue was found.
//
// This is useful for CI pipelines that should fail on errors:
//
//	if report.HasErrors() {
//	    os.Exit(1)
//	}
func (r *Report) HasErrors() bool {
	return r.CountBySeverity(SeverityError) > 0
}

// HasWarnings returns true if any WARNING-level issue was found.
func (r *Report) HasWarnings() bool {
	return r.CountBySeverity(SeverityWarning) > 0
}
