// Package analyzer provides a high-level API for static SQL review.
//
// This package ties the lexical pipeline together: masking, detector
// execution in registration order, per-line issue aggregation, and report
// assembly.
//
// # Quick Start
//
//	a := analyzer.New()
//	report := a.Analyze("DELETE FROM T_USER;")
//	if report.HasErrors() {
//	    for _, issue := range report.Issues {
//	        fmt.Printf("line %d: %s\n", issue.Line, issue.Message)
//	    }
//	}
//
// # Using Custom Configuration
//
//	a := analyzer.New()
//	if err := a.WithConfig("rules.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	report := a.Analyze(sqlText)
package analyzer

import (
	"unicode/utf8"

	"github.com/nsxbet/sql-analyzer/pkg/config"
	"github.com/nsxbet/sql-analyzer/pkg/detect"
	_ "github.com/nsxbet/sql-analyzer/pkg/rules"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// Analyzer runs the registered rule detectors against SQL text.
//
// Analyzer is safe for concurrent use by multiple goroutines: each Analyze
// call operates on its own immutable context and the detector registry is
// written only during package initialization.
type Analyzer struct {
	config *config.Config
}

// New creates an Analyzer with the default configuration (every builtin
// rule at its default level).
func New() *Analyzer {
	return &Analyzer{config: config.DefaultConfig("default")}
}

// WithConfig loads rule level overrides from a YAML or JSON file,
// replacing the current configuration.
func (a *Analyzer) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return err
	}
	a.config = cfg
	return nil
}

// WithConfigObject sets a configuration object directly and returns the
// Analyzer for chaining.
func (a *Analyzer) WithConfigObject(cfg *config.Config) *Analyzer {
	a.config = cfg
	return a
}

// Analyze runs every registered detector against the SQL text and returns
// the aggregated report. It never fails: input that is not valid text
// yields a degenerate report with an explanatory summary and no issues.
//
// The pipeline is a fixed number of forward scans over the input, so a
// call completes in time proportional to the input size.
func (a *Analyzer) Analyze(sql string) *types.Report {
	if !utf8.ValidString(sql) {
		return degenerateReport(invalidInputMessage)
	}

	ctx := detect.NewContext(sql)
	agg := newAggregator(sql)
	levels := a.config.Levels()

	// Detectors run, and issues aggregate, in registration order.
	for _, detector := range detect.Detectors() {
		for _, issue := range detector.Check(ctx) {
			if level, ok := levels[issue.RuleID]; ok {
				if level == types.RuleLevelDisabled {
					continue
				}
				issue.Severity = types.Severity(level)
			}
			agg.Add(issue)
		}
	}

	return buildReport(agg.Records())
}

// Analyze is a convenience wrapper running a default-configured Analyzer.
func Analyze(sql string) *types.Report {
	return New().Analyze(sql)
}
