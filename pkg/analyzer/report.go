package analyzer

import "github.com/nsxbet/sql-analyzer/pkg/types"

const (
	// analysisSource is the provenance tag attached to every report.
	analysisSource = "static_analyzer"
	// engineName identifies this engine variant in report metadata.
	engineName = "sql-analyzer"
	// fileExtension is the input kind this engine reviews.
	fileExtension = ".sql"

	cleanMessage        = "no issues found"
	invalidInputMessage = "input is not a valid text value"
)

// buildReport assembles the final report from the aggregated records.
// by_rule counts every rule id in every record's array, so counts are per
// individual issue, not per line.
func buildReport(records []*types.AggregatedIssue) *types.Report {
	metadata := types.Metadata{
		AnalysisSource: analysisSource,
		Engine:         engineName,
	}

	if len(records) == 0 {
		return &types.Report{
			Summary: &types.Summary{
				Message:        cleanMessage,
				TotalIssues:    0,
				FileExtension:  fileExtension,
				AnalysisSource: analysisSource,
			},
			Issues:         []*types.AggregatedIssue{},
			AnalysisSource: analysisSource,
			Metadata:       metadata,
		}
	}

	byRule := make(map[string]int)
	total := 0
	for _, record := range records {
		for _, id := range record.RuleIDs {
			byRule[id]++
		}
		total += record.Len()
	}

	return &types.Report{
		Summary: &types.Summary{
			TotalIssues:    total,
			ByRule:         byRule,
			FileExtension:  fileExtension,
			AnalysisSource: analysisSource,
		},
		Issues:         records,
		AnalysisSource: analysisSource,
		Metadata:       metadata,
	}
}

// degenerateReport is the fail-open result for input that is not valid
// text: an explanatory summary and no issues, never an error.
func degenerateReport(message string) *types.Report {
	return &types.Report{
		Summary: &types.Summary{
			Message:        message,
			AnalysisSource: analysisSource,
		},
		Issues:         []*types.AggregatedIssue{},
		AnalysisSource: analysisSource,
		Metadata: types.Metadata{
			AnalysisSource: analysisSource,
			Engine:         engineName,
		},
	}
}
