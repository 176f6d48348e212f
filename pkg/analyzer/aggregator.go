package analyzer

import (
	"github.com/nsxbet/sql-analyzer/pkg/sqltext"
	"github.com/nsxbet/sql-analyzer/pkg/types"
)

// maxEvidenceLen bounds the evidence stored per issue.
const maxEvidenceLen = 300

// aggregator merges the issue-event stream by source line, in emission
// order. A record is created on the first issue seen for a line and only
// appended to thereafter.
type aggregator struct {
	source  string
	records []*types.AggregatedIssue
	byLine  map[int]*types.AggregatedIssue
}

func newAggregator(source string) *aggregator {
	return &aggregator{
		source: source,
		byLine: make(map[int]*types.AggregatedIssue),
	}
}

// Add resolves the issue's offset to line/column/snippet against the
// original source and merges it into the record for that line. The
// singular legacy fields always mirror the first issue seen on the line;
// the parallel arrays hold the complete history.
func (g *aggregator) Add(issue *types.Issue) {
	line, col := sqltext.OffsetToLineCol(g.source, issue.Offset)
	snippet := sqltext.LineSnippet(g.source, issue.Offset, 0)

	evidence := issue.Evidence
	if evidence == "" {
		evidence = snippet
	}
	if len(evidence) > maxEvidenceLen {
		evidence = evidence[:maxEvidenceLen]
	}

	record, ok := g.byLine[line]
	if !ok {
		record = &types.AggregatedIssue{
			RuleID:          issue.RuleID,
			RuleIDs:         []string{issue.RuleID},
			Severity:        issue.Severity,
			SeverityLevels:  []types.Severity{issue.Severity},
			Message:         issue.Message,
			Messages:        []string{issue.Message},
			Object:          issue.Object,
			Line:            line,
			Columns:         []int{col},
			Snippet:         snippet,
			Evidence:        evidence,
			EvidenceList:    []string{evidence},
			Recommendations: []string{issue.Recommendation},
		}
		g.byLine[line] = record
		g.records = append(g.records, record)
		return
	}

	record.RuleIDs = append(record.RuleIDs, issue.RuleID)
	record.SeverityLevels = append(record.SeverityLevels, issue.Severity)
	record.Messages = append(record.Messages, issue.Message)
	record.Columns = append(record.Columns, col)
	record.EvidenceList = append(record.EvidenceList, evidence)
	record.Recommendations = append(record.Recommendations, issue.Recommendation)

	// Keep single-value fallbacks pinned to the first entry for consumers
	// of the pre-aggregation schema.
	record.RuleID = record.RuleIDs[0]
	record.Severity = record.SeverityLevels[0]
	record.Message = record.Messages[0]
	record.Evidence = record.EvidenceList[0]
}

// Records returns the aggregated records in first-seen order.
func (g *aggregator) Records() []*types.AggregatedIssue {
	return g.records
}
