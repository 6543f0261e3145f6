package services

import (
	"time"

	"listings-feed/models"
)

// BuildSummary assembles the combined cross-market summary artifact from
// whichever market results exist. Markets that failed entirely are simply
// absent from the map.
func BuildSummary(runID string, results []*MarketResult, generatedAt time.Time) *models.SummaryReport {
	report := &models.SummaryReport{
		RunID:       runID,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Markets:     make(map[string]models.MarketSummary),
	}

	for _, res := range results {
		if res == nil {
			continue
		}

		summary := models.MarketSummary{
			Total:        len(res.Canonical),
			ByStatus:     make(map[string]int),
			RejectedRows: res.Rejected,
			SkippedRows:  res.Skipped,
		}
		for _, row := range res.Canonical {
			summary.ByStatus[statusKey(row.Status)]++
			if truthy(row.LPFlag) {
				summary.LPMatched++
			}
		}

		report.Markets[res.Name] = summary
		report.Total += summary.Total
		report.TotalLP += summary.LPMatched
	}

	return report
}
