package services

import (
	"sort"
	"time"

	"listings-feed/models"
	"listings-feed/utils"
)

// ListingService projects canonical records into the public per-market
// listings view.
type ListingService struct {
	logger *utils.Logger
}

// NewListingService creates a ListingService with the given logger.
func NewListingService(logger *utils.Logger) *ListingService {
	return &ListingService{logger: logger}
}

// Project builds one market's listings report. Listings are ordered by MLS
// number ascending for reproducible diffs between runs; statuses are passed
// through as-is and tallied.
func (s *ListingService) Project(canonical map[string]*models.Row, generatedAt time.Time) *models.ListingsReport {
	keys := make([]string, 0, len(canonical))
	for mls := range canonical {
		keys = append(keys, mls)
	}
	sort.Strings(keys)

	report := &models.ListingsReport{
		GeneratedAt:  generatedAt.Format(time.RFC3339),
		Count:        len(keys),
		StatusCounts: make(map[string]int),
		Listings:     make([]models.ListingView, 0, len(keys)),
	}

	for _, mls := range keys {
		row := canonical[mls]
		report.StatusCounts[statusKey(row.Status)]++
		report.Listings = append(report.Listings, models.ListingView{
			MLSNumber:        row.MLSNumber,
			Price:            row.ParsedPrice,
			ListingAddress:   row.ListingAddress,
			Status:           row.Status,
			AgentName:        row.AgentName,
			AgentPhone:       row.AgentPhone,
			AgentEmail:       row.AgentEmail,
			AgentWebsite:     row.AgentWebsite,
			OfficeName:       row.OfficeName,
			OfficePhone:      row.OfficePhone,
			OfficeEmail:      row.OfficeEmail,
			OfficeWebsite:    row.OfficeWebsite,
			FormattedAddress: row.FormattedAddress,
			ImageFilename:    row.ImageFilename,
		})
	}

	return report
}

// statusKey buckets blank statuses under "Unknown" so the tally stays
// meaningful.
func statusKey(status string) string {
	if status == "" {
		return "Unknown"
	}
	return status
}
