package services

import (
	"sort"
	"strings"
	"time"

	"listings-feed/models"
	"listings-feed/utils"
)

// LoyaltyService derives per-agent ListerPros usage analytics: who orders
// LP photography, how often, and who never has.
type LoyaltyService struct {
	logger *utils.Logger
}

// NewLoyaltyService creates a LoyaltyService.
func NewLoyaltyService(logger *utils.Logger) *LoyaltyService {
	return &LoyaltyService{logger: logger}
}

// Build aggregates canonical rows from both markets into one loyalty entry
// per agent email. An LP listing requires both the lp_flag and a plausible
// LP camera (see IsLPOrder); address matches shot on other cameras are
// counted as filtered false positives.
func (s *LoyaltyService) Build(rows []*models.Row, generatedAt time.Time) *models.LoyaltyReport {
	type accum struct {
		latest *models.Row
		entry  models.AgentLoyalty
	}
	byEmail := make(map[string]*accum)
	cameraFiltered := 0

	for _, row := range rows {
		email := row.AgentEmail
		if email == "" || !strings.Contains(email, "@") {
			continue
		}

		acc, ok := byEmail[email]
		if !ok {
			acc = &accum{latest: row, entry: models.AgentLoyalty{Email: email}}
			byEmail[email] = acc
		}
		if !ok || newerRow(acc.latest, row) {
			acc.latest = row
			setIfNotEmpty(&acc.entry.Name, row.AgentName)
			setIfNotEmpty(&acc.entry.Phone, row.AgentPhone)
			setIfNotEmpty(&acc.entry.OfficeName, row.OfficeName)
			setIfNotEmpty(&acc.entry.PreferredPhotographer, row.PreferredPhotographer)
		} else {
			setIfEmpty(&acc.entry.Name, row.AgentName)
			setIfEmpty(&acc.entry.Phone, row.AgentPhone)
			setIfEmpty(&acc.entry.OfficeName, row.OfficeName)
			setIfEmpty(&acc.entry.PreferredPhotographer, row.PreferredPhotographer)
		}

		acc.entry.TotalListings++
		if row.ParsedPrice != nil {
			acc.entry.ListingVolume += *row.ParsedPrice
		}

		switch {
		case IsLPOrder(row):
			acc.entry.LPListings++
		case truthy(row.LPFlag):
			// Address matched but shot on the wrong camera.
			cameraFiltered++
			acc.entry.NonLPListings++
		default:
			acc.entry.NonLPListings++
		}
	}

	if cameraFiltered > 0 {
		s.logger.Info("[loyalty] camera filter: %d address-matched orders rejected (wrong camera)", cameraFiltered)
	}

	report := &models.LoyaltyReport{
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Agents:      make([]models.AgentLoyalty, 0, len(byEmail)),
	}

	for _, acc := range byEmail {
		e := &acc.entry
		if e.TotalListings > 0 {
			e.LPPercentage = round1(float64(e.LPListings) / float64(e.TotalListings) * 100)
		}

		report.Summary.TotalAgents++
		report.Summary.TotalListings += e.TotalListings
		report.Summary.TotalLPListings += e.LPListings
		if e.LPListings > 0 {
			report.Summary.AgentsUsingLP++
		}

		// Tiers only consider agents with enough history to be meaningful.
		if e.TotalListings >= 3 {
			switch {
			case e.LPPercentage >= 75:
				report.Tiers.Loyal++
			case e.LPPercentage >= 25:
				report.Tiers.Occasional++
			case e.LPListings > 0:
				report.Tiers.Rare++
			default:
				report.Tiers.NeverUsed++
			}
		}

		report.Agents = append(report.Agents, acc.entry)
	}

	if report.Summary.TotalListings > 0 {
		report.Summary.OverallLPPercentage = round1(
			float64(report.Summary.TotalLPListings) / float64(report.Summary.TotalListings) * 100)
	}

	sort.Slice(report.Agents, func(i, j int) bool {
		a, b := report.Agents[i], report.Agents[j]
		if a.TotalListings != b.TotalListings {
			return a.TotalListings > b.TotalListings
		}
		return a.Email < b.Email
	})
	report.Count = len(report.Agents)

	s.logger.Info("[loyalty] %d agents, %d using LP (%.1f%% of listings)",
		report.Summary.TotalAgents, report.Summary.AgentsUsingLP, report.Summary.OverallLPPercentage)
	return report
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
