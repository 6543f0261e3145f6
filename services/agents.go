package services

import (
	"sort"
	"strings"
	"time"

	"listings-feed/models"
	"listings-feed/utils"
)

// AgentService derives the cross-market verified-agent directory, keyed by
// normalized agent email.
type AgentService struct {
	logger *utils.Logger
	// activeOnly drops agents with zero Active listings. Off by default:
	// the directory verifies identity, not current activity.
	activeOnly bool
}

// NewAgentService creates an AgentService.
func NewAgentService(logger *utils.Logger, activeOnly bool) *AgentService {
	return &AgentService{logger: logger, activeOnly: activeOnly}
}

type agentAccum struct {
	latest *models.Row // most recent contributing record
	entry  models.Agent
}

// Build aggregates canonical rows from both markets into one Agent per
// email. Rows without a plausible email (must contain "@") are excluded;
// they still appear in the listings views. Display fields come from the
// most recent contributing record, falling back to older non-empty values.
func (s *AgentService) Build(rows []*models.Row, generatedAt time.Time) *models.AgentsReport {
	byEmail := make(map[string]*agentAccum)
	excluded := 0

	for _, row := range rows {
		email := row.AgentEmail
		if email == "" || !strings.Contains(email, "@") {
			excluded++
			continue
		}

		acc, ok := byEmail[email]
		if !ok {
			acc = &agentAccum{latest: row, entry: models.Agent{Email: email}}
			byEmail[email] = acc
			acc.fill(row)
		} else if newerRow(acc.latest, row) {
			acc.latest = row
			acc.fill(row)
		} else {
			acc.backfill(row)
		}

		if strings.EqualFold(row.Status, "Active") {
			acc.entry.ActiveListingCount++
		}
	}

	if excluded > 0 {
		s.logger.Debug("[agents] %d rows without agent email excluded from directory", excluded)
	}

	emails := make([]string, 0, len(byEmail))
	for email, acc := range byEmail {
		if s.activeOnly && acc.entry.ActiveListingCount == 0 {
			continue
		}
		emails = append(emails, email)
	}
	sort.Strings(emails)

	report := &models.AgentsReport{
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Count:       len(emails),
		Agents:      make([]models.Agent, 0, len(emails)),
	}
	for _, email := range emails {
		report.Agents = append(report.Agents, byEmail[email].entry)
	}

	s.logger.Info("[agents] %d verified agents from %d rows", report.Count, len(rows))
	return report
}

// fill overwrites display fields with the newer record's non-empty values.
func (a *agentAccum) fill(row *models.Row) {
	setIfNotEmpty(&a.entry.Name, row.AgentName)
	setIfNotEmpty(&a.entry.Phone, row.AgentPhone)
	setIfNotEmpty(&a.entry.Website, row.AgentWebsite)
	setIfNotEmpty(&a.entry.OfficeName, row.OfficeName)
}

// backfill fills display fields that are still blank from an older record.
func (a *agentAccum) backfill(row *models.Row) {
	setIfEmpty(&a.entry.Name, row.AgentName)
	setIfEmpty(&a.entry.Phone, row.AgentPhone)
	setIfEmpty(&a.entry.Website, row.AgentWebsite)
	setIfEmpty(&a.entry.OfficeName, row.OfficeName)
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
