package services

import (
	"listings-feed/models"
	"listings-feed/utils"
)

// Deduper collapses rows sharing an MLS number into one canonical record.
type Deduper struct {
	logger *utils.Logger
}

// NewDeduper creates a Deduper with the given logger.
func NewDeduper(logger *utils.Logger) *Deduper {
	return &Deduper{logger: logger}
}

// Dedupe returns the canonical row per MLS number and the count of rows
// rejected for a missing key. Among rows sharing a key, the one with the
// greatest (timestamp, line) pair wins, so identical input always yields
// identical output regardless of processing order.
func (d *Deduper) Dedupe(rows []*models.Row) (map[string]*models.Row, int) {
	canonical := make(map[string]*models.Row)
	rejected := 0

	for _, row := range rows {
		if row.MLSNumber == "" {
			d.logger.Warn("[dedupe] line %d: empty MLS number, row rejected", row.Line)
			rejected++
			continue
		}

		current, ok := canonical[row.MLSNumber]
		if !ok || newerRow(current, row) {
			canonical[row.MLSNumber] = row
		}
	}

	d.logger.Info("[dedupe] %d rows → %d canonical listings (%d rejected)",
		len(rows), len(canonical), rejected)
	return canonical, rejected
}

// newerRow reports whether b supersedes a: later timestamp wins, equal or
// absent timestamps fall back to later file order.
func newerRow(a, b *models.Row) bool {
	if !b.ParsedTime.Equal(a.ParsedTime) {
		return b.ParsedTime.After(a.ParsedTime)
	}
	return b.Line > a.Line
}
