package services

import (
	"listings-feed/ingest"
	"listings-feed/models"
	"listings-feed/utils"
)

// MarketResult is one market's canonical record set plus its data-quality
// tallies.
type MarketResult struct {
	Name      string
	Canonical map[string]*models.Row
	Rejected  int // rows dropped for a missing MLS number
	Skipped   int // malformed rows dropped during parsing
}

// Rows returns the canonical records as a slice, for the cross-market
// aggregations.
func (r *MarketResult) Rows() []*models.Row {
	rows := make([]*models.Row, 0, len(r.Canonical))
	for _, row := range r.Canonical {
		rows = append(rows, row)
	}
	return rows
}

// Processor wires the per-market stages together: parse, dedupe, enrich.
type Processor struct {
	logger   *utils.Logger
	parser   *ingest.Parser
	deduper  *Deduper
	enricher *Enricher
}

// NewProcessor creates a Processor. The enricher may be built from empty
// lookup data; enrichment then only promotes filename matches.
func NewProcessor(logger *utils.Logger, enricher *Enricher) *Processor {
	return &Processor{
		logger:   logger,
		parser:   ingest.NewParser(logger),
		deduper:  NewDeduper(logger),
		enricher: enricher,
	}
}

// ProcessMarket runs one market's CSV through the pipeline. An error here
// (unreadable file, schema mismatch) is fatal for this market only; the
// caller keeps going with the other market.
func (p *Processor) ProcessMarket(name, path string) (*MarketResult, error) {
	parsed, err := p.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	canonical, rejected := p.deduper.Dedupe(parsed.Rows)
	p.enricher.Enrich(canonical)

	p.logger.Info("[pipeline] %s: %d canonical listings ready", name, len(canonical))
	return &MarketResult{
		Name:      name,
		Canonical: canonical,
		Rejected:  rejected,
		Skipped:   parsed.Skipped,
	}, nil
}
