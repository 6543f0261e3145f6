package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"listings-feed/config"
	"listings-feed/ingest"
	"listings-feed/models"
	"listings-feed/services"
	"listings-feed/storage"
	"listings-feed/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	runID := uuid.NewString()

	logger.Info("=== Listings Feed Processor starting (run %s) ===", runID)
	logger.Info("Config: data %s | output %s | active-only agents %v",
		cfg.DataDir, cfg.OutputDir, cfg.ActiveOnly)

	writer, err := storage.NewJSONWriter(cfg.OutputDir)
	if err != nil {
		logger.Error("Failed to create output writer: %v", err)
		os.Exit(1)
	}

	if run(cfg, logger, writer, runID) != 0 {
		os.Exit(1)
	}

	warnings, errors := logger.Counts()
	logger.Info("=== Run %s complete (%d warnings, %d errors) ===", runID, warnings, errors)
}

func run(cfg *config.Config, logger *utils.Logger, writer storage.ReportWriter, runID string) int {
	proc := services.NewProcessor(logger, loadEnricher(cfg, logger))

	markets := []struct {
		name    string
		csvPath string
		outName string
	}{
		{"phoenix", cfg.PhoenixCSV(), "phoenix_listings.json"},
		{"tucson", cfg.TucsonCSV(), "tucson_listings.json"},
	}

	// The two market pipelines share no mutable state and run in parallel.
	// A failure in one market is logged and must not abort the other.
	results := make([]*services.MarketResult, len(markets))
	var g errgroup.Group
	for i, m := range markets {
		i, m := i, m // per-iteration copies; required while building with Go < 1.22
		g.Go(func() error {
			res, err := proc.ProcessMarket(m.name, m.csvPath)
			if err != nil {
				logger.Error("%s market failed, continuing without it: %v", m.name, err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	generatedAt := time.Now().UTC()

	listingSvc := services.NewListingService(logger)
	var union []*models.Row
	for i, m := range markets {
		if results[i] == nil {
			continue
		}
		union = append(union, results[i].Rows()...)
		writeReport(logger, writer, m.outName, listingSvc.Project(results[i].Canonical, generatedAt))
	}

	if len(union) == 0 {
		logger.Error("No valid rows parsed from any input file. Exiting.")
		return 1
	}

	writeReport(logger, writer, "verified_agents.json",
		services.NewAgentService(logger, cfg.ActiveOnly).Build(union, generatedAt))
	writeReport(logger, writer, "photographers.json",
		services.NewPhotographerService(logger).Build(union, generatedAt))
	writeReport(logger, writer, "customer_loyalty.json",
		services.NewLoyaltyService(logger).Build(union, generatedAt))
	writeReport(logger, writer, "listings_summary.json",
		services.BuildSummary(runID, results, generatedAt))

	return 0
}

// loadEnricher reads the optional lookup CSVs. Failures here degrade
// enrichment, never the run.
func loadEnricher(cfg *config.Config, logger *utils.Logger) *services.Enricher {
	parser := ingest.NewParser(logger)

	lpAddresses, err := parser.ReadLPOrders(cfg.LPOrdersCSV)
	if err != nil {
		logger.Warn("LP orders lookup unavailable: %v", err)
	}
	photographers, err := parser.ReadPreferredPhotographers(cfg.PreferredPhotographersCSV)
	if err != nil {
		logger.Warn("Preferred photographers lookup unavailable: %v", err)
	}

	return services.NewEnricher(logger, lpAddresses, photographers)
}

// writeReport writes one artifact, logging instead of propagating: earlier
// artifacts stay valid since every write is atomic and independent.
func writeReport(logger *utils.Logger, writer storage.ReportWriter, name string, payload any) {
	if err := writer.WriteJSON(name, payload); err != nil {
		logger.Error("Failed to write %s: %v", name, err)
		return
	}
	logger.Info("Wrote %s", name)
}
