package services

import (
	"testing"
	"time"

	"listings-feed/models"
)

func TestProjectOrderedByMLS(t *testing.T) {
	svc := NewListingService(newTestLogger())
	canonical := map[string]*models.Row{
		"MLS300": {MLSNumber: "MLS300", Status: "Active"},
		"MLS100": {MLSNumber: "MLS100", Status: "Closed"},
		"MLS200": {MLSNumber: "MLS200", Status: "Active"},
	}

	report := svc.Project(canonical, time.Now().UTC())

	if report.Count != 3 {
		t.Fatalf("Count: got %d, want 3", report.Count)
	}
	want := []string{"MLS100", "MLS200", "MLS300"}
	for i, l := range report.Listings {
		if l.MLSNumber != want[i] {
			t.Errorf("listing %d: got %s, want %s", i, l.MLSNumber, want[i])
		}
	}
}

func TestProjectStatusCounts(t *testing.T) {
	svc := NewListingService(newTestLogger())
	canonical := map[string]*models.Row{
		"MLS1": {MLSNumber: "MLS1", Status: "Active"},
		"MLS2": {MLSNumber: "MLS2", Status: "Active"},
		"MLS3": {MLSNumber: "MLS3", Status: "Cancelled"},
		"MLS4": {MLSNumber: "MLS4"},
	}

	report := svc.Project(canonical, time.Now().UTC())

	if report.StatusCounts["Active"] != 2 {
		t.Errorf("Active: got %d, want 2", report.StatusCounts["Active"])
	}
	if report.StatusCounts["Cancelled"] != 1 {
		t.Errorf("Cancelled: got %d, want 1", report.StatusCounts["Cancelled"])
	}
	if report.StatusCounts["Unknown"] != 1 {
		t.Errorf("Unknown: got %d, want 1", report.StatusCounts["Unknown"])
	}
}

func TestProjectCarriesContactAndPriceFields(t *testing.T) {
	svc := NewListingService(newTestLogger())
	price := 425000.0
	canonical := map[string]*models.Row{
		"MLS1": {
			MLSNumber:        "MLS1",
			ParsedPrice:      &price,
			ListingAddress:   "123 Main St",
			Status:           "Active",
			AgentName:        "Jane Doe",
			AgentEmail:       "jane@example.com",
			OfficeName:       "Desert Realty",
			FormattedAddress: "123 Main St, Phoenix, AZ",
			ImageFilename:    "mls1.jpg",
			ExifArtist:       "Should Not Leak",
		},
	}

	report := svc.Project(canonical, time.Now().UTC())

	l := report.Listings[0]
	if l.Price == nil || *l.Price != price {
		t.Errorf("Price: got %v, want %v", l.Price, price)
	}
	if l.AgentEmail != "jane@example.com" || l.OfficeName != "Desert Realty" {
		t.Errorf("contact fields not carried: %+v", l)
	}
	if l.ImageFilename != "mls1.jpg" {
		t.Errorf("ImageFilename: got %q", l.ImageFilename)
	}
}

func TestProjectEmptyMarket(t *testing.T) {
	svc := NewListingService(newTestLogger())
	report := svc.Project(map[string]*models.Row{}, time.Now().UTC())

	if report.Count != 0 || len(report.Listings) != 0 {
		t.Errorf("empty market should produce an empty report, got %+v", report)
	}
	if report.Listings == nil {
		t.Error("Listings should serialize as [] rather than null")
	}
}
