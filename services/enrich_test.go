package services

import (
	"testing"

	"listings-feed/models"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"123 N. Main St", "123 north main street"},
		{"456 E Elm Dr, Tucson", "456 east elm drive tucson"},
		{"789 SW Catalina Blvd", "789 southwest catalina boulevard"},
		{"  10 W   Baseline Rd  ", "10 west baseline road"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeAddress(tt.raw); got != tt.want {
			t.Errorf("NormalizeAddress(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEnrichFlagsLPByFilename(t *testing.T) {
	e := NewEnricher(newTestLogger(), nil, nil)
	canonical := map[string]*models.Row{
		"MLS1": {MLSNumber: "MLS1", ScrapedImageFilename: "123_Main_ListerPros_001.jpg"},
		"MLS2": {MLSNumber: "MLS2", ImageFilename: "listerpros-front.jpg"},
		"MLS3": {MLSNumber: "MLS3", ScrapedImageFilename: "iphone_shot.jpg"},
	}

	e.Enrich(canonical)

	if canonical["MLS1"].LPFlag != "Yes" {
		t.Error("MLS1: scraped filename containing ListerPros should set lp_flag")
	}
	if canonical["MLS2"].LPFlag != "Yes" {
		t.Error("MLS2: image filename containing listerpros should set lp_flag")
	}
	if canonical["MLS3"].LPFlag != "" {
		t.Error("MLS3: unrelated filename should not set lp_flag")
	}
}

func TestEnrichFlagsLPByAddress(t *testing.T) {
	e := NewEnricher(newTestLogger(), []string{"123 N Main St Phoenix"}, nil)
	canonical := map[string]*models.Row{
		"MLS1": {MLSNumber: "MLS1", FormattedAddress: "123 North Main Street, Phoenix"},
		"MLS2": {MLSNumber: "MLS2", FormattedAddress: "999 Other Ave"},
	}

	e.Enrich(canonical)

	if canonical["MLS1"].LPFlag != "Yes" {
		t.Error("MLS1: normalized address match should set lp_flag")
	}
	if canonical["MLS2"].LPFlag != "" {
		t.Error("MLS2: non-matching address should not set lp_flag")
	}
}

func TestEnrichFillsPreferredPhotographer(t *testing.T) {
	e := NewEnricher(newTestLogger(), nil, map[string]string{"jane@example.com": "John Lens"})
	canonical := map[string]*models.Row{
		"MLS1": {MLSNumber: "MLS1", AgentEmail: "jane@example.com"},
		"MLS2": {MLSNumber: "MLS2", AgentEmail: "jane@example.com", PreferredPhotographer: "Already Set"},
	}

	e.Enrich(canonical)

	if canonical["MLS1"].PreferredPhotographer != "John Lens" {
		t.Errorf("MLS1: lookup should fill preferred photographer, got %q",
			canonical["MLS1"].PreferredPhotographer)
	}
	if canonical["MLS2"].PreferredPhotographer != "Already Set" {
		t.Errorf("MLS2: existing value should not be overwritten, got %q",
			canonical["MLS2"].PreferredPhotographer)
	}
}

func TestIsLPOrderCameraVeto(t *testing.T) {
	tests := []struct {
		name string
		row  *models.Row
		want bool
	}{
		{"flag with LP camera", &models.Row{LPFlag: "Yes", ExifMake: "SONY", ExifModel: "ILCE-7M4"}, true},
		{"flag with blank camera", &models.Row{LPFlag: "Yes"}, true},
		{"flag with dash camera", &models.Row{LPFlag: "Yes", ExifModel: "-"}, true},
		{"flag with iPhone", &models.Row{LPFlag: "Yes", ExifMake: "Apple", ExifModel: "iPhone 15 Pro"}, false},
		{"flag with Canon", &models.Row{LPFlag: "Yes", ExifMake: "Canon", ExifModel: "EOS R5"}, false},
		{"no flag, LP camera", &models.Row{ExifMake: "SONY", ExifModel: "ILCE-7M4"}, false},
		{"lowercase model variant", &models.Row{LPFlag: "true", ExifModel: "ilce-7m4"}, true},
	}

	for _, tt := range tests {
		if got := IsLPOrder(tt.row); got != tt.want {
			t.Errorf("%s: IsLPOrder = %v; want %v", tt.name, got, tt.want)
		}
	}
}
