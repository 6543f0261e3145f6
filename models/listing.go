package models

import "time"

// Row is a single normalized CSV line from one market's MLS export.
// Field values are cleaned (trimmed, unquoted) at parse time and the row is
// never mutated afterwards, except by post-dedupe enrichment.
type Row struct {
	Timestamp             string
	MLSNumber             string
	Price                 string
	ListingAddress        string
	Status                string
	AgentName             string
	AgentFirstName        string
	AgentPhone            string
	AgentEmail            string
	AgentWebsite          string
	OfficeName            string
	OfficePhone           string
	OfficeEmail           string
	OfficeWebsite         string
	FormattedAddress      string
	ImageFilename         string
	ExifArtist            string
	ExifCopyright         string
	ExifMake              string
	ExifModel             string
	ExifLensModel         string
	ExifBodySerialNumber  string
	ExifDateTimeDigitized string
	ScrapedImageFilename  string
	LPFlag                string
	Cleaned               string
	PreferredPhotographer string

	// ParsedTime is the coerced Timestamp; the zero time when unparseable,
	// which makes such rows lose every dedupe comparison against dated rows.
	ParsedTime time.Time
	// ParsedPrice is nil when Price could not be coerced to a number.
	ParsedPrice *float64
	// Line is the 1-based line number in the source CSV. It is strictly
	// increasing in file order and serves as the dedupe tie-break.
	Line int
}

// ListingView is the public per-market projection of a canonical row.
// Raw EXIF fields are deliberately absent from this view.
type ListingView struct {
	MLSNumber        string   `json:"mls_number"`
	Price            *float64 `json:"price"`
	ListingAddress   string   `json:"listing_address"`
	Status           string   `json:"status"`
	AgentName        string   `json:"agent_name"`
	AgentPhone       string   `json:"agent_phone"`
	AgentEmail       string   `json:"agent_email"`
	AgentWebsite     string   `json:"agent_website"`
	OfficeName       string   `json:"office_name"`
	OfficePhone      string   `json:"office_phone"`
	OfficeEmail      string   `json:"office_email"`
	OfficeWebsite    string   `json:"office_website"`
	FormattedAddress string   `json:"formatted_address"`
	ImageFilename    string   `json:"image_filename"`
}

// ListingsReport is one market's listings artifact.
type ListingsReport struct {
	GeneratedAt  string         `json:"generated_at"`
	Count        int            `json:"count"`
	StatusCounts map[string]int `json:"status_counts"`
	Listings     []ListingView  `json:"listings"`
}

// Agent is one entry in the cross-market verified-agent directory.
type Agent struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Website            string `json:"website"`
	OfficeName         string `json:"office_name"`
	ActiveListingCount int    `json:"active_listing_count"`
}

// AgentsReport is the verified-agent directory artifact.
type AgentsReport struct {
	GeneratedAt string  `json:"generated_at"`
	Count       int     `json:"count"`
	Agents      []Agent `json:"agents"`
}

// Photographer aggregates all canonical rows sharing one EXIF signature
// (artist, make, model, lens), with blank components coalesced to "Unknown".
type Photographer struct {
	Artist       string `json:"artist"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	LensModel    string `json:"lens_model"`
	PhotoCount   int    `json:"photo_count"`
	ListingCount int    `json:"listing_count"`
	SerialCount  int    `json:"serial_count"`
	Preferred    bool   `json:"preferred"`
	FirstSeen    string `json:"first_seen"`
	LastSeen     string `json:"last_seen"`
}

// PhotographersReport is the photographer/camera analytics artifact.
type PhotographersReport struct {
	GeneratedAt   string         `json:"generated_at"`
	Count         int            `json:"count"`
	Photographers []Photographer `json:"photographers"`
}

// AgentLoyalty is one agent's ListerPros usage rollup.
type AgentLoyalty struct {
	Email                 string  `json:"email"`
	Name                  string  `json:"name"`
	Phone                 string  `json:"phone"`
	OfficeName            string  `json:"office_name"`
	TotalListings         int     `json:"total_listings"`
	LPListings            int     `json:"lp_listings"`
	NonLPListings         int     `json:"non_lp_listings"`
	LPPercentage          float64 `json:"lp_percentage"`
	ListingVolume         float64 `json:"listing_volume"`
	PreferredPhotographer string  `json:"preferred_photographer"`
}

// LoyaltySummary holds dataset-wide ListerPros usage totals.
type LoyaltySummary struct {
	TotalAgents         int     `json:"total_agents"`
	AgentsUsingLP       int     `json:"agents_using_lp"`
	TotalLPListings     int     `json:"total_lp_listings"`
	TotalListings       int     `json:"total_listings"`
	OverallLPPercentage float64 `json:"overall_lp_percentage"`
}

// LoyaltyTiers buckets agents with at least three listings by LP usage rate.
type LoyaltyTiers struct {
	Loyal      int `json:"loyal_75_plus"`
	Occasional int `json:"occasional_25_to_75"`
	Rare       int `json:"rare_under_25"`
	NeverUsed  int `json:"never_used"`
}

// LoyaltyReport is the customer-loyalty analytics artifact.
type LoyaltyReport struct {
	GeneratedAt string         `json:"generated_at"`
	Count       int            `json:"count"`
	Summary     LoyaltySummary `json:"summary"`
	Tiers       LoyaltyTiers   `json:"loyalty_tiers"`
	Agents      []AgentLoyalty `json:"agents"`
}

// MarketSummary holds one market's headline numbers.
type MarketSummary struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"by_status"`
	LPMatched    int            `json:"lp_matched"`
	RejectedRows int            `json:"rejected_rows"`
	SkippedRows  int            `json:"skipped_rows"`
}

// SummaryReport is the combined cross-market summary artifact.
type SummaryReport struct {
	RunID       string                   `json:"run_id"`
	GeneratedAt string                   `json:"generated_at"`
	Markets     map[string]MarketSummary `json:"markets"`
	Total       int                      `json:"total"`
	TotalLP     int                      `json:"total_lp_matched"`
}
