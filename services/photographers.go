package services

import (
	"sort"
	"strings"
	"time"

	"listings-feed/ingest"
	"listings-feed/models"
	"listings-feed/utils"
)

// exifTimeLayout is how cameras stamp DateTimeDigitized.
const exifTimeLayout = "2006:01:02 15:04:05"

// unknownComponent is the sentinel for blank signature components, so
// partial EXIF data still aggregates instead of being dropped.
const unknownComponent = "Unknown"

// PhotographerService derives camera/photographer analytics from the EXIF
// metadata embedded in listing photos.
type PhotographerService struct {
	logger *utils.Logger
}

// NewPhotographerService creates a PhotographerService.
func NewPhotographerService(logger *utils.Logger) *PhotographerService {
	return &PhotographerService{logger: logger}
}

type photographerAccum struct {
	entry     models.Photographer
	listings  map[string]struct{}
	serials   map[string]struct{}
	firstSeen time.Time
	lastSeen  time.Time
}

// Build groups canonical rows from both markets by EXIF signature. Rows
// carrying no EXIF data at all are excluded; they still appear in the
// listings views. The result is ranked by photo count descending so the
// highest-volume photographers surface first.
func (s *PhotographerService) Build(rows []*models.Row, generatedAt time.Time) *models.PhotographersReport {
	groups := make(map[[4]string]*photographerAccum)
	excluded := 0

	for _, row := range rows {
		if !hasExif(row) {
			excluded++
			continue
		}

		sig := [4]string{
			coalesce(row.ExifArtist),
			coalesce(row.ExifMake),
			coalesce(row.ExifModel),
			coalesce(row.ExifLensModel),
		}

		acc, ok := groups[sig]
		if !ok {
			acc = &photographerAccum{
				entry: models.Photographer{
					Artist:    sig[0],
					Make:      sig[1],
					Model:     sig[2],
					LensModel: sig[3],
				},
				listings: make(map[string]struct{}),
				serials:  make(map[string]struct{}),
			}
			groups[sig] = acc
		}

		acc.entry.PhotoCount++
		acc.listings[row.MLSNumber] = struct{}{}
		if serial := row.ExifBodySerialNumber; serial != "" && serial != "-" {
			acc.serials[serial] = struct{}{}
		}
		if row.PreferredPhotographer != "" && !falsy(row.PreferredPhotographer) {
			acc.entry.Preferred = true
		}
		acc.observe(parseExifTime(row.ExifDateTimeDigitized))
	}

	if excluded > 0 {
		s.logger.Debug("[photographers] %d rows without EXIF data excluded", excluded)
	}

	report := &models.PhotographersReport{
		GeneratedAt:   generatedAt.Format(time.RFC3339),
		Count:         len(groups),
		Photographers: make([]models.Photographer, 0, len(groups)),
	}
	for _, acc := range groups {
		acc.entry.ListingCount = len(acc.listings)
		acc.entry.SerialCount = len(acc.serials)
		if !acc.firstSeen.IsZero() {
			acc.entry.FirstSeen = acc.firstSeen.Format(time.RFC3339)
			acc.entry.LastSeen = acc.lastSeen.Format(time.RFC3339)
		}
		report.Photographers = append(report.Photographers, acc.entry)
	}

	sort.Slice(report.Photographers, func(i, j int) bool {
		a, b := report.Photographers[i], report.Photographers[j]
		if a.PhotoCount != b.PhotoCount {
			return a.PhotoCount > b.PhotoCount
		}
		return signatureLess(a, b)
	})

	s.logger.Info("[photographers] %d photographer signatures from %d rows", report.Count, len(rows))
	return report
}

func (p *photographerAccum) observe(t time.Time) {
	if t.IsZero() {
		return
	}
	if p.firstSeen.IsZero() || t.Before(p.firstSeen) {
		p.firstSeen = t
	}
	if t.After(p.lastSeen) {
		p.lastSeen = t
	}
}

// hasExif reports whether a row carries any EXIF metadata worth grouping.
func hasExif(row *models.Row) bool {
	return row.ExifArtist != "" || row.ExifMake != "" || row.ExifModel != "" ||
		row.ExifLensModel != "" || row.ExifBodySerialNumber != "" ||
		row.ExifDateTimeDigitized != ""
}

func coalesce(v string) string {
	if strings.TrimSpace(v) == "" || v == "-" {
		return unknownComponent
	}
	return v
}

// falsy catches explicit negative markers in the preferred_photographer
// column; any other non-empty value (a name, "Yes") means preferred.
func falsy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "no", "false", "0", "-":
		return true
	}
	return false
}

func parseExifTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(exifTimeLayout, value); err == nil {
		return t
	}
	return ingest.ParseTimestamp(value)
}

func signatureLess(a, b models.Photographer) bool {
	if a.Artist != b.Artist {
		return a.Artist < b.Artist
	}
	if a.Make != b.Make {
		return a.Make < b.Make
	}
	if a.Model != b.Model {
		return a.Model < b.Model
	}
	return a.LensModel < b.LensModel
}
