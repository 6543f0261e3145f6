package services

import (
	"regexp"
	"strings"

	"listings-feed/models"
	"listings-feed/utils"
)

var addressPunctRegexp = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")

// addressAbbreviations expands the street-suffix and direction shorthand
// used inconsistently across the MLS exports.
var addressAbbreviations = map[string]string{
	"st": "street", "str": "street", "rd": "road", "dr": "drive",
	"av": "avenue", "ave": "avenue", "ln": "lane", "ct": "court",
	"pl": "place", "blvd": "boulevard", "pkwy": "parkway", "cir": "circle",
	"trl": "trail", "wy": "way",
	"n": "north", "s": "south", "e": "east", "w": "west",
	"ne": "northeast", "nw": "northwest", "se": "southeast", "sw": "southwest",
}

// lpCameraToken identifies ListerPros' camera body (Sony A7 IV) in any
// casing or make/model arrangement.
const lpCameraToken = "ilce-7m4"

// Enricher flags ListerPros orders and fills preferred-photographer values
// on canonical rows, from optional lookup data.
type Enricher struct {
	logger        *utils.Logger
	lpAddresses   map[string]struct{}
	photographers map[string]string
}

// NewEnricher creates an Enricher. lpAddresses are raw order addresses
// (normalized internally); photographers maps agent email to name. Either
// may be nil.
func NewEnricher(logger *utils.Logger, lpAddresses []string, photographers map[string]string) *Enricher {
	set := make(map[string]struct{}, len(lpAddresses))
	for _, addr := range lpAddresses {
		if norm := NormalizeAddress(addr); norm != "" {
			set[norm] = struct{}{}
		}
	}
	return &Enricher{logger: logger, lpAddresses: set, photographers: photographers}
}

// Enrich mutates canonical rows in place. LP detection priority: a
// "ListerPros" token in either image filename is definitive; an order
// address match is the fallback for renamed files. Rows already flagged are
// left alone.
func (e *Enricher) Enrich(canonical map[string]*models.Row) {
	byFilename, byAddress := 0, 0

	for _, row := range canonical {
		if e.photographers != nil && row.PreferredPhotographer == "" {
			if name, ok := e.photographers[row.AgentEmail]; ok {
				row.PreferredPhotographer = name
			}
		}

		if truthy(row.LPFlag) {
			continue
		}

		if lpFilename(row.ScrapedImageFilename) || lpFilename(row.ImageFilename) {
			row.LPFlag = "Yes"
			byFilename++
			continue
		}

		if len(e.lpAddresses) > 0 && row.FormattedAddress != "" {
			if _, ok := e.lpAddresses[NormalizeAddress(row.FormattedAddress)]; ok {
				row.LPFlag = "Yes"
				byAddress++
			}
		}
	}

	if byFilename+byAddress > 0 {
		e.logger.Info("[enrich] LP matches: %d by filename, %d by address",
			byFilename, byAddress)
	}
}

// IsLPOrder reports whether a canonical row counts as a ListerPros order:
// the lp_flag must be set AND the EXIF camera must be plausible for LP.
// An address match with an iPhone or Canon in the EXIF is a false positive.
func IsLPOrder(row *models.Row) bool {
	return truthy(row.LPFlag) && validLPCamera(row.ExifMake, row.ExifModel)
}

// validLPCamera accepts LP's Sony body or a blank camera (metadata
// stripped, which LP's delivery pipeline does). Any other camera vetoes.
func validLPCamera(cameraMake, cameraModel string) bool {
	camera := strings.TrimSpace(cameraMake + " " + cameraModel)
	if camera == "" || camera == "-" {
		return true
	}
	return strings.Contains(strings.ToLower(camera), lpCameraToken)
}

func lpFilename(filename string) bool {
	return strings.Contains(strings.ToLower(filename), "listerpros")
}

// truthy interprets the loose boolean strings the exports carry.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1":
		return true
	}
	return false
}

// NormalizeAddress canonicalizes an address for matching: lower-cased,
// punctuation stripped, abbreviations expanded, single-spaced.
func NormalizeAddress(address string) string {
	cleaned := addressPunctRegexp.ReplaceAllString(strings.ToLower(strings.TrimSpace(address)), "")

	parts := strings.Fields(cleaned)
	for i, part := range parts {
		if expanded, ok := addressAbbreviations[part]; ok {
			parts[i] = expanded
		}
	}
	return strings.Join(parts, " ")
}
