package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"listings-feed/models"
	"listings-feed/utils"
)

// Columns is the canonical input schema. Every column must be present
// (after header aliasing) for a file to be accepted.
var Columns = []string{
	"timestamp", "mls_number", "price", "listing_address", "status",
	"agent_name", "agent_first_name", "agent_phone", "agent_email", "agent_website",
	"office_name", "office_phone", "office_email", "office_website",
	"formatted_address", "image_filename",
	"exif_artist", "exif_copyright", "exif_make", "exif_model",
	"exif_lens_model", "exif_body_serial_number", "exif_date_time_digitized",
	"scraped_image_filename", "lp_flag", "cleaned", "preferred_photographer",
}

// headerAliases maps the header variants seen in historical exports to
// canonical column names. "what is" is a long-standing typo in the Tucson
// archive's timestamp column.
var headerAliases = map[string]string{
	"date":      "timestamp",
	"date_time": "timestamp",
	"what is":   "timestamp",
	"lp?":       "lp_flag",
}

// timeLayouts are the timestamp formats accepted for the timestamp column,
// most common first. The scrapers write "2006-01-02 15:04:05"; the rest
// cover spreadsheet exports.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

var phoneDigitRegexp = regexp.MustCompile(`\d`)

// SchemaError reports an input file whose header does not contain the
// canonical columns. It is fatal for that file only.
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("parser: %s: header missing required columns: %s",
		e.File, strings.Join(e.Missing, ", "))
}

// Result holds the rows parsed from one input file plus per-file tallies.
type Result struct {
	Rows    []*models.Row
	Skipped int // malformed rows dropped with a warning
}

// Parser reads MLS export CSVs into normalized Row records.
type Parser struct {
	logger *utils.Logger
}

// NewParser creates a Parser with the given logger.
func NewParser(logger *utils.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile reads and parses the CSV at path.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parser: open %q: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f, path)
}

// Parse reads CSV data from r. The name is used in diagnostics only.
func (p *Parser) Parse(r io.Reader, name string) (*Result, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parser: %s: read header: %w", name, err)
	}

	index, err := headerIndex(header, name)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	line := 1 // header consumed
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			p.logger.Warn("[parser] %s line %d: unreadable row skipped: %v", name, line, err)
			res.Skipped++
			continue
		}
		if len(record) != len(header) {
			p.logger.Warn("[parser] %s line %d: expected %d columns, got %d, row skipped",
				name, line, len(header), len(record))
			res.Skipped++
			continue
		}

		res.Rows = append(res.Rows, p.buildRow(record, index, line))
	}

	p.logger.Info("[parser] %s: %d rows parsed, %d skipped", name, len(res.Rows), res.Skipped)
	return res, nil
}

// headerIndex validates the header against the canonical schema and returns
// a map from canonical column name to field position.
func headerIndex(header []string, name string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{File: name, Missing: missing}
	}
	return index, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, `"`, "")
	if canonical, ok := headerAliases[h]; ok {
		return canonical
	}
	return strings.ReplaceAll(h, " ", "_")
}

func (p *Parser) buildRow(record []string, index map[string]int, line int) *models.Row {
	get := func(col string) string {
		return cleanValue(record[index[col]])
	}

	row := &models.Row{
		Timestamp:             get("timestamp"),
		MLSNumber:             normalizeMLS(get("mls_number")),
		Price:                 get("price"),
		ListingAddress:        collapseSpaces(get("listing_address")),
		Status:                get("status"),
		AgentName:             collapseSpaces(get("agent_name")),
		AgentFirstName:        collapseSpaces(get("agent_first_name")),
		AgentPhone:            NormalizePhone(get("agent_phone")),
		AgentEmail:            NormalizeEmail(get("agent_email")),
		AgentWebsite:          get("agent_website"),
		OfficeName:            collapseSpaces(get("office_name")),
		OfficePhone:           NormalizePhone(get("office_phone")),
		OfficeEmail:           NormalizeEmail(get("office_email")),
		OfficeWebsite:         get("office_website"),
		FormattedAddress:      collapseSpaces(get("formatted_address")),
		ImageFilename:         get("image_filename"),
		ExifArtist:            collapseSpaces(get("exif_artist")),
		ExifCopyright:         get("exif_copyright"),
		ExifMake:              get("exif_make"),
		ExifModel:             get("exif_model"),
		ExifLensModel:         get("exif_lens_model"),
		ExifBodySerialNumber:  get("exif_body_serial_number"),
		ExifDateTimeDigitized: get("exif_date_time_digitized"),
		ScrapedImageFilename:  get("scraped_image_filename"),
		LPFlag:                get("lp_flag"),
		Cleaned:               get("cleaned"),
		PreferredPhotographer: collapseSpaces(get("preferred_photographer")),
		Line:                  line,
	}

	row.ParsedTime = ParseTimestamp(row.Timestamp)
	row.ParsedPrice = parsePrice(row.Price)
	return row
}

// cleanValue trims a raw CSV value and strips a wrapping pair of quotes,
// an artifact of the older spreadsheet exports.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = strings.TrimSpace(v[1 : len(v)-1])
	}
	return v
}

// collapseSpaces squeezes internal runs of whitespace to single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeMLS strips the ".0" suffix a spreadsheet float round-trip leaves
// on MLS numbers.
func normalizeMLS(mls string) string {
	return strings.TrimSuffix(mls, ".0")
}

// NormalizeEmail lower-cases and trims an email for consistent keying.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone formats a US phone number as (AAA) BBB-CCCC when ten
// digits can be extracted (eleven with a leading 1). Anything else is
// passed through unchanged.
func NormalizePhone(raw string) string {
	digits := strings.Join(phoneDigitRegexp.FindAllString(raw, -1), "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

// ParseTimestamp coerces a timestamp value, returning the zero time when no
// known layout matches.
func ParseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parsePrice coerces a price string ("$425,000" etc.) to a float, returning
// nil when unparseable so the record is kept but excluded from numeric
// aggregation.
func parsePrice(raw string) *float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}
