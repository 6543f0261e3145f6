package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadLPOrders reads the optional ListerPros order export and returns the
// raw formatted addresses it contains. A missing file is not an error: LP
// matching then relies on lp_flag values already present in the listings.
func (p *Parser) ReadLPOrders(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		p.logger.Info("[parser] %s not found, LP matching will use existing lp_flag values", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parser: open %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parser: %s: read header: %w", path, err)
	}

	addrCol := findColumn(header, "formatted_address", "address")
	if addrCol < 0 {
		p.logger.Warn("[parser] %s: no address column found, LP address matching disabled", path)
		return nil, nil
	}

	var addresses []string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil || addrCol >= len(record) {
			continue
		}
		if addr := cleanValue(record[addrCol]); addr != "" {
			addresses = append(addresses, addr)
		}
	}

	p.logger.Info("[parser] %s: %d ListerPros order addresses loaded", path, len(addresses))
	return addresses, nil
}

// ReadPreferredPhotographers reads the optional agent-email → photographer
// mapping. A missing file is not an error.
func (p *Parser) ReadPreferredPhotographers(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		p.logger.Info("[parser] %s not found, using existing preferred_photographer values", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parser: open %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parser: %s: read header: %w", path, err)
	}

	emailCol := findColumn(header, "agent_email")
	photoCol := findColumn(header, "preferred_photographer")
	if emailCol < 0 || photoCol < 0 {
		p.logger.Warn("[parser] %s: missing agent_email or preferred_photographer column", path)
		return nil, nil
	}

	mapping := make(map[string]string)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil || emailCol >= len(record) || photoCol >= len(record) {
			continue
		}
		email := NormalizeEmail(cleanValue(record[emailCol]))
		photographer := collapseSpaces(cleanValue(record[photoCol]))
		if email != "" && photographer != "" {
			mapping[email] = photographer
		}
	}

	p.logger.Info("[parser] %s: %d preferred photographer mappings loaded", path, len(mapping))
	return mapping, nil
}

// findColumn returns the position of the first header matching any of the
// given canonical names, or -1.
func findColumn(header []string, names ...string) int {
	for _, want := range names {
		for i, h := range header {
			if normalizeHeader(h) == want {
				return i
			}
		}
	}
	return -1
}
