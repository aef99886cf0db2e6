// Package refdata loads geographic reference data shipped as CSV files.
package refdata

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	catalogapp "github.com/vintner/backend/internal/application/catalog"
)

// CountryNames resolves localized country display names from a CSV file
// with iso, locale and name columns. Lookups fall back to the caller's
// raw value when no translation is present.
type CountryNames struct {
	names map[string]string // "ISO|locale" -> name
}

// Ensure CountryNames implements CountryNameLocalizer
var _ catalogapp.CountryNameLocalizer = (*CountryNames)(nil)

// LoadCountryNames reads the country name translations from a CSV file
func LoadCountryNames(path string) (*CountryNames, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open country names file: %w", err)
	}
	defer file.Close()

	return ParseCountryNames(file)
}

// ParseCountryNames reads country name translations from a reader
func ParseCountryNames(r io.Reader) (*CountryNames, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("country names file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read country names header: %w", err)
	}

	isoIdx, localeIdx, nameIdx := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "iso":
			isoIdx = i
		case "locale":
			localeIdx = i
		case "name":
			nameIdx = i
		}
	}
	if isoIdx < 0 || localeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("country names file must have iso, locale and name columns")
	}

	names := make(map[string]string)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read country names line %d: %w", line, err)
		}
		if len(record) <= isoIdx || len(record) <= localeIdx || len(record) <= nameIdx {
			continue
		}

		iso := strings.ToUpper(strings.TrimSpace(record[isoIdx]))
		locale := strings.ToLower(strings.TrimSpace(record[localeIdx]))
		name := strings.TrimSpace(record[nameIdx])
		if iso == "" || locale == "" || name == "" {
			continue
		}
		names[iso+"|"+locale] = name
	}

	return &CountryNames{names: names}, nil
}

// LocalizedName returns the display name of a country in the given locale
func (c *CountryNames) LocalizedName(iso, locale string) (string, bool) {
	name, ok := c.names[strings.ToUpper(iso)+"|"+strings.ToLower(locale)]
	return name, ok
}

// Len returns the number of loaded translations
func (c *CountryNames) Len() int {
	return len(c.names)
}

// newCSVReader wraps a reader with BOM stripping and forgiving CSV settings
func newCSVReader(r io.Reader) *csv.Reader {
	buf := bufio.NewReader(r)

	// UTF-8 BOM: 0xEF, 0xBB, 0xBF
	if peeked, err := buf.Peek(3); err == nil &&
		len(peeked) >= 3 && peeked[0] == 0xEF && peeked[1] == 0xBB && peeked[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	reader := csv.NewReader(buf)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}
