package refdata

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vintner/backend/internal/domain/geo"
	"go.uber.org/zap"
)

// MicroRegionRecord is one row of the micro-regions reference file
type MicroRegionRecord struct {
	Name        string
	CountryName string
}

// LoadMicroRegions reads micro-region reference data from a CSV file
// with name and country_name columns
func LoadMicroRegions(path string) ([]MicroRegionRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open micro regions file: %w", err)
	}
	defer file.Close()

	return ParseMicroRegions(file)
}

// ParseMicroRegions reads micro-region reference data from a reader
func ParseMicroRegions(r io.Reader) ([]MicroRegionRecord, error) {
	reader := newCSVReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("micro regions file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read micro regions header: %w", err)
	}

	nameIdx, countryIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameIdx = i
		case "country_name", "country":
			countryIdx = i
		}
	}
	if nameIdx < 0 || countryIdx < 0 {
		return nil, fmt.Errorf("micro regions file must have name and country_name columns")
	}

	var records []MicroRegionRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read micro regions line %d: %w", line, err)
		}
		if len(record) <= nameIdx || len(record) <= countryIdx {
			continue
		}

		name := strings.TrimSpace(record[nameIdx])
		country := strings.TrimSpace(record[countryIdx])
		if name == "" || country == "" {
			continue
		}
		records = append(records, MicroRegionRecord{Name: name, CountryName: country})
	}

	return records, nil
}

// MicroRegionSeeder fills the micro-regions table from the reference file.
// Existing regions keep their rows, and in particular their taxon link.
type MicroRegionSeeder struct {
	repo   geo.MicroRegionRepository
	logger *zap.Logger
}

// NewMicroRegionSeeder creates a new MicroRegionSeeder
func NewMicroRegionSeeder(repo geo.MicroRegionRepository, logger *zap.Logger) *MicroRegionSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MicroRegionSeeder{repo: repo, logger: logger}
}

// Seed inserts every region from the file that is not yet in the database.
// Returns the number of regions created.
func (s *MicroRegionSeeder) Seed(ctx context.Context, records []MicroRegionRecord) (int, error) {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing micro regions: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, region := range existing {
		known[region.CountryName+"|"+region.Name] = true
	}

	created := 0
	for _, record := range records {
		if known[record.CountryName+"|"+record.Name] {
			continue
		}
		region, err := geo.NewMicroRegion(record.Name, record.CountryName)
		if err != nil {
			s.logger.Warn("skipping invalid micro region",
				zap.String("name", record.Name),
				zap.String("country", record.CountryName),
				zap.Error(err),
			)
			continue
		}
		if err := s.repo.Save(ctx, region); err != nil {
			return created, fmt.Errorf("failed to save micro region %q: %w", record.Name, err)
		}
		known[record.CountryName+"|"+record.Name] = true
		created++
	}

	if created > 0 {
		s.logger.Info("seeded micro regions", zap.Int("created", created))
	}
	return created, nil
}
