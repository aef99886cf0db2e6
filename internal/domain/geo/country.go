package geo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
)

// Country is a reference entity describing a country a manufacturer can be
// located in. Rows are seeded from reference data and treated as read-mostly.
type Country struct {
	shared.BaseEntity
	ISO  string `gorm:"type:varchar(2);not null;uniqueIndex:idx_countries_iso"`
	Name string `gorm:"type:varchar(100);not null;index"`
}

// TableName returns the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// NewCountry creates a new country reference row
func NewCountry(iso, name string) (*Country, error) {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	if len(iso) != 2 {
		return nil, shared.NewDomainError("INVALID_ISO", "Country ISO code must be two letters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Country name cannot be empty")
	}
	return &Country{
		BaseEntity: shared.NewBaseEntity(),
		ISO:        iso,
		Name:       name,
	}, nil
}

// CountryRepository defines the interface for country persistence
type CountryRepository interface {
	// FindByID finds a country by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Country, error)

	// FindByISO finds a country by its ISO code
	FindByISO(ctx context.Context, iso string) (*Country, error)

	// FindAll returns all countries ordered by name
	FindAll(ctx context.Context) ([]Country, error)

	// Save creates or updates a country
	Save(ctx context.Context, country *Country) error
}
