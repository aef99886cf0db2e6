package geo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
)

// MicroRegion is a sub-country geographic classification (e.g. a wine
// growing area) used to tag manufacturers and their products more finely
// than country level. A region may own a taxon node; product tagging reads
// that reference directly instead of re-deriving a path.
type MicroRegion struct {
	shared.BaseEntity
	Name        string     `gorm:"type:varchar(150);not null;index"`
	CountryName string     `gorm:"type:varchar(100);not null;index"`
	TaxonID     *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (MicroRegion) TableName() string {
	return "micro_regions"
}

// NewMicroRegion creates a new micro-region reference row
func NewMicroRegion(name, countryName string) (*MicroRegion, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Micro-region name cannot be empty")
	}
	if strings.TrimSpace(countryName) == "" {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Micro-region country cannot be empty")
	}
	return &MicroRegion{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		CountryName: countryName,
	}, nil
}

// AssignTaxon records the region's own taxon node. The reference is set at
// most once; later synchronization runs reuse it.
func (r *MicroRegion) AssignTaxon(taxonID uuid.UUID) error {
	if r.TaxonID != nil {
		return shared.NewDomainError("TAXON_ALREADY_SET", "Micro-region already has a taxon")
	}
	r.TaxonID = &taxonID
	r.UpdatedAt = time.Now()
	return nil
}

// MicroRegionRepository defines the interface for micro-region persistence
type MicroRegionRepository interface {
	// FindByID finds a micro-region by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MicroRegion, error)

	// FindByCountryName returns the regions of a country ordered by name
	FindByCountryName(ctx context.Context, countryName string) ([]MicroRegion, error)

	// FindAll returns all micro-regions ordered by country then name
	FindAll(ctx context.Context) ([]MicroRegion, error)

	// Save creates or updates a micro-region
	Save(ctx context.Context, region *MicroRegion) error
}
