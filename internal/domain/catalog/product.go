package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/vintner/backend/internal/domain/shared"
	"github.com/vintner/backend/internal/domain/taxonomy"
)

// Product is a sellable item tied to at most one manufacturer. Taxonomy
// synchronization tags products with taxons; the tag set only ever grows,
// existing classifications are never removed by the sync.
type Product struct {
	shared.BaseAggregateRoot
	Name           string     `gorm:"type:varchar(255);not null;index:idx_products_name"`
	Slug           string     `gorm:"type:varchar(255);uniqueIndex:idx_products_slug"`
	Description    string     `gorm:"type:text"`
	ManufacturerID *uuid.UUID `gorm:"type:uuid;index"`

	Taxons []taxonomy.Taxon `gorm:"many2many:product_taxons;"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with the required name
func NewProduct(name string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug.Make(name),
	}, nil
}

// Update updates the product's descriptive information
func (p *Product) Update(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AssignManufacturer links the product to a manufacturer
func (p *Product) AssignManufacturer(manufacturerID *uuid.UUID) {
	p.ManufacturerID = manufacturerID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// HasTaxon reports whether the product is already tagged with the taxon
func (p *Product) HasTaxon(taxonID uuid.UUID) bool {
	for i := range p.Taxons {
		if p.Taxons[i].ID == taxonID {
			return true
		}
	}
	return false
}

// TagWithTaxon adds a taxon to the product's tag set if not already
// present. Tagging is additive; taxons are never removed here.
func (p *Product) TagWithTaxon(taxon *taxonomy.Taxon) bool {
	if p.HasTaxon(taxon.ID) {
		return false
	}
	p.Taxons = append(p.Taxons, *taxon)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductTaggedEvent(p, taxon.ID))
	return true
}
