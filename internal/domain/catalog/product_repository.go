package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	// FindByID finds a product by ID, preloading its taxons
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByManufacturer finds all products of a manufacturer
	FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Product], error)

	// Save creates or updates a product together with its taxon associations
	Save(ctx context.Context, product *Product) error

	// AddTaxon attaches a taxon to a product, doing nothing when the
	// association already exists
	AddTaxon(ctx context.Context, productID, taxonID uuid.UUID) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
