package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

// TaxonomyRepository defines the interface for taxonomy persistence
type TaxonomyRepository interface {
	// FindByID finds a taxonomy by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Taxonomy, error)

	// FindDefault returns the first taxonomy by creation order
	FindDefault(ctx context.Context) (*Taxonomy, error)

	// Save creates or updates a taxonomy
	Save(ctx context.Context, taxonomy *Taxonomy) error
}

// TaxonRepository defines the interface for taxon persistence.
// FindByPermalink is the lookup half of every lookup-then-create cycle;
// Save must surface a permalink uniqueness violation as
// shared.ErrTaxonomyConflict so callers can report the race.
type TaxonRepository interface {
	// FindByID finds a taxon by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Taxon, error)

	// FindByIDs finds multiple taxons by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Taxon, error)

	// FindByPermalink finds a taxon by its unique permalink
	FindByPermalink(ctx context.Context, permalink string) (*Taxon, error)

	// FindChildren finds all direct children of a taxon ordered by position
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Taxon, error)

	// FindRoot finds the root taxon of a taxonomy
	FindRoot(ctx context.Context, taxonomyID uuid.UUID) (*Taxon, error)

	// Save creates or updates a taxon together with its translations
	Save(ctx context.Context, taxon *Taxon) error

	// Delete deletes a taxon
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByPermalink checks whether a taxon with the given permalink exists
	ExistsByPermalink(ctx context.Context, permalink string) (bool, error)
}
