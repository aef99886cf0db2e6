package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
)

// ManufacturerRepository defines the persistence operations for manufacturers
type ManufacturerRepository interface {
	// FindByID finds a manufacturer by ID, preloading images and translations
	FindByID(ctx context.Context, id uuid.UUID) (*Manufacturer, error)

	// FindBySlug finds a manufacturer by its current slug. When no
	// manufacturer carries the slug, the redirect history is consulted and
	// the redirect's owner is returned instead.
	FindBySlug(ctx context.Context, slug string) (*Manufacturer, error)

	// FindAll finds manufacturers matching the filter, ordered by position
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Manufacturer], error)

	// FindAllOrdered returns every manufacturer ordered by position ascending
	FindAllOrdered(ctx context.Context) ([]Manufacturer, error)

	// SearchByName finds manufacturers whose name contains the query,
	// case-insensitively, ordered by name
	SearchByName(ctx context.Context, query string, limit int) ([]Manufacturer, error)

	// ExistsBySlug checks whether another manufacturer already uses the slug.
	// excludeID skips the manufacturer being updated; pass uuid.Nil on create.
	ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// MaxPosition returns the highest position among all manufacturers,
	// or 0 when none exist
	MaxPosition(ctx context.Context) (int, error)

	// UpdatePositions applies a batch of position assignments in a single
	// transaction. Either all assignments are applied or none are.
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error

	// Save creates or updates a manufacturer
	Save(ctx context.Context, manufacturer *Manufacturer) error

	// Delete removes a manufacturer
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveSlugRedirect records a retired slug for redirect lookups
	SaveSlugRedirect(ctx context.Context, redirect *SlugRedirect) error
}
