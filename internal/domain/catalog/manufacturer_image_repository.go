package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ManufacturerImageRepository defines the persistence operations for
// manufacturer images
type ManufacturerImageRepository interface {
	// FindByID finds an image by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ManufacturerImage, error)

	// FindByManufacturer finds all images of a manufacturer ordered by position
	FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]ManufacturerImage, error)

	// MaxPosition returns the highest position among a manufacturer's images,
	// or 0 when it has none
	MaxPosition(ctx context.Context, manufacturerID uuid.UUID) (int, error)

	// UpdatePositions applies a batch of position assignments in a single
	// transaction. Either all assignments are applied or none are.
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error

	// Save creates or updates an image
	Save(ctx context.Context, image *ManufacturerImage) error

	// Delete removes an image
	Delete(ctx context.Context, id uuid.UUID) error
}
