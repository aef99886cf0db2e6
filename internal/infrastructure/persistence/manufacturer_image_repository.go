package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormManufacturerImageRepository implements ManufacturerImageRepository using GORM
type GormManufacturerImageRepository struct {
	db *gorm.DB
}

// NewGormManufacturerImageRepository creates a new GormManufacturerImageRepository
func NewGormManufacturerImageRepository(db *gorm.DB) *GormManufacturerImageRepository {
	return &GormManufacturerImageRepository{db: db}
}

// FindByID finds an image by its ID
func (r *GormManufacturerImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ManufacturerImage, error) {
	var image catalog.ManufacturerImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// FindByManufacturer finds all images of a manufacturer ordered by position
func (r *GormManufacturerImageRepository) FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]catalog.ManufacturerImage, error) {
	var images []catalog.ManufacturerImage
	if err := r.db.WithContext(ctx).
		Where("viewable_type = ? AND viewable_id = ?", catalog.ViewableTypeManufacturer, manufacturerID).
		Order("position ASC").
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// MaxPosition returns the highest position among a manufacturer's images
func (r *GormManufacturerImageRepository) MaxPosition(ctx context.Context, manufacturerID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&catalog.ManufacturerImage{}).
		Where("viewable_type = ? AND viewable_id = ?", catalog.ViewableTypeManufacturer, manufacturerID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// UpdatePositions applies a batch of position assignments in one transaction
func (r *GormManufacturerImageRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, position := range positions {
			result := tx.Model(&catalog.ManufacturerImage{}).
				Where("id = ?", id).
				Update("position", position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
		}
		return nil
	})
}

// Save creates or updates an image
func (r *GormManufacturerImageRepository) Save(ctx context.Context, image *catalog.ManufacturerImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

// Delete deletes an image
func (r *GormManufacturerImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ManufacturerImage{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormManufacturerImageRepository implements ManufacturerImageRepository
var _ catalog.ManufacturerImageRepository = (*GormManufacturerImageRepository)(nil)
