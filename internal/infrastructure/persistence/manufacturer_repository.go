package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormManufacturerRepository implements ManufacturerRepository using GORM
type GormManufacturerRepository struct {
	db *gorm.DB
}

// NewGormManufacturerRepository creates a new GormManufacturerRepository
func NewGormManufacturerRepository(db *gorm.DB) *GormManufacturerRepository {
	return &GormManufacturerRepository{db: db}
}

// FindByID finds a manufacturer by its ID with images and translations
func (r *GormManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	var manufacturer catalog.Manufacturer
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Translations").
		First(&manufacturer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &manufacturer, nil
}

// FindBySlug finds a manufacturer by its current slug, falling back to the
// redirect history when no manufacturer carries it anymore
func (r *GormManufacturerRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Manufacturer, error) {
	var manufacturer catalog.Manufacturer
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Translations").
		Where("slug = ?", slug).
		First(&manufacturer).Error
	if err == nil {
		return &manufacturer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var redirect catalog.SlugRedirect
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&redirect).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, redirect.ManufacturerID)
}

// FindAll finds manufacturers matching the filter, paginated
func (r *GormManufacturerRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Manufacturer], error) {
	query := r.db.WithContext(ctx).Model(&catalog.Manufacturer{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ?", searchPattern, searchPattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "country_id":
			query = query.Where("country_id = ?", value)
		case "micro_region_id":
			query = query.Where("micro_region_id = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ManufacturerSortFields, "position")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	page := filter.Page
	pageSize := filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query = query.Offset((page - 1) * pageSize).Limit(pageSize)

	var manufacturers []catalog.Manufacturer
	if err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Translations").
		Find(&manufacturers).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(manufacturers, total, page, pageSize)
	return &result, nil
}

// FindAllOrdered returns every manufacturer ordered by position ascending
func (r *GormManufacturerRepository) FindAllOrdered(ctx context.Context) ([]catalog.Manufacturer, error) {
	var manufacturers []catalog.Manufacturer
	if err := r.db.WithContext(ctx).
		Order("position ASC, name ASC").
		Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	return manufacturers, nil
}

// SearchByName finds manufacturers whose name starts with the query,
// case-insensitively
func (r *GormManufacturerRepository) SearchByName(ctx context.Context, query string, limit int) ([]catalog.Manufacturer, error) {
	var manufacturers []catalog.Manufacturer
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", strings.TrimSpace(query)+"%").
		Order("name ASC").
		Limit(limit).
		Find(&manufacturers).Error; err != nil {
		return nil, err
	}
	return manufacturers, nil
}

// ExistsBySlug checks whether another manufacturer already uses the slug
func (r *GormManufacturerRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&catalog.Manufacturer{}).
		Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MaxPosition returns the highest position among all manufacturers
func (r *GormManufacturerRepository) MaxPosition(ctx context.Context) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&catalog.Manufacturer{}).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

// UpdatePositions applies a batch of position assignments in one transaction
func (r *GormManufacturerRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, position := range positions {
			result := tx.Model(&catalog.Manufacturer{}).
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

// Save creates or updates a manufacturer together with its translations
func (r *GormManufacturerRepository) Save(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(manufacturer).Error
}

// Delete deletes a manufacturer and its dependent records
func (r *GormManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&catalog.ManufacturerTranslation{}, "manufacturer_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.SlugRedirect{}, "manufacturer_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&catalog.ManufacturerImage{},
			"viewable_type = ? AND viewable_id = ?", catalog.ViewableTypeManufacturer, id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Manufacturer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// SaveSlugRedirect records a retired slug for redirect lookups. A redirect
// already pointing at another manufacturer is reassigned.
func (r *GormManufacturerRepository) SaveSlugRedirect(ctx context.Context, redirect *catalog.SlugRedirect) error {
	err := r.db.WithContext(ctx).Save(redirect).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.db.WithContext(ctx).
			Model(&catalog.SlugRedirect{}).
			Where("slug = ?", redirect.Slug).
			Update("manufacturer_id", redirect.ManufacturerID).Error
	}
	return err
}

// Ensure GormManufacturerRepository implements ManufacturerRepository
var _ catalog.ManufacturerRepository = (*GormManufacturerRepository)(nil)
