package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
	"github.com/vintner/backend/internal/domain/taxonomy"
	"gorm.io/gorm"
)

// GormTaxonomyRepository implements TaxonomyRepository using GORM
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewGormTaxonomyRepository creates a new GormTaxonomyRepository
func NewGormTaxonomyRepository(db *gorm.DB) *GormTaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// FindByID finds a taxonomy by its ID
func (r *GormTaxonomyRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Taxonomy, error) {
	var t taxonomy.Taxonomy
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindDefault returns the first taxonomy by creation order
func (r *GormTaxonomyRepository) FindDefault(ctx context.Context) (*taxonomy.Taxonomy, error) {
	var t taxonomy.Taxonomy
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save creates or updates a taxonomy
func (r *GormTaxonomyRepository) Save(ctx context.Context, t *taxonomy.Taxonomy) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// GormTaxonRepository implements TaxonRepository using GORM
type GormTaxonRepository struct {
	db *gorm.DB
}

// NewGormTaxonRepository creates a new GormTaxonRepository
func NewGormTaxonRepository(db *gorm.DB) *GormTaxonRepository {
	return &GormTaxonRepository{db: db}
}

// FindByID finds a taxon by its ID with translations
func (r *GormTaxonRepository) FindByID(ctx context.Context, id uuid.UUID) (*taxonomy.Taxon, error) {
	var taxon taxonomy.Taxon
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		First(&taxon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &taxon, nil
}

// FindByIDs finds multiple taxons by their IDs
func (r *GormTaxonRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]taxonomy.Taxon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var taxons []taxonomy.Taxon
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		Where("id IN ?", ids).
		Find(&taxons).Error; err != nil {
		return nil, err
	}
	return taxons, nil
}

// FindByPermalink finds a taxon by its unique permalink
func (r *GormTaxonRepository) FindByPermalink(ctx context.Context, permalink string) (*taxonomy.Taxon, error) {
	var taxon taxonomy.Taxon
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		Where("permalink = ?", permalink).
		First(&taxon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &taxon, nil
}

// FindChildren finds all direct children of a taxon ordered by position
func (r *GormTaxonRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]taxonomy.Taxon, error) {
	var taxons []taxonomy.Taxon
	if err := r.db.WithContext(ctx).
		Preload("Translations").
		Where("parent_id = ?", parentID).
		Order("position ASC, name ASC").
		Find(&taxons).Error; err != nil {
		return nil, err
	}
	return taxons, nil
}

// FindRoot finds the root taxon of a taxonomy
func (r *GormTaxonRepository) FindRoot(ctx context.Context, taxonomyID uuid.UUID) (*taxonomy.Taxon, error) {
	var taxon taxonomy.Taxon
	if err := r.db.WithContext(ctx).
		Where("taxonomy_id = ? AND parent_id IS NULL", taxonomyID).
		First(&taxon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &taxon, nil
}

// Save creates or updates a taxon together with its translations. A permalink
// uniqueness violation surfaces as shared.ErrTaxonomyConflict.
func (r *GormTaxonRepository) Save(ctx context.Context, taxon *taxonomy.Taxon) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(taxon).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrTaxonomyConflict
	}
	return err
}

// Delete deletes a taxon and its translations
func (r *GormTaxonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&taxonomy.TaxonTranslation{}, "taxon_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&taxonomy.Taxon{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByPermalink checks whether a taxon with the given permalink exists
func (r *GormTaxonRepository) ExistsByPermalink(ctx context.Context, permalink string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&taxonomy.Taxon{}).
		Where("permalink = ?", permalink).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure the GORM repositories implement the domain interfaces
var (
	_ taxonomy.TaxonomyRepository = (*GormTaxonomyRepository)(nil)
	_ taxonomy.TaxonRepository    = (*GormTaxonRepository)(nil)
)
