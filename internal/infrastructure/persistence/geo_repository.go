package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/geo"
	"github.com/vintner/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCountryRepository implements CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindByID finds a country by its ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.Country, error) {
	var country geo.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindByISO finds a country by its ISO code
func (r *GormCountryRepository) FindByISO(ctx context.Context, iso string) (*geo.Country, error) {
	var country geo.Country
	if err := r.db.WithContext(ctx).
		Where("iso = ?", iso).
		First(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// FindAll returns all countries ordered by name
func (r *GormCountryRepository) FindAll(ctx context.Context) ([]geo.Country, error) {
	var countries []geo.Country
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// Save creates or updates a country
func (r *GormCountryRepository) Save(ctx context.Context, country *geo.Country) error {
	return r.db.WithContext(ctx).Save(country).Error
}

// GormMicroRegionRepository implements MicroRegionRepository using GORM
type GormMicroRegionRepository struct {
	db *gorm.DB
}

// NewGormMicroRegionRepository creates a new GormMicroRegionRepository
func NewGormMicroRegionRepository(db *gorm.DB) *GormMicroRegionRepository {
	return &GormMicroRegionRepository{db: db}
}

// FindByID finds a micro-region by its ID
func (r *GormMicroRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.MicroRegion, error) {
	var region geo.MicroRegion
	if err := r.db.WithContext(ctx).First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &region, nil
}

// FindByCountryName returns the regions of a country ordered by name
func (r *GormMicroRegionRepository) FindByCountryName(ctx context.Context, countryName string) ([]geo.MicroRegion, error) {
	var regions []geo.MicroRegion
	if err := r.db.WithContext(ctx).
		Where("country_name = ?", countryName).
		Order("name ASC").
		Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

// FindAll returns all micro-regions ordered by country then name
func (r *GormMicroRegionRepository) FindAll(ctx context.Context) ([]geo.MicroRegion, error) {
	var regions []geo.MicroRegion
	if err := r.db.WithContext(ctx).
		Order("country_name ASC, name ASC").
		Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

// Save creates or updates a micro-region
func (r *GormMicroRegionRepository) Save(ctx context.Context, region *geo.MicroRegion) error {
	return r.db.WithContext(ctx).Save(region).Error
}

// Ensure the GORM repositories implement the domain interfaces
var (
	_ geo.CountryRepository     = (*GormCountryRepository)(nil)
	_ geo.MicroRegionRepository = (*GormMicroRegionRepository)(nil)
)
