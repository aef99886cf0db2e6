package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/geo"
	"github.com/vintner/backend/internal/domain/shared"
)

// MockManufacturerRepository implements catalog.ManufacturerRepository for testing
type MockManufacturerRepository struct {
	mock.Mock
}

func (m *MockManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Manufacturer], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Manufacturer]), args.Error(1)
}

func (m *MockManufacturerRepository) FindAllOrdered(ctx context.Context) ([]catalog.Manufacturer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) SearchByName(ctx context.Context, query string, limit int) ([]catalog.Manufacturer, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockManufacturerRepository) MaxPosition(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockManufacturerRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *MockManufacturerRepository) Save(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	args := m.Called(ctx, manufacturer)
	return args.Error(0)
}

func (m *MockManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManufacturerRepository) SaveSlugRedirect(ctx context.Context, redirect *catalog.SlugRedirect) error {
	args := m.Called(ctx, redirect)
	return args.Error(0)
}

// MockManufacturerImageRepository implements catalog.ManufacturerImageRepository for testing
type MockManufacturerImageRepository struct {
	mock.Mock
}

func (m *MockManufacturerImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ManufacturerImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ManufacturerImage), args.Error(1)
}

func (m *MockManufacturerImageRepository) FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]catalog.ManufacturerImage, error) {
	args := m.Called(ctx, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ManufacturerImage), args.Error(1)
}

func (m *MockManufacturerImageRepository) MaxPosition(ctx context.Context, manufacturerID uuid.UUID) (int, error) {
	args := m.Called(ctx, manufacturerID)
	return args.Int(0), args.Error(1)
}

func (m *MockManufacturerImageRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *MockManufacturerImageRepository) Save(ctx context.Context, image *catalog.ManufacturerImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockManufacturerImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Product], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AddTaxon(ctx context.Context, productID, taxonID uuid.UUID) error {
	args := m.Called(ctx, productID, taxonID)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCountryRepository implements geo.CountryRepository for testing
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*geo.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Country), args.Error(1)
}

func (m *MockCountryRepository) FindByISO(ctx context.Context, iso string) (*geo.Country, error) {
	args := m.Called(ctx, iso)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Country), args.Error(1)
}

func (m *MockCountryRepository) FindAll(ctx context.Context) ([]geo.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geo.Country), args.Error(1)
}

func (m *MockCountryRepository) Save(ctx context.Context, country *geo.Country) error {
	args := m.Called(ctx, country)
	return args.Error(0)
}

// MockObjectStorage implements catalogapp.ObjectStorage for testing
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

// MockSynchronizer implements both synchronization hooks for testing
type MockSynchronizer struct {
	mock.Mock
}

func (m *MockSynchronizer) SynchronizeManufacturer(ctx context.Context, manufacturer *catalog.Manufacturer) error {
	args := m.Called(ctx, manufacturer)
	return args.Error(0)
}

func (m *MockSynchronizer) PropagateToProducts(ctx context.Context, manufacturerID uuid.UUID) error {
	args := m.Called(ctx, manufacturerID)
	return args.Error(0)
}

func (m *MockSynchronizer) SynchronizeProductTags(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
