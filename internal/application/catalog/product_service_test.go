package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/shared"
)

type productFixture struct {
	repo    *MockProductRepository
	sync    *MockSynchronizer
	service *ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		repo: new(MockProductRepository),
		sync: new(MockSynchronizer),
	}
	f.service = NewProductService(f.repo, f.sync, nil)
	return f
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product and synchronizes tags", func(t *testing.T) {
		f := newProductFixture()
		manufacturerID := uuid.New()

		f.repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		f.sync.On("SynchronizeProductTags", ctx, mock.MatchedBy(func(p *catalog.Product) bool {
			return p.ManufacturerID != nil && *p.ManufacturerID == manufacturerID
		})).Return(nil)

		resp, err := f.service.Create(ctx, CreateProductRequest{
			Name:           "Brunello di Montalcino",
			ManufacturerID: &manufacturerID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Brunello di Montalcino", resp.Name)
		f.sync.AssertExpectations(t)
	})

	t.Run("fails closed when tag synchronization fails", func(t *testing.T) {
		f := newProductFixture()

		f.repo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		f.sync.On("SynchronizeProductTags", ctx, mock.Anything).Return(shared.ErrTaxonomyConflict)

		_, err := f.service.Create(ctx, CreateProductRequest{Name: "Brunello"})
		assert.ErrorIs(t, err, shared.ErrTaxonomyConflict)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		f := newProductFixture()

		_, err := f.service.Create(ctx, CreateProductRequest{Name: ""})
		require.Error(t, err)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates product and re-synchronizes tags", func(t *testing.T) {
		f := newProductFixture()

		p, err := catalog.NewProduct("Brunello")
		require.NoError(t, err)
		manufacturerID := uuid.New()

		f.repo.On("FindByID", ctx, p.ID).Return(p, nil)
		f.repo.On("Save", ctx, p).Return(nil)
		f.sync.On("SynchronizeProductTags", ctx, p).Return(nil)

		resp, err := f.service.Update(ctx, p.ID, UpdateProductRequest{
			Name:           "Brunello Riserva",
			ManufacturerID: &manufacturerID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Brunello Riserva", resp.Name)
		assert.Equal(t, manufacturerID, *resp.ManufacturerID)
		f.sync.AssertExpectations(t)
	})

	t.Run("returns not found for unknown product", func(t *testing.T) {
		f := newProductFixture()
		id := uuid.New()

		f.repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Update(ctx, id, UpdateProductRequest{Name: "X"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
