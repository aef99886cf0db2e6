package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/shared"
)

// ProductSynchronizer is the tag synchronization hook invoked after
// product saves. Implemented by TaxonomySyncService.
type ProductSynchronizer interface {
	SynchronizeProductTags(ctx context.Context, p *catalog.Product) error
}

// ProductService handles product business operations. Every save runs tag
// synchronization so products stay tagged with their manufacturer's,
// country's and region's taxons.
type ProductService struct {
	productRepo  catalog.ProductRepository
	synchronizer ProductSynchronizer
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	synchronizer ProductSynchronizer,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		synchronizer: synchronizer,
		logger:       logger,
	}
}

// Create creates a product and synchronizes its taxon tags
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.Name)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description
	p.AssignManufacturer(req.ManufacturerID)

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	if err := s.synchronizer.SynchronizeProductTags(ctx, p); err != nil {
		return nil, err
	}

	return ToProductResponse(p), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	page, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToProductResponse(&page.Items[i])
	}

	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Update updates a product and re-synchronizes its taxon tags
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	p.AssignManufacturer(req.ManufacturerID)

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	if err := s.synchronizer.SynchronizeProductTags(ctx, p); err != nil {
		return nil, err
	}

	return ToProductResponse(p), nil
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
