package catalog

import (
	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
)

// ProductTaggedEvent is raised when a product gains a new taxon tag
type ProductTaggedEvent struct {
	shared.BaseDomainEvent
	ProductName string    `json:"product_name"`
	TaxonID     uuid.UUID `json:"taxon_id"`
}

// NewProductTaggedEvent creates a new product tagged event
func NewProductTaggedEvent(product *Product, taxonID uuid.UUID) *ProductTaggedEvent {
	return &ProductTaggedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductTagged, "Product", product.ID),
		ProductName:     product.Name,
		TaxonID:         taxonID,
	}
}
