package taxonomy

import (
	"github.com/vintner/backend/internal/domain/shared"
)

// Event types for the taxonomy context
const (
	EventTypeTaxonCreated = "taxonomy.taxon.created"
)

// TaxonCreatedEvent is published when a new taxon node is created
type TaxonCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	Permalink string `json:"permalink"`
	Level     int    `json:"level"`
}

// NewTaxonCreatedEvent creates a new TaxonCreatedEvent
func NewTaxonCreatedEvent(taxon *Taxon) *TaxonCreatedEvent {
	return &TaxonCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaxonCreated, "Taxon", taxon.ID),
		Name:            taxon.Name,
		Permalink:       taxon.Permalink,
		Level:           taxon.Level,
	}
}
