package catalog

import (
	"github.com/vintner/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeManufacturerCreated = "catalog.manufacturer.created"
	EventTypeManufacturerUpdated = "catalog.manufacturer.updated"
	EventTypeManufacturerDeleted = "catalog.manufacturer.deleted"
	EventTypeProductTagged       = "catalog.product.tagged"
)

// ManufacturerCreatedEvent is published when a manufacturer is created
type ManufacturerCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewManufacturerCreatedEvent creates a new ManufacturerCreatedEvent
func NewManufacturerCreatedEvent(m *Manufacturer) *ManufacturerCreatedEvent {
	return &ManufacturerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeManufacturerCreated, "Manufacturer", m.ID),
		Name:            m.Name,
		Slug:            m.Slug,
	}
}

// ManufacturerUpdatedEvent is published when a manufacturer is updated
type ManufacturerUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewManufacturerUpdatedEvent creates a new ManufacturerUpdatedEvent
func NewManufacturerUpdatedEvent(m *Manufacturer) *ManufacturerUpdatedEvent {
	return &ManufacturerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeManufacturerUpdated, "Manufacturer", m.ID),
		Name:            m.Name,
	}
}

// ManufacturerDeletedEvent is published when a manufacturer is deleted
type ManufacturerDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewManufacturerDeletedEvent creates a new ManufacturerDeletedEvent
func NewManufacturerDeletedEvent(m *Manufacturer) *ManufacturerDeletedEvent {
	return &ManufacturerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeManufacturerDeleted, "Manufacturer", m.ID),
		Name:            m.Name,
	}
}
