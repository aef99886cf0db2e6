package catalog

import (
	"time"

	"github.com/google/uuid"
)

// SlugRedirect records a manufacturer's previous slug so that old URLs keep
// resolving after a rename. Lookups check the current slug first, then the
// redirect history.
type SlugRedirect struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManufacturerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Slug           string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_slug_redirects_slug"`
	CreatedAt      time.Time
}

// TableName returns the table name for GORM
func (SlugRedirect) TableName() string {
	return "manufacturer_slug_redirects"
}

// NewSlugRedirect creates a redirect entry for a retired slug
func NewSlugRedirect(manufacturerID uuid.UUID, oldSlug string) *SlugRedirect {
	return &SlugRedirect{
		ID:             uuid.New(),
		ManufacturerID: manufacturerID,
		Slug:           oldSlug,
		CreatedAt:      time.Now(),
	}
}
