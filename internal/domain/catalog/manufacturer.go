package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/vintner/backend/internal/domain/shared"
)

// MinSlugLength is the minimum length of a non-blank manufacturer slug
const MinSlugLength = 3

// MaxMetaLength is the maximum length of meta title and meta keywords
const MaxMetaLength = 255

// Manufacturer represents a producer in the catalog. It is the aggregate
// root for manufacturer-related operations: descriptive text, address,
// manual list position and the back-reference to its auto-created taxon.
type Manufacturer struct {
	shared.BaseAggregateRoot
	Name            string `gorm:"type:varchar(200);not null;index:idx_manufacturers_name"`
	Slug            string `gorm:"type:varchar(200);index:idx_manufacturers_slug"`
	Abstract        string `gorm:"type:text"`
	Description     string `gorm:"type:text"`
	WhyWeLikeIt     string `gorm:"type:text"`
	MetaTitle       string `gorm:"type:varchar(255)"`
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:varchar(255)"`

	Address1         string `gorm:"type:varchar(255)"`
	Address2         string `gorm:"type:varchar(255)"`
	City             string `gorm:"type:varchar(100)"`
	Zipcode          string `gorm:"type:varchar(20)"`
	Phone            string `gorm:"type:varchar(50)"`
	AlternativePhone string `gorm:"type:varchar(50)"`

	// Position defines the manual display order. Positions of all
	// manufacturers form a gapless permutation of 1..N.
	Position int `gorm:"not null;default:0"`

	CountryID     *uuid.UUID `gorm:"type:uuid;index"`
	MicroRegionID *uuid.UUID `gorm:"type:uuid;index"`

	// TaxonID points at the manufacturer's own auto-created taxon node.
	// It is set at most once and never replaced afterwards.
	TaxonID *uuid.UUID `gorm:"type:uuid"`

	Images       []ManufacturerImage       `gorm:"polymorphic:Viewable"`
	Translations []ManufacturerTranslation `gorm:"foreignKey:ManufacturerID"`
}

// TableName returns the table name for GORM
func (Manufacturer) TableName() string {
	return "manufacturers"
}

// NewManufacturer creates a new manufacturer with the required name.
// The slug defaults to the parameterized name when left blank.
func NewManufacturer(name, slugCandidate string) (*Manufacturer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot exceed 200 characters")
	}

	if slugCandidate == "" {
		slugCandidate = slug.Make(name)
	}

	m := &Manufacturer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slugCandidate,
	}

	m.AddDomainEvent(NewManufacturerCreatedEvent(m))

	return m, nil
}

// SlugCandidates returns the slug candidates derived from the manufacturer's
// attributes, in preference order: name, then name plus city.
func (m *Manufacturer) SlugCandidates() []string {
	candidates := []string{slug.Make(m.Name)}
	if m.City != "" {
		candidates = append(candidates, slug.Make(m.Name+" "+m.City))
	}
	return candidates
}

// Update updates the manufacturer's descriptive information
func (m *Manufacturer) Update(name, abstract, description, whyWeLikeIt string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Manufacturer name cannot exceed 200 characters")
	}

	m.Name = name
	m.Abstract = abstract
	m.Description = description
	m.WhyWeLikeIt = whyWeLikeIt
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewManufacturerUpdatedEvent(m))

	return nil
}

// SetSlug replaces the manufacturer's slug. Callers are responsible for
// recording the previous slug in the redirect history.
func (m *Manufacturer) SetSlug(newSlug string) error {
	if newSlug != "" && len(newSlug) < MinSlugLength {
		return shared.NewDomainError("INVALID_SLUG", "Slug must be at least 3 characters")
	}
	m.Slug = newSlug
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetMeta sets the SEO meta fields
func (m *Manufacturer) SetMeta(title, description, keywords string) error {
	if len(title) > MaxMetaLength {
		return shared.NewDomainError("INVALID_META_TITLE", "Meta title cannot exceed 255 characters")
	}
	if len(keywords) > MaxMetaLength {
		return shared.NewDomainError("INVALID_META_KEYWORDS", "Meta keywords cannot exceed 255 characters")
	}
	m.MetaTitle = title
	m.MetaDescription = description
	m.MetaKeywords = keywords
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// SetAddress sets the manufacturer's address information
func (m *Manufacturer) SetAddress(address1, address2, city, zipcode, phone string) error {
	if address1 != "" && len(address1) > 255 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 255 characters")
	}
	if city != "" && len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if zipcode != "" && len(zipcode) > 20 {
		return shared.NewDomainError("INVALID_ZIPCODE", "Postal code cannot exceed 20 characters")
	}

	m.Address1 = address1
	m.Address2 = address2
	m.City = city
	m.Zipcode = zipcode
	m.Phone = phone
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// AssignCountry links the manufacturer to a country
func (m *Manufacturer) AssignCountry(countryID *uuid.UUID) {
	m.CountryID = countryID
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// AssignMicroRegion links the manufacturer to a geographic micro-region
func (m *Manufacturer) AssignMicroRegion(regionID *uuid.UUID) {
	m.MicroRegionID = regionID
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// AssignTaxon records the manufacturer's own taxon node. The reference is
// write-once: once set it is never replaced, even when the manufacturer is
// renamed later (the stale taxon name is accepted).
func (m *Manufacturer) AssignTaxon(taxonID uuid.UUID) error {
	if m.TaxonID != nil {
		return shared.NewDomainError("TAXON_ALREADY_SET", "Manufacturer already has a taxon")
	}
	m.TaxonID = &taxonID
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// HasTaxon reports whether the manufacturer's taxon has been created
func (m *Manufacturer) HasTaxon() bool {
	return m.TaxonID != nil
}

// SetPosition updates the manufacturer's list position
func (m *Manufacturer) SetPosition(position int) {
	m.Position = position
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// DisplayImage returns the first image by position, or a transient
// placeholder when the manufacturer has no images. The placeholder is
// never persisted; callers always get a usable image reference.
func (m *Manufacturer) DisplayImage() *ManufacturerImage {
	if len(m.Images) == 0 {
		return NewPlaceholderImage()
	}
	display := &m.Images[0]
	for i := range m.Images {
		if m.Images[i].Position < display.Position {
			display = &m.Images[i]
		}
	}
	return display
}

// Validate collects per-field validation failures. countryISO is the ISO
// code of the manufacturer's country, or empty when no country is set;
// postal-code validation is skipped when the country's format is unknown.
func (m *Manufacturer) Validate(countryISO string) *shared.ValidationErrors {
	errs := &shared.ValidationErrors{}

	if strings.TrimSpace(m.Name) == "" {
		errs.Add("name", "REQUIRED", "Name is required")
	}
	if m.Slug != "" && len(m.Slug) < MinSlugLength {
		errs.Add("slug", "TOO_SHORT", "Slug must be at least 3 characters")
	}
	if len(m.MetaTitle) > MaxMetaLength {
		errs.Add("meta_title", "TOO_LONG", "Meta title cannot exceed 255 characters")
	}
	if len(m.MetaKeywords) > MaxMetaLength {
		errs.Add("meta_keywords", "TOO_LONG", "Meta keywords cannot exceed 255 characters")
	}
	if m.Zipcode != "" && countryISO != "" {
		if ok, known := ValidatePostalCode(countryISO, m.Zipcode); known && !ok {
			errs.Add("zipcode", "INVALID_FORMAT", "Postal code is not valid for the selected country")
		}
	}

	return errs
}
