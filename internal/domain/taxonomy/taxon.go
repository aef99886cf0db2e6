package taxonomy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/vintner/backend/internal/domain/shared"
)

// MaxTaxonDepth is the maximum depth of the taxonomy tree
const MaxTaxonDepth = 6

// Taxonomy is a named tree of taxons with a single root node
type Taxonomy struct {
	shared.BaseAggregateRoot
	Name   string     `gorm:"type:varchar(100);not null"`
	RootID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Taxonomy) TableName() string {
	return "taxonomies"
}

// NewTaxonomy creates a new taxonomy container
func NewTaxonomy(name string) (*Taxonomy, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Taxonomy name cannot be empty")
	}
	return &Taxonomy{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// Taxon is a node in a taxonomy tree. Its permalink is the unique,
// URL-safe materialized path built from slugified ancestor names and is
// the idempotence key for find-or-create operations.
type Taxon struct {
	shared.BaseAggregateRoot
	TaxonomyID   uuid.UUID          `gorm:"type:uuid;not null;index"`
	ParentID     *uuid.UUID         `gorm:"type:uuid;index"`
	Name         string             `gorm:"type:varchar(200);not null"`
	Permalink    string             `gorm:"type:varchar(500);not null;uniqueIndex:idx_taxons_permalink"`
	Level        int                `gorm:"not null;default:0"`
	Position     int                `gorm:"not null;default:0"`
	Translations []TaxonTranslation `gorm:"foreignKey:TaxonID"`
}

// TableName returns the table name for GORM
func (Taxon) TableName() string {
	return "taxons"
}

// TaxonTranslation holds the localized name and permalink of a taxon
type TaxonTranslation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaxonID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_taxon_translations_locale,priority:1"`
	Locale    string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_taxon_translations_locale,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Permalink string    `gorm:"type:varchar(500);not null"`
}

// TableName returns the table name for GORM
func (TaxonTranslation) TableName() string {
	return "taxon_translations"
}

// Parameterize converts a display name into a URL-safe permalink segment
func Parameterize(name string) string {
	return slug.Make(name)
}

// ChildPermalink builds the permalink of a child node under a parent permalink
func ChildPermalink(parentPermalink, name string) string {
	segment := Parameterize(name)
	if parentPermalink == "" {
		return segment
	}
	return parentPermalink + "/" + segment
}

// NewRootTaxon creates the root node of a taxonomy at an explicit permalink
func NewRootTaxon(taxonomyID uuid.UUID, name, permalink string) (*Taxon, error) {
	if err := validateTaxonName(name); err != nil {
		return nil, err
	}
	if err := validatePermalink(permalink); err != nil {
		return nil, err
	}

	taxon := &Taxon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TaxonomyID:        taxonomyID,
		Name:              name,
		Permalink:         permalink,
		Level:             0,
		Position:          0,
	}

	taxon.AddDomainEvent(NewTaxonCreatedEvent(taxon))

	return taxon, nil
}

// NewChildTaxon creates a taxon under a parent, deriving its permalink from
// the parent's permalink and the slugified node name
func NewChildTaxon(parent *Taxon, name string) (*Taxon, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent taxon is required")
	}
	if parent.Level >= MaxTaxonDepth-1 {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Taxonomy depth limit reached")
	}
	if err := validateTaxonName(name); err != nil {
		return nil, err
	}

	taxon := &Taxon{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TaxonomyID:        parent.TaxonomyID,
		ParentID:          &parent.ID,
		Name:              name,
		Permalink:         ChildPermalink(parent.Permalink, name),
		Level:             parent.Level + 1,
		Position:          0,
	}

	taxon.AddDomainEvent(NewTaxonCreatedEvent(taxon))

	return taxon, nil
}

// NewChildTaxonAt creates a taxon under a parent at an explicit permalink.
// Used when the path segment is derived from a localized name rather than
// the node's stored name.
func NewChildTaxonAt(parent *Taxon, name, permalink string) (*Taxon, error) {
	taxon, err := NewChildTaxon(parent, name)
	if err != nil {
		return nil, err
	}
	if err := validatePermalink(permalink); err != nil {
		return nil, err
	}
	taxon.Permalink = permalink
	return taxon, nil
}

// AddTranslation attaches a localized name/permalink pair to the taxon.
// Adding a locale twice replaces the previous translation.
func (t *Taxon) AddTranslation(locale, name, permalink string) error {
	if locale == "" {
		return shared.NewDomainError("INVALID_LOCALE", "Locale cannot be empty")
	}
	if err := validateTaxonName(name); err != nil {
		return err
	}
	for i := range t.Translations {
		if t.Translations[i].Locale == locale {
			t.Translations[i].Name = name
			t.Translations[i].Permalink = permalink
			return nil
		}
	}
	t.Translations = append(t.Translations, TaxonTranslation{
		ID:        uuid.New(),
		TaxonID:   t.ID,
		Locale:    locale,
		Name:      name,
		Permalink: permalink,
	})
	return nil
}

// TranslatedName returns the localized name for a locale, falling back to
// the base name when no translation exists
func (t *Taxon) TranslatedName(locale string) string {
	for i := range t.Translations {
		if t.Translations[i].Locale == locale && t.Translations[i].Name != "" {
			return t.Translations[i].Name
		}
	}
	return t.Name
}

// IsRoot returns true if the taxon has no parent
func (t *Taxon) IsRoot() bool {
	return t.ParentID == nil
}

// SetPosition updates the taxon's position among its siblings
func (t *Taxon) SetPosition(position int) {
	t.Position = position
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

func validateTaxonName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Taxon name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Taxon name cannot exceed 200 characters")
	}
	return nil
}

func validatePermalink(permalink string) error {
	if permalink == "" {
		return shared.NewDomainError("INVALID_PERMALINK", "Permalink cannot be empty")
	}
	if len(permalink) > 500 {
		return shared.NewDomainError("INVALID_PERMALINK", "Permalink cannot exceed 500 characters")
	}
	if strings.HasPrefix(permalink, "/") || strings.HasSuffix(permalink, "/") {
		return shared.NewDomainError("INVALID_PERMALINK", "Permalink cannot start or end with a slash")
	}
	return nil
}
