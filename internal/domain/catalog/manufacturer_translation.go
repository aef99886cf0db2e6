package catalog

import (
	"github.com/google/uuid"
)

// ManufacturerTranslation holds the localized text of a manufacturer for a
// single locale. Empty fields fall back to the base record.
type ManufacturerTranslation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManufacturerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_manufacturer_translations_locale,priority:1"`
	Locale         string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_manufacturer_translations_locale,priority:2"`

	Name            string `gorm:"type:varchar(200)"`
	Slug            string `gorm:"type:varchar(200)"`
	Abstract        string `gorm:"type:text"`
	Description     string `gorm:"type:text"`
	WhyWeLikeIt     string `gorm:"type:text"`
	MetaTitle       string `gorm:"type:varchar(255)"`
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ManufacturerTranslation) TableName() string {
	return "manufacturer_translations"
}

// LocalizedManufacturer is a read view of a manufacturer with translated
// fields resolved for one locale
type LocalizedManufacturer struct {
	Manufacturer *Manufacturer
	Locale       string
}

// Localize resolves the manufacturer's text fields for the given locale,
// falling back to the base record for empty translations
func (m *Manufacturer) Localize(locale string) LocalizedManufacturer {
	return LocalizedManufacturer{Manufacturer: m, Locale: locale}
}

func (l LocalizedManufacturer) translation() *ManufacturerTranslation {
	for i := range l.Manufacturer.Translations {
		if l.Manufacturer.Translations[i].Locale == l.Locale {
			return &l.Manufacturer.Translations[i]
		}
	}
	return nil
}

func (l LocalizedManufacturer) pick(translated, base string) string {
	if translated != "" {
		return translated
	}
	return base
}

// Name returns the localized name
func (l LocalizedManufacturer) Name() string {
	if t := l.translation(); t != nil {
		return l.pick(t.Name, l.Manufacturer.Name)
	}
	return l.Manufacturer.Name
}

// Slug returns the localized slug
func (l LocalizedManufacturer) Slug() string {
	if t := l.translation(); t != nil {
		return l.pick(t.Slug, l.Manufacturer.Slug)
	}
	return l.Manufacturer.Slug
}

// Abstract returns the localized abstract
func (l LocalizedManufacturer) Abstract() string {
	if t := l.translation(); t != nil {
		return l.pick(t.Abstract, l.Manufacturer.Abstract)
	}
	return l.Manufacturer.Abstract
}

// Description returns the localized description
func (l LocalizedManufacturer) Description() string {
	if t := l.translation(); t != nil {
		return l.pick(t.Description, l.Manufacturer.Description)
	}
	return l.Manufacturer.Description
}

// WhyWeLikeIt returns the localized "why we like it" text
func (l LocalizedManufacturer) WhyWeLikeIt() string {
	if t := l.translation(); t != nil {
		return l.pick(t.WhyWeLikeIt, l.Manufacturer.WhyWeLikeIt)
	}
	return l.Manufacturer.WhyWeLikeIt
}

// UpsertTranslation adds or replaces the translation for a locale
func (m *Manufacturer) UpsertTranslation(t ManufacturerTranslation) {
	t.ManufacturerID = m.ID
	for i := range m.Translations {
		if m.Translations[i].Locale == t.Locale {
			t.ID = m.Translations[i].ID
			m.Translations[i] = t
			return
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.Translations = append(m.Translations, t)
}
