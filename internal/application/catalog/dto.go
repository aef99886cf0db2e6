package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintner/backend/internal/domain/catalog"
)

// CreateManufacturerRequest is the request to create a manufacturer
type CreateManufacturerRequest struct {
	Name             string     `json:"name" binding:"required,max=200"`
	Slug             string     `json:"slug" binding:"omitempty,max=200"`
	Abstract         string     `json:"abstract"`
	Description      string     `json:"description"`
	WhyWeLikeIt      string     `json:"why_we_like_it"`
	MetaTitle        string     `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription  string     `json:"meta_description"`
	MetaKeywords     string     `json:"meta_keywords" binding:"omitempty,max=255"`
	Address1         string     `json:"address1" binding:"omitempty,max=255"`
	Address2         string     `json:"address2" binding:"omitempty,max=255"`
	City             string     `json:"city" binding:"omitempty,max=100"`
	Zipcode          string     `json:"zipcode" binding:"omitempty,max=20"`
	Phone            string     `json:"phone" binding:"omitempty,max=50"`
	AlternativePhone string     `json:"alternative_phone" binding:"omitempty,max=50"`
	CountryID        *uuid.UUID `json:"country_id"`
	MicroRegionID    *uuid.UUID `json:"micro_region_id"`
}

// UpdateManufacturerRequest is the request to update a manufacturer
type UpdateManufacturerRequest struct {
	Name             string     `json:"name" binding:"required,max=200"`
	Slug             string     `json:"slug" binding:"omitempty,max=200"`
	Abstract         string     `json:"abstract"`
	Description      string     `json:"description"`
	WhyWeLikeIt      string     `json:"why_we_like_it"`
	MetaTitle        string     `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription  string     `json:"meta_description"`
	MetaKeywords     string     `json:"meta_keywords" binding:"omitempty,max=255"`
	Address1         string     `json:"address1" binding:"omitempty,max=255"`
	Address2         string     `json:"address2" binding:"omitempty,max=255"`
	City             string     `json:"city" binding:"omitempty,max=100"`
	Zipcode          string     `json:"zipcode" binding:"omitempty,max=20"`
	Phone            string     `json:"phone" binding:"omitempty,max=50"`
	AlternativePhone string     `json:"alternative_phone" binding:"omitempty,max=50"`
	CountryID        *uuid.UUID `json:"country_id"`
	MicroRegionID    *uuid.UUID `json:"micro_region_id"`
}

// UpsertTranslationRequest sets the localized text of a manufacturer for one locale
type UpsertTranslationRequest struct {
	Locale          string `json:"locale" binding:"required,max=10"`
	Name            string `json:"name" binding:"omitempty,max=200"`
	Slug            string `json:"slug" binding:"omitempty,max=200"`
	Abstract        string `json:"abstract"`
	Description     string `json:"description"`
	WhyWeLikeIt     string `json:"why_we_like_it"`
	MetaTitle       string `json:"meta_title" binding:"omitempty,max=255"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords" binding:"omitempty,max=255"`
}

// ManufacturerListFilter holds list query options
type ManufacturerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	SortDesc bool   `form:"sort_desc"`
}

// ManufacturerResponse is the full manufacturer representation
type ManufacturerResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Abstract         string          `json:"abstract,omitempty"`
	Description      string          `json:"description,omitempty"`
	WhyWeLikeIt      string          `json:"why_we_like_it,omitempty"`
	MetaTitle        string          `json:"meta_title,omitempty"`
	MetaDescription  string          `json:"meta_description,omitempty"`
	MetaKeywords     string          `json:"meta_keywords,omitempty"`
	Address1         string          `json:"address1,omitempty"`
	Address2         string          `json:"address2,omitempty"`
	City             string          `json:"city,omitempty"`
	Zipcode          string          `json:"zipcode,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	AlternativePhone string          `json:"alternative_phone,omitempty"`
	Position         int             `json:"position"`
	CountryID        *uuid.UUID      `json:"country_id,omitempty"`
	MicroRegionID    *uuid.UUID      `json:"micro_region_id,omitempty"`
	TaxonID          *uuid.UUID      `json:"taxon_id,omitempty"`
	DisplayImage     ImageResponse   `json:"display_image"`
	Images           []ImageResponse `json:"images,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ManufacturerListResponse is the condensed list representation
type ManufacturerListResponse struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	City         string        `json:"city,omitempty"`
	Position     int           `json:"position"`
	DisplayImage ImageResponse `json:"display_image"`
}

// TypeaheadEntry is a single typeahead suggestion
type TypeaheadEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ImageResponse is the manufacturer image representation
type ImageResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	Alt         string    `json:"alt,omitempty"`
	Position    int       `json:"position"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	Placeholder bool      `json:"placeholder,omitempty"`
}

// InitiateImageUploadRequest starts a presigned image upload
type InitiateImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
	ContentType string `json:"content_type" binding:"required"`
	Alt         string `json:"alt" binding:"omitempty,max=255"`
}

// InitiateImageUploadResponse carries the presigned upload URL
type InitiateImageUploadResponse struct {
	ImageID   uuid.UUID `json:"image_id"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Name           string     `json:"name" binding:"required,max=255"`
	Description    string     `json:"description"`
	ManufacturerID *uuid.UUID `json:"manufacturer_id"`
}

// UpdateProductRequest is the request to update a product
type UpdateProductRequest struct {
	Name           string     `json:"name" binding:"required,max=255"`
	Description    string     `json:"description"`
	ManufacturerID *uuid.UUID `json:"manufacturer_id"`
}

// ProductResponse is the product representation
type ProductResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Description    string      `json:"description,omitempty"`
	ManufacturerID *uuid.UUID  `json:"manufacturer_id,omitempty"`
	TaxonIDs       []uuid.UUID `json:"taxon_ids"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ToManufacturerResponse converts a manufacturer to its full response.
// The response is resolved for the given locale; pass an empty locale for
// the base record.
func ToManufacturerResponse(m *catalog.Manufacturer, locale string) *ManufacturerResponse {
	loc := m.Localize(locale)

	resp := &ManufacturerResponse{
		ID:               m.ID,
		Name:             loc.Name(),
		Slug:             loc.Slug(),
		Abstract:         loc.Abstract(),
		Description:      loc.Description(),
		WhyWeLikeIt:      loc.WhyWeLikeIt(),
		MetaTitle:        m.MetaTitle,
		MetaDescription:  m.MetaDescription,
		MetaKeywords:     m.MetaKeywords,
		Address1:         m.Address1,
		Address2:         m.Address2,
		City:             m.City,
		Zipcode:          m.Zipcode,
		Phone:            m.Phone,
		AlternativePhone: m.AlternativePhone,
		Position:         m.Position,
		CountryID:        m.CountryID,
		MicroRegionID:    m.MicroRegionID,
		TaxonID:          m.TaxonID,
		DisplayImage:     ToImageResponse(m.DisplayImage()),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	resp.Images = make([]ImageResponse, len(m.Images))
	for i := range m.Images {
		resp.Images[i] = ToImageResponse(&m.Images[i])
	}

	return resp
}

// ToManufacturerListResponse converts a manufacturer to its list response
func ToManufacturerListResponse(m *catalog.Manufacturer) ManufacturerListResponse {
	return ManufacturerListResponse{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		City:         m.City,
		Position:     m.Position,
		DisplayImage: ToImageResponse(m.DisplayImage()),
	}
}

// ToImageResponse converts a manufacturer image to its response
func ToImageResponse(img *catalog.ManufacturerImage) ImageResponse {
	return ImageResponse{
		ID:          img.ID,
		FileName:    img.FileName,
		FileSize:    img.FileSize,
		ContentType: img.ContentType,
		Alt:         img.Alt,
		Position:    img.Position,
		Status:      string(img.Status),
		Placeholder: img.IsPlaceholder(),
	}
}

// ToProductResponse converts a product to its response
func ToProductResponse(p *catalog.Product) *ProductResponse {
	taxonIDs := make([]uuid.UUID, len(p.Taxons))
	for i := range p.Taxons {
		taxonIDs[i] = p.Taxons[i].ID
	}
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		ManufacturerID: p.ManufacturerID,
		TaxonIDs:       taxonIDs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
