package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vintner/backend/internal/domain/shared"
)

// MaxImageFileSize is the maximum allowed image file size (20MB)
const MaxImageFileSize = 20 * 1024 * 1024

// ViewableTypeManufacturer is the polymorphic owner type for manufacturer images
const ViewableTypeManufacturer = "Manufacturer"

// PlaceholderStorageKey is the storage key of the bundled fallback image
// served when a manufacturer has no images of its own
const PlaceholderStorageKey = "static/manufacturer-placeholder.png"

// ImageStatus represents the upload status of a manufacturer image
type ImageStatus string

const (
	ImageStatusPending ImageStatus = "pending"
	ImageStatusActive  ImageStatus = "active"
)

// IsValid checks if the image status is valid
func (s ImageStatus) IsValid() bool {
	return s == ImageStatusPending || s == ImageStatusActive
}

// ManufacturerImage is a position-ordered image attached to a manufacturer
// through a polymorphic (viewable type, viewable id) pair. The image with
// the lowest position is the manufacturer's display image.
type ManufacturerImage struct {
	shared.BaseAggregateRoot
	ViewableType string      `gorm:"type:varchar(50);not null;index:idx_manufacturer_images_viewable,priority:1"`
	ViewableID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_manufacturer_images_viewable,priority:2"`
	Status       ImageStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	FileName     string      `gorm:"type:varchar(255);not null"`
	FileSize     int64       `gorm:"not null"`
	ContentType  string      `gorm:"type:varchar(100);not null"`
	StorageKey   string      `gorm:"type:varchar(500);not null"`
	Alt          string      `gorm:"type:varchar(255)"`
	Position     int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ManufacturerImage) TableName() string {
	return "manufacturer_images"
}

// NewManufacturerImage creates a new image in pending status
func NewManufacturerImage(
	manufacturerID uuid.UUID,
	fileName string,
	fileSize int64,
	contentType string,
	storageKey string,
) (*ManufacturerImage, error) {
	if manufacturerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MANUFACTURER_ID", "Manufacturer ID cannot be empty")
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if fileSize <= 0 || fileSize > MaxImageFileSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be between 1 byte and 20MB")
	}
	if !isImageContentType(contentType) {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type must be an image type")
	}
	if strings.TrimSpace(storageKey) == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	return &ManufacturerImage{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ViewableType:      ViewableTypeManufacturer,
		ViewableID:        manufacturerID,
		Status:            ImageStatusPending,
		FileName:          fileName,
		FileSize:          fileSize,
		ContentType:       contentType,
		StorageKey:        storageKey,
		Position:          0,
	}, nil
}

// NewPlaceholderImage returns a transient placeholder used when a
// manufacturer has no images. It carries no ID and must never be persisted.
func NewPlaceholderImage() *ManufacturerImage {
	return &ManufacturerImage{
		ViewableType: ViewableTypeManufacturer,
		Status:       ImageStatusActive,
		FileName:     "manufacturer-placeholder.png",
		ContentType:  "image/png",
		StorageKey:   PlaceholderStorageKey,
	}
}

// IsPlaceholder reports whether the image is the transient fallback
func (i *ManufacturerImage) IsPlaceholder() bool {
	return i.ID == uuid.Nil
}

// Confirm activates the image after the file reached storage
func (i *ManufacturerImage) Confirm() error {
	if i.Status == ImageStatusActive {
		return shared.NewDomainError("ALREADY_CONFIRMED", "Image is already confirmed")
	}
	i.Status = ImageStatusActive
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetPosition updates the image's position within the manufacturer's list
func (i *ManufacturerImage) SetPosition(position int) error {
	if position < 0 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot be negative")
	}
	i.Position = position
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetAlt sets the image's alternative text
func (i *ManufacturerImage) SetAlt(alt string) error {
	if len(alt) > 255 {
		return shared.NewDomainError("INVALID_ALT", "Alt text cannot exceed 255 characters")
	}
	i.Alt = alt
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

func isImageContentType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
