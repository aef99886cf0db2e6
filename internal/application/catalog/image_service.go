package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/shared"
)

// ObjectStorage defines the object storage operations the image service
// needs. Implemented by the S3 storage in the infrastructure layer.
type ObjectStorage interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageServiceConfig holds configuration for the image service
type ImageServiceConfig struct {
	UploadURLExpiry          time.Duration
	DownloadURLExpiry        time.Duration
	MaxImagesPerManufacturer int
}

// DefaultImageServiceConfig returns the default configuration
func DefaultImageServiceConfig() ImageServiceConfig {
	return ImageServiceConfig{
		UploadURLExpiry:          15 * time.Minute,
		DownloadURLExpiry:        1 * time.Hour,
		MaxImagesPerManufacturer: 50,
	}
}

// ImageService handles manufacturer image operations with a presigned
// upload flow: a pending record is created first, the client uploads
// directly to storage, then confirms.
type ImageService struct {
	imageRepo        catalog.ManufacturerImageRepository
	manufacturerRepo catalog.ManufacturerRepository
	storage          ObjectStorage
	config           ImageServiceConfig
	logger           *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo catalog.ManufacturerImageRepository,
	manufacturerRepo catalog.ManufacturerRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{
		imageRepo:        imageRepo,
		manufacturerRepo: manufacturerRepo,
		storage:          storage,
		config:           DefaultImageServiceConfig(),
		logger:           logger,
	}
}

// SetConfig sets the service configuration
func (s *ImageService) SetConfig(config ImageServiceConfig) {
	s.config = config
}

// InitiateUpload creates a pending image record and returns a presigned
// upload URL
func (s *ImageService) InitiateUpload(ctx context.Context, manufacturerID uuid.UUID, req InitiateImageUploadRequest) (*InitiateImageUploadResponse, error) {
	if _, err := s.manufacturerRepo.FindByID(ctx, manufacturerID); err != nil {
		return nil, err
	}

	existing, err := s.imageRepo.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= s.config.MaxImagesPerManufacturer {
		return nil, shared.NewDomainError("IMAGE_LIMIT_EXCEEDED",
			fmt.Sprintf("Maximum %d images per manufacturer allowed", s.config.MaxImagesPerManufacturer))
	}

	storageKey := s.generateStorageKey(manufacturerID, req.FileName)

	image, err := catalog.NewManufacturerImage(manufacturerID, req.FileName, req.FileSize, req.ContentType, storageKey)
	if err != nil {
		return nil, err
	}
	if req.Alt != "" {
		if err := image.SetAlt(req.Alt); err != nil {
			return nil, err
		}
	}

	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		// Drop the pending record when no URL could be issued
		_ = s.imageRepo.Delete(ctx, image.ID)
		return nil, shared.NewDomainError("UPLOAD_URL_FAILED", "Failed to generate upload URL")
	}

	return &InitiateImageUploadResponse{
		ImageID:   image.ID,
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload verifies the file reached storage, activates the image and
// appends it to the end of the manufacturer's image list
func (s *ImageService) ConfirmUpload(ctx context.Context, imageID uuid.UUID) (*ImageResponse, error) {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, image.StorageKey)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_CHECK_FAILED", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND",
			"File not found in storage. Please upload the file first.")
	}

	if err := image.Confirm(); err != nil {
		return nil, err
	}

	if image.Position == 0 {
		maxPos, err := s.imageRepo.MaxPosition(ctx, image.ViewableID)
		if err != nil {
			return nil, err
		}
		if err := image.SetPosition(maxPos + 1); err != nil {
			return nil, err
		}
	}

	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	resp := ToImageResponse(image)
	s.enrichWithURL(ctx, &resp, image)
	return &resp, nil
}

// GetByManufacturer returns a manufacturer's images ordered by position
func (s *ImageService) GetByManufacturer(ctx context.Context, manufacturerID uuid.UUID) ([]ImageResponse, error) {
	images, err := s.imageRepo.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	responses := make([]ImageResponse, len(images))
	for i := range images {
		responses[i] = ToImageResponse(&images[i])
		s.enrichWithURL(ctx, &responses[i], &images[i])
	}
	return responses, nil
}

// DisplayImage returns the manufacturer's display image: the active image
// with the lowest position, or the transient placeholder when there are
// none. Never returns nil alongside a nil error.
func (s *ImageService) DisplayImage(ctx context.Context, manufacturerID uuid.UUID) (*ImageResponse, error) {
	images, err := s.imageRepo.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	var display *catalog.ManufacturerImage
	for i := range images {
		if images[i].Status != catalog.ImageStatusActive {
			continue
		}
		if display == nil || images[i].Position < display.Position {
			display = &images[i]
		}
	}
	if display == nil {
		display = catalog.NewPlaceholderImage()
	}

	resp := ToImageResponse(display)
	s.enrichWithURL(ctx, &resp, display)
	return &resp, nil
}

// UpdateAlt updates an image's alternative text
func (s *ImageService) UpdateAlt(ctx context.Context, imageID uuid.UUID, alt string) (*ImageResponse, error) {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if err := image.SetAlt(alt); err != nil {
		return nil, err
	}
	if err := s.imageRepo.Save(ctx, image); err != nil {
		return nil, err
	}

	resp := ToImageResponse(image)
	s.enrichWithURL(ctx, &resp, image)
	return &resp, nil
}

// Reorder applies a batch of {id: target index} assignments to a
// manufacturer's images and renumbers them to a gapless 1..N sequence.
// The batch commits in one transaction.
func (s *ImageService) Reorder(ctx context.Context, manufacturerID uuid.UUID, moves map[uuid.UUID]int) error {
	if len(moves) == 0 {
		return nil
	}

	images, err := s.imageRepo.FindByManufacturer(ctx, manufacturerID)
	if err != nil {
		return err
	}

	known := make(map[uuid.UUID]bool, len(images))
	for i := range images {
		known[images[i].ID] = true
	}
	for id := range moves {
		if !known[id] {
			return shared.NewDomainError("INVALID_IMAGE",
				fmt.Sprintf("Image %s does not belong to this manufacturer", id))
		}
	}

	remaining := make([]uuid.UUID, 0, len(images))
	for i := range images {
		if _, moved := moves[images[i].ID]; !moved {
			remaining = append(remaining, images[i].ID)
		}
	}

	type move struct {
		id    uuid.UUID
		index int
	}
	ordered := make([]move, 0, len(moves))
	for id, index := range moves {
		ordered = append(ordered, move{id: id, index: index})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].index < ordered[j].index })

	for _, mv := range ordered {
		at := mv.index - 1
		if at < 0 {
			at = 0
		}
		if at > len(remaining) {
			at = len(remaining)
		}
		remaining = append(remaining, uuid.Nil)
		copy(remaining[at+1:], remaining[at:])
		remaining[at] = mv.id
	}

	positions := make(map[uuid.UUID]int, len(remaining))
	for i, id := range remaining {
		positions[id] = i + 1
	}

	return s.imageRepo.UpdatePositions(ctx, positions)
}

// Delete removes an image record and its storage object
func (s *ImageService) Delete(ctx context.Context, imageID uuid.UUID) error {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return err
	}

	// The storage object may already be gone; log and continue
	if err := s.storage.DeleteObject(ctx, image.StorageKey); err != nil {
		s.logger.Warn("failed to delete image from storage",
			zap.String("image_id", image.ID.String()),
			zap.String("storage_key", image.StorageKey),
			zap.Error(err))
	}

	return s.imageRepo.Delete(ctx, imageID)
}

func (s *ImageService) generateStorageKey(manufacturerID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("manufacturers/%s/images/%s%s", manufacturerID.String(), uuid.New().String(), ext)
}

func (s *ImageService) enrichWithURL(ctx context.Context, resp *ImageResponse, image *catalog.ManufacturerImage) {
	if image.IsPlaceholder() || image.Status != catalog.ImageStatusActive {
		return
	}
	url, _, err := s.storage.GenerateDownloadURL(ctx, image.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		s.logger.Debug("failed to presign download URL",
			zap.String("storage_key", image.StorageKey),
			zap.Error(err))
		return
	}
	resp.URL = url
}
