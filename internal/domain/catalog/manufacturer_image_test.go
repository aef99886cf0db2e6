package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManufacturerImage(t *testing.T) {
	manufacturerID := uuid.New()

	t.Run("creates pending image with valid inputs", func(t *testing.T) {
		img, err := NewManufacturerImage(manufacturerID, "vineyard.jpg", 2048, "image/jpeg", "images/vineyard.jpg")
		require.NoError(t, err)
		require.NotNil(t, img)

		assert.Equal(t, ViewableTypeManufacturer, img.ViewableType)
		assert.Equal(t, manufacturerID, img.ViewableID)
		assert.Equal(t, ImageStatusPending, img.Status)
		assert.Equal(t, "vineyard.jpg", img.FileName)
		assert.Equal(t, int64(2048), img.FileSize)
		assert.Equal(t, 0, img.Position)
		assert.False(t, img.IsPlaceholder())
	})

	t.Run("fails with nil manufacturer ID", func(t *testing.T) {
		_, err := NewManufacturerImage(uuid.Nil, "a.jpg", 100, "image/jpeg", "k")
		require.Error(t, err)
	})

	t.Run("fails with empty file name", func(t *testing.T) {
		_, err := NewManufacturerImage(manufacturerID, "  ", 100, "image/jpeg", "k")
		require.Error(t, err)
	})

	t.Run("fails with zero file size", func(t *testing.T) {
		_, err := NewManufacturerImage(manufacturerID, "a.jpg", 0, "image/jpeg", "k")
		require.Error(t, err)
	})

	t.Run("fails with oversized file", func(t *testing.T) {
		_, err := NewManufacturerImage(manufacturerID, "a.jpg", MaxImageFileSize+1, "image/jpeg", "k")
		require.Error(t, err)
	})

	t.Run("fails with non-image content type", func(t *testing.T) {
		_, err := NewManufacturerImage(manufacturerID, "a.pdf", 100, "application/pdf", "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "image type")
	})

	t.Run("accepts webp", func(t *testing.T) {
		_, err := NewManufacturerImage(manufacturerID, "a.webp", 100, "image/webp", "k")
		require.NoError(t, err)
	})
}

func TestManufacturerImageConfirm(t *testing.T) {
	manufacturerID := uuid.New()

	t.Run("activates a pending image", func(t *testing.T) {
		img, _ := NewManufacturerImage(manufacturerID, "a.jpg", 100, "image/jpeg", "k")
		require.NoError(t, img.Confirm())
		assert.Equal(t, ImageStatusActive, img.Status)
	})

	t.Run("fails when already confirmed", func(t *testing.T) {
		img, _ := NewManufacturerImage(manufacturerID, "a.jpg", 100, "image/jpeg", "k")
		require.NoError(t, img.Confirm())
		err := img.Confirm()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already confirmed")
	})
}

func TestManufacturerImagePosition(t *testing.T) {
	img, _ := NewManufacturerImage(uuid.New(), "a.jpg", 100, "image/jpeg", "k")

	t.Run("updates position", func(t *testing.T) {
		require.NoError(t, img.SetPosition(4))
		assert.Equal(t, 4, img.Position)
	})

	t.Run("rejects negative position", func(t *testing.T) {
		err := img.SetPosition(-1)
		require.Error(t, err)
	})
}

func TestManufacturerImageAlt(t *testing.T) {
	img, _ := NewManufacturerImage(uuid.New(), "a.jpg", 100, "image/jpeg", "k")

	t.Run("sets alt text", func(t *testing.T) {
		require.NoError(t, img.SetAlt("Rows of vines at dusk"))
		assert.Equal(t, "Rows of vines at dusk", img.Alt)
	})

	t.Run("rejects alt text over limit", func(t *testing.T) {
		err := img.SetAlt(strings.Repeat("a", 256))
		require.Error(t, err)
	})
}

func TestNewPlaceholderImage(t *testing.T) {
	img := NewPlaceholderImage()

	assert.True(t, img.IsPlaceholder())
	assert.Equal(t, uuid.Nil, img.ID)
	assert.Equal(t, ImageStatusActive, img.Status)
	assert.Equal(t, PlaceholderStorageKey, img.StorageKey)
	assert.Equal(t, "image/png", img.ContentType)
}
