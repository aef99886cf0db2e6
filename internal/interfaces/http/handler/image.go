package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/vintner/backend/internal/application/catalog"
)

// ImageHandler handles manufacturer image API endpoints
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// UpdateAltRequest sets the alt text of an image
// @Description Request body for updating image alt text
type UpdateAltRequest struct {
	Alt string `json:"alt" binding:"max=255"`
}

// ReorderImagesRequest maps image IDs to their target positions
// @Description Request body for reordering manufacturer images
type ReorderImagesRequest struct {
	Positions map[string]int `json:"positions" binding:"required,min=1"`
}

// InitiateUpload godoc
// @Summary      Start an image upload
// @Description  Create a pending image record and return a presigned upload URL
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        request body catalogapp.InitiateImageUploadRequest true "Upload request"
// @Success      201 {object} dto.Response{data=catalogapp.InitiateImageUploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/images [post]
func (h *ImageHandler) InitiateUpload(c *gin.Context) {
	manufacturerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	var req catalogapp.InitiateImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.imageService.InitiateUpload(c.Request.Context(), manufacturerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// ConfirmUpload godoc
// @Summary      Confirm an image upload
// @Description  Verify the object landed in storage and mark the image ready
// @Tags         images
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        image_id path string true "Image ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.ImageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/images/{image_id}/confirm [post]
func (h *ImageHandler) ConfirmUpload(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	image, err := h.imageService.ConfirmUpload(c.Request.Context(), imageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, image)
}

// List godoc
// @Summary      List manufacturer images
// @Description  List images of a manufacturer ordered by position
// @Tags         images
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.ImageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/images [get]
func (h *ImageHandler) List(c *gin.Context) {
	manufacturerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	images, err := h.imageService.GetByManufacturer(c.Request.Context(), manufacturerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, images)
}

// UpdateAlt godoc
// @Summary      Update image alt text
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        image_id path string true "Image ID" format(uuid)
// @Param        request body UpdateAltRequest true "Alt text"
// @Success      200 {object} dto.Response{data=catalogapp.ImageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/images/{image_id} [patch]
func (h *ImageHandler) UpdateAlt(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	var req UpdateAltRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	image, err := h.imageService.UpdateAlt(c.Request.Context(), imageID, req.Alt)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, image)
}

// Reorder godoc
// @Summary      Reorder manufacturer images
// @Description  Move images to new positions. Unlisted images keep their relative order.
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        request body ReorderImagesRequest true "Target positions keyed by image ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/images/reorder [post]
func (h *ImageHandler) Reorder(c *gin.Context) {
	manufacturerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	var req ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	moves := make(map[uuid.UUID]int, len(req.Positions))
	for rawID, position := range req.Positions {
		id, err := uuid.Parse(rawID)
		if err != nil {
			h.BadRequest(c, "Invalid image ID format: "+rawID)
			return
		}
		moves[id] = position
	}

	if err := h.imageService.Reorder(c.Request.Context(), manufacturerID, moves); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @Summary      Delete an image
// @Description  Delete an image record and its stored object
// @Tags         images
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        image_id path string true "Image ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/images/{image_id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("image_id"))
	if err != nil {
		h.BadRequest(c, "Invalid image ID format")
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), imageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers image routes nested under manufacturers
func (h *ImageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	images := rg.Group("/manufacturers/:id/images")
	{
		images.POST("", h.InitiateUpload)
		images.GET("", h.List)
		images.POST("/reorder", h.Reorder)
		images.POST("/:image_id/confirm", h.ConfirmUpload)
		images.PATCH("/:image_id", h.UpdateAlt)
		images.DELETE("/:image_id", h.Delete)
	}
}
