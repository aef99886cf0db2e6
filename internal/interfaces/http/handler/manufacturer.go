package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/vintner/backend/internal/application/catalog"
)

// ManufacturerHandler handles manufacturer-related API endpoints
type ManufacturerHandler struct {
	BaseHandler
	manufacturerService *catalogapp.ManufacturerService
}

// NewManufacturerHandler creates a new ManufacturerHandler
func NewManufacturerHandler(manufacturerService *catalogapp.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{
		manufacturerService: manufacturerService,
	}
}

// UpdatePositionsRequest maps manufacturer IDs to their target positions
// @Description Request body for reordering manufacturers
type UpdatePositionsRequest struct {
	Positions map[string]int `json:"positions" binding:"required,min=1"`
}

// Create godoc
// @Summary      Create a new manufacturer
// @Description  Create a new manufacturer and synchronize its taxonomy placement
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateManufacturerRequest true "Manufacturer creation request"
// @Success      201 {object} dto.Response{data=catalogapp.ManufacturerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers [post]
func (h *ManufacturerHandler) Create(c *gin.Context) {
	var req catalogapp.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	manufacturer, err := h.manufacturerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, manufacturer)
}

// GetByID godoc
// @Summary      Get manufacturer by ID
// @Description  Retrieve a manufacturer by its ID, optionally localized
// @Tags         manufacturers
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        locale query string false "Locale for localized fields"
// @Success      200 {object} dto.Response{data=catalogapp.ManufacturerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id} [get]
func (h *ManufacturerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	manufacturer, err := h.manufacturerService.GetByID(c.Request.Context(), id, c.Query("locale"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, manufacturer)
}

// GetBySlug godoc
// @Summary      Get manufacturer by slug
// @Description  Retrieve a manufacturer by its slug. Historical slugs resolve to the current record.
// @Tags         manufacturers
// @Produce      json
// @Param        slug path string true "Manufacturer slug"
// @Param        locale query string false "Locale for localized fields"
// @Success      200 {object} dto.Response{data=catalogapp.ManufacturerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/by-slug/{slug} [get]
func (h *ManufacturerHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Missing slug")
		return
	}

	manufacturer, err := h.manufacturerService.GetBySlug(c.Request.Context(), slug, c.Query("locale"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, manufacturer)
}

// List godoc
// @Summary      List manufacturers
// @Description  List manufacturers with pagination, search and sorting
// @Tags         manufacturers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by name or city"
// @Param        sort_by query string false "Sort field" Enums(name, slug, city, position, created_at, updated_at)
// @Param        sort_desc query bool false "Sort descending"
// @Success      200 {object} dto.Response{data=[]catalogapp.ManufacturerListResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers [get]
func (h *ManufacturerHandler) List(c *gin.Context) {
	var filter catalogapp.ManufacturerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.manufacturerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Typeahead godoc
// @Summary      Typeahead search
// @Description  Lightweight name search for autocomplete widgets
// @Tags         manufacturers
// @Produce      json
// @Param        q query string true "Name prefix or fragment"
// @Param        limit query int false "Maximum results" default(100)
// @Success      200 {object} dto.Response{data=[]catalogapp.TypeaheadEntry}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/typeahead [get]
func (h *ManufacturerHandler) Typeahead(c *gin.Context) {
	query := c.Query("q")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.manufacturerService.Typeahead(c.Request.Context(), query, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// Update godoc
// @Summary      Update a manufacturer
// @Description  Update a manufacturer. A slug change records a redirect from the old slug.
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        request body catalogapp.UpdateManufacturerRequest true "Manufacturer update request"
// @Success      200 {object} dto.Response{data=catalogapp.ManufacturerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id} [put]
func (h *ManufacturerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	var req catalogapp.UpdateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	manufacturer, err := h.manufacturerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, manufacturer)
}

// UpsertTranslation godoc
// @Summary      Set localized text
// @Description  Create or update the localized fields of a manufacturer for one locale
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Param        request body catalogapp.UpsertTranslationRequest true "Localized fields"
// @Success      200 {object} dto.Response{data=catalogapp.ManufacturerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id}/translations [put]
func (h *ManufacturerHandler) UpsertTranslation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	var req catalogapp.UpsertTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	manufacturer, err := h.manufacturerService.UpsertTranslation(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, manufacturer)
}

// UpdatePositions godoc
// @Summary      Reorder manufacturers
// @Description  Move manufacturers to new positions. Unlisted manufacturers keep their relative order.
// @Tags         manufacturers
// @Accept       json
// @Produce      json
// @Param        request body UpdatePositionsRequest true "Target positions keyed by manufacturer ID"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/update_positions [post]
func (h *ManufacturerHandler) UpdatePositions(c *gin.Context) {
	var req UpdatePositionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	moves := make(map[uuid.UUID]int, len(req.Positions))
	for rawID, position := range req.Positions {
		id, err := uuid.Parse(rawID)
		if err != nil {
			h.BadRequest(c, "Invalid manufacturer ID format: "+rawID)
			return
		}
		moves[id] = position
	}

	if err := h.manufacturerService.UpdatePositions(c.Request.Context(), moves); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, nil)
}

// Delete godoc
// @Summary      Delete a manufacturer
// @Description  Delete a manufacturer along with its translations, slug history and images
// @Tags         manufacturers
// @Produce      json
// @Param        id path string true "Manufacturer ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /manufacturers/{id} [delete]
func (h *ManufacturerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid manufacturer ID format")
		return
	}

	if err := h.manufacturerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers manufacturer routes on the given group
func (h *ManufacturerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	manufacturers := rg.Group("/manufacturers")
	{
		manufacturers.POST("", h.Create)
		manufacturers.GET("", h.List)
		manufacturers.GET("/typeahead", h.Typeahead)
		manufacturers.POST("/update_positions", h.UpdatePositions)
		manufacturers.GET("/by-slug/:slug", h.GetBySlug)
		manufacturers.GET("/:id", h.GetByID)
		manufacturers.PUT("/:id", h.Update)
		manufacturers.PUT("/:id/translations", h.UpsertTranslation)
		manufacturers.DELETE("/:id", h.Delete)
	}
}
