package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/vintner/backend/internal/application/catalog"
	"github.com/vintner/backend/internal/domain/catalog"
	"github.com/vintner/backend/internal/domain/shared"
	"github.com/vintner/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupManufacturerRouter(manufacturerRepo *MockManufacturerRepository, countryRepo *MockCountryRepository, synchronizer *MockSynchronizer) *gin.Engine {
	service := catalogapp.NewManufacturerService(manufacturerRepo, countryRepo, synchronizer, zap.NewNop())
	router := gin.New()
	NewManufacturerHandler(service).RegisterRoutes(router.Group(""))
	return router
}

func createTestManufacturer(name string) *catalog.Manufacturer {
	m, _ := catalog.NewManufacturer(name, "")
	return m
}

func TestManufacturerHandler_Create_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	countryRepo := new(MockCountryRepository)
	synchronizer := new(MockSynchronizer)
	router := setupManufacturerRouter(manufacturerRepo, countryRepo, synchronizer)

	manufacturerRepo.On("ExistsBySlug", mock.Anything, "chateau-margaux", uuid.Nil).Return(false, nil)
	manufacturerRepo.On("MaxPosition", mock.Anything).Return(3, nil)
	manufacturerRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)
	synchronizer.On("SynchronizeManufacturer", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)

	body, _ := json.Marshal(catalogapp.CreateManufacturerRequest{
		Name: "Chateau Margaux",
		City: "Margaux",
	})
	req := httptest.NewRequest(http.MethodPost, "/manufacturers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool                            `json:"success"`
		Data    catalogapp.ManufacturerResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Chateau Margaux", resp.Data.Name)
	assert.Equal(t, "chateau-margaux", resp.Data.Slug)
	assert.Equal(t, 4, resp.Data.Position)
	manufacturerRepo.AssertExpectations(t)
	synchronizer.AssertExpectations(t)
}

func TestManufacturerHandler_Create_MissingName(t *testing.T) {
	router := setupManufacturerRouter(new(MockManufacturerRepository), new(MockCountryRepository), new(MockSynchronizer))

	req := httptest.NewRequest(http.MethodPost, "/manufacturers", bytes.NewBufferString(`{"city":"Margaux"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManufacturerHandler_Create_InvalidJSON(t *testing.T) {
	router := setupManufacturerRouter(new(MockManufacturerRepository), new(MockCountryRepository), new(MockSynchronizer))

	req := httptest.NewRequest(http.MethodPost, "/manufacturers", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManufacturerHandler_Create_SyncFailureFailsRequest(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	synchronizer := new(MockSynchronizer)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), synchronizer)

	manufacturerRepo.On("ExistsBySlug", mock.Anything, mock.Anything, uuid.Nil).Return(false, nil)
	manufacturerRepo.On("MaxPosition", mock.Anything).Return(0, nil)
	manufacturerRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)
	synchronizer.On("SynchronizeManufacturer", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).
		Return(shared.NewDomainError("TAXONOMY_CONFLICT", "Taxon permalink already taken"))

	body, _ := json.Marshal(catalogapp.CreateManufacturerRequest{Name: "Penfolds"})
	req := httptest.NewRequest(http.MethodPost, "/manufacturers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp dto.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeConflict, resp.Error.Code)
}

func TestManufacturerHandler_GetByID_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	m := createTestManufacturer("Vega Sicilia")
	manufacturerRepo.On("FindByID", mock.Anything, m.ID).Return(m, nil)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/"+m.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                            `json:"success"`
		Data    catalogapp.ManufacturerResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, m.ID, resp.Data.ID)
	assert.Equal(t, "Vega Sicilia", resp.Data.Name)
	assert.True(t, resp.Data.DisplayImage.Placeholder)
}

func TestManufacturerHandler_GetByID_Localized(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	m := createTestManufacturer("Vega Sicilia")
	m.UpsertTranslation(catalog.ManufacturerTranslation{Locale: "es", Name: "Bodega Vega Sicilia"})
	manufacturerRepo.On("FindByID", mock.Anything, m.ID).Return(m, nil)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/"+m.ID.String()+"?locale=es", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalogapp.ManufacturerResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bodega Vega Sicilia", resp.Data.Name)
}

func TestManufacturerHandler_GetByID_NotFound(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	id := uuid.New()
	manufacturerRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/"+id.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestManufacturerHandler_GetByID_InvalidID(t *testing.T) {
	router := setupManufacturerRouter(new(MockManufacturerRepository), new(MockCountryRepository), new(MockSynchronizer))

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/not-a-uuid", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManufacturerHandler_GetBySlug_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	m := createTestManufacturer("Vega Sicilia")
	manufacturerRepo.On("FindBySlug", mock.Anything, "vega-sicilia").Return(m, nil)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/by-slug/vega-sicilia", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestManufacturerHandler_List_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	items := []catalog.Manufacturer{
		*createTestManufacturer("Antinori"),
		*createTestManufacturer("Baron de Ley"),
	}
	page := shared.NewPaginated(items, 2, 1, 20)
	manufacturerRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers?page=1&page_size=20", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                                  `json:"success"`
		Data    []catalogapp.ManufacturerListResponse `json:"data"`
		Meta    dto.Meta                              `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestManufacturerHandler_Typeahead_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	matches := []catalog.Manufacturer{*createTestManufacturer("Chateau Margaux")}
	manufacturerRepo.On("SearchByName", mock.Anything, "cha", 10).Return(matches, nil)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/typeahead?q=cha&limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []catalogapp.TypeaheadEntry `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Chateau Margaux", resp.Data[0].Name)
}

func TestManufacturerHandler_Typeahead_DefaultLimit(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	manufacturerRepo.On("SearchByName", mock.Anything, "ch", catalogapp.DefaultTypeaheadLimit).
		Return([]catalog.Manufacturer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/typeahead?q=ch", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	manufacturerRepo.AssertExpectations(t)
}

func TestManufacturerHandler_Typeahead_InvalidLimit(t *testing.T) {
	router := setupManufacturerRouter(new(MockManufacturerRepository), new(MockCountryRepository), new(MockSynchronizer))

	req := httptest.NewRequest(http.MethodGet, "/manufacturers/typeahead?q=cha&limit=abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManufacturerHandler_Update_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	synchronizer := new(MockSynchronizer)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), synchronizer)

	m := createTestManufacturer("Vega Sicilia")
	manufacturerRepo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
	manufacturerRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)
	synchronizer.On("SynchronizeManufacturer", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)
	synchronizer.On("PropagateToProducts", mock.Anything, m.ID).Return(nil)

	body, _ := json.Marshal(catalogapp.UpdateManufacturerRequest{
		Name:     "Vega Sicilia",
		Slug:     m.Slug,
		Abstract: "Ribera del Duero icon",
	})
	req := httptest.NewRequest(http.MethodPut, "/manufacturers/"+m.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalogapp.ManufacturerResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ribera del Duero icon", resp.Data.Abstract)
	synchronizer.AssertExpectations(t)
}

func TestManufacturerHandler_Update_SlugChangeRecordsRedirect(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	synchronizer := new(MockSynchronizer)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), synchronizer)

	m := createTestManufacturer("Vega Sicilia")
	oldSlug := m.Slug
	manufacturerRepo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
	manufacturerRepo.On("ExistsBySlug", mock.Anything, "unico", m.ID).Return(false, nil)
	manufacturerRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)
	manufacturerRepo.On("SaveSlugRedirect", mock.Anything, mock.MatchedBy(func(r *catalog.SlugRedirect) bool {
		return r.Slug == oldSlug
	})).Return(nil)
	synchronizer.On("SynchronizeManufacturer", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)
	synchronizer.On("PropagateToProducts", mock.Anything, m.ID).Return(nil)

	body, _ := json.Marshal(catalogapp.UpdateManufacturerRequest{
		Name: "Vega Sicilia",
		Slug: "unico",
	})
	req := httptest.NewRequest(http.MethodPut, "/manufacturers/"+m.ID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	manufacturerRepo.AssertExpectations(t)
}

func TestManufacturerHandler_UpsertTranslation_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	m := createTestManufacturer("Chateau Margaux")
	manufacturerRepo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
	manufacturerRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)

	body, _ := json.Marshal(catalogapp.UpsertTranslationRequest{
		Locale: "fr",
		Name:   "Château Margaux",
	})
	req := httptest.NewRequest(http.MethodPut, "/manufacturers/"+m.ID.String()+"/translations", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalogapp.ManufacturerResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Château Margaux", resp.Data.Name)
}

func TestManufacturerHandler_UpsertTranslation_MissingLocale(t *testing.T) {
	router := setupManufacturerRouter(new(MockManufacturerRepository), new(MockCountryRepository), new(MockSynchronizer))

	req := httptest.NewRequest(http.MethodPut, "/manufacturers/"+uuid.New().String()+"/translations",
		bytes.NewBufferString(`{"name":"Sin Locale"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManufacturerHandler_UpdatePositions_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	first := createTestManufacturer("Antinori")
	second := createTestManufacturer("Baron de Ley")
	manufacturerRepo.On("FindAllOrdered", mock.Anything).Return([]catalog.Manufacturer{*first, *second}, nil)
	manufacturerRepo.On("UpdatePositions", mock.Anything, map[uuid.UUID]int{
		second.ID: 1,
		first.ID:  2,
	}).Return(nil)

	body, _ := json.Marshal(UpdatePositionsRequest{
		Positions: map[string]int{second.ID.String(): 1},
	})
	req := httptest.NewRequest(http.MethodPost, "/manufacturers/update_positions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	manufacturerRepo.AssertExpectations(t)
}

func TestManufacturerHandler_UpdatePositions_UnknownManufacturer(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	manufacturerRepo.On("FindAllOrdered", mock.Anything).Return([]catalog.Manufacturer{}, nil)

	body, _ := json.Marshal(UpdatePositionsRequest{
		Positions: map[string]int{uuid.New().String(): 1},
	})
	req := httptest.NewRequest(http.MethodPost, "/manufacturers/update_positions", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManufacturerHandler_UpdatePositions_InvalidID(t *testing.T) {
	router := setupManufacturerRouter(new(MockManufacturerRepository), new(MockCountryRepository), new(MockSynchronizer))

	req := httptest.NewRequest(http.MethodPost, "/manufacturers/update_positions",
		bytes.NewBufferString(`{"positions":{"not-a-uuid":1}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManufacturerHandler_Delete_Success(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	m := createTestManufacturer("Antinori")
	manufacturerRepo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
	manufacturerRepo.On("Delete", mock.Anything, m.ID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/manufacturers/"+m.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	manufacturerRepo.AssertExpectations(t)
}

func TestManufacturerHandler_Delete_NotFound(t *testing.T) {
	manufacturerRepo := new(MockManufacturerRepository)
	router := setupManufacturerRouter(manufacturerRepo, new(MockCountryRepository), new(MockSynchronizer))

	id := uuid.New()
	manufacturerRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/manufacturers/"+id.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
