package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// Binding failures never reach the service, so a zero handler is enough.
func newTestEngine() *gin.Engine {
	engine := gin.New()
	h := NewAttributeMappingHandler(nil)
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetView_RejectsMalformedShopID(t *testing.T) {
	engine := newTestEngine()

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy/shops/not-a-uuid/attributes/flags/view", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestGetView_RejectsUnknownAttributeType(t *testing.T) {
	engine := newTestEngine()
	url := "/api/v1/taxonomy/shops/" + uuid.NewString() + "/attributes/surcharges/view"

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
}

func TestGetView_RejectsMalformedMasterShopQuery(t *testing.T) {
	engine := newTestEngine()
	url := "/api/v1/taxonomy/shops/" + uuid.NewString() + "/attributes/flags/view?master_shop_id=nope"

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSave_RejectsMalformedBody(t *testing.T) {
	engine := newTestEngine()
	url := "/api/v1/taxonomy/shops/" + uuid.NewString() + "/attributes/flags/mappings"

	req := httptest.NewRequest(http.MethodPut, url, strings.NewReader("{broken"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSave_RequiresMasterKeyPerEntry(t *testing.T) {
	engine := newTestEngine()
	url := "/api/v1/taxonomy/shops/" + uuid.NewString() + "/attributes/flags/mappings"

	body := `{"mappings":[{"target_key":"sale"}]}`
	req := httptest.NewRequest(http.MethodPut, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSync_RejectsUnknownTypeInBody(t *testing.T) {
	engine := newTestEngine()
	url := "/api/v1/taxonomy/shops/" + uuid.NewString() + "/attributes/sync"

	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"types":["surcharges"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{shared.NewValidationError("bad input"), http.StatusBadRequest},
		{shared.NewNotFoundError("missing"), http.StatusNotFound},
		{shared.NewConflictError("taken"), http.StatusConflict},
		{shared.NewUpstreamError("remote down"), http.StatusBadGateway},
		{shared.NewConfigurationError("no key"), http.StatusInternalServerError},
		{assert.AnError, http.StatusInternalServerError},
	}

	h := &BaseHandler{}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		h.HandleDomainError(c, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
	}
}
