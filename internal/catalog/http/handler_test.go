package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/service"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/static"
)

func newRouter(p domain.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(service.NewCatalogService(p), nil).Register(r.Group("/api/v1"))
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestCatalogRoutes(t *testing.T) {
	r := newRouter(static.New())

	tests := []struct {
		path string
		key  string
	}{
		{"/api/v1/home/summary", "stats"},
		{"/api/v1/reports/properties", "reports"},
		{"/api/v1/reports/properties/1", "report"},
		{"/api/v1/reports/risk-distribution", "distribution"},
		{"/api/v1/regulator/cities", "cities"},
		{"/api/v1/regulator/cities/Delhi", "city"},
		{"/api/v1/regulator/compliance", "cities"},
		{"/api/v1/regulator/risk-distribution", "distribution"},
		{"/api/v1/regulator/builders", "builders"},
		{"/api/v1/regulator/trending-issues", "issues"},
		{"/api/v1/regulator/actions", "actions"},
		{"/api/v1/about", "team"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := get(t, r, tt.path)
			assert.Equal(t, http.StatusOK, code)
			assert.Contains(t, body, tt.key)
		})
	}
}

func TestCity(t *testing.T) {
	r := newRouter(static.New())

	_, body := get(t, r, "/api/v1/regulator/cities/Bengaluru")
	var city service.CityView
	require.NoError(t, json.Unmarshal(body["city"], &city))
	assert.Equal(t, 15.0, city.HighRiskPercent)
	assert.JSONEq(t, "true", string(body["matched"]))

	_, body = get(t, r, "/api/v1/regulator/cities/Gotham")
	require.NoError(t, json.Unmarshal(body["city"], &city))
	assert.Equal(t, "Bengaluru", city.Name)
	assert.JSONEq(t, "false", string(body["matched"]))
}

type brokenProvider struct {
	*static.Provider
}

func (brokenProvider) Builders(ctx context.Context) ([]domain.Builder, error) {
	return nil, errors.New("connection reset")
}

func TestCatalogErrors(t *testing.T) {
	r := newRouter(brokenProvider{static.New()})

	code, body := get(t, r, "/api/v1/reports/properties/404")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(body["error"]), "not found")

	code, body = get(t, r, "/api/v1/regulator/builders")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, `"failed to load catalog data"`, string(body["error"]))
}
