package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/auth"
	cataloghttp "github.com/safehaven-ai/safehaven-backend/internal/catalog/http"
	catalogservice "github.com/safehaven-ai/safehaven-backend/internal/catalog/service"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/static"
	inspectionhttp "github.com/safehaven-ai/safehaven-backend/internal/inspection/http"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/media"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/repository"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/service"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/sink"
	"github.com/safehaven-ai/safehaven-backend/internal/shell"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	theme, err := shell.LoadTheme()
	require.NoError(t, err)

	drafts := repository.NewDraftRepository(rdb, time.Hour)
	previews := media.NewManager(media.NewRedisStore(rdb), media.NewTokenSigner("secret"), rdb, "")
	wizard := service.NewWizardService(drafts, previews, sink.Chain{sink.NewLogSink(zap.NewNop())}, service.Options{}, zap.NewNop())

	return BuildRouter(RouterDeps{
		ServiceName:    ServiceName,
		Version:        "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		Logger:         zap.NewNop(),
		Redis:          httpapi.RedisPinger{Client: rdb},
		Auth:           auth.OptionalUser(),
		Shell:          shell.NewHandler(theme),
		Catalog:        cataloghttp.New(catalogservice.NewCatalogService(static.New()), zap.NewNop()),
		Inspection:     inspectionhttp.New(wizard, drafts, previews, 1<<20, zap.NewNop()),
	})
}

func TestBuildRouter_Routes(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"navigation", http.MethodGet, "/api/v1/navigation", http.StatusOK},
		{"home summary", http.MethodGet, "/api/v1/home/summary", http.StatusOK},
		{"wizard steps", http.MethodGet, "/api/v1/wizard/steps", http.StatusOK},
		{"create draft", http.MethodPost, "/api/v1/drafts", http.StatusCreated},
		{"unknown page", http.MethodGet, "/does/not/exist", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestBuildRouter_CORS(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/drafts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig_NoOrigins(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)
}
