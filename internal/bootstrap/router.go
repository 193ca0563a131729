package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/api/http/middleware"
	cataloghttp "github.com/safehaven-ai/safehaven-backend/internal/catalog/http"
	inspectionhttp "github.com/safehaven-ai/safehaven-backend/internal/inspection/http"
	"github.com/safehaven-ai/safehaven-backend/internal/shell"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Logger         *zap.Logger

	DB    httpapi.Pinger
	Redis httpapi.Pinger

	// Auth resolves the inspector identity for wizard routes.
	Auth gin.HandlerFunc

	Shell      *shell.Handler
	Catalog    *cataloghttp.Handler
	Inspection *inspectionhttp.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	dep.Shell.Register(api)
	dep.Catalog.Register(api)
	dep.Inspection.RegisterPublic(api)

	wizard := api.Group("")
	wizard.Use(dep.Auth)
	dep.Inspection.Register(wizard)

	r.NoRoute(shell.NotFound)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-User-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
