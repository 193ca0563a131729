package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/catalog/service"
	"github.com/safehaven-ai/safehaven-backend/internal/logging"
)

// Handler serves the read-only dashboard pages
type Handler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

// New creates a new Handler
func New(catalog *service.CatalogService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: catalog, logger: logger}
}

// Register registers the catalog routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/home/summary", h.HomeSummary)

	rg.GET("/reports/properties", h.PropertyReports)
	rg.GET("/reports/properties/:id", h.PropertyReport)
	rg.GET("/reports/risk-distribution", h.ReportRiskDistribution)

	rg.GET("/regulator/cities", h.Cities)
	rg.GET("/regulator/cities/:name", h.City)
	rg.GET("/regulator/compliance", h.Compliance)
	rg.GET("/regulator/risk-distribution", h.RegulatorRiskDistribution)
	rg.GET("/regulator/builders", h.Builders)
	rg.GET("/regulator/trending-issues", h.TrendingIssues)
	rg.GET("/regulator/actions", h.ActionItems)

	rg.GET("/about", h.About)
}

func (h *Handler) fail(c *gin.Context, operation string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		httpapi.Fail(c, http.StatusNotFound, err.Error())
		return
	}
	logging.From(c.Request.Context(), h.logger, operation).Error("catalog read failed", zap.Error(err))
	httpapi.Fail(c, http.StatusInternalServerError, "failed to load catalog data")
}

func (h *Handler) HomeSummary(c *gin.Context) {
	home, err := h.catalog.Home(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.home", err)
		return
	}
	c.JSON(http.StatusOK, home)
}

func (h *Handler) PropertyReports(c *gin.Context) {
	reports, err := h.catalog.Reports(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.reports", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) PropertyReport(c *gin.Context) {
	report, err := h.catalog.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "catalog.report", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *Handler) ReportRiskDistribution(c *gin.Context) {
	slices, err := h.catalog.ReportRiskDistribution(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.report_risk", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distribution": slices})
}

func (h *Handler) Cities(c *gin.Context) {
	cities, err := h.catalog.Cities(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.cities", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// City returns one city. An unknown name yields the first city with
// "matched": false.
func (h *Handler) City(c *gin.Context) {
	city, matched, err := h.catalog.City(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, "catalog.city", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": city, "matched": matched})
}

func (h *Handler) Compliance(c *gin.Context) {
	cities, err := h.catalog.Compliance(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.compliance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *Handler) RegulatorRiskDistribution(c *gin.Context) {
	slices, err := h.catalog.RegulatorRiskDistribution(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.regulator_risk", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distribution": slices})
}

func (h *Handler) Builders(c *gin.Context) {
	builders, err := h.catalog.Builders(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.builders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"builders": builders})
}

func (h *Handler) TrendingIssues(c *gin.Context) {
	issues, err := h.catalog.TrendingIssues(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.trending", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"issues": issues})
}

func (h *Handler) ActionItems(c *gin.Context) {
	items, err := h.catalog.ActionItems(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.actions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions": items})
}

func (h *Handler) About(c *gin.Context) {
	about, err := h.catalog.About(c.Request.Context())
	if err != nil {
		h.fail(c, "catalog.about", err)
		return
	}
	c.JSON(http.StatusOK, about)
}
