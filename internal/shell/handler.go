package shell

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
)

// Handler serves the navigation and theme tokens
type Handler struct {
	theme Theme
}

func NewHandler(theme Theme) *Handler {
	return &Handler{theme: theme}
}

// Register registers the shell routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/navigation", h.Navigation)
	rg.GET("/theme", h.Theme)
}

func (h *Handler) Navigation(c *gin.Context) {
	if path := c.Query("path"); path != "" {
		link, known := Resolve(path)
		c.JSON(http.StatusOK, gin.H{"links": Navigation(), "route": link, "known": known})
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": Navigation(), "not_found": NotFoundPath})
}

func (h *Handler) Theme(c *gin.Context) {
	c.JSON(http.StatusOK, h.theme)
}

// NotFound is the JSON rendition of the not-found page.
func NotFound(c *gin.Context) {
	httpapi.Fail(c, http.StatusNotFound, "page not found: "+c.Request.URL.Path)
}
