package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Preview resolves an image reference to its bytes, or redirects to the
// object store when the backend hands out URLs.
func (h *Handler) Preview(c *gin.Context) {
	obj, err := h.previews.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.fail(c, "preview.resolve", err)
		return
	}
	if obj.RedirectURL != "" {
		c.Redirect(http.StatusFound, obj.RedirectURL)
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
