package http

import "github.com/gin-gonic/gin"

// Register registers the wizard routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/wizard/steps", h.Steps)
	rg.GET("/wizard/metrics", h.Metrics)

	rg.POST("/drafts", h.CreateDraft)
	rg.GET("/drafts", h.ListDrafts)
	rg.GET("/drafts/:id", h.GetDraft)
	rg.DELETE("/drafts/:id", h.DiscardDraft)
	rg.POST("/drafts/:id/advance", h.Advance)
	rg.POST("/drafts/:id/retreat", h.Retreat)
	rg.PATCH("/drafts/:id/fields", h.SetField)
	rg.POST("/drafts/:id/submit", h.Submit)
	rg.GET("/drafts/:id/events", h.StreamDraftEvents)

	rg.POST("/drafts/:id/issues", h.AddIssue)
	rg.PATCH("/drafts/:id/issues/:index", h.UpdateIssue)
	rg.DELETE("/drafts/:id/issues/:index", h.RemoveIssue)
	rg.POST("/drafts/:id/issues/:index/images", h.AttachImages)
	rg.DELETE("/drafts/:id/issues/:index/images/:image", h.DetachImage)
}

// RegisterPublic registers routes authorized by their signed token rather
// than the caller's identity.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/previews/:token", h.Preview)
}
