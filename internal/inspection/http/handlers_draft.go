package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/auth"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

// Steps returns the wizard steps and the option lists of its selects.
func (h *Handler) Steps(c *gin.Context) {
	c.JSON(http.StatusOK, stepsResponse{
		Steps:             domain.StepNames(),
		PropertyTypes:     domain.PropertyTypes,
		ConstructionTypes: domain.ConstructionTypes,
		InspectionTypes:   domain.InspectionTypes,
		InspectionAreas:   domain.InspectionAreas,
		Severities:        domain.Severities,
		MaxImagesPerIssue: h.wizard.MaxImagesPerIssue(),
		Fields: map[string][]string{
			domain.SectionPropertyInfo:      domain.Fields(domain.SectionPropertyInfo),
			domain.SectionInspectionDetails: domain.Fields(domain.SectionInspectionDetails),
			"issue":                         domain.Fields("issue"),
		},
	})
}

// Metrics reports wizard counters since process start.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": h.wizard.Metrics()})
}

// CreateDraft starts a new inspection draft
func (h *Handler) CreateDraft(c *gin.Context) {
	d, err := h.wizard.Create(c.Request.Context(), auth.InspectorID(c))
	if err != nil {
		h.fail(c, "draft.create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"draft": viewOf(d)})
}

// ListDrafts lists the caller's drafts, most recently updated first
func (h *Handler) ListDrafts(c *gin.Context) {
	drafts, err := h.wizard.List(c.Request.Context(), auth.InspectorID(c))
	if err != nil {
		h.fail(c, "draft.list", err)
		return
	}
	views := make([]DraftView, 0, len(drafts))
	for _, d := range drafts {
		views = append(views, viewOf(d))
	}
	c.JSON(http.StatusOK, gin.H{"drafts": views, "count": len(views)})
}

// GetDraft retrieves a draft by ID
func (h *Handler) GetDraft(c *gin.Context) {
	d, err := h.wizard.Get(c.Request.Context(), auth.InspectorID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "draft.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

// DiscardDraft deletes a draft and its image previews
func (h *Handler) DiscardDraft(c *gin.Context) {
	if err := h.wizard.Discard(c.Request.Context(), auth.InspectorID(c), c.Param("id")); err != nil {
		h.fail(c, "draft.discard", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Advance(c *gin.Context) {
	d, err := h.wizard.Advance(c.Request.Context(), auth.InspectorID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "draft.advance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

func (h *Handler) Retreat(c *gin.Context) {
	d, err := h.wizard.Retreat(c.Request.Context(), auth.InspectorID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "draft.retreat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

// SetField replaces one property info or inspection details field
func (h *Handler) SetField(c *gin.Context) {
	var body setFieldRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		httpapi.Fail(c, http.StatusBadRequest, "invalid request body", httpapi.BindingDetails(err)...)
		return
	}

	d, err := h.wizard.SetField(c.Request.Context(), auth.InspectorID(c), c.Param("id"), body.Section, body.Field, body.Value)
	if err != nil {
		h.fail(c, "draft.set_field", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d)})
}

// Submit hands the draft to the submission sinks
func (h *Handler) Submit(c *gin.Context) {
	d, receipt, err := h.wizard.Submit(c.Request.Context(), auth.InspectorID(c), c.Param("id"))
	if err != nil {
		h.fail(c, "draft.submit", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": viewOf(d), "receipt": receipt})
}
