package http

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/media"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/service"
	"go.uber.org/zap"
)

// EventSource is implemented by repository.DraftRepository.
type EventSource interface {
	Subscribe(ctx context.Context, id string) *redis.PubSub
}

// PreviewResolver is implemented by media.Manager.
type PreviewResolver interface {
	Resolve(ctx context.Context, token string) (media.Object, error)
}

// Handler handles HTTP requests for the inspection wizard
type Handler struct {
	wizard         *service.WizardService
	events         EventSource
	previews       PreviewResolver
	maxUploadBytes int64
	logger         *zap.Logger
}

// New creates a new Handler
func New(wizard *service.WizardService, events EventSource, previews PreviewResolver, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		wizard:         wizard,
		events:         events,
		previews:       previews,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type setFieldRequest struct {
	Section string `json:"section" binding:"required,oneof=property_info inspection_details"`
	Field   string `json:"field" binding:"required"`
	Value   any    `json:"value"`
}

type updateIssueRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// DraftView is a draft plus the wizard state a client needs to render it.
type DraftView struct {
	domain.Draft
	StepName   string   `json:"step_name"`
	Steps      []string `json:"steps"`
	CanAdvance bool     `json:"can_advance"`
	CanRetreat bool     `json:"can_retreat"`
	CanSubmit  bool     `json:"can_submit"`
}

func viewOf(d domain.Draft) DraftView {
	editing := !d.Submitted()
	return DraftView{
		Draft:      d,
		StepName:   d.StepName(),
		Steps:      domain.StepNames(),
		CanAdvance: editing && d.Step < domain.LastStep,
		CanRetreat: editing && d.Step > domain.StepPropertyInfo,
		CanSubmit:  editing && d.Step == domain.LastStep,
	}
}

type stepsResponse struct {
	Steps             []string            `json:"steps"`
	PropertyTypes     []string            `json:"property_types"`
	ConstructionTypes []string            `json:"construction_types"`
	InspectionTypes   []string            `json:"inspection_types"`
	InspectionAreas   []string            `json:"inspection_areas"`
	Severities        []domain.Severity   `json:"severities"`
	MaxImagesPerIssue int                 `json:"max_images_per_issue"`
	Fields            map[string][]string `json:"fields"`
}
