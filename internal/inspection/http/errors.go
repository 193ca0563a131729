package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	httpapi "github.com/safehaven-ai/safehaven-backend/internal/api/http"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/media"
	"github.com/safehaven-ai/safehaven-backend/internal/logging"
	"go.uber.org/zap"
)

var statusByError = []struct {
	err    error
	status int
}{
	{domain.ErrDraftNotFound, http.StatusNotFound},
	{domain.ErrIssueNotFound, http.StatusNotFound},
	{domain.ErrImageNotFound, http.StatusNotFound},
	{media.ErrObjectNotFound, http.StatusNotFound},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrStepOutOfRange, http.StatusConflict},
	{domain.ErrNotFinalStep, http.StatusConflict},
	{domain.ErrDraftSubmitted, http.StatusConflict},
	{domain.ErrImageLimit, http.StatusConflict},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrUnknownField, http.StatusBadRequest},
	{domain.ErrInvalidValue, http.StatusBadRequest},
	{domain.ErrRateLimited, http.StatusTooManyRequests},
	{media.ErrInvalidToken, http.StatusNotFound},
}

// fail maps a service error to a status code and writes it.
func (h *Handler) fail(c *gin.Context, operation string, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		details := make([]httpapi.FieldDetail, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			details = append(details, httpapi.FieldDetail{Field: f.Field, Message: f.Message})
		}
		httpapi.Fail(c, http.StatusBadRequest, ve.Error(), details...)
		return
	}

	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			httpapi.Fail(c, m.status, err.Error())
			return
		}
	}

	logging.From(c.Request.Context(), h.logger, operation).Error("request failed", zap.Error(err))
	httpapi.Fail(c, http.StatusInternalServerError, "internal server error")
}
