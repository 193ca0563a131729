package sink

import (
	"context"

	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/logging"
	"go.uber.org/zap"
)

// LogSink writes the full draft as a diagnostic trace.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Submit(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	logging.From(ctx, s.logger, "inspection.submit").Info("inspection submitted",
		zap.String("submission_id", receipt.SubmissionID),
		zap.String("draft_id", d.ID),
		zap.String("inspector_id", d.InspectorID),
		zap.String("property_name", d.PropertyInfo.PropertyName),
		zap.Int("issues", len(d.Issues)),
		zap.Int("images", len(d.Images())),
		zap.Any("draft", d),
	)
	return nil
}
