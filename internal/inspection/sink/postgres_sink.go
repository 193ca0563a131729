package sink

import (
	"context"

	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

// SubmissionSaver is implemented by repository.SubmissionRepository.
type SubmissionSaver interface {
	Save(ctx context.Context, d domain.Draft, receipt domain.Receipt) error
}

// PostgresSink stores the inspection and its issues.
type PostgresSink struct {
	repo SubmissionSaver
}

func NewPostgresSink(repo SubmissionSaver) *PostgresSink {
	return &PostgresSink{repo: repo}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Submit(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	return s.repo.Save(ctx, d, receipt)
}
