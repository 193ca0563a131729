package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/media"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/sink"
	"github.com/safehaven-ai/safehaven-backend/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DraftStore persists drafts between requests.
type DraftStore interface {
	Create(ctx context.Context, d domain.Draft) error
	Get(ctx context.Context, id string) (domain.Draft, error)
	Exists(ctx context.Context, id string) (bool, error)
	Mutate(ctx context.Context, id string, fn func(domain.Draft) (domain.Draft, error)) (domain.Draft, error)
	ListByInspector(ctx context.Context, inspectorID string) ([]domain.Draft, error)
	Delete(ctx context.Context, id string) (domain.Draft, error)
}

// ImageStore creates and releases preview references.
type ImageStore interface {
	Create(ctx context.Context, draftID string, uploads []media.Upload) ([]domain.ImageRef, error)
	Release(ctx context.Context, draftID string, refs ...domain.ImageRef) error
	ReleaseDraft(ctx context.Context, draftID string) (int, error)
	Retain(ctx context.Context, draftID string) (int, error)
	Sweep(ctx context.Context, alive func(ctx context.Context, draftID string) (bool, error)) (int, error)
}

// submissionNamespace scopes the name-based UUIDs of submissions. A draft
// always maps to the same submission id, including across retried submits.
var submissionNamespace = uuid.MustParse("6f1c2b0e-5d8a-4c3e-9a71-2f4b8e0d9c15")

// limiterIdle is how long an attach limiter may sit unused before it is
// dropped. It exceeds the time any limiter needs to refill its burst.
const limiterIdle = 10 * time.Minute

// SubmissionID returns the submission id for a draft.
func SubmissionID(draftID string) string {
	return uuid.NewSHA1(submissionNamespace, []byte(draftID)).String()
}

// Options tune the wizard.
type Options struct {
	Strict            bool
	MaxImagesPerIssue int
	AttachRate        float64
	AttachBurst       int
}

// WizardService runs the inspection wizard against stored drafts.
type WizardService struct {
	drafts  DraftStore
	images  ImageStore
	sink    sink.Sink
	sinks   []string
	opts    Options
	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time

	mu         sync.Mutex
	limiters   map[string]*attachLimiter
	lastPruned time.Time
}

type attachLimiter struct {
	*rate.Limiter
	lastUsed time.Time
}

// NewWizardService creates a new WizardService
func NewWizardService(drafts DraftStore, images ImageStore, chain sink.Chain, opts Options, logger *zap.Logger) *WizardService {
	if opts.MaxImagesPerIssue <= 0 {
		opts.MaxImagesPerIssue = 10
	}
	if opts.AttachRate <= 0 {
		opts.AttachRate = 2
	}
	if opts.AttachBurst <= 0 {
		opts.AttachBurst = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardService{
		drafts:   drafts,
		images:   images,
		sink:     chain,
		sinks:    chain.Names(),
		opts:     opts,
		logger:   logger,
		metrics:  &Metrics{},
		now:      time.Now,
		limiters: make(map[string]*attachLimiter),
	}
}

func (s *WizardService) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// MaxImagesPerIssue returns the configured per-issue image cap.
func (s *WizardService) MaxImagesPerIssue() int {
	return s.opts.MaxImagesPerIssue
}

// Create starts a new draft for the inspector.
func (s *WizardService) Create(ctx context.Context, inspectorID string) (domain.Draft, error) {
	d := domain.NewDraft(uuid.New().String(), inspectorID, s.now().UTC())
	if err := s.drafts.Create(ctx, d); err != nil {
		return domain.Draft{}, err
	}
	s.metrics.draftsCreated.Inc()
	logging.From(ctx, s.logger, "draft.create").Info("draft created",
		zap.String("draft_id", d.ID), zap.String("inspector_id", inspectorID))
	return d, nil
}

// Get returns a draft owned by the inspector.
func (s *WizardService) Get(ctx context.Context, inspectorID, id string) (domain.Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return domain.Draft{}, err
	}
	if d.InspectorID != inspectorID {
		return domain.Draft{}, domain.ErrForbidden
	}
	return d, nil
}

// List returns the inspector's live drafts.
func (s *WizardService) List(ctx context.Context, inspectorID string) ([]domain.Draft, error) {
	return s.drafts.ListByInspector(ctx, inspectorID)
}

// Advance moves to the next step. In strict mode the current step must
// validate first.
func (s *WizardService) Advance(ctx context.Context, inspectorID, id string) (domain.Draft, error) {
	d, err := s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		if s.opts.Strict && !d.Submitted() && d.Step < domain.LastStep {
			if err := d.ValidateStep(d.Step); err != nil {
				return d, err
			}
		}
		return d.Advance()
	})
	s.countValidationBlock(err)
	return d, err
}

// Retreat moves to the previous step.
func (s *WizardService) Retreat(ctx context.Context, inspectorID, id string) (domain.Draft, error) {
	return s.mutate(ctx, inspectorID, id, domain.Draft.Retreat)
}

// SetField replaces one property info or inspection details field.
func (s *WizardService) SetField(ctx context.Context, inspectorID, id, section, field string, value any) (domain.Draft, error) {
	return s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		return d.SetField(section, field, value)
	})
}

// AddIssue appends a default issue.
func (s *WizardService) AddIssue(ctx context.Context, inspectorID, id string) (domain.Draft, error) {
	d, err := s.mutate(ctx, inspectorID, id, domain.Draft.AddIssue)
	if err == nil {
		s.metrics.issuesAdded.Inc()
	}
	return d, err
}

// RemoveIssue deletes an issue and releases its images.
func (s *WizardService) RemoveIssue(ctx context.Context, inspectorID, id string, index int) (domain.Draft, error) {
	var released []domain.ImageRef
	d, err := s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		next, refs, err := d.RemoveIssue(index)
		released = refs
		return next, err
	})
	if err != nil {
		return domain.Draft{}, err
	}
	s.release(ctx, id, released...)
	return d, nil
}

// UpdateIssue replaces one field of an issue.
func (s *WizardService) UpdateIssue(ctx context.Context, inspectorID, id string, index int, field string, value any) (domain.Draft, error) {
	return s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		return d.UpdateIssueField(index, field, value)
	})
}

// AttachImages turns uploads into preview references and appends them to
// the issue. Either every upload is attached or none is.
func (s *WizardService) AttachImages(ctx context.Context, inspectorID, id string, index int, uploads []media.Upload) (domain.Draft, error) {
	if len(uploads) == 0 {
		return s.Get(ctx, inspectorID, id)
	}
	if !s.limiter(inspectorID).AllowN(s.now(), len(uploads)) {
		return domain.Draft{}, domain.ErrRateLimited
	}

	current, err := s.Get(ctx, inspectorID, id)
	if err != nil {
		return domain.Draft{}, err
	}
	if current.Submitted() {
		return domain.Draft{}, domain.ErrDraftSubmitted
	}
	left, err := current.ImageCapacity(index, s.opts.MaxImagesPerIssue)
	if err != nil {
		return domain.Draft{}, err
	}
	if len(uploads) > left {
		return domain.Draft{}, domain.ErrImageLimit
	}

	refs, err := s.images.Create(ctx, id, uploads)
	if err != nil {
		return domain.Draft{}, err
	}

	d, err := s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		return d.AttachImages(index, refs, s.opts.MaxImagesPerIssue)
	})
	if err != nil {
		s.release(ctx, id, refs...)
		return domain.Draft{}, err
	}
	s.metrics.imagesAttached.Add(int64(len(refs)))
	return d, nil
}

// DetachImage removes an image from an issue and releases it.
func (s *WizardService) DetachImage(ctx context.Context, inspectorID, id string, issueIndex, imageIndex int) (domain.Draft, error) {
	var removed domain.ImageRef
	d, err := s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		next, ref, err := d.DetachImage(issueIndex, imageIndex)
		removed = ref
		return next, err
	})
	if err != nil {
		return domain.Draft{}, err
	}
	s.release(ctx, id, removed)
	return d, nil
}

// Submit hands the draft to the configured sinks. The draft is marked
// submitted first so concurrent submits cannot both succeed; a failed
// hand-off reopens it.
func (s *WizardService) Submit(ctx context.Context, inspectorID, id string) (domain.Draft, domain.Receipt, error) {
	log := logging.From(ctx, s.logger, "draft.submit")

	submitted, err := s.mutate(ctx, inspectorID, id, func(d domain.Draft) (domain.Draft, error) {
		if s.opts.Strict && !d.Submitted() {
			if err := d.ValidateStep(domain.StepReview); err != nil {
				return d, err
			}
		}
		return d.MarkSubmitted(s.now().UTC())
	})
	if err != nil {
		s.countValidationBlock(err)
		return domain.Draft{}, domain.Receipt{}, err
	}

	receipt := domain.Receipt{
		SubmissionID: SubmissionID(submitted.ID),
		DraftID:      submitted.ID,
		SubmittedAt:  *submitted.SubmittedAt,
		Sinks:        s.sinks,
	}

	if err := s.sink.Submit(ctx, submitted, receipt); err != nil {
		s.metrics.submissionsFailed.Inc()
		log.Error("submission failed", zap.String("draft_id", id), zap.Error(err))
		if _, rerr := s.drafts.Mutate(context.WithoutCancel(ctx), id, func(d domain.Draft) (domain.Draft, error) {
			return d.Reopen(), nil
		}); rerr != nil {
			log.Error("failed to reopen draft", zap.String("draft_id", id), zap.Error(rerr))
		}
		return domain.Draft{}, domain.Receipt{}, err
	}

	// The stored inspection references these previews; keep them out of the sweep.
	if _, err := s.images.Retain(ctx, id); err != nil {
		log.Warn("failed to retain previews", zap.String("draft_id", id), zap.Error(err))
	}

	s.metrics.submissions.Inc()
	log.Info("draft submitted", zap.String("draft_id", id), zap.String("submission_id", receipt.SubmissionID))
	return submitted, receipt, nil
}

// Discard deletes the draft and releases every reference it held.
func (s *WizardService) Discard(ctx context.Context, inspectorID, id string) error {
	if _, err := s.Get(ctx, inspectorID, id); err != nil {
		return err
	}
	if _, err := s.drafts.Delete(ctx, id); err != nil {
		return err
	}
	n, err := s.images.ReleaseDraft(ctx, id)
	if err != nil {
		logging.From(ctx, s.logger, "draft.discard").Warn("failed to release previews",
			zap.String("draft_id", id), zap.Error(err))
	}
	s.metrics.imagesReleased.Add(int64(n))
	s.metrics.draftsDiscarded.Inc()
	return nil
}

// SweepPreviews releases preview references whose drafts have expired.
func (s *WizardService) SweepPreviews(ctx context.Context) (int, error) {
	n, err := s.images.Sweep(ctx, s.drafts.Exists)
	s.metrics.imagesReleased.Add(int64(n))
	return n, err
}

func (s *WizardService) mutate(ctx context.Context, inspectorID, id string, fn func(domain.Draft) (domain.Draft, error)) (domain.Draft, error) {
	return s.drafts.Mutate(ctx, id, func(d domain.Draft) (domain.Draft, error) {
		if d.InspectorID != inspectorID {
			return d, domain.ErrForbidden
		}
		return fn(d)
	})
}

func (s *WizardService) release(ctx context.Context, draftID string, refs ...domain.ImageRef) {
	if len(refs) == 0 {
		return
	}
	if err := s.images.Release(ctx, draftID, refs...); err != nil {
		logging.From(ctx, s.logger, "draft.release").Warn("failed to release previews",
			zap.String("draft_id", draftID), zap.Int("count", len(refs)), zap.Error(err))
		return
	}
	s.metrics.imagesReleased.Add(int64(len(refs)))
}

func (s *WizardService) countValidationBlock(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		s.metrics.validationBlocks.Inc()
	}
}

// limiter returns the inspector's attach limiter. Limiters idle for longer
// than limiterIdle are dropped, at most once per limiterIdle.
func (s *WizardService) limiter(inspectorID string) *rate.Limiter {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastPruned) >= limiterIdle {
		for k, l := range s.limiters {
			if now.Sub(l.lastUsed) >= limiterIdle {
				delete(s.limiters, k)
			}
		}
		s.lastPruned = now
	}

	l, ok := s.limiters[inspectorID]
	if !ok {
		l = &attachLimiter{Limiter: rate.NewLimiter(rate.Limit(s.opts.AttachRate), s.opts.AttachBurst)}
		s.limiters[inspectorID] = l
	}
	l.lastUsed = now
	return l.Limiter
}

// IsClientError reports whether err is caused by the request rather than
// the service.
func IsClientError(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, domain.ErrUnknownField) ||
		errors.Is(err, domain.ErrInvalidValue)
}
