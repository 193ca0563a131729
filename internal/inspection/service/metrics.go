package service

import "go.uber.org/atomic"

// Metrics counts wizard activity since process start.
type Metrics struct {
	draftsCreated     atomic.Int64
	draftsDiscarded   atomic.Int64
	issuesAdded       atomic.Int64
	imagesAttached    atomic.Int64
	imagesReleased    atomic.Int64
	submissions       atomic.Int64
	submissionsFailed atomic.Int64
	validationBlocks  atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	DraftsCreated     int64   `json:"drafts_created"`
	DraftsDiscarded   int64   `json:"drafts_discarded"`
	IssuesAdded       int64   `json:"issues_added"`
	ImagesAttached    int64   `json:"images_attached"`
	ImagesReleased    int64   `json:"images_released"`
	Submissions       int64   `json:"submissions"`
	SubmissionsFailed int64   `json:"submissions_failed"`
	ValidationBlocks  int64   `json:"validation_blocks"`
	SubmitErrorRate   float64 `json:"submit_error_rate"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		DraftsCreated:     m.draftsCreated.Load(),
		DraftsDiscarded:   m.draftsDiscarded.Load(),
		IssuesAdded:       m.issuesAdded.Load(),
		ImagesAttached:    m.imagesAttached.Load(),
		ImagesReleased:    m.imagesReleased.Load(),
		Submissions:       m.submissions.Load(),
		SubmissionsFailed: m.submissionsFailed.Load(),
		ValidationBlocks:  m.validationBlocks.Load(),
	}
	if total := s.Submissions + s.SubmissionsFailed; total > 0 {
		s.SubmitErrorRate = float64(s.SubmissionsFailed) / float64(total) * 100
	}
	return s
}
