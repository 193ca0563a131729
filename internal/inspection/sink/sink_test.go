package sink

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSink struct {
	name  string
	err   error
	calls int
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Submit(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	r.calls++
	return r.err
}

func testDraft() (domain.Draft, domain.Receipt) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := domain.NewDraft("draft-1", "inspector-1", now)
	d, _ = d.SetField(domain.SectionPropertyInfo, "property_name", "Sunrise Apartments")
	return d, domain.Receipt{SubmissionID: "sub-1", DraftID: d.ID, SubmittedAt: now}
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	first := &recordingSink{name: "first"}
	broken := &recordingSink{name: "broken", err: errors.New("offline")}
	last := &recordingSink{name: "last"}
	chain := Chain{first, broken, last}

	d, receipt := testDraft()
	err := chain.Submit(context.Background(), d, receipt)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken sink: offline")
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, last.calls)
	assert.Equal(t, []string{"first", "broken", "last"}, chain.Names())
}

func TestLogSink_TracesDraft(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewLogSink(zap.New(core))

	d, receipt := testDraft()
	require.NoError(t, s.Submit(context.Background(), d, receipt))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "inspection submitted", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "sub-1", fields["submission_id"])
	assert.Equal(t, "Sunrise Apartments", fields["property_name"])
	assert.Equal(t, int64(1), fields["issues"])
}

type fakeSaver struct {
	saved []domain.Receipt
}

func (f *fakeSaver) Save(ctx context.Context, d domain.Draft, receipt domain.Receipt) error {
	f.saved = append(f.saved, receipt)
	return nil
}

func TestPostgresSink(t *testing.T) {
	saver := &fakeSaver{}
	s := NewPostgresSink(saver)

	d, receipt := testDraft()
	require.NoError(t, s.Submit(context.Background(), d, receipt))
	assert.Equal(t, []domain.Receipt{receipt}, saver.saved)
	assert.Equal(t, "postgres", s.Name())
}

type fakePublisher struct {
	queue string
	data  []byte
	tries uint16
	err   error
}

func (f *fakePublisher) Publish(queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error) {
	f.queue, f.data, f.tries = queue, data, tries
	return "job-1", f.err
}

func TestQueueSink(t *testing.T) {
	pub := &fakePublisher{}
	s := NewQueueSink(pub, "inspection-intake")

	d, receipt := testDraft()
	require.NoError(t, s.Submit(context.Background(), d, receipt))

	assert.Equal(t, "inspection-intake", pub.queue)
	assert.Equal(t, uint16(3), pub.tries)
	var job IntakeJob
	require.NoError(t, json.Unmarshal(pub.data, &job))
	assert.Equal(t, "sub-1", job.Receipt.SubmissionID)
	assert.Equal(t, "Sunrise Apartments", job.Draft.PropertyInfo.PropertyName)

	pub.err = errors.New("connection refused")
	err := s.Submit(context.Background(), d, receipt)
	assert.ErrorContains(t, err, "lmstfy publish failed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Submit(ctx, d, receipt), context.Canceled)
}
