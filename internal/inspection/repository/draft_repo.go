package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

const (
	draftKeyPrefix          = "inspect:draft:"     // Draft JSON: inspect:draft:{draft_id}
	inspectorSetPrefix      = "inspect:inspector:" // Draft IDs per inspector: inspect:inspector:{inspector_id}:drafts
	draftEventChannelPrefix = "inspect:events:"    // Pub/Sub channel for draft changes: inspect:events:{draft_id}
	maxMutateRetries        = 3
)

// Draft event types.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// DraftEvent is published on every change to a draft.
type DraftEvent struct {
	Type  string       `json:"type"` // created, updated, deleted
	Draft domain.Draft `json:"draft"`
}

// DraftRepository keeps wizard drafts in Redis with a sliding TTL.
type DraftRepository struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewDraftRepository creates a new DraftRepository
func NewDraftRepository(client *redis.Client, ttl time.Duration) *DraftRepository {
	return &DraftRepository{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create stores a new draft
func (r *DraftRepository) Create(ctx context.Context, d domain.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	setKey := r.inspectorSetKey(d.InspectorID)

	pipe := r.client.TxPipeline()
	pipe.SetNX(ctx, r.draftKey(d.ID), data, r.ttl)
	pipe.SAdd(ctx, setKey, d.ID)
	pipe.Expire(ctx, setKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}

	r.publish(ctx, EventCreated, d)
	return nil
}

// Get retrieves a draft by its ID
func (r *DraftRepository) Get(ctx context.Context, id string) (domain.Draft, error) {
	data, err := r.client.Get(ctx, r.draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Draft{}, domain.ErrDraftNotFound
	}
	if err != nil {
		return domain.Draft{}, fmt.Errorf("failed to get draft: %w", err)
	}
	return decodeDraft(data)
}

// Exists reports whether the draft key is still live.
func (r *DraftRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.draftKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check draft: %w", err)
	}
	return n > 0, nil
}

// Mutate applies fn to the stored draft inside a WATCH transaction and
// refreshes the TTL. Concurrent writers retry; after maxMutateRetries the
// call fails with domain.ErrConflict.
func (r *DraftRepository) Mutate(ctx context.Context, id string, fn func(domain.Draft) (domain.Draft, error)) (domain.Draft, error) {
	key := r.draftKey(id)
	var result domain.Draft

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrDraftNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get draft: %w", err)
		}
		current, err := decodeDraft(data)
		if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next.UpdatedAt = r.now()

		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal draft: %w", err)
		}

		setKey := r.inspectorSetKey(next.InspectorID)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			pipe.Expire(ctx, setKey, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for i := 0; i < maxMutateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			r.publish(ctx, EventUpdated, result)
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return domain.Draft{}, err
	}
	return domain.Draft{}, domain.ErrConflict
}

// ListByInspector returns the inspector's live drafts, newest first.
// IDs whose draft expired are pruned from the index.
func (r *DraftRepository) ListByInspector(ctx context.Context, inspectorID string) ([]domain.Draft, error) {
	setKey := r.inspectorSetKey(inspectorID)

	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts for inspector: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Draft{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.draftKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load drafts: %w", err)
	}

	drafts := make([]domain.Draft, 0, len(values))
	var stale []any
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		d, err := decodeDraft([]byte(s))
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	if len(stale) > 0 {
		r.client.SRem(ctx, setKey, stale...)
	}

	sortByUpdatedDesc(drafts)
	return drafts, nil
}

// Delete removes a draft and returns what was stored.
func (r *DraftRepository) Delete(ctx context.Context, id string) (domain.Draft, error) {
	d, err := r.Get(ctx, id)
	if err != nil {
		return domain.Draft{}, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.draftKey(id))
	pipe.SRem(ctx, r.inspectorSetKey(d.InspectorID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.Draft{}, fmt.Errorf("failed to delete draft: %w", err)
	}

	r.publish(ctx, EventDeleted, d)
	return d, nil
}

// Subscribe opens a Pub/Sub subscription to a single draft's events.
func (r *DraftRepository) Subscribe(ctx context.Context, id string) *redis.PubSub {
	return r.client.Subscribe(ctx, r.draftEventChannel(id))
}

// DecodeEvent parses a message received on a draft channel.
func DecodeEvent(payload string) (DraftEvent, error) {
	var ev DraftEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return DraftEvent{}, fmt.Errorf("failed to unmarshal draft event: %w", err)
	}
	return ev, nil
}

func (r *DraftRepository) publish(ctx context.Context, kind string, d domain.Draft) {
	if d.ID == "" {
		return
	}
	payload, err := json.Marshal(DraftEvent{Type: kind, Draft: d})
	if err != nil {
		return
	}
	r.client.Publish(ctx, r.draftEventChannel(d.ID), payload)
}

func decodeDraft(data []byte) (domain.Draft, error) {
	var d domain.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return domain.Draft{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return d, nil
}

func sortByUpdatedDesc(drafts []domain.Draft) {
	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
}

// Helper methods for key generation
func (r *DraftRepository) draftKey(id string) string {
	return fmt.Sprintf("%s%s", draftKeyPrefix, id)
}

func (r *DraftRepository) inspectorSetKey(inspectorID string) string {
	return fmt.Sprintf("%s%s:drafts", inspectorSetPrefix, inspectorID)
}

func (r *DraftRepository) draftEventChannel(id string) string {
	return fmt.Sprintf("%s%s", draftEventChannelPrefix, id)
}
