package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	err = client.Ping(context.Background()).Err()
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestDraftRepository_CreateGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewDraftRepository(client, time.Hour)
	ctx := context.Background()

	d := domain.NewDraft("d-1", "alice", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.InspectorID)
	assert.Len(t, got.Issues, 1)
	assert.Equal(t, 2, got.NextIssueSeq)

	assert.Equal(t, time.Hour, mr.TTL("inspect:draft:d-1"))
	members, err := mr.Members("inspect:inspector:alice:drafts")
	require.NoError(t, err)
	assert.Equal(t, []string{"d-1"}, members)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDraftRepository_Mutate(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewDraftRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, domain.NewDraft("d-1", "alice", time.Now().UTC())))
	mr.FastForward(30 * time.Minute)

	updated, err := repo.Mutate(ctx, "d-1", func(d domain.Draft) (domain.Draft, error) {
		return d.AddIssue()
	})
	require.NoError(t, err)
	assert.Len(t, updated.Issues, 2)
	assert.Equal(t, time.Hour, mr.TTL("inspect:draft:d-1"), "mutation refreshes the ttl")

	stored, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Len(t, stored.Issues, 2)

	t.Run("domain errors abort without writing", func(t *testing.T) {
		_, err := repo.Mutate(ctx, "d-1", func(d domain.Draft) (domain.Draft, error) {
			return d.Retreat()
		})
		assert.ErrorIs(t, err, domain.ErrStepOutOfRange)

		stored, err := repo.Get(ctx, "d-1")
		require.NoError(t, err)
		assert.Equal(t, updated.UpdatedAt.Unix(), stored.UpdatedAt.Unix())
	})

	t.Run("missing draft", func(t *testing.T) {
		_, err := repo.Mutate(ctx, "nope", func(d domain.Draft) (domain.Draft, error) { return d, nil })
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})
}

func TestDraftRepository_ConcurrentMutationsKeepEveryIssue(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewDraftRepository(client, time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, domain.NewDraft("d-1", "alice", time.Now().UTC())))

	const writers = 5
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(ctx, "d-1", func(d domain.Draft) (domain.Draft, error) {
				return d.AddIssue()
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, domain.ErrConflict), "unexpected error: %v", err)
		}()
	}
	wg.Wait()

	stored, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Len(t, stored.Issues, 1+succeeded)
}

func TestDraftRepository_ListByInspector(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewDraftRepository(client, time.Hour)
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, domain.NewDraft("old", "alice", base.Add(-time.Hour))))
	require.NoError(t, repo.Create(ctx, domain.NewDraft("new", "alice", base)))
	require.NoError(t, repo.Create(ctx, domain.NewDraft("other", "bob", base)))

	drafts, err := repo.ListByInspector(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "new", drafts[0].ID)
	assert.Equal(t, "old", drafts[1].ID)

	mr.Del("inspect:draft:old")
	drafts, err = repo.ListByInspector(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	members, _ := mr.Members("inspect:inspector:alice:drafts")
	assert.Equal(t, []string{"new"}, members, "expired ids are pruned")

	drafts, err = repo.ListByInspector(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestDraftRepository_DeleteAndEvents(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewDraftRepository(client, time.Hour)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, domain.NewDraft("d-1", "alice", time.Now().UTC())))

	sub := repo.Subscribe(ctx, "d-1")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	ch := sub.Channel()

	_, err = repo.Mutate(ctx, "d-1", func(d domain.Draft) (domain.Draft, error) { return d.Advance() })
	require.NoError(t, err)
	deleted, err := repo.Delete(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", deleted.ID)

	var kinds []string
	for len(kinds) < 2 {
		select {
		case msg := <-ch:
			ev, err := DecodeEvent(msg.Payload)
			require.NoError(t, err)
			kinds = append(kinds, ev.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for events, got %v", kinds)
		}
	}
	assert.Equal(t, []string{"updated", "deleted"}, kinds)

	exists, err := repo.Exists(ctx, "d-1")
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = repo.Delete(ctx, "d-1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}
