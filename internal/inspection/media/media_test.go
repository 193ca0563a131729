package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client)
	return NewManager(store, NewTokenSigner("secret"), client, "http://api.local/"), mr
}

func uploads(names ...string) []Upload {
	out := make([]Upload, len(names))
	for i, n := range names {
		out[i] = Upload{FileName: n, ContentType: "image/jpeg", Data: []byte("bytes-of-" + n)}
	}
	return out
}

func TestTokenSigner_RoundTrip(t *testing.T) {
	s := NewTokenSigner("secret")

	token, err := s.Sign("previews/d-1/img.jpg", "img", "d-1")
	require.NoError(t, err)

	key, draftID, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "previews/d-1/img.jpg", key)
	assert.Equal(t, "d-1", draftID)
}

func TestTokenSigner_Rejects(t *testing.T) {
	s := NewTokenSigner("secret")
	token, err := s.Sign("k", "id", "d")
	require.NoError(t, err)

	_, _, err = NewTokenSigner("other").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = s.Parse(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(72 * time.Hour) }
	key, _, err := s.Parse(token)
	require.NoError(t, err, "tokens stay valid until their object is released")
	assert.Equal(t, "k", key)
}

func TestManager_CreateResolveRelease(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	refs, err := m.Create(ctx, "d-1", uploads("front.JPG", "roof.png"))
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "front.JPG", refs[0].FileName)
	assert.True(t, strings.HasPrefix(refs[0].URL, "http://api.local/api/v1/previews/"))
	assert.True(t, strings.HasSuffix(refs[0].Key, ".jpg"))
	assert.Equal(t, int64(len("bytes-of-front.JPG")), refs[0].Size)
	assert.NotEqual(t, refs[0].ID, refs[1].ID)

	token := strings.TrimPrefix(refs[1].URL, "http://api.local/api/v1/previews/")
	obj, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes-of-roof.png"), obj.Data)
	assert.Equal(t, "image/jpeg", obj.ContentType)

	members, _ := mr.Members("inspect:previews:d-1")
	assert.Len(t, members, 2)

	require.NoError(t, m.Release(ctx, "d-1", refs[1]))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	members, _ = mr.Members("inspect:previews:d-1")
	assert.Equal(t, []string{refs[0].Key}, members)

	_, err = m.Resolve(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type failingStore struct {
	Store
	failOn  int
	puts    int
	deleted []string
}

func (f *failingStore) Put(ctx context.Context, key string, u Upload) error {
	f.puts++
	if f.puts == f.failOn {
		return errors.New("quota exceeded")
	}
	return nil
}

func (f *failingStore) Delete(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	return nil
}

func TestManager_CreateRollsBackOnFailure(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := &failingStore{failOn: 3}
	m := NewManager(store, NewTokenSigner("secret"), client, "")

	_, err := m.Create(context.Background(), "d-1", uploads("a.jpg", "b.jpg", "c.jpg"))
	require.Error(t, err)
	assert.Len(t, store.deleted, 2, "objects stored before the failure are removed")
}

func TestManager_Sweep(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "live", uploads("a.jpg"))
	require.NoError(t, err)
	dead, err := m.Create(ctx, "dead", uploads("b.jpg", "c.jpg"))
	require.NoError(t, err)

	released, err := m.Sweep(ctx, func(_ context.Context, id string) (bool, error) {
		return id == "live", nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	assert.False(t, mr.Exists("inspect:preview:"+dead[0].Key))
	assert.False(t, mr.Exists("inspect:previews:dead"))
	drafts, _ := mr.Members("inspect:previews:drafts")
	assert.Equal(t, []string{"live"}, drafts)
}

func TestManager_PreviewsLiveUntilReleased(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	refs, err := m.Create(ctx, "d-1", uploads("wall.jpg"))
	require.NoError(t, err)
	token := strings.TrimPrefix(refs[0].URL, "http://api.local/api/v1/previews/")

	mr.FastForward(72 * time.Hour)

	obj, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes-of-wall.jpg"), obj.Data)

	n, err := m.ReleaseDraft(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestManager_RetainSurvivesSweep(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	refs, err := m.Create(ctx, "submitted", uploads("a.jpg", "b.jpg"))
	require.NoError(t, err)

	n, err := m.Retain(ctx, "submitted")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	released, err := m.Sweep(ctx, func(context.Context, string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Zero(t, released)

	assert.True(t, mr.Exists("inspect:preview:"+refs[0].Key))
	assert.False(t, mr.Exists("inspect:previews:submitted"))
	token := strings.TrimPrefix(refs[1].URL, "http://api.local/api/v1/previews/")
	_, err = m.Resolve(ctx, token)
	assert.NoError(t, err)
}
