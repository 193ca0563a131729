package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/safehaven-ai/safehaven-backend/internal/inspection/domain"
)

var ErrObjectNotFound = errors.New("preview object not found")

const (
	draftIndexPrefix = "inspect:previews:" // Object keys per draft: inspect:previews:{draft_id}
	draftIndexSet    = "inspect:previews:drafts"
)

// Upload is one file handed to the wizard for attachment.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Object is what a preview reference resolves to. Stores either return the
// bytes or a URL the client should be redirected to.
type Object struct {
	ContentType string
	FileName    string
	Data        []byte
	RedirectURL string
}

// Store holds preview bytes under opaque keys.
type Store interface {
	Put(ctx context.Context, key string, u Upload) error
	Open(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, keys ...string) error
}

// Manager pairs every created preview reference with a release. It keeps a
// per-draft index in Redis so references of expired drafts can be swept.
// Retain takes a draft's references out of that index for good.
type Manager struct {
	store   Store
	tokens  *TokenSigner
	index   *redis.Client
	baseURL string
}

func NewManager(store Store, tokens *TokenSigner, index *redis.Client, baseURL string) *Manager {
	return &Manager{
		store:   store,
		tokens:  tokens,
		index:   index,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Create stores each upload and returns display references in input order.
// On failure every object stored by this call is removed again.
func (m *Manager) Create(ctx context.Context, draftID string, uploads []Upload) ([]domain.ImageRef, error) {
	refs := make([]domain.ImageRef, 0, len(uploads))
	keys := make([]string, 0, len(uploads))

	rollback := func() {
		if len(keys) > 0 {
			_ = m.store.Delete(context.WithoutCancel(ctx), keys...)
		}
	}

	for _, u := range uploads {
		id := uuid.New().String()
		key := objectKey(draftID, id, u.FileName)
		if err := m.store.Put(ctx, key, u); err != nil {
			rollback()
			return nil, fmt.Errorf("store preview %q: %w", u.FileName, err)
		}
		keys = append(keys, key)

		token, err := m.tokens.Sign(key, id, draftID)
		if err != nil {
			rollback()
			return nil, err
		}
		refs = append(refs, domain.ImageRef{
			ID:          id,
			Key:         key,
			URL:         m.baseURL + "/api/v1/previews/" + token,
			FileName:    u.FileName,
			ContentType: u.ContentType,
			Size:        int64(len(u.Data)),
		})
	}

	if len(keys) > 0 {
		members := make([]any, len(keys))
		for i, k := range keys {
			members[i] = k
		}
		pipe := m.index.TxPipeline()
		pipe.SAdd(ctx, m.indexKey(draftID), members...)
		pipe.SAdd(ctx, draftIndexSet, draftID)
		if _, err := pipe.Exec(ctx); err != nil {
			rollback()
			return nil, fmt.Errorf("index previews: %w", err)
		}
	}
	return refs, nil
}

// Release deletes the objects behind refs and drops them from the index.
func (m *Manager) Release(ctx context.Context, draftID string, refs ...domain.ImageRef) error {
	if len(refs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(refs))
	members := make([]any, 0, len(refs))
	for _, r := range refs {
		keys = append(keys, r.Key)
		members = append(members, r.Key)
	}
	if err := m.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("delete previews: %w", err)
	}
	if err := m.index.SRem(ctx, m.indexKey(draftID), members...).Err(); err != nil {
		return fmt.Errorf("unindex previews: %w", err)
	}
	return nil
}

// ReleaseDraft releases every reference indexed for the draft.
func (m *Manager) ReleaseDraft(ctx context.Context, draftID string) (int, error) {
	keys, err := m.index.SMembers(ctx, m.indexKey(draftID)).Result()
	if err != nil {
		return 0, fmt.Errorf("list previews: %w", err)
	}
	if len(keys) > 0 {
		if err := m.store.Delete(ctx, keys...); err != nil {
			return 0, fmt.Errorf("delete previews: %w", err)
		}
	}
	pipe := m.index.TxPipeline()
	pipe.Del(ctx, m.indexKey(draftID))
	pipe.SRem(ctx, draftIndexSet, draftID)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("unindex draft previews: %w", err)
	}
	return len(keys), nil
}

// Retain drops the draft from the sweep index without deleting its objects,
// so references persisted with a submitted inspection keep resolving.
func (m *Manager) Retain(ctx context.Context, draftID string) (int, error) {
	pipe := m.index.TxPipeline()
	count := pipe.SCard(ctx, m.indexKey(draftID))
	pipe.Del(ctx, m.indexKey(draftID))
	pipe.SRem(ctx, draftIndexSet, draftID)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("retain draft previews: %w", err)
	}
	return int(count.Val()), nil
}

// Resolve verifies a preview token and opens the object it names.
func (m *Manager) Resolve(ctx context.Context, token string) (Object, error) {
	key, _, err := m.tokens.Parse(token)
	if err != nil {
		return Object{}, err
	}
	return m.store.Open(ctx, key)
}

// Sweep releases the references of every indexed draft that alive reports
// as gone. It returns the number of objects deleted.
func (m *Manager) Sweep(ctx context.Context, alive func(ctx context.Context, draftID string) (bool, error)) (int, error) {
	draftIDs, err := m.index.SMembers(ctx, draftIndexSet).Result()
	if err != nil {
		return 0, fmt.Errorf("list indexed drafts: %w", err)
	}

	released := 0
	for _, id := range draftIDs {
		ok, err := alive(ctx, id)
		if err != nil {
			return released, err
		}
		if ok {
			continue
		}
		n, err := m.ReleaseDraft(ctx, id)
		if err != nil {
			return released, err
		}
		released += n
	}
	return released, nil
}

func (m *Manager) indexKey(draftID string) string {
	return fmt.Sprintf("%s%s", draftIndexPrefix, draftID)
}

func objectKey(draftID, imageID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("previews/%s/%s%s", draftID, imageID, ext)
}
