package media

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const objectKeyPrefix = "inspect:preview:" // Preview bytes: inspect:preview:{object_key}

// RedisStore keeps preview bytes in Redis hashes. Objects have no TTL; they
// live until Manager releases them.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, key string, u Upload) error {
	err := s.client.HSet(ctx, objectKeyPrefix+key, map[string]any{
		"content_type": u.ContentType,
		"file_name":    u.FileName,
		"data":         u.Data,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to store preview: %w", err)
	}
	return nil
}

func (s *RedisStore) Open(ctx context.Context, key string) (Object, error) {
	fields, err := s.client.HGetAll(ctx, objectKeyPrefix+key).Result()
	if err != nil {
		return Object{}, fmt.Errorf("failed to load preview: %w", err)
	}
	if len(fields) == 0 {
		return Object{}, ErrObjectNotFound
	}
	return Object{
		ContentType: fields["content_type"],
		FileName:    fields["file_name"],
		Data:        []byte(fields["data"]),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = objectKeyPrefix + k
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete previews: %w", err)
	}
	return nil
}
