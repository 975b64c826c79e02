package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/catalog"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// DefaultRedisKey is the hash holding the published index.
const DefaultRedisKey = "coursedex:catalog"

// hashStore is the consumer interface for the Redis-hosted index (ISP).
type hashStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	HMGet(ctx context.Context, key string, fields ...string) (map[string]string, error)
	ReplaceHash(ctx context.Context, key string, fields map[string]string) error
}

// RedisSource serves lookups from a hash whose fields are words and whose
// values are JSON lists of [dept, course_num] pairs.
type RedisSource struct {
	store hashStore
	key   string
}

// NewRedisSource creates a source reading the hash at key.
func NewRedisSource(s hashStore, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{store: s, key: key}
}

// Lookup returns the identifiers indexed under each word.
func (s *RedisSource) Lookup(ctx context.Context, words []string) (map[string][]course.ID, error) {
	if err := s.Check(ctx); err != nil {
		return nil, err
	}
	out := make(map[string][]course.ID, len(words))
	if len(words) == 0 {
		return out, nil
	}

	vals, err := s.store.HMGet(ctx, s.key, words...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	for w, raw := range vals {
		var ids []course.ID
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("%w: word %q: %w", domain.ErrIndexUnavailable, w, err)
		}
		if len(ids) > 0 {
			out[w] = ids
		}
	}
	return out, nil
}

// Check reports whether the index hash exists.
func (s *RedisSource) Check(ctx context.Context) error {
	ok, err := s.store.Exists(ctx, s.key)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	if !ok {
		return fmt.Errorf("%w: redis key %s not found", domain.ErrIndexUnavailable, s.key)
	}
	return nil
}

// Publish replaces the hash with the contents of idx.
func (s *RedisSource) Publish(ctx context.Context, idx *catalog.Index) error {
	fields := make(map[string]string, idx.Len())
	for _, w := range idx.Words() {
		data, err := json.Marshal(idx.Lookup(w))
		if err != nil {
			return fmt.Errorf("encode word %q: %w", w, err)
		}
		fields[w] = string(data)
	}
	if err := s.store.ReplaceHash(ctx, s.key, fields); err != nil {
		return fmt.Errorf("publish catalog index: %w", err)
	}
	return nil
}
