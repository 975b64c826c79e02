package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/coursedex/internal/db"
)

// Exists checks if a key exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	cmd := s.b().Exists().Key(key).Build()
	count, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return count > 0, nil
}

// HMGet returns the values of the given hash fields. Missing fields are
// absent from the returned map.
func (s *Store) HMGet(ctx context.Context, key string, fields ...string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	if len(fields) == 0 {
		return out, nil
	}

	cmd := s.b().Hmget().Key(key).Field(fields...).Build()
	vals, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpHMGet, Err: err}
	}
	if len(vals) != len(fields) {
		return nil, &db.Error{Op: db.OpHMGet, Err: fmt.Errorf("expected %d values, got %d", len(fields), len(vals))}
	}

	for i, v := range vals {
		str, err := v.ToString()
		if err != nil {
			if rueidis.IsRedisNil(err) {
				continue
			}
			return nil, &db.Error{Op: db.OpHMGet, Err: fmt.Errorf("field %s: %w", fields[i], err)}
		}
		out[fields[i]] = str
	}
	return out, nil
}

// ReplaceHash deletes key and writes fields in its place.
func (s *Store) ReplaceHash(ctx context.Context, key string, fields map[string]string) error {
	if err := s.Del(ctx, key); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	cmd := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// Del deletes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
