package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/catalog"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

func TestRedisSource_Lookup(t *testing.T) {
	ms := &mockHashStore{
		hmgetFn: func(_ context.Context, key string, fields ...string) (map[string]string, error) {
			if key != "catalog:test" {
				t.Errorf("key = %s", key)
			}
			if !reflect.DeepEqual(fields, []string{"intro", "quantum"}) {
				t.Errorf("fields = %v", fields)
			}
			return map[string]string{"intro": `[["CMSC","151"],["MATH","151"]]`}, nil
		},
	}
	src := NewRedisSource(ms, "catalog:test")

	got, err := src.Lookup(context.Background(), []string{"intro", "quantum"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string][]course.ID{
		"intro": {course.NewID("CMSC", "151"), course.NewID("MATH", "151")},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v", got)
	}
}

func TestRedisSource_DefaultKey(t *testing.T) {
	var seen string
	ms := &mockHashStore{
		existsFn: func(_ context.Context, key string) (bool, error) {
			seen = key
			return true, nil
		},
	}
	if err := NewRedisSource(ms, "").Check(context.Background()); err != nil {
		t.Fatal(err)
	}
	if seen != DefaultRedisKey {
		t.Errorf("key = %s", seen)
	}
}

func TestRedisSource_MissingHash(t *testing.T) {
	ms := &mockHashStore{
		existsFn: func(context.Context, string) (bool, error) { return false, nil },
		hmgetFn: func(context.Context, string, ...string) (map[string]string, error) {
			t.Error("HMGET must not run when the hash is missing")
			return nil, nil
		},
	}
	_, err := NewRedisSource(ms, "k").Lookup(context.Background(), []string{"intro"})
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestRedisSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		ms   *mockHashStore
	}{
		{"exists fails", &mockHashStore{
			existsFn: func(context.Context, string) (bool, error) { return false, errors.New("timeout") },
		}},
		{"hmget fails", &mockHashStore{
			hmgetFn: func(context.Context, string, ...string) (map[string]string, error) {
				return nil, errors.New("timeout")
			},
		}},
		{"malformed value", &mockHashStore{
			hmgetFn: func(context.Context, string, ...string) (map[string]string, error) {
				return map[string]string{"intro": "not json"}, nil
			},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRedisSource(tc.ms, "k").Lookup(context.Background(), []string{"intro"})
			if !errors.Is(err, domain.ErrIndexUnavailable) {
				t.Fatalf("expected ErrIndexUnavailable, got %v", err)
			}
		})
	}
}

func TestRedisSource_Publish(t *testing.T) {
	var got map[string]string
	ms := &mockHashStore{
		replaceFn: func(_ context.Context, key string, fields map[string]string) error {
			if key != "k" {
				t.Errorf("key = %s", key)
			}
			got = fields
			return nil
		},
	}
	idx := catalog.NewIndex(map[string][]course.ID{
		"intro": {course.NewID("CMSC", "151")},
	})
	if err := NewRedisSource(ms, "k").Publish(context.Background(), idx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"intro": `[["CMSC","151"]]`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %v", got)
	}
}
