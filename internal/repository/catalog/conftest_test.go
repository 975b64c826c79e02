package catalog

import "context"

// mockHashStore implements hashStore for tests.
type mockHashStore struct {
	existsFn  func(ctx context.Context, key string) (bool, error)
	hmgetFn   func(ctx context.Context, key string, fields ...string) (map[string]string, error)
	replaceFn func(ctx context.Context, key string, fields map[string]string) error
}

func (m *mockHashStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return true, nil
}

func (m *mockHashStore) HMGet(ctx context.Context, key string, fields ...string) (map[string]string, error) {
	if m.hmgetFn != nil {
		return m.hmgetFn(ctx, key, fields...)
	}
	return map[string]string{}, nil
}

func (m *mockHashStore) ReplaceHash(ctx context.Context, key string, fields map[string]string) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, key, fields)
	}
	return nil
}
