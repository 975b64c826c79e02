package section

import (
	"context"

	"github.com/kailas-cloud/coursedex/internal/db"
)

// mockQuerier implements db.Querier for tests.
type mockQuerier struct {
	dialect db.Dialect
	queryFn func(ctx context.Context, q db.Query) ([][]any, error)
	calls   []db.Query
}

func (m *mockQuerier) Query(ctx context.Context, q db.Query) ([][]any, error) {
	m.calls = append(m.calls, q)
	if m.queryFn != nil {
		return m.queryFn(ctx, q)
	}
	return nil, nil
}

func (m *mockQuerier) Dialect() db.Dialect { return m.dialect }
