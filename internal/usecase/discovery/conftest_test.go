package discovery

import (
	"context"
	"os"
	"testing"

	"github.com/kailas-cloud/coursedex/internal/domain/catalog"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
	"github.com/kailas-cloud/coursedex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterDiscoveryMetrics()
	os.Exit(m.Run())
}

type mockSections struct {
	findFn func(ctx context.Context, req facet.Request) (result.Result, error)
	calls  int
}

func (m *mockSections) Find(ctx context.Context, req facet.Request) (result.Result, error) {
	m.calls++
	if m.findFn != nil {
		return m.findFn(ctx, req)
	}
	return result.Empty(), nil
}

// indexSource serves lookups from an in-memory index.
type indexSource struct {
	idx   *catalog.Index
	err   error
	calls int
}

func (s *indexSource) Lookup(_ context.Context, words []string) (map[string][]course.ID, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string][]course.ID, len(words))
	for _, w := range words {
		if ids := s.idx.Lookup(w); len(ids) > 0 {
			out[w] = ids
		}
	}
	return out, nil
}

func newIndexSource(entries map[string][]course.ID) *indexSource {
	return &indexSource{idx: catalog.NewIndex(entries)}
}

func id(dept, num string) course.ID { return course.NewID(dept, num) }
