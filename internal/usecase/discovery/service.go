// Package discovery answers course discovery requests by combining the
// structured section query with the catalog text search.
package discovery

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
	"github.com/kailas-cloud/coursedex/internal/logger"
)

// Compile-time check: Service implements Finder.
var _ Finder = (*Service)(nil)

// Service is the course discovery engine.
type Service struct {
	sections SectionRepository
	text     *TextSearch
}

// New creates a discovery service.
func New(sections SectionRepository, catalog CatalogSource) *Service {
	return &Service{sections: sections, text: NewTextSearch(catalog)}
}

// FindCourses runs the structured query for req and, when terms are given,
// narrows it to the courses the catalog index matches.
func (s *Service) FindCourses(ctx context.Context, req facet.Request) (result.Result, error) {
	if req.IsEmpty() {
		return result.Empty(), nil
	}
	log := logger.FromContext(ctx)

	res, err := s.sections.Find(ctx, req)
	if err != nil {
		return result.Result{}, fmt.Errorf("find sections: %w", err)
	}
	log.Debug("Structured query completed",
		zap.Strings("facets", req.Names()),
		zap.Int("rows", len(res.Rows)),
	)
	if res.IsEmpty() {
		return result.Empty(), nil
	}

	if !req.Has(facet.Terms) {
		return res, nil
	}

	ids, err := s.text.Search(ctx, req.String(facet.Terms))
	if err != nil {
		return result.Result{}, fmt.Errorf("text search: %w", err)
	}
	log.Debug("Text search completed", zap.Int("courses", len(ids)))

	merged := Reconcile(res, ids)
	log.Debug("Reconciliation completed", zap.Int("rows", len(merged.Rows)))
	return merged, nil
}
