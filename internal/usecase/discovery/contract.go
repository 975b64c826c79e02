package discovery

import (
	"context"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
)

// SectionRepository runs the structured facet query.
type SectionRepository interface {
	Find(ctx context.Context, req facet.Request) (result.Result, error)
}

// CatalogSource resolves words against the catalog index.
// Words missing from the index are absent from the returned map.
type CatalogSource interface {
	Lookup(ctx context.Context, words []string) (map[string][]course.ID, error)
}

// Finder answers course discovery requests.
type Finder interface {
	FindCourses(ctx context.Context, req facet.Request) (result.Result, error)
}
