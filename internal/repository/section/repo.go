// Package section runs facet-driven structured queries against the course store.
package section

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/coursedex/internal/db"
	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
)

// Repo implements usecase/discovery.SectionRepository.
type Repo struct {
	store db.Querier
}

// New creates a section repository.
func New(s db.Querier) *Repo {
	return &Repo{store: s}
}

// Find runs the structured query for r and returns its deduplicated rows.
// An empty request yields the empty result without touching the store.
func (r *Repo) Find(ctx context.Context, req facet.Request) (result.Result, error) {
	if req.IsEmpty() {
		return result.Empty(), nil
	}

	plan := Build(req)
	q := db.Query{
		SQL:  r.store.Dialect().Rebind(plan.Query.SQL),
		Args: plan.Query.Args,
	}

	raw, err := r.store.Query(ctx, q)
	if err != nil {
		return result.Result{}, fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}
	if len(raw) == 0 {
		return result.Empty(), nil
	}

	rows := make([]result.Row, len(raw))
	for i, vals := range raw {
		rows[i] = result.Row(vals)
	}
	return result.New(plan.Columns, result.Dedup(rows)), nil
}
