package discovery

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/coursedex/internal/domain/catalog"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// TextSearch resolves free-text terms to the courses matching every word.
type TextSearch struct {
	source CatalogSource
}

// NewTextSearch creates a resolver over the given catalog source.
func NewTextSearch(src CatalogSource) *TextSearch {
	return &TextSearch{source: src}
}

// Search returns the identifiers indexed under every token of terms, sorted.
// Terms without any token match nothing.
func (t *TextSearch) Search(ctx context.Context, terms string) ([]course.ID, error) {
	tokens := catalog.Tokenize(terms)
	if len(tokens) == 0 {
		return nil, nil
	}

	words := uniqueStrings(tokens)
	hits, err := t.source.Lookup(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	var acc map[course.ID]struct{}
	for _, w := range words {
		set := make(map[course.ID]struct{}, len(hits[w]))
		for _, id := range hits[w] {
			if acc == nil {
				set[id] = struct{}{}
				continue
			}
			if _, ok := acc[id]; ok {
				set[id] = struct{}{}
			}
		}
		acc = set
		if len(acc) == 0 {
			return nil, nil
		}
	}

	out := make([]course.ID, 0, len(acc))
	for id := range acc {
		out = append(out, id)
	}
	course.SortIDs(out)
	return out, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
