// Package catalog holds the catalog index: an immutable mapping from a
// lowercase word to the courses whose title or description contains it.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// Index is a read-only word -> course identifier snapshot.
type Index struct {
	words map[string][]course.ID
}

// NewIndex copies entries into an immutable index. Duplicate identifiers per word are dropped.
func NewIndex(entries map[string][]course.ID) *Index {
	words := make(map[string][]course.ID, len(entries))
	for w, ids := range entries {
		words[w] = uniqueIDs(ids)
	}
	return &Index{words: words}
}

// Lookup returns the identifiers indexed under word. The slice must not be modified.
func (i *Index) Lookup(word string) []course.ID {
	if i == nil {
		return nil
	}
	return i.words[word]
}

// Len returns the number of indexed words.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.words)
}

// Words returns the indexed words in sorted order.
func (i *Index) Words() []string {
	if i == nil {
		return nil
	}
	out := make([]string, 0, len(i.words))
	for w := range i.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON writes the artifact format: {"word": [["DEPT","NUM"], ...]}.
func (i *Index) MarshalJSON() ([]byte, error) {
	if i == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(i.words)
}

// Decode reads an index artifact.
func Decode(r io.Reader) (*Index, error) {
	var entries map[string][]course.ID
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog index: %w", err)
	}
	if entries == nil {
		return nil, fmt.Errorf("decode catalog index: not an object")
	}
	return NewIndex(entries), nil
}

// Builder accumulates index entries before producing an immutable Index.
type Builder struct {
	words map[string]map[course.ID]struct{}
	order map[string][]course.ID
}

// NewBuilder creates an empty index builder.
func NewBuilder() *Builder {
	return &Builder{
		words: make(map[string]map[course.ID]struct{}),
		order: make(map[string][]course.ID),
	}
}

// Add records that course id is described by word.
func (b *Builder) Add(word string, id course.ID) {
	set, ok := b.words[word]
	if !ok {
		set = make(map[course.ID]struct{})
		b.words[word] = set
	}
	if _, dup := set[id]; dup {
		return
	}
	set[id] = struct{}{}
	b.order[word] = append(b.order[word], id)
}

// Build returns an immutable snapshot of everything added so far.
func (b *Builder) Build() *Index {
	return NewIndex(b.order)
}

func uniqueIDs(ids []course.ID) []course.ID {
	seen := make(map[course.ID]struct{}, len(ids))
	out := make([]course.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
