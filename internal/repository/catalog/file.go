// Package catalog serves catalog index lookups from a JSON artifact or a Redis hash.
package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/catalog"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// FileSource reads the index artifact from disk on every call, so each
// lookup sees a complete snapshot of whatever was last written.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the JSON artifact at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Lookup returns the identifiers indexed under each word. Words absent from
// the index are absent from the returned map.
func (s *FileSource) Lookup(_ context.Context, words []string) (map[string][]course.ID, error) {
	idx, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]course.ID, len(words))
	for _, w := range words {
		if ids := idx.Lookup(w); len(ids) > 0 {
			out[w] = ids
		}
	}
	return out, nil
}

// Check reports whether the artifact can be loaded.
func (s *FileSource) Check(_ context.Context) error {
	_, err := s.Load()
	return err
}

// Load reads and decodes the whole artifact.
func (s *FileSource) Load() (*catalog.Index, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	defer f.Close()

	idx, err := catalog.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrIndexUnavailable, s.path, err)
	}
	return idx, nil
}

// WriteFile writes idx as a JSON artifact at path, replacing it atomically.
func WriteFile(path string, idx *catalog.Index) error {
	data, err := idx.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode catalog index: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write catalog index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write catalog index: %w", err)
	}
	return nil
}
