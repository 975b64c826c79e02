package crawler

import (
	"strings"

	"github.com/kailas-cloud/coursedex/internal/domain/catalog"
)

// Match is a search hit: a course title and the page it was found on.
type Match struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Snapshot is the immutable result of a completed crawl.
type Snapshot struct {
	entries []Entry
	visited int
	index   *catalog.Index
}

func newSnapshot(entries []Entry, visited int) *Snapshot {
	b := catalog.NewBuilder()
	for _, e := range entries {
		if !e.HasID() {
			continue
		}
		for _, w := range catalog.Tokenize(e.Title + " " + e.Description) {
			b.Add(w, e.ID)
		}
	}
	return &Snapshot{entries: entries, visited: visited, index: b.Build()}
}

// Search returns the courses whose title or description contains every
// word of query, unique by (title, url) and in discovery order.
func (s *Snapshot) Search(query string) []Match {
	words := catalog.Tokenize(query)
	if len(words) == 0 {
		return nil
	}

	seen := make(map[Match]struct{})
	var out []Match
	for _, e := range s.entries {
		if !containsAll(e, words) {
			continue
		}
		m := Match{Title: e.Title, URL: e.URL}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

func containsAll(e Entry, words []string) bool {
	for _, w := range words {
		if !strings.Contains(e.Title, w) && !strings.Contains(e.Description, w) {
			return false
		}
	}
	return true
}

// Catalog returns the word -> course identifier index built from the crawl.
func (s *Snapshot) Catalog() *catalog.Index { return s.index }

// Entries returns a copy of the extracted course blocks.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Visited returns the number of pages requested during the crawl.
func (s *Snapshot) Visited() int { return s.visited }
