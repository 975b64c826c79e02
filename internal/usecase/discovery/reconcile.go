package discovery

import (
	"strconv"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
)

// maxDeptStrip is the largest number of trailing department characters
// dropped when matching an index identifier against a store row.
const maxDeptStrip = 4

// lookup maps course identifiers to structured rows, preserving first-seen order.
// A row whose identifier is already taken is stored under a synthesized key
// (department suffixed with the row position), unless that key is taken too.
// Only the identifier is keyed, so duplicates beyond that are dropped.
type lookup struct {
	keys []course.ID
	rows map[course.ID]result.Row
}

func buildLookup(rows []result.Row) *lookup {
	l := &lookup{rows: make(map[course.ID]result.Row, len(rows))}
	for i, row := range rows {
		id := row.CourseID()
		if _, taken := l.rows[id]; taken {
			id = course.NewID(id.Dept+strconv.Itoa(i), id.Num)
			if _, taken := l.rows[id]; taken {
				continue
			}
		}
		l.keys = append(l.keys, id)
		l.rows[id] = row
	}
	return l
}

func (l *lookup) empty() bool { return len(l.keys) == 0 }

// Matches reports whether an index identifier names the course keyed by key:
// same number, and the index department equals the key department or the
// key department with 1 to 4 trailing characters removed.
func Matches(indexed, key course.ID) bool {
	if indexed.Num != key.Num {
		return false
	}
	for strip := 0; strip <= maxDeptStrip; strip++ {
		if indexed.Dept == trimRight(key.Dept, strip) {
			return true
		}
	}
	return false
}

func trimRight(s string, n int) string {
	if n >= len(s) {
		return ""
	}
	return s[:len(s)-n]
}

// Reconcile keeps the structured rows named by the text search identifiers.
// Identifiers are visited in the given order and lookup keys in row order;
// every matching row is kept once. Any empty side yields the empty result.
func Reconcile(res result.Result, ids []course.ID) result.Result {
	if res.IsEmpty() || len(ids) == 0 {
		return result.Empty()
	}
	l := buildLookup(res.Rows)
	if l.empty() {
		return result.Empty()
	}

	seen := make(map[string]struct{})
	var matched []result.Row
	for _, id := range ids {
		for _, key := range l.keys {
			if !Matches(id, key) {
				continue
			}
			row := l.rows[key]
			k := row.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			matched = append(matched, row)
		}
	}
	if len(matched) == 0 {
		return result.Empty()
	}
	return result.New(res.Columns, matched)
}
