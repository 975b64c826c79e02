// Package result holds the projected rows returned by course discovery.
package result

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// Column is the name of a projected output column.
type Column string

// Output columns, in the order they may be projected.
const (
	ColDept        Column = "dept"
	ColCourseNum   Column = "course_num"
	ColSectionNum  Column = "section_num"
	ColDay         Column = "day"
	ColTimeStart   Column = "time_start"
	ColTimeEnd     Column = "time_end"
	ColBuilding    Column = "building"
	ColWalkingTime Column = "walking_time"
	ColEnrollment  Column = "enrollment"
	ColTitle       Column = "title"
)

// Row is one projected tuple; its arity and order follow the result columns.
type Row []any

// CourseID returns the (department, course number) pair held in the first two columns.
func (r Row) CourseID() course.ID {
	if len(r) < 2 {
		return course.ID{}
	}
	return course.NewID(fmt.Sprint(r[0]), fmt.Sprint(r[1]))
}

// Key is the row identity used for deduplication: the full tuple of selected values.
func (r Row) Key() string {
	var b strings.Builder
	for i, v := range r {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		fmt.Fprintf(&b, "%#v", v)
	}
	return b.String()
}

// Result is the (columns, rows) pair answered by a discovery request.
type Result struct {
	Columns []Column
	Rows    []Row
}

// Empty returns the empty ([], []) result.
func Empty() Result {
	return Result{Columns: []Column{}, Rows: []Row{}}
}

// New creates a result.
func New(columns []Column, rows []Row) Result {
	return Result{Columns: columns, Rows: rows}
}

// IsEmpty reports whether the result carries no rows.
func (r Result) IsEmpty() bool { return len(r.Rows) == 0 }

// ColumnNames returns the columns as plain strings.
func (r Result) ColumnNames() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = string(c)
	}
	return out
}

// Dedup removes rows with identical tuples, keeping the first occurrence.
func Dedup(rows []Row) []Row {
	seen := make(map[string]struct{}, len(rows))
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		k := row.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}
