package section

import (
	"strings"

	"github.com/kailas-cloud/coursedex/internal/db"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
)

const (
	baseFrom     = "course AS a JOIN section AS b ON a.course_id = b.course_id"
	buildingJoin = " JOIN gps AS c ON b.building = c.building JOIN gps AS d ON d.building = ?"
	walkingExpr  = "walking_time(c.lon, c.lat, d.lon, d.lat)"
)

type column struct {
	name result.Column
	expr string
}

// columnGroup adds its columns when any trigger facet is requested.
// A group without triggers is always selected.
type columnGroup struct {
	triggers []facet.Name
	columns  []column
}

var columnGroups = []columnGroup{
	{
		columns: []column{
			{result.ColDept, "a.dept"},
			{result.ColCourseNum, "a.course_num"},
		},
	},
	{
		triggers: []facet.Name{
			facet.SectionNum, facet.Day, facet.TimeStart, facet.TimeEnd,
			facet.WalkingTime, facet.Building, facet.EnrollLower, facet.EnrollUpper,
		},
		columns: []column{
			{result.ColSectionNum, "b.section_num"},
			{result.ColDay, "b.day"},
			{result.ColTimeStart, "b.time_start"},
			{result.ColTimeEnd, "b.time_end"},
		},
	},
	{
		triggers: []facet.Name{facet.WalkingTime, facet.Building},
		columns: []column{
			{result.ColBuilding, "b.building"},
			{result.ColWalkingTime, walkingExpr},
		},
	},
	{
		triggers: []facet.Name{facet.EnrollLower, facet.EnrollUpper},
		columns: []column{
			{result.ColEnrollment, "b.enroll"},
		},
	},
	{
		triggers: []facet.Name{facet.Terms, facet.Dept},
		columns: []column{
			{result.ColTitle, "a.title"},
		},
	},
}

// predicate emits one WHERE clause for a requested facet.
type predicate struct {
	facet facet.Name
	build func(r facet.Request) (string, []any)
}

// predicates are ANDed in table order. section_num, building and terms
// constrain nothing here: building is bound by the join, terms by text search.
var predicates = []predicate{
	{facet.Dept, func(r facet.Request) (string, []any) {
		return "a.dept = ?", []any{r.String(facet.Dept)}
	}},
	{facet.Day, func(r facet.Request) (string, []any) {
		days := r.Strings(facet.Day)
		parts := make([]string, len(days))
		args := make([]any, len(days))
		for i, d := range days {
			parts[i] = "b.day = ?"
			args[i] = d
		}
		return "(" + strings.Join(parts, " OR ") + ")", args
	}},
	{facet.TimeStart, func(r facet.Request) (string, []any) {
		return "b.time_start >= ?", []any{r.Int(facet.TimeStart)}
	}},
	{facet.TimeEnd, func(r facet.Request) (string, []any) {
		return "b.time_end <= ?", []any{r.Int(facet.TimeEnd)}
	}},
	{facet.WalkingTime, func(r facet.Request) (string, []any) {
		return walkingExpr + " <= ?", []any{r.Float(facet.WalkingTime)}
	}},
	{facet.EnrollLower, func(r facet.Request) (string, []any) {
		return "b.enroll >= ?", []any{r.Int(facet.EnrollLower)}
	}},
	{facet.EnrollUpper, func(r facet.Request) (string, []any) {
		return "b.enroll <= ? AND b.enroll > -1", []any{r.Int(facet.EnrollUpper)}
	}},
}

// Plan is a structured query ready to execute, with the columns it projects.
type Plan struct {
	Columns []result.Column
	Query   db.Query
}

// Columns returns the projected columns for r.
func Columns(r facet.Request) []result.Column {
	if r.OnlyTerms() {
		return []result.Column{result.ColDept, result.ColCourseNum, result.ColTitle}
	}
	var out []result.Column
	for _, g := range selectedGroups(r) {
		for _, c := range g.columns {
			out = append(out, c.name)
		}
	}
	return out
}

// Build translates r into a '?'-placeholder query. The request must not be empty.
func Build(r facet.Request) Plan {
	if r.OnlyTerms() {
		return Plan{
			Columns: Columns(r),
			Query:   db.Query{SQL: "SELECT a.dept, a.course_num, a.title FROM " + baseFrom},
		}
	}

	var (
		cols  []result.Column
		exprs []string
		args  []any
	)
	for _, g := range selectedGroups(r) {
		for _, c := range g.columns {
			cols = append(cols, c.name)
			exprs = append(exprs, c.expr)
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(exprs, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(baseFrom)
	if r.Has(facet.Building) {
		sb.WriteString(buildingJoin)
		args = append(args, r.String(facet.Building))
	}

	var clauses []string
	for _, p := range predicates {
		if !r.Has(p.facet) {
			continue
		}
		clause, a := p.build(r)
		clauses = append(clauses, clause)
		args = append(args, a...)
	}
	if len(clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " AND "))
	}

	return Plan{Columns: cols, Query: db.Query{SQL: sb.String(), Args: args}}
}

func selectedGroups(r facet.Request) []columnGroup {
	out := make([]columnGroup, 0, len(columnGroups))
	for _, g := range columnGroups {
		if len(g.triggers) == 0 || r.HasAny(g.triggers...) {
			out = append(out, g)
		}
	}
	return out
}
