package discovery

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
)

func titleResult(rows ...result.Row) result.Result {
	return result.New([]result.Column{result.ColDept, result.ColCourseNum, result.ColTitle}, rows)
}

func TestMatches(t *testing.T) {
	key := id("CMSC", "151")
	tests := []struct {
		indexed course.ID
		want    bool
	}{
		{id("CMSC", "151"), true},
		{id("CMS", "151"), true},
		{id("CM", "151"), true},
		{id("C", "151"), true},
		{id("", "151"), true},
		{id("XMSC", "151"), false},
		{id("CMSC", "152"), false},
		{id("CMSCX", "151"), false},
	}
	for _, tc := range tests {
		if got := Matches(tc.indexed, key); got != tc.want {
			t.Errorf("Matches(%v, %v) = %v, want %v", tc.indexed, key, got, tc.want)
		}
	}
}

func TestMatches_StripClampsAtEmpty(t *testing.T) {
	if !Matches(id("", "10"), id("EC", "10")) {
		t.Error("stripping past the department length should leave an empty code")
	}
	if Matches(id("E", "10"), id("LONGDEPT", "10")) {
		t.Error("at most four characters are stripped")
	}
}

func TestReconcile_FuzzyDepartment(t *testing.T) {
	res := titleResult(result.Row{"CMSC", "151", "Intro"})

	for _, indexed := range []course.ID{id("CMS", "151"), id("CM", "151")} {
		got := Reconcile(res, []course.ID{indexed})
		if !reflect.DeepEqual(got.Rows, res.Rows) {
			t.Errorf("%v: rows = %v", indexed, got.Rows)
		}
		if !reflect.DeepEqual(got.Columns, res.Columns) {
			t.Errorf("%v: columns changed: %v", indexed, got.Columns)
		}
	}

	got := Reconcile(res, []course.ID{id("XMSC", "151")})
	if len(got.Rows) != 0 || len(got.Columns) != 0 {
		t.Errorf("XMSC must not match, got %+v", got)
	}
}

func TestReconcile_EmptyInputs(t *testing.T) {
	res := titleResult(result.Row{"CMSC", "151", "Intro"})

	if got := Reconcile(result.Empty(), []course.ID{id("CMSC", "151")}); len(got.Columns) != 0 || len(got.Rows) != 0 {
		t.Errorf("no rows: got %+v", got)
	}
	if got := Reconcile(res, nil); len(got.Columns) != 0 || len(got.Rows) != 0 {
		t.Errorf("no ids: got %+v", got)
	}
}

func TestReconcile_DuplicateIdentifiers(t *testing.T) {
	sections := result.New(
		[]result.Column{result.ColDept, result.ColCourseNum, result.ColSectionNum},
		[]result.Row{
			{"CMSC", "151", "01"},
			{"CMSC", "151", "02"},
			{"CMSC", "151", "03"},
		},
	)

	l := buildLookup(sections.Rows)
	wantKeys := []course.ID{id("CMSC", "151"), id("CMSC1", "151"), id("CMSC2", "151")}
	if !reflect.DeepEqual(l.keys, wantKeys) {
		t.Fatalf("keys = %v", l.keys)
	}

	// CMSC matches its own key and, by stripping the counter, the collision keys.
	got := Reconcile(sections, []course.ID{id("CMSC", "151")})
	if !reflect.DeepEqual(got.Rows, sections.Rows) {
		t.Errorf("rows = %v", got.Rows)
	}
}

func TestBuildLookup_Collisions(t *testing.T) {
	tests := []struct {
		name string
		rows []result.Row
		want []course.ID
	}{
		{
			name: "synthesized key free",
			rows: []result.Row{{"CMSC1", "151", "a"}, {"CMSC", "151", "b"}, {"CMSC", "151", "c"}},
			want: []course.ID{id("CMSC1", "151"), id("CMSC", "151"), id("CMSC2", "151")},
		},
		{
			name: "synthesized key taken drops the row",
			rows: []result.Row{{"CMSC", "151", "a"}, {"CMSC2", "151", "b"}, {"CMSC", "151", "c"}},
			want: []course.ID{id("CMSC", "151"), id("CMSC2", "151")},
		},
		{
			name: "collision on a synthesized key",
			rows: []result.Row{{"CMSC", "151", "a"}, {"CMSC", "151", "b"}, {"CMSC1", "151", "c"}},
			want: []course.ID{id("CMSC", "151"), id("CMSC1", "151"), id("CMSC12", "151")},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := buildLookup(tc.rows)
			if !reflect.DeepEqual(l.keys, tc.want) {
				t.Errorf("keys = %v, want %v", l.keys, tc.want)
			}
		})
	}
}

func TestReconcile_RowsAddedOnce(t *testing.T) {
	res := titleResult(result.Row{"CMSC", "151", "Intro"})
	got := Reconcile(res, []course.ID{id("CM", "151"), id("CMS", "151"), id("CMSC", "151")})
	if len(got.Rows) != 1 {
		t.Errorf("rows = %v", got.Rows)
	}
}

func TestReconcile_OrderFollowsIdentifiers(t *testing.T) {
	res := titleResult(
		result.Row{"MATH", "195", "Proofs"},
		result.Row{"CMSC", "151", "Intro"},
	)
	got := Reconcile(res, []course.ID{id("CMSC", "151"), id("MATH", "195")})
	want := []result.Row{{"CMSC", "151", "Intro"}, {"MATH", "195", "Proofs"}}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("rows = %v", got.Rows)
	}
}
