package section

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/coursedex/internal/db"
	"github.com/kailas-cloud/coursedex/internal/db/sqlite"
	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
)

func TestFind_EmptyRequestSkipsStore(t *testing.T) {
	mq := &mockQuerier{}
	repo := New(mq)

	res, err := repo.Find(context.Background(), facet.MustRequest(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsEmpty() || len(res.Columns) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
	if len(mq.calls) != 0 {
		t.Errorf("store called %d times", len(mq.calls))
	}
}

func TestFind_RebindsForDialect(t *testing.T) {
	mq := &mockQuerier{dialect: db.DialectDollar}
	repo := New(mq)

	_, err := repo.Find(context.Background(), facet.MustRequest(map[string]any{"dept": "CMSC", "day": "M"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mq.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mq.calls))
	}
	sql := mq.calls[0].SQL
	if strings.Contains(sql, "?") || !strings.Contains(sql, "a.dept = $1") || !strings.Contains(sql, "b.day = $2") {
		t.Errorf("sql not rebound: %s", sql)
	}
}

func TestFind_Dedups(t *testing.T) {
	mq := &mockQuerier{
		queryFn: func(_ context.Context, _ db.Query) ([][]any, error) {
			return [][]any{
				{"CMSC", "151", "Intro"},
				{"CMSC", "151", "Intro"},
				{"CMSC", "152", "Intro II"},
			}, nil
		},
	}
	repo := New(mq)

	res, err := repo.Find(context.Background(), facet.MustRequest(map[string]any{"dept": "CMSC"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []result.Row{{"CMSC", "151", "Intro"}, {"CMSC", "152", "Intro II"}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %v", res.Rows)
	}
	if !reflect.DeepEqual(res.ColumnNames(), []string{"dept", "course_num", "title"}) {
		t.Errorf("columns = %v", res.ColumnNames())
	}
}

func TestFind_NoRowsIsEmptyPair(t *testing.T) {
	repo := New(&mockQuerier{})
	res, err := repo.Find(context.Background(), facet.MustRequest(map[string]any{"dept": "NONE"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Columns) != 0 || len(res.Rows) != 0 {
		t.Errorf("expected ([], []), got %+v", res)
	}
}

func TestFind_StorageFailure(t *testing.T) {
	mq := &mockQuerier{
		queryFn: func(_ context.Context, _ db.Query) ([][]any, error) {
			return nil, &db.Error{Op: db.OpQuery, Err: errors.New("no such table: course")}
		},
	}
	repo := New(mq)

	_, err := repo.Find(context.Background(), facet.MustRequest(map[string]any{"dept": "CMSC"}))
	if !errors.Is(err, domain.ErrStorageFailure) {
		t.Fatalf("expected ErrStorageFailure, got %v", err)
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Error("expected the db.Error cause to be preserved")
	}
}

func TestFind_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "courses.db")
	cmsc151 := course.NewID("CMSC", "151")
	cmsc152 := course.NewID("CMSC", "152")
	err := sqlite.CreateFixture(ctx, path, sqlite.Fixture{
		Courses: []course.Course{
			{ID: cmsc151, Title: "Intro"},
			{ID: cmsc152, Title: "Intro II"},
		},
		Sections: []course.Section{
			{Course: cmsc151, Number: "01", Day: "M", TimeStart: 540, TimeEnd: 590, Building: "A", Enrollment: 30},
			{Course: cmsc151, Number: "02", Day: "W", TimeStart: 600, TimeEnd: 650, Building: "A", Enrollment: course.UnknownEnrollment},
			{Course: cmsc152, Number: "01", Day: "T", TimeStart: 540, TimeEnd: 620, Building: "B", Enrollment: 12},
		},
		Buildings: []course.Building{
			{Code: "A", Lon: -87.6000, Lat: 41.7900},
			{Code: "B", Lon: -87.6000, Lat: 41.7945},
		},
	})
	if err != nil {
		t.Fatalf("CreateFixture: %v", err)
	}

	store, err := sqlite.NewStore(sqlite.Config{Path: path})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(store.Close)
	repo := New(store)

	t.Run("enroll_upper excludes unknown enrollment", func(t *testing.T) {
		for _, upper := range []int{0, 30, 1000} {
			res, err := repo.Find(ctx, facet.MustRequest(map[string]any{"enroll_upper": upper}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, row := range res.Rows {
				if row[len(row)-1] == int64(course.UnknownEnrollment) {
					t.Errorf("upper=%d: sentinel row returned: %v", upper, row)
				}
			}
		}
	})

	t.Run("day disjunction", func(t *testing.T) {
		res, err := repo.Find(ctx, facet.MustRequest(map[string]any{"day": []any{"M", "T"}}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Rows) != 2 {
			t.Errorf("expected 2 rows, got %v", res.Rows)
		}
	})

	t.Run("time window", func(t *testing.T) {
		res, err := repo.Find(ctx, facet.MustRequest(map[string]any{"time_start": 540, "time_end": 600}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []result.Row{{"CMSC", "151", "01", "M", int64(540), int64(590)}}
		if !reflect.DeepEqual(res.Rows, want) {
			t.Errorf("rows = %v", res.Rows)
		}
	})

	t.Run("terms only returns every course row", func(t *testing.T) {
		res, err := repo.Find(ctx, facet.MustRequest(map[string]any{"terms": "anything"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := make(map[string]bool, len(res.Rows))
		for _, row := range res.Rows {
			got[row.Key()] = true
		}
		want := []result.Row{{"CMSC", "151", "Intro"}, {"CMSC", "152", "Intro II"}}
		if len(res.Rows) != len(want) {
			t.Fatalf("rows = %v", res.Rows)
		}
		for _, row := range want {
			if !got[row.Key()] {
				t.Errorf("missing row %v", row)
			}
		}
	})

	t.Run("walking time to building", func(t *testing.T) {
		res, err := repo.Find(ctx, facet.MustRequest(map[string]any{
			"dept": "CMSC", "building": "B", "walking_time": 15,
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Rows) != 3 {
			t.Fatalf("expected 3 rows, got %v", res.Rows)
		}
		for _, row := range res.Rows {
			minutes, ok := row[7].(float64)
			if !ok || minutes > 15 {
				t.Errorf("walking time = %v", row[7])
			}
		}
	})
}
