package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/coursedex/internal/domain/course"
)

// FixtureSchema is the course/section/gps layout the discovery queries expect.
const FixtureSchema = `
CREATE TABLE course (
  course_id INTEGER PRIMARY KEY,
  dept TEXT NOT NULL,
  course_num TEXT NOT NULL,
  title TEXT
);
CREATE TABLE section (
  course_id INTEGER REFERENCES course(course_id),
  section_num TEXT,
  day TEXT,
  time_start INTEGER,
  time_end INTEGER,
  building TEXT,
  enroll INTEGER
);
CREATE TABLE gps (
  building TEXT PRIMARY KEY,
  lon REAL,
  lat REAL
);
`

// Fixture is the content of a test database.
type Fixture struct {
	Courses   []course.Course
	Sections  []course.Section
	Buildings []course.Building
}

// CreateFixture writes a fresh database at path (test-only).
func CreateFixture(ctx context.Context, path string, f Fixture) error {
	registerDriver()
	handle, err := sql.Open(DriverName, "file:"+uriPath(path))
	if err != nil {
		return err
	}
	defer handle.Close()

	tx, err := handle.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, FixtureSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	courseIDs := make(map[course.ID]int64, len(f.Courses))
	for _, c := range f.Courses {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO course (dept, course_num, title) VALUES (?, ?, ?)`,
			c.ID.Dept, c.ID.Num, c.Title)
		if err != nil {
			return fmt.Errorf("insert course %s: %w", c.ID, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		courseIDs[c.ID] = id
	}

	for _, s := range f.Sections {
		cid, ok := courseIDs[s.Course]
		if !ok {
			return fmt.Errorf("section %s references unknown course %s", s.Number, s.Course)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO section (course_id, section_num, day, time_start, time_end, building, enroll)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			cid, s.Number, s.Day, s.TimeStart, s.TimeEnd, s.Building, s.Enrollment); err != nil {
			return fmt.Errorf("insert section %s: %w", s.Number, err)
		}
	}

	for _, b := range f.Buildings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO gps (building, lon, lat) VALUES (?, ?, ?)`,
			b.Code, b.Lon, b.Lat); err != nil {
			return fmt.Errorf("insert building %s: %w", b.Code, err)
		}
	}

	return tx.Commit()
}
