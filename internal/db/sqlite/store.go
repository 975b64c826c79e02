// Package sqlite implements db.Store on SQLite via mattn/go-sqlite3, with the
// walking_time scalar registered on every connection.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/kailas-cloud/coursedex/internal/db"
	"github.com/kailas-cloud/coursedex/internal/domain/geo"
)

// DriverName is the database/sql driver registered by this package.
const DriverName = "sqlite3_coursedex"

// WalkingTimeFunc is the SQL name of the walking-time scalar.
const WalkingTimeFunc = "walking_time"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc(WalkingTimeFunc, geo.WalkingMinutes, true)
			},
		})
	})
}

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds SQLite connection parameters.
type Config struct {
	Path         string
	ReadOnly     bool
	MaxOpenConns int
	BusyTimeout  time.Duration
}

// Store implements db.Store on a SQLite file.
type Store struct {
	db *sql.DB
}

// NewStore opens the database at cfg.Path.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	registerDriver()

	handle, err := sql.Open(DriverName, dsn(cfg))
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	if cfg.MaxOpenConns > 0 {
		handle.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return &Store{db: handle}, nil
}

func dsn(cfg Config) string {
	params := url.Values{}
	if cfg.ReadOnly {
		params.Set("mode", "ro")
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	params.Set("_busy_timeout", fmt.Sprint(busy.Milliseconds()))
	return "file:" + uriPath(cfg.Path) + "?" + params.Encode()
}

// uriPath percent-escapes each path segment so '?', '#' and '%' in file
// names are not read as URI syntax.
func uriPath(p string) string {
	segments := strings.Split(p, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}

// Dialect reports '?' placeholders.
func (s *Store) Dialect() db.Dialect { return db.DialectQuestion }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Close releases the connection pool.
func (s *Store) Close() {
	_ = s.db.Close()
}

// Query runs q and returns every row as normalized positional values.
func (s *Store) Query(ctx context.Context, q db.Query) ([][]any, error) {
	rows, err := s.db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		for i := range vals {
			vals[i] = db.NormalizeValue(vals[i])
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return out, nil
}
