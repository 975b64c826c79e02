// Package postgres implements db.Store on PostgreSQL via a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/coursedex/internal/db"
)

// createWalkingTime installs the walking_time scalar. It must agree with geo.WalkingMinutes:
// haversine over a 6367 km Earth radius, divided by 1.1 m/s walking speed, in minutes.
const createWalkingTime = `CREATE OR REPLACE FUNCTION walking_time(
  lon1 double precision, lat1 double precision, lon2 double precision, lat2 double precision
) RETURNS double precision
LANGUAGE sql IMMUTABLE STRICT PARALLEL SAFE AS $$
  SELECT 6367000.0 * 2 * asin(sqrt(least(1.0,
    power(sin(radians(lat2 - lat1) / 2), 2) +
    cos(radians(lat1)) * cos(radians(lat2)) * power(sin(radians(lon2 - lon1) / 2), 2)
  ))) / (1.1 * 60)
$$`

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds PostgreSQL connection parameters.
type Config struct {
	DSN      string
	MaxConns int
}

// Store implements db.Store on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool and installs the walking_time function.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}

	if _, err := pool.Exec(ctx, createWalkingTime); err != nil {
		pool.Close()
		return nil, &db.Error{Op: db.OpRegister, Err: err}
	}

	return &Store{pool: pool}, nil
}

// Dialect reports '$n' placeholders.
func (s *Store) Dialect() db.Dialect { return db.DialectDollar }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}

// Close shuts the pool down.
func (s *Store) Close() {
	s.pool.Close()
}

// Query runs q and returns every row as normalized positional values.
func (s *Store) Query(ctx context.Context, q db.Query) ([][]any, error) {
	rows, err := s.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
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
