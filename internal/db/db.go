package db

import (
	"context"
	"time"
)

// Store is the structured course/section store facade.
type Store interface {
	Pinger
	Querier
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Querier runs parameterized read queries.
type Querier interface {
	// Query executes q and returns every row as positional values.
	// Text is returned as string, integers as int64 and reals as float64.
	Query(ctx context.Context, q Query) ([][]any, error)
	// Dialect reports the placeholder syntax the store expects.
	Dialect() Dialect
}

// WaitForReady polls p until it answers or timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := p.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return &Error{Op: OpConnect, Err: ctx.Err()}
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
