// Package coursedex answers faceted course discovery queries against a
// course/section store and a catalog text index.
package coursedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex/internal/db"
	dbPostgres "github.com/kailas-cloud/coursedex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/coursedex/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/coursedex/internal/db/sqlite"
	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/course"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	catalogrepo "github.com/kailas-cloud/coursedex/internal/repository/catalog"
	sectionrepo "github.com/kailas-cloud/coursedex/internal/repository/section"
	discoveryuc "github.com/kailas-cloud/coursedex/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/coursedex/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Result is the answer to a discovery request: ordered column names and
// rows of positional values. Both are empty when nothing matches.
type Result struct {
	Columns []string
	Rows    [][]any
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component -> "ok"/"error"
}

// Client is the coursedex library entry point.
type Client struct {
	store   db.Store
	closers []func()
	finder  discoveryuc.Finder
	health  *healthuc.Service
}

// Open creates a Client and connects to the configured store.
func Open(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if cfg.driver == "" {
		return nil, errors.New("coursedex: store required (use WithSQLite or WithPostgres)")
	}

	ctx := context.Background()
	store, err := createStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("coursedex: database not ready: %w", err)
	}

	c := &Client{store: store}
	catalog, checker, err := c.createCatalog(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.health = healthuc.New(store, checker)

	c.finder = discoveryuc.NewInstrumented(
		discoveryuc.New(sectionrepo.New(store), catalog),
		cfg.logger,
	)
	return c, nil
}

func createStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "sqlite":
		s, err := dbSQLite.NewStore(dbSQLite.Config{Path: cfg.path, ReadOnly: true})
		if err != nil {
			return nil, fmt.Errorf("coursedex: create sqlite store: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := dbPostgres.NewStore(ctx, dbPostgres.Config{DSN: cfg.dsn, MaxConns: cfg.maxConns})
		if err != nil {
			return nil, fmt.Errorf("coursedex: create postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("coursedex: unknown driver %q", cfg.driver)
	}
}

// createCatalog returns the index source and its health checker; the
// checker is nil when no index is configured.
func (c *Client) createCatalog(cfg *clientConfig) (discoveryuc.CatalogSource, healthuc.CatalogChecker, error) {
	switch cfg.catalogSource {
	case "":
		return noCatalog{}, nil, nil
	case "file":
		src := catalogrepo.NewFileSource(cfg.catalogPath)
		return src, src, nil
	case "redis":
		rs, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.redisAddrs, Password: cfg.redisPassword})
		if err != nil {
			return nil, nil, fmt.Errorf("coursedex: create catalog redis client: %w", err)
		}
		c.closers = append(c.closers, rs.Close)
		src := catalogrepo.NewRedisSource(rs, cfg.redisKey)
		return src, src, nil
	default:
		return nil, nil, fmt.Errorf("coursedex: unknown catalog source %q", cfg.catalogSource)
	}
}

// FindCourses answers a discovery request. Facet names and value shapes
// follow the HTTP API: dept, section_num, day, time_start, time_end,
// walking_time, building, enroll_lower, enroll_upper and terms.
func (c *Client) FindCourses(ctx context.Context, facets map[string]any) (Result, error) {
	req, err := facet.NewRequest(facets)
	if err != nil {
		return Result{}, fmt.Errorf("find courses: %w", err)
	}
	res, err := c.finder.FindCourses(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("find courses: %w", err)
	}

	out := Result{
		Columns: res.ColumnNames(),
		Rows:    make([][]any, len(res.Rows)),
	}
	for i, row := range res.Rows {
		out.Rows[i] = row
	}
	return out, nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Health checks the store and, when configured, the catalog index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	for _, fn := range c.closers {
		fn()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// noCatalog is used when no index is configured: terms queries fail.
type noCatalog struct{}

func (noCatalog) Lookup(context.Context, []string) (map[string][]course.ID, error) {
	return nil, fmt.Errorf("%w: no catalog configured (use WithCatalogFile or WithCatalogRedis)",
		domain.ErrIndexUnavailable)
}
