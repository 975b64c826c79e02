package coursedex

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver           string
	path             string
	dsn              string
	maxConns         int
	catalogSource    string
	catalogPath      string
	redisAddrs       []string
	redisPassword    string
	redisKey         string
	readinessTimeout time.Duration
	logger           *zap.Logger
}

// WithSQLite opens the course/section store from a SQLite file (read-only).
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.driver = "sqlite"
		c.path = path
	}
}

// WithPostgres connects the course/section store to PostgreSQL.
func WithPostgres(dsn string, maxConns int) Option {
	return func(c *clientConfig) {
		c.driver = "postgres"
		c.dsn = dsn
		c.maxConns = maxConns
	}
}

// WithCatalogFile reads the catalog index from a JSON artifact.
func WithCatalogFile(path string) Option {
	return func(c *clientConfig) {
		c.catalogSource = "file"
		c.catalogPath = path
	}
}

// WithCatalogRedis reads a catalog index published to a Redis hash.
// An empty key selects the default.
func WithCatalogRedis(addrs []string, password, key string) Option {
	return func(c *clientConfig) {
		c.catalogSource = "redis"
		c.redisAddrs = addrs
		c.redisPassword = password
		c.redisKey = key
	}
}

// WithReadinessTimeout bounds how long Open waits for the store.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.readinessTimeout = d }
}

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
