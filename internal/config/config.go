package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the coursedex configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Crawler  CrawlerConfig  `yaml:"crawler"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds structured store settings.
type DatabaseConfig struct {
	Driver           string `yaml:"driver"` // sqlite, postgres (default: sqlite)
	Path             string `yaml:"path"`   // sqlite file
	DSN              string `yaml:"dsn"`    // postgres connection string
	MaxConns         int    `yaml:"max_conns"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// Catalog sources.
const (
	CatalogFile  = "file"
	CatalogRedis = "redis"
)

// CatalogConfig holds catalog index settings.
type CatalogConfig struct {
	Source string             `yaml:"source"` // file, redis (default: file)
	Path   string             `yaml:"path"`
	Redis  CatalogRedisConfig `yaml:"redis"`
}

// CatalogRedisConfig holds the Redis connection for a published index.
type CatalogRedisConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	Key      string   `yaml:"key"`
}

// CrawlerConfig holds catalog crawler settings.
type CrawlerConfig struct {
	StartURL   string `yaml:"start_url"`
	Domain     string `yaml:"domain"`
	MaxPages   int    `yaml:"max_pages"`
	Workers    int    `yaml:"workers"`
	TimeoutSec int    `yaml:"timeout_sec"`
	UserAgent  string `yaml:"user_agent"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogFile
	}
	if c.Catalog.Redis.Key == "" {
		c.Catalog.Redis.Key = "coursedex:catalog"
	}
	if c.Crawler.MaxPages == 0 {
		c.Crawler.MaxPages = 1000
	}
	if c.Crawler.Workers <= 0 {
		c.Crawler.Workers = 8
	}
	if c.Crawler.TimeoutSec <= 0 {
		c.Crawler.TimeoutSec = 10
	}
	if c.Crawler.UserAgent == "" {
		c.Crawler.UserAgent = "coursedex-crawler"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for driver %q", DriverSQLite)
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	switch c.Catalog.Source {
	case CatalogFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", CatalogFile)
		}
	case CatalogRedis:
		if len(c.Catalog.Redis.Addrs) == 0 {
			return fmt.Errorf("catalog.redis.addrs is required for source %q", CatalogRedis)
		}
	default:
		return fmt.Errorf("catalog.source must be %q or %q, got %q", CatalogFile, CatalogRedis, c.Catalog.Source)
	}
	if c.Crawler.MaxPages < 0 {
		return fmt.Errorf("crawler.max_pages must not be negative, got %d", c.Crawler.MaxPages)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
