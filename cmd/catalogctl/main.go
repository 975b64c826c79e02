// Command catalogctl crawls the course catalog into a text index, publishes
// the index to Redis, and runs discovery queries from the shell.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/coursedex/internal/logger"
	catalogrepo "github.com/kailas-cloud/coursedex/internal/repository/catalog"
	"github.com/kailas-cloud/coursedex/internal/version"
)

const loggerKey = "logger"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "catalogctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "catalogctl",
		Usage:   "Build and query the course catalog index",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		After: func(c *cli.Context) error {
			_ = loggerFrom(c).Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "crawl",
				Usage:  "Crawl catalog pages and write the word index",
				Before: crawlerConfigDefaults,
				Action: crawlCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "start",
						Usage: "Start URL",
						Value: "http://www.classes.cs.uchicago.edu/archive/2015/winter/12200-1/new.collegecatalog.uchicago.edu/index.html",
					},
					&cli.StringFlag{
						Name:  "domain",
						Usage: "Only follow links within this domain and its subdomains",
						Value: "classes.cs.uchicago.edu",
					},
					&cli.IntFlag{
						Name:  "max-pages",
						Usage: "Maximum number of pages to request",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent fetches per level",
						Value: 8,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Per-request timeout",
						Value: 10 * time.Second,
					},
					&cli.StringFlag{
						Name:  "user-agent",
						Usage: "User-Agent header sent with every request",
						Value: "coursedex-crawler",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Write the index artifact to this path",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Print crawled courses whose title or description contains every word",
					},
				},
			},
			{
				Name:   "find",
				Usage:  "Run a course discovery query",
				Action: findCommand,
				Flags:  findFlags(),
			},
			{
				Name:   "push-index",
				Usage:  "Publish an index artifact to a Redis hash",
				Action: pushIndexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "in",
						Aliases:  []string{"i"},
						Usage:    "Index artifact path",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "redis",
						Usage:    "Redis address (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Usage:   "Redis password",
						EnvVars: []string{"COURSEDEX_REDIS_PASSWORD"},
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Redis hash key",
						Value: catalogrepo.DefaultRedisKey,
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	logger, err := logpkg.NewLogger("cli", c.String("log-level"))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[loggerKey] = logger
	return nil
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if l, ok := c.App.Metadata[loggerKey].(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
