package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex"
	"github.com/kailas-cloud/coursedex/internal/config"
	"github.com/kailas-cloud/coursedex/internal/crawler"
	dbRedis "github.com/kailas-cloud/coursedex/internal/db/redis"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	catalogrepo "github.com/kailas-cloud/coursedex/internal/repository/catalog"
)

// crawlerConfigDefaults fills crawl flags the user did not set from the
// crawler section of config/<ENV>.yaml, when one can be loaded.
func crawlerConfigDefaults(c *cli.Context) error {
	cfg, err := config.Load(config.GetEnv())
	if err != nil {
		loggerFrom(c).Debug("no config loaded, using flag defaults", zap.Error(err))
		return nil
	}
	cc := cfg.Crawler
	values := []struct{ flag, value string }{
		{"start", cc.StartURL},
		{"domain", cc.Domain},
		{"max-pages", strconv.Itoa(cc.MaxPages)},
		{"workers", strconv.Itoa(cc.Workers)},
		{"timeout", (time.Duration(cc.TimeoutSec) * time.Second).String()},
		{"user-agent", cc.UserAgent},
	}
	for _, v := range values {
		if v.value == "" || c.IsSet(v.flag) {
			continue
		}
		if err := c.Set(v.flag, v.value); err != nil {
			return fmt.Errorf("apply config %s: %w", v.flag, err)
		}
	}
	return nil
}

func crawlCommand(c *cli.Context) error {
	logger := loggerFrom(c)

	cr, err := crawler.New(crawler.Config{
		StartURL:  c.String("start"),
		Domain:    c.String("domain"),
		MaxPages:  c.Int("max-pages"),
		Workers:   c.Int("workers"),
		Timeout:   c.Duration("timeout"),
		UserAgent: c.String("user-agent"),
	}, crawler.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create crawler: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := cr.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("crawl: %w", err)
	}
	idx := snap.Catalog()

	if out := c.String("out"); out != "" {
		if err := catalogrepo.WriteFile(out, idx); err != nil {
			return err
		}
	}
	if q := c.String("search"); q != "" {
		for _, m := range snap.Search(q) {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", m.Title, m.URL)
		}
	}

	logger.Info("crawl finished",
		zap.Int("pages", snap.Visited()),
		zap.Int("courses", len(snap.Entries())),
		zap.Int("words", idx.Len()),
	)
	fmt.Fprintf(c.App.ErrWriter, "visited %d pages, %d courses, %d words\n",
		snap.Visited(), len(snap.Entries()), idx.Len())
	return nil
}

// facetFlags maps command-line flags to the facets they set.
var facetFlags = []struct {
	flag  string
	facet facet.Name
}{
	{"dept", facet.Dept},
	{"section-num", facet.SectionNum},
	{"day", facet.Day},
	{"time-start", facet.TimeStart},
	{"time-end", facet.TimeEnd},
	{"walking-time", facet.WalkingTime},
	{"building", facet.Building},
	{"enroll-lower", facet.EnrollLower},
	{"enroll-upper", facet.EnrollUpper},
	{"terms", facet.Terms},
}

func findFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "db", Usage: "SQLite database path"},
		&cli.StringFlag{Name: "dsn", Usage: "PostgreSQL connection string", EnvVars: []string{"COURSEDEX_DATABASE_DSN"}},
		&cli.StringFlag{Name: "catalog", Usage: "Index artifact path"},
		&cli.StringSliceFlag{Name: "redis", Usage: "Read the index from Redis at this address (repeatable)"},
		&cli.StringFlag{Name: "redis-key", Usage: "Redis hash key", Value: catalogrepo.DefaultRedisKey},
		&cli.BoolFlag{Name: "json", Usage: "Print the result as JSON"},

		&cli.StringFlag{Name: "dept", Usage: "Department code"},
		&cli.StringFlag{Name: "section-num", Usage: "Section number"},
		&cli.StringSliceFlag{Name: "day", Usage: "Meeting day pattern (repeatable, any may match)"},
		&cli.IntFlag{Name: "time-start", Usage: "Earliest start, minutes since midnight"},
		&cli.IntFlag{Name: "time-end", Usage: "Latest end, minutes since midnight"},
		&cli.Float64Flag{Name: "walking-time", Usage: "Maximum walking minutes from --building"},
		&cli.StringFlag{Name: "building", Usage: "Origin building code"},
		&cli.IntFlag{Name: "enroll-lower", Usage: "Minimum enrollment"},
		&cli.IntFlag{Name: "enroll-upper", Usage: "Maximum enrollment"},
		&cli.StringFlag{Name: "terms", Usage: "Words that must all appear in the catalog entry"},
	}
}

func facetsFromFlags(c *cli.Context) map[string]any {
	facets := make(map[string]any)
	for _, f := range facetFlags {
		if !c.IsSet(f.flag) {
			continue
		}
		switch f.facet {
		case facet.Day:
			facets[string(f.facet)] = c.StringSlice(f.flag)
		case facet.TimeStart, facet.TimeEnd, facet.EnrollLower, facet.EnrollUpper:
			facets[string(f.facet)] = c.Int(f.flag)
		case facet.WalkingTime:
			facets[string(f.facet)] = c.Float64(f.flag)
		default:
			facets[string(f.facet)] = c.String(f.flag)
		}
	}
	return facets
}

func findCommand(c *cli.Context) error {
	opts := []coursedex.Option{coursedex.WithLogger(loggerFrom(c))}
	switch {
	case c.String("db") != "":
		opts = append(opts, coursedex.WithSQLite(c.String("db")))
	case c.String("dsn") != "":
		opts = append(opts, coursedex.WithPostgres(c.String("dsn"), 0))
	default:
		return fmt.Errorf("one of --db or --dsn is required")
	}
	switch {
	case c.String("catalog") != "":
		opts = append(opts, coursedex.WithCatalogFile(c.String("catalog")))
	case len(c.StringSlice("redis")) > 0:
		opts = append(opts, coursedex.WithCatalogRedis(c.StringSlice("redis"), "", c.String("redis-key")))
	}

	client, err := coursedex.Open(opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	res, err := client.FindCourses(c.Context, facetsFromFlags(c))
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		return enc.Encode(map[string]any{"columns": res.Columns, "rows": res.Rows})
	}
	return printTable(c.App.Writer, res)
}

func printTable(w io.Writer, res coursedex.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(res.Columns, "\t")))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func pushIndexCommand(c *cli.Context) error {
	idx, err := catalogrepo.NewFileSource(c.String("in")).Load()
	if err != nil {
		return err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    c.StringSlice("redis"),
		Password: c.String("password"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	key := c.String("key")
	if err := catalogrepo.NewRedisSource(store, key).Publish(c.Context, idx); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "published %d words to %s\n", idx.Len(), key)
	return nil
}
