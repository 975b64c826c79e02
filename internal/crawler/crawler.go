// Package crawler walks a course catalog site breadth-first and builds the
// catalog index from the course blocks it finds.
package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex/internal/metrics"
)

// Config controls a crawl.
type Config struct {
	StartURL  string
	Domain    string
	MaxPages  int
	Workers   int
	Timeout   time.Duration
	UserAgent string
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithHTTPClient overrides the HTTP client used for fetching.
func WithHTTPClient(c *http.Client) Option {
	return func(cr *Crawler) { cr.client = c }
}

// WithLogger sets the crawl logger.
func WithLogger(l *zap.Logger) Option {
	return func(cr *Crawler) { cr.logger = l }
}

// Crawler fetches catalog pages within a domain.
type Crawler struct {
	cfg    Config
	start  *url.URL
	client *http.Client
	logger *zap.Logger
}

// New validates cfg and creates a crawler.
func New(cfg Config, opts ...Option) (*Crawler, error) {
	start, ok := normalize(cfg.StartURL)
	if !ok {
		return nil, fmt.Errorf("start url %q must be absolute", cfg.StartURL)
	}
	if cfg.Domain == "" {
		return nil, fmt.Errorf("domain is required")
	}
	if cfg.MaxPages < 0 {
		return nil, fmt.Errorf("max pages must not be negative, got %d", cfg.MaxPages)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Crawler{
		cfg:    cfg,
		start:  start,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type page struct {
	url      string
	finalURL *url.URL
	doc      *goquery.Document
	err      error
}

// Crawl visits at most MaxPages pages and returns the resulting snapshot.
// Pages of one breadth-first level are fetched concurrently and processed
// in link order, so a fixed site always yields the same snapshot.
func (c *Crawler) Crawl(ctx context.Context) (*Snapshot, error) {
	if !followable(c.start, c.cfg.Domain) || c.cfg.MaxPages == 0 {
		return newSnapshot(nil, 0), nil
	}

	pool, err := ants.NewPool(c.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	visited := make(map[string]bool)
	frontier := []string{c.start.String()}
	requested := 0
	var entries []Entry

	for len(frontier) > 0 && requested < c.cfg.MaxPages {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("crawl interrupted: %w", err)
		}

		var batch []string
		for _, u := range frontier {
			if requested+len(batch) >= c.cfg.MaxPages {
				break
			}
			if visited[u] {
				continue
			}
			visited[u] = true
			batch = append(batch, u)
		}
		frontier = nil
		requested += len(batch)

		for _, p := range c.fetchAll(ctx, pool, batch) {
			if p.err != nil {
				metrics.CrawlerPagesTotal.WithLabelValues("failed").Inc()
				c.logger.Debug("Page fetch failed", zap.String("url", p.url), zap.Error(p.err))
				continue
			}
			final := p.finalURL.String()
			if final != p.url {
				if visited[final] || !followable(p.finalURL, c.cfg.Domain) {
					continue
				}
				visited[final] = true
			}
			metrics.CrawlerPagesTotal.WithLabelValues("ok").Inc()

			found := extractEntries(p.doc, final)
			entries = append(entries, found...)
			c.logger.Debug("Page indexed", zap.String("url", final), zap.Int("courses", len(found)))

			for _, href := range extractLinks(p.doc) {
				u, ok := resolve(p.finalURL, href)
				if !ok || !followable(u, c.cfg.Domain) {
					continue
				}
				if s := u.String(); !visited[s] {
					frontier = append(frontier, s)
				}
			}
		}
	}

	snap := newSnapshot(entries, requested)
	c.logger.Info("Crawl completed",
		zap.Int("pages", requested),
		zap.Int("courses", len(entries)),
		zap.Int("words", snap.Catalog().Len()),
	)
	return snap, nil
}

func (c *Crawler) fetchAll(ctx context.Context, pool *ants.Pool, urls []string) []page {
	pages := make([]page, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			pages[i] = c.fetch(ctx, u)
		})
		if err != nil {
			wg.Done()
			pages[i] = page{url: u, err: fmt.Errorf("submit fetch: %w", err)}
		}
	}
	wg.Wait()
	return pages
}

func (c *Crawler) fetch(ctx context.Context, u string) page {
	p := page{url: u}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		p.err = err
		return p
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		p.err = err
		return p
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.err = fmt.Errorf("unexpected status %d", resp.StatusCode)
		return p
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		p.err = fmt.Errorf("parse html: %w", err)
		return p
	}

	p.finalURL = resp.Request.URL
	p.doc = doc
	return p
}
