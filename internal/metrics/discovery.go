package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Discovery outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeEmpty         = "empty"
	OutcomeConfiguration = "configuration"
	OutcomeStorage       = "storage"
	OutcomeIndex         = "index"
	OutcomeError         = "error"
)

// Course discovery and crawler Prometheus metrics.
var (
	DiscoveryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coursedex",
			Name:      "discovery_requests_total",
			Help:      "Total number of course discovery requests",
		},
		[]string{"outcome"},
	)

	DiscoveryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "coursedex",
			Name:      "discovery_duration_seconds",
			Help:      "Course discovery duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	DiscoveryRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "coursedex",
			Name:      "discovery_rows",
			Help:      "Rows returned per discovery request",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		},
	)

	CrawlerPagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coursedex",
			Name:      "crawler_pages_total",
			Help:      "Catalog pages visited by the crawler",
		},
		[]string{"status"}, // "ok" / "failed"
	)
)

var registerDiscovery sync.Once

// RegisterDiscoveryMetrics registers discovery and crawler metrics. Safe to call more than once.
func RegisterDiscoveryMetrics() {
	registerDiscovery.Do(func() {
		prometheus.MustRegister(DiscoveryRequestsTotal)
		prometheus.MustRegister(DiscoveryDuration)
		prometheus.MustRegister(DiscoveryRows)
		prometheus.MustRegister(CrawlerPagesTotal)
	})
}
