package discovery

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/coursedex/internal/domain"
	"github.com/kailas-cloud/coursedex/internal/domain/facet"
	"github.com/kailas-cloud/coursedex/internal/domain/result"
	"github.com/kailas-cloud/coursedex/internal/metrics"
)

// Instrumented wraps a Finder with metrics and failure logging.
type Instrumented struct {
	inner  Finder
	logger *zap.Logger
}

// NewInstrumented decorates inner. Metrics must be registered by the caller.
func NewInstrumented(inner Finder, logger *zap.Logger) *Instrumented {
	return &Instrumented{inner: inner, logger: logger}
}

// FindCourses delegates to the wrapped finder and records the outcome.
func (i *Instrumented) FindCourses(ctx context.Context, req facet.Request) (result.Result, error) {
	start := time.Now()

	res, err := i.inner.FindCourses(ctx, req)

	duration := time.Since(start)
	outcome := Outcome(res, err)
	metrics.DiscoveryDuration.Observe(duration.Seconds())
	metrics.DiscoveryRequestsTotal.WithLabelValues(outcome).Inc()

	if err != nil {
		i.logger.Error("Course discovery failed",
			zap.Strings("facets", req.Names()),
			zap.String("outcome", outcome),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return result.Result{}, err
	}

	metrics.DiscoveryRows.Observe(float64(len(res.Rows)))
	return res, nil
}

// Outcome classifies a discovery call for metrics.
func Outcome(res result.Result, err error) string {
	switch {
	case err == nil && res.IsEmpty():
		return metrics.OutcomeEmpty
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrConfiguration):
		return metrics.OutcomeConfiguration
	case errors.Is(err, domain.ErrStorageFailure):
		return metrics.OutcomeStorage
	case errors.Is(err, domain.ErrIndexUnavailable):
		return metrics.OutcomeIndex
	default:
		return metrics.OutcomeError
	}
}
