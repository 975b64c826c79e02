package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the catalog index is unavailable; structured queries still work.
	Degraded Status = "degraded"
	// Unhealthy indicates the structured store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckDatabase = "database"
	CheckCatalog  = "catalog"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogChecker
}

// New creates a Service. catalog can be nil.
func New(db DBPinger, catalog CatalogChecker) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks[CheckDatabase] = result(s.db.Ping(ctx))
	if s.catalog != nil {
		checks[CheckCatalog] = result(s.catalog.Check(ctx))
	}

	status := Healthy
	switch {
	case checks[CheckDatabase] == CheckError:
		status = Unhealthy
	case checks[CheckCatalog] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
