package health

import "context"

// DBPinger checks structured store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker checks that the catalog index can be read.
type CatalogChecker interface {
	Check(ctx context.Context) error
}
