package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockCatalogChecker struct {
	err error
}

func (m *mockCatalogChecker) Check(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCatalogChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckDatabase] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks[CheckDatabase])
	}
	if r.Checks[CheckCatalog] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks[CheckCatalog])
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("conn refused")}, &mockCatalogChecker{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckDatabase] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks[CheckDatabase])
	}
	if r.Checks[CheckCatalog] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks[CheckCatalog])
	}
}

func TestCheck_CatalogError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockCatalogChecker{err: errors.New("no such file")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckCatalog] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks[CheckCatalog])
	}
}

func TestCheck_BothFail(t *testing.T) {
	svc := New(
		&mockDBPinger{err: errors.New("db down")},
		&mockCatalogChecker{err: errors.New("index missing")},
	)
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckDatabase] != CheckError || r.Checks[CheckCatalog] != CheckError {
		t.Errorf("unexpected checks: %v", r.Checks)
	}
}

func TestCheck_NilCatalog(t *testing.T) {
	svc := New(&mockDBPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckCatalog]; ok {
		t.Error("catalog check should be absent")
	}
}
