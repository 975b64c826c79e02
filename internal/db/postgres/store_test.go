package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/coursedex/internal/db"
)

func TestNewStore_RequiresDSN(t *testing.T) {
	if _, err := NewStore(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestNewStore_InvalidDSN(t *testing.T) {
	_, err := NewStore(context.Background(), Config{DSN: "postgres://user@host:notaport/db"})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpConnect {
		t.Fatalf("expected connect error, got %v", err)
	}
}

func TestCreateWalkingTime_MatchesDistanceUtility(t *testing.T) {
	for _, want := range []string{"walking_time(", "6367000.0", "1.1 * 60", "IMMUTABLE"} {
		if !strings.Contains(createWalkingTime, want) {
			t.Errorf("function definition missing %q", want)
		}
	}
}

func TestStore_Dialect(t *testing.T) {
	s := &Store{}
	if s.Dialect() != db.DialectDollar {
		t.Errorf("dialect = %v", s.Dialect())
	}
}
