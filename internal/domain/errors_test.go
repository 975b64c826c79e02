package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFacetError_UnwrapsToConfiguration(t *testing.T) {
	err := NewFacetError("day", "must not be empty")

	if !errors.Is(err, ErrInvalidFacet) {
		t.Error("expected errors.Is(err, ErrInvalidFacet)")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Error("expected errors.Is(err, ErrConfiguration)")
	}
	if errors.Is(err, ErrStorageFailure) {
		t.Error("facet error must not match ErrStorageFailure")
	}

	var fe *FacetError
	if !errors.As(err, &fe) {
		t.Fatal("expected errors.As to *FacetError")
	}
	if fe.Facet != "day" {
		t.Errorf("facet = %q, want day", fe.Facet)
	}
}

func TestFacetError_Message(t *testing.T) {
	err := NewFacetError("walking_time", "requires building")
	want := "configuration error: invalid facet: walking_time: requires building"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestSentinels_Distinct(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", ErrStorageFailure, errors.New("disk I/O error"))
	if !errors.Is(wrapped, ErrStorageFailure) {
		t.Error("expected wrapped storage failure")
	}
	if errors.Is(wrapped, ErrIndexUnavailable) {
		t.Error("storage failure must not match index unavailable")
	}
}
