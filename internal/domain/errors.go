package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration signals a facet combination that cannot be satisfied.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidFacet signals a facet value of the wrong shape. It is a configuration error.
	ErrInvalidFacet = fmt.Errorf("%w: invalid facet", ErrConfiguration)
	// ErrStorageFailure signals a connection or query failure against the structured store.
	ErrStorageFailure = errors.New("storage failure")
	// ErrIndexUnavailable signals a missing or malformed catalog index.
	ErrIndexUnavailable = errors.New("catalog index unavailable")
)

// FacetError reports which facet was rejected and why.
type FacetError struct {
	Facet  string
	Reason string
}

func (e *FacetError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidFacet.Error(), e.Facet, e.Reason)
}

func (e *FacetError) Unwrap() error { return ErrInvalidFacet }

// NewFacetError creates an invalid facet error.
func NewFacetError(facet, reason string) error {
	return &FacetError{Facet: facet, Reason: reason}
}
