package coursedex

import "github.com/kailas-cloud/coursedex/internal/domain"

// Errors returned by Client.FindCourses; match with errors.Is.
var (
	ErrConfiguration    = domain.ErrConfiguration
	ErrInvalidFacet     = domain.ErrInvalidFacet
	ErrStorageFailure   = domain.ErrStorageFailure
	ErrIndexUnavailable = domain.ErrIndexUnavailable
)
