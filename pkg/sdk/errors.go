package tablefinder

import (
	"errors"

	"github.com/kailas-cloud/tablefinder/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrInvalidGeometry  = domain.ErrInvalidGeometry
	ErrNotFound         = domain.ErrNotFound
	ErrStoreUnavailable = domain.ErrStoreUnavailable
	ErrStoreTimeout     = domain.ErrStoreTimeout
	ErrCanceled         = domain.ErrCanceled
)

// IsRetryable reports whether err is a transient store failure.
func IsRetryable(err error) bool {
	var e *domain.Error
	return errors.As(err, &e) && e.Retryable()
}
