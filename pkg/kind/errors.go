package kind

import "github.com/kindph/matching/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
