package boost

import (
	"context"
	"time"
)

// Store clears lapsed boosts.
type Store interface {
	ClearExpiredBoosts(ctx context.Context, now time.Time) (int64, error)
}
