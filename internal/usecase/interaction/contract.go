package interaction

import (
	"context"

	"github.com/kindph/matching/internal/domain/interaction"
)

// Repository persists interaction records.
type Repository interface {
	Upsert(ctx context.Context, rec interaction.Record) error
}

// Publisher sends events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
