package redis

import (
	"context"

	"github.com/kindph/matching/internal/db"
)

// Publish sends payload to every subscriber of channel.
// Zero receivers is not an error.
func (s *Store) Publish(ctx context.Context, channel string, payload []byte) error {
	cmd := s.b().Publish().Channel(channel).Message(string(payload)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpPublish, Err: err}
	}
	return nil
}
