package interaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/interaction"
)

// EventRecorded is the event type published after a successful write.
const EventRecorded = "interaction.recorded"

// Event is the JSON payload published on the events channel.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	SeekerID   string    `json:"seeker_id"`
	JobID      string    `json:"job_id"`
	Action     string    `json:"action"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Service records apply/skip decisions.
type Service struct {
	repo     Repository
	pub      Publisher
	channel  string
	recorded *prometheus.CounterVec
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a Service. pub may be nil, which disables events.
func New(repo Repository, pub Publisher, channel string, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		pub:     pub,
		channel: channel,
		logger:  logger,
		now:     time.Now,
	}
}

// WithCounter attaches a counter vec labelled by "action".
func (s *Service) WithCounter(cv *prometheus.CounterVec) *Service {
	s.recorded = cv
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Record validates and stores the interaction, then publishes an event.
// Publish failures are logged and do not fail the call.
func (s *Service) Record(ctx context.Context, seekerID, jobID, action string) (interaction.Record, error) {
	a, err := interaction.ParseAction(action)
	if err != nil {
		return interaction.Record{}, fmt.Errorf("parse action: %w", err)
	}
	rec, err := interaction.NewRecord(seekerID, jobID, a, s.now())
	if err != nil {
		return interaction.Record{}, fmt.Errorf("new record: %w", err)
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return interaction.Record{}, fmt.Errorf("save interaction: %w", err)
		}
		return interaction.Record{}, fmt.Errorf("save interaction: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if s.recorded != nil {
		s.recorded.WithLabelValues(string(rec.Action)).Inc()
	}
	s.publish(ctx, rec)
	return rec, nil
}

func (s *Service) publish(ctx context.Context, rec interaction.Record) {
	if s.pub == nil || s.channel == "" {
		return
	}

	payload, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       EventRecorded,
		SeekerID:   rec.SeekerID,
		JobID:      rec.JobID,
		Action:     string(rec.Action),
		RecordedAt: rec.RecordedAt,
	})
	if err != nil {
		s.logger.Warn("Failed to encode interaction event", zap.Error(err))
		return
	}

	if err := s.pub.Publish(ctx, s.channel, payload); err != nil {
		s.logger.Warn("Failed to publish interaction event",
			zap.String("channel", s.channel),
			zap.String("seeker_id", rec.SeekerID),
			zap.String("job_id", rec.JobID),
			zap.Error(err),
		)
	}
}
