// Package boost keeps stored boost flags in step with boost expiry.
// Scoring already ignores lapsed boosts; the sweeper fixes the stored state
// for every other reader of job_posts.
package boost

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs the sweep every 15 minutes.
const DefaultSpec = "@every 15m"

// Sweeper periodically clears expired boosts.
type Sweeper struct {
	store   Store
	spec    string
	logger  *zap.Logger
	expired prometheus.Counter
	now     func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// New creates a Sweeper. An empty spec means DefaultSpec.
func New(store Store, spec string, logger *zap.Logger) *Sweeper {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Sweeper{
		store:  store,
		spec:   spec,
		logger: logger,
		now:    time.Now,
	}
}

// WithCounter attaches a counter for cleared boosts.
func (s *Sweeper) WithCounter(c prometheus.Counter) *Sweeper {
	s.expired = c
	return s
}

// WithClock overrides the time source.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	if now != nil {
		s.now = now
	}
	return s
}

// RunOnce clears every boost that lapsed before now and returns how many.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	n, err := s.store.ClearExpiredBoosts(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("clear expired boosts: %w", err)
	}
	if s.expired != nil && n > 0 {
		s.expired.Add(float64(n))
	}
	return n, nil
}

// Start schedules RunOnce on the cron spec. ctx bounds every run.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return fmt.Errorf("sweeper already started")
	}

	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", s.spec, err)
	}
	c.Start()
	s.cron = c

	s.logger.Info("Boost sweeper started", zap.String("spec", s.spec))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.logger.Info("Boost sweeper stopped")
}

func (s *Sweeper) tick(ctx context.Context) {
	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Boost sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Expired boosts cleared", zap.Int64("count", n))
	}
}
