package kind

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kindph/matching/internal/app"
	"github.com/kindph/matching/internal/config"
	"github.com/kindph/matching/internal/domain/interaction"
	"github.com/kindph/matching/internal/domain/match"
	healthuc "github.com/kindph/matching/internal/usecase/health"
)

// Internal interfaces, swapped for mocks in tests.
type matchUseCase interface {
	FindMatchingJobs(ctx context.Context, seekerID string, limit int) ([]match.Result, error)
}

type interactionUseCase interface {
	Record(ctx context.Context, seekerID, jobID, action string) (interaction.Record, error)
}

type sweepUseCase interface {
	RunOnce(ctx context.Context) (int64, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the Kind SDK entry point.
type Client struct {
	closer       func()
	matchSvc     matchUseCase
	interactions interactionUseCase
	sweeper      sweepUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client and connects to the configured stores.
// The provided context bounds connection and migration.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("kind: database required (use WithPostgres or WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, appConfig(cfg), zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("kind: %w", err)
	}

	return &Client{
		closer:       a.Close,
		matchSvc:     a.Matching,
		interactions: a.Interactions,
		sweeper:      a.Sweeper,
		healthSvc:    a.Health,
		obs:          obs,
	}, nil
}

// appConfig maps options onto the service configuration and its defaults.
func appConfig(c *clientConfig) config.Config {
	cfg := config.Config{
		Database: config.DatabaseConfig{Driver: c.driver, DSN: c.dsn},
		Cache: config.CacheConfig{
			Enabled:  len(c.redisAddrs) > 0,
			Addrs:    c.redisAddrs,
			Password: c.redisPassword,
			TTLSec:   int(c.cacheTTL / time.Second),
		},
		Matching: config.MatchingConfig{DefaultLimit: c.defaultLimit},
		Events:   config.EventsConfig{Channel: c.eventsChannel},
	}
	cfg.ApplyDefaults()
	return cfg
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Matches returns up to limit ranked postings for the seeker.
// A seeker without preferences gets an empty slice and no error.
func (c *Client) Matches(ctx context.Context, seekerID string, limit int) (_ []Match, err error) {
	start := time.Now()
	defer func() { c.obs.observe("matches", start, err) }()

	results, err := c.matchSvc.FindMatchingJobs(ctx, seekerID, limit)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	out := make([]Match, len(results))
	for i := range results {
		out[i] = matchFromResult(&results[i])
	}
	return out, nil
}

// Record stores a swipe. The posting is excluded from later matches.
func (c *Client) Record(ctx context.Context, seekerID, jobID string, action Action) (_ Interaction, err error) {
	start := time.Now()
	defer func() { c.obs.observe("interaction.record", start, err) }()

	rec, err := c.interactions.Record(ctx, seekerID, jobID, string(action))
	if err != nil {
		return Interaction{}, fmt.Errorf("record interaction: %w", err)
	}
	return Interaction{
		SeekerID:   rec.SeekerID,
		JobID:      rec.JobID,
		Action:     Action(rec.Action),
		RecordedAt: rec.RecordedAt,
	}, nil
}

// SweepBoosts clears lapsed boosts and returns how many were cleared.
func (c *Client) SweepBoosts(ctx context.Context) (_ int64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("boosts.sweep", start, err) }()

	n, err := c.sweeper.RunOnce(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep boosts: %w", err)
	}
	return n, nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

func matchFromResult(r *match.Result) Match {
	b := r.Breakdown()
	return Match{
		JobID:   r.JobID(),
		Score:   r.Score(),
		Reasons: r.Reasons(),
		Breakdown: Breakdown{
			JobTitle:  b.JobTitle,
			JobType:   b.JobType,
			Location:  b.Location,
			Salary:    b.Salary,
			Languages: b.Languages,
			Skills:    b.Skills,
			Priority:  b.Priority,
		},
	}
}
