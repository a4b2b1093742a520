package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/job"
	"github.com/kindph/matching/internal/domain/match"
)

// Match outcomes reported to the Observer.
const (
	OutcomeOK            = "ok"
	OutcomeNoPreferences = "no_preferences"
	OutcomeStoreError    = "store_error"
)

// Service finds and ranks job postings for a seeker.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	prefs        PreferenceLoader
	candidates   CandidateReader
	observer     Observer
	logger       *zap.Logger
	now          func() time.Time
	defaultLimit int
}

// New creates a matching service.
func New(prefs PreferenceLoader, candidates CandidateReader, logger *zap.Logger) *Service {
	return &Service{
		prefs:        prefs,
		candidates:   candidates,
		logger:       logger,
		now:          time.Now,
		defaultLimit: DefaultLimit,
	}
}

// WithObserver attaches a metrics observer.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// WithClock overrides the time source used for boost, recency and urgency.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithDefaultLimit sets the limit applied when callers pass limit <= 0.
func (s *Service) WithDefaultLimit(n int) *Service {
	if n > 0 {
		s.defaultLimit = n
	}
	return s
}

// FindMatchingJobs returns the seeker's best matching active postings.
//
// A seeker without preferences gets an empty list and no error. When any store
// read fails the result is an empty list together with an error wrapping
// domain.ErrStoreUnavailable; partial results are never returned.
func (s *Service) FindMatchingJobs(ctx context.Context, seekerID string, limit int) ([]match.Result, error) {
	start := time.Now()
	if limit <= 0 {
		limit = s.defaultLimit
	}

	prefs, err := s.prefs.GetPreferences(ctx, seekerID)
	if errors.Is(err, domain.ErrNotFound) {
		s.observe(OutcomeNoPreferences, 0, 0, 0, start)
		return []match.Result{}, nil
	}
	if err != nil {
		return s.fail(fmt.Errorf("load preferences: %w: %w", domain.ErrStoreUnavailable, err), seekerID, start)
	}

	profile, err := s.prefs.GetProfile(ctx, seekerID)
	if err != nil {
		return s.fail(fmt.Errorf("load profile: %w: %w", domain.ErrStoreUnavailable, err), seekerID, start)
	}

	postings, err := s.candidates.ListActive(ctx, seekerID)
	if err != nil {
		return s.fail(fmt.Errorf("list candidates: %w: %w", domain.ErrStoreUnavailable, err), seekerID, start)
	}
	orderCandidates(postings)

	now := s.now()
	results := make([]match.Result, 0, len(postings))
	rejected := 0
	for i := range postings {
		p := &postings[i]
		if !p.IsActive() {
			continue
		}
		r := Score(&prefs, &profile, p, now)
		if r.Score() == 0 {
			rejected++
		}
		results = append(results, r)
	}

	ranked := Rank(results, limit)

	s.logger.Debug("Matches computed",
		zap.String("seeker_id", seekerID),
		zap.Int("candidates", len(postings)),
		zap.Int("gate_rejected", rejected),
		zap.Int("returned", len(ranked)),
		zap.Duration("duration", time.Since(start)),
	)
	s.observe(OutcomeOK, len(postings), rejected, len(ranked), start)

	return ranked, nil
}

func (s *Service) fail(err error, seekerID string, start time.Time) ([]match.Result, error) {
	s.logger.Error("Match computation failed",
		zap.String("seeker_id", seekerID),
		zap.Error(err),
	)
	s.observe(OutcomeStoreError, 0, 0, 0, start)
	return []match.Result{}, err
}

func (s *Service) observe(outcome string, candidates, rejected, returned int, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveMatch(outcome, candidates, rejected, returned, time.Since(start).Seconds())
	}
}

// orderCandidates sorts newest first. Ties keep the store's order.
func orderCandidates(postings []job.Posting) {
	sort.SliceStable(postings, func(i, j int) bool {
		return postings[i].CreatedAt.After(postings[j].CreatedAt)
	})
}
