package matching

import (
	"context"

	"github.com/kindph/matching/internal/domain/job"
	"github.com/kindph/matching/internal/domain/seeker"
)

// PreferenceLoader reads a seeker's stored preferences and profile.
// GetPreferences returns domain.ErrNotFound when the seeker has no preference record.
// GetProfile returns an empty profile when none is stored.
type PreferenceLoader interface {
	GetPreferences(ctx context.Context, seekerID string) (seeker.Preferences, error)
	GetProfile(ctx context.Context, seekerID string) (seeker.Profile, error)
}

// CandidateReader lists active postings the seeker has not interacted with,
// newest first.
type CandidateReader interface {
	ListActive(ctx context.Context, seekerID string) ([]job.Posting, error)
}

// Observer receives engine-level measurements. Implementations must be cheap.
type Observer interface {
	ObserveMatch(outcome string, candidates, gateRejected, returned int, seconds float64)
}
