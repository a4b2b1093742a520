package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kindph/matching/internal/db"
	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/seeker"
)

const selectPreferences = `
SELECT seeker_id, desired_job_titles, desired_locations, desired_job_types,
       salary_min, salary_max, salary_type, preferred_languages, preferred_radius_km
FROM seeker_preferences
WHERE seeker_id = $1`

const selectProfile = `
SELECT skills, coordinates
FROM seeker_profiles
WHERE seeker_id = $1`

// SeekerRepo reads seeker preferences and profiles.
type SeekerRepo struct {
	q querier
}

// NewSeekerRepo creates a seeker repository.
func NewSeekerRepo(q querier) *SeekerRepo {
	return &SeekerRepo{q: q}
}

// GetPreferences returns domain.ErrNotFound when the seeker has no record.
func (r *SeekerRepo) GetPreferences(ctx context.Context, seekerID string) (seeker.Preferences, error) {
	var (
		p          seeker.Preferences
		salaryType string
	)
	err := r.q.QueryRow(ctx, selectPreferences, seekerID).Scan(
		&p.SeekerID, &p.DesiredJobTitles, &p.DesiredLocations, &p.DesiredJobTypes,
		&p.Salary.Min, &p.Salary.Max, &salaryType, &p.PreferredLanguages, &p.PreferredRadiusKm,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return seeker.Preferences{}, fmt.Errorf("preferences for %s: %w", seekerID, domain.ErrNotFound)
	}
	if err != nil {
		return seeker.Preferences{}, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select preferences: %w", err)}
	}

	if p.Salary.Type, err = seeker.ParseSalaryType(salaryType); err != nil {
		p.Salary.Type = seeker.SalaryMonthly
	}
	return p, nil
}

// GetProfile returns an empty profile when none is stored.
func (r *SeekerRepo) GetProfile(ctx context.Context, seekerID string) (seeker.Profile, error) {
	var (
		skills []string
		coords *string
	)
	err := r.q.QueryRow(ctx, selectProfile, seekerID).Scan(&skills, &coords)
	if errors.Is(err, pgx.ErrNoRows) {
		return seeker.Profile{SeekerID: seekerID}, nil
	}
	if err != nil {
		return seeker.Profile{}, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select profile: %w", err)}
	}

	var point string
	if coords != nil {
		point = *coords
	}
	return seeker.NewProfile(seekerID, skills, point), nil
}
