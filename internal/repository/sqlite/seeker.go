package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kindph/matching/internal/db"
	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/seeker"
)

const selectPreferences = `
SELECT desired_job_titles, desired_locations, desired_job_types,
       salary_min, salary_max, salary_type, preferred_languages, preferred_radius_km
FROM seeker_preferences
WHERE seeker_id = ?`

const selectProfile = `SELECT skills, coordinates FROM seeker_profiles WHERE seeker_id = ?`

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
	var titles, locations, types, languages, salaryType string
	p := seeker.Preferences{SeekerID: seekerID}

	err := r.q.QueryRowContext(ctx, selectPreferences, seekerID).Scan(
		&titles, &locations, &types,
		&p.Salary.Min, &p.Salary.Max, &salaryType, &languages, &p.PreferredRadiusKm,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return seeker.Preferences{}, fmt.Errorf("preferences for %s: %w", seekerID, domain.ErrNotFound)
	}
	if err != nil {
		return seeker.Preferences{}, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select preferences: %w", err)}
	}

	for _, f := range []struct {
		raw string
		dst *[]string
	}{
		{titles, &p.DesiredJobTitles},
		{locations, &p.DesiredLocations},
		{types, &p.DesiredJobTypes},
		{languages, &p.PreferredLanguages},
	} {
		if *f.dst, err = decodeList(f.raw); err != nil {
			return seeker.Preferences{}, &db.Error{Op: db.OpQuery, Err: err}
		}
	}

	if p.Salary.Type, err = seeker.ParseSalaryType(salaryType); err != nil {
		p.Salary.Type = seeker.SalaryMonthly
	}
	return p, nil
}

// GetProfile returns an empty profile when none is stored.
func (r *SeekerRepo) GetProfile(ctx context.Context, seekerID string) (seeker.Profile, error) {
	var (
		skillsRaw string
		coords    sql.NullString
	)
	err := r.q.QueryRowContext(ctx, selectProfile, seekerID).Scan(&skillsRaw, &coords)
	if errors.Is(err, sql.ErrNoRows) {
		return seeker.Profile{SeekerID: seekerID}, nil
	}
	if err != nil {
		return seeker.Profile{}, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select profile: %w", err)}
	}

	skills, err := decodeList(skillsRaw)
	if err != nil {
		return seeker.Profile{}, &db.Error{Op: db.OpQuery, Err: err}
	}
	return seeker.NewProfile(seekerID, skills, coords.String), nil
}
