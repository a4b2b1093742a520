package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kindph/matching/internal/db"
	"github.com/kindph/matching/internal/domain/job"
)

const selectCandidates = `
SELECT jp.id, jp.title, jp.job_type, jp.location, jp.coordinates, jp.province, jp.region,
       jp.required_skills, jp.preferred_languages, jp.salary, jp.is_boosted,
       jp.boost_expires_at, jp.created_at, jp.expires_at, jp.status
FROM job_posts jp
WHERE jp.status = 'active'
  AND NOT EXISTS (
      SELECT 1 FROM job_interactions ji
      WHERE ji.job_post_id = jp.id AND ji.seeker_id = $1
  )
ORDER BY jp.created_at DESC, jp.id ASC`

const clearExpiredBoosts = `
UPDATE job_posts
SET is_boosted = FALSE
WHERE is_boosted AND boost_expires_at IS NOT NULL AND boost_expires_at <= $1`

// JobRepo reads job postings and maintains their boost state.
type JobRepo struct {
	q querier
}

// NewJobRepo creates a job repository.
func NewJobRepo(q querier) *JobRepo {
	return &JobRepo{q: q}
}

// ListActive returns active postings the seeker has not applied to or skipped,
// newest first with ties broken by id.
func (r *JobRepo) ListActive(ctx context.Context, seekerID string) ([]job.Posting, error) {
	rows, err := r.q.Query(ctx, selectCandidates, seekerID)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select candidates: %w", err)}
	}

	postings, err := pgx.CollectRows(rows, scanPosting)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("scan candidates: %w", err)}
	}
	return postings, nil
}

// ClearExpiredBoosts unsets is_boosted where the boost ended at or before now.
func (r *JobRepo) ClearExpiredBoosts(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, clearExpiredBoosts, now)
	if err != nil {
		return 0, &db.Error{Op: db.OpExec, Err: fmt.Errorf("clear expired boosts: %w", err)}
	}
	return tag.RowsAffected(), nil
}

func scanPosting(row pgx.CollectableRow) (job.Posting, error) {
	var (
		p      job.Posting
		coords *string
		status string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Type, &p.Location, &coords, &p.Province, &p.Region,
		&p.RequiredSkills, &p.PreferredLanguages, &p.Salary, &p.IsBoosted,
		&p.BoostExpiresAt, &p.CreatedAt, &p.ExpiresAt, &status,
	)
	if err != nil {
		return job.Posting{}, err
	}

	if coords != nil {
		p.SetCoordinates(*coords)
	}
	p.Status = job.Status(status)
	return p, nil
}
