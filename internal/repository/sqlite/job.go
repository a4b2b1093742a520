package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

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
      WHERE ji.job_post_id = jp.id AND ji.seeker_id = ?
  )
ORDER BY jp.created_at DESC, jp.id ASC`

const clearExpiredBoosts = `
UPDATE job_posts
SET is_boosted = 0
WHERE is_boosted = 1 AND boost_expires_at IS NOT NULL
  AND julianday(boost_expires_at) <= julianday(?)`

// JobRepo reads job postings and maintains their boost state.
type JobRepo struct {
	q      querier
	logger *zap.Logger
}

// NewJobRepo creates a job repository. Malformed posting rows are reported to logger.
func NewJobRepo(q querier, logger *zap.Logger) *JobRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRepo{q: q, logger: logger}
}

// ListActive returns active postings the seeker has not applied to or skipped,
// newest first with ties broken by id. A row with an unreadable created_at is
// skipped; unreadable list or expiry columns degrade to empty values.
func (r *JobRepo) ListActive(ctx context.Context, seekerID string) ([]job.Posting, error) {
	rows, err := r.q.QueryContext(ctx, selectCandidates, seekerID)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("select candidates: %w", err)}
	}
	defer func() { _ = rows.Close() }()

	var postings []job.Posting
	for rows.Next() {
		raw, err := scanPosting(rows)
		if err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("scan candidate: %w", err)}
		}
		p, ok := r.decodePosting(raw)
		if !ok {
			continue
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("iterate candidates: %w", err)}
	}
	return postings, nil
}

// ClearExpiredBoosts unsets is_boosted where the boost ended at or before now.
func (r *JobRepo) ClearExpiredBoosts(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, clearExpiredBoosts, formatTime(now))
	if err != nil {
		return 0, &db.Error{Op: db.OpExec, Err: fmt.Errorf("clear expired boosts: %w", err)}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &db.Error{Op: db.OpExec, Err: err}
	}
	return n, nil
}

// postingRow holds one job_posts row before its text columns are decoded.
type postingRow struct {
	posting               job.Posting
	coords                sql.NullString
	skills, languages     string
	boosted               int
	boostExpires, expires sql.NullString
	created, status       string
}

func scanPosting(rows *sql.Rows) (postingRow, error) {
	var row postingRow
	p := &row.posting
	err := rows.Scan(
		&p.ID, &p.Title, &p.Type, &p.Location, &row.coords, &p.Province, &p.Region,
		&row.skills, &row.languages, &p.Salary, &row.boosted,
		&row.boostExpires, &row.created, &row.expires, &row.status,
	)
	return row, err
}

func (r *JobRepo) decodePosting(row postingRow) (job.Posting, bool) {
	p := row.posting
	log := r.logger.With(zap.String("job_post_id", p.ID))

	created, err := parseTime(row.created)
	if err != nil {
		log.Warn("Skipping job post with unreadable created_at", zap.Error(err))
		return job.Posting{}, false
	}
	p.CreatedAt = created

	if row.coords.Valid {
		p.SetCoordinates(row.coords.String)
	}
	p.RequiredSkills = lenientList(log, "required_skills", row.skills)
	p.PreferredLanguages = lenientList(log, "preferred_languages", row.languages)
	p.IsBoosted = row.boosted != 0
	p.BoostExpiresAt = lenientTime(log, "boost_expires_at", row.boostExpires)
	p.ExpiresAt = lenientTime(log, "expires_at", row.expires)
	p.Status = job.Status(row.status)
	return p, true
}

func lenientList(log *zap.Logger, column, text string) []string {
	list, err := decodeList(text)
	if err != nil {
		log.Warn("Unreadable list column, using empty list", zap.String("column", column), zap.Error(err))
		return []string{}
	}
	return list
}

func lenientTime(log *zap.Logger, column string, text sql.NullString) *time.Time {
	t, err := parseNullTime(text)
	if err != nil {
		log.Warn("Unreadable timestamp column, ignoring", zap.String("column", column), zap.Error(err))
		return nil
	}
	return t
}
