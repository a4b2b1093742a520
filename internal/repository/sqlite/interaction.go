package sqlite

import (
	"context"
	"fmt"

	"github.com/kindph/matching/internal/db"
	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/interaction"
)

const upsertInteraction = `
INSERT INTO job_interactions (seeker_id, job_post_id, action, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (seeker_id, job_post_id)
DO UPDATE SET action = excluded.action, updated_at = excluded.updated_at`

// InteractionRepo stores apply/skip decisions.
type InteractionRepo struct {
	q querier
}

// NewInteractionRepo creates an interaction repository.
func NewInteractionRepo(q querier) *InteractionRepo {
	return &InteractionRepo{q: q}
}

// Upsert keeps one record per seeker and posting; the latest action wins.
// An unknown posting is domain.ErrNotFound.
func (r *InteractionRepo) Upsert(ctx context.Context, rec interaction.Record) error {
	at := formatTime(rec.RecordedAt)
	_, err := r.q.ExecContext(ctx, upsertInteraction, rec.SeekerID, rec.JobID, string(rec.Action), at, at)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("job %s: %w", rec.JobID, domain.ErrNotFound)
	}
	if err != nil {
		return &db.Error{Op: db.OpExec, Err: fmt.Errorf("upsert interaction: %w", err)}
	}
	return nil
}
