package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	pgdb "github.com/kindph/matching/internal/db/postgres"
	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/interaction"
	"github.com/kindph/matching/internal/domain/job"
)

// testPool connects to KIND_TEST_POSTGRES_DSN and resets the tables.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("KIND_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("KIND_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgdb.Connect(ctx, pgdb.Config{DSN: dsn, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pgdb.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE job_interactions, job_posts, seeker_profiles, seeker_preferences`)
	require.NoError(t, err)
	return pool
}

func insertJob(t *testing.T, pool *pgxpool.Pool, id, status string, created time.Time) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO job_posts (id, title, job_type, location, coordinates, required_skills, salary, created_at, status)
		VALUES ($1, 'Yaya', 'full-time', 'Makati', '(121.0,14.6)', '{childcare}', '₱500', $2, $3)`,
		id, created, status)
	require.NoError(t, err)
}

func TestIsForeignKeyViolation(t *testing.T) {
	require.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, isForeignKeyViolation(errors.New("other")))
	require.False(t, isForeignKeyViolation(nil))
}

func TestSeekerRepo_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewSeekerRepo(pool)

	_, err := repo.GetPreferences(ctx, "s1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = pool.Exec(ctx, `
		INSERT INTO seeker_preferences (seeker_id, desired_job_titles, salary_min, salary_max, salary_type, preferred_radius_km)
		VALUES ('s1', '{Yaya}', 400, 600, 'daily', 5)`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO seeker_profiles (seeker_id, skills, coordinates) VALUES ('s1', '{cooking}', '(121.0,14.6)')`)
	require.NoError(t, err)

	prefs, err := repo.GetPreferences(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []string{"Yaya"}, prefs.DesiredJobTitles)
	require.InDelta(t, 600, prefs.Salary.Max, 0.001)

	profile, err := repo.GetProfile(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []string{"cooking"}, profile.Skills)
	require.NotNil(t, profile.Coordinates)

	empty, err := repo.GetProfile(ctx, "nobody")
	require.NoError(t, err)
	require.Nil(t, empty.Coordinates)
}

func TestJobRepo_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	jobs := NewJobRepo(pool)
	interactions := NewInteractionRepo(pool)
	now := time.Now().UTC().Truncate(time.Second)

	insertJob(t, pool, "b", "active", now.Add(-time.Hour))
	insertJob(t, pool, "a", "active", now.Add(-time.Hour))
	insertJob(t, pool, "new", "active", now)
	insertJob(t, pool, "closed", "closed", now)
	insertJob(t, pool, "skipped", "active", now)

	rec, err := interaction.NewRecord("s1", "skipped", interaction.ActionSkip, now)
	require.NoError(t, err)
	require.NoError(t, interactions.Upsert(ctx, rec))

	got, err := jobs.ListActive(ctx, "s1")
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i := range got {
		ids[i] = got[i].ID
		require.Equal(t, job.StatusActive, got[i].Status)
	}
	require.Equal(t, []string{"new", "a", "b"}, ids)

	missing, err := interaction.NewRecord("s1", "nope", interaction.ActionApply, now)
	require.NoError(t, err)
	require.ErrorIs(t, interactions.Upsert(ctx, missing), domain.ErrNotFound)

	_, err = pool.Exec(ctx, `UPDATE job_posts SET is_boosted = TRUE, boost_expires_at = $1 WHERE id = 'a'`, now.Add(-time.Minute))
	require.NoError(t, err)
	n, err := jobs.ClearExpiredBoosts(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}
