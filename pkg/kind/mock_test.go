package kind

import (
	"context"

	"github.com/kindph/matching/internal/domain/interaction"
	"github.com/kindph/matching/internal/domain/match"
	healthuc "github.com/kindph/matching/internal/usecase/health"
)

type mockMatchUC struct {
	findFn func(ctx context.Context, seekerID string, limit int) ([]match.Result, error)
}

func (m *mockMatchUC) FindMatchingJobs(ctx context.Context, seekerID string, limit int) ([]match.Result, error) {
	return m.findFn(ctx, seekerID, limit)
}

type mockInteractionUC struct {
	recordFn func(ctx context.Context, seekerID, jobID, action string) (interaction.Record, error)
}

func (m *mockInteractionUC) Record(ctx context.Context, seekerID, jobID, action string) (interaction.Record, error) {
	return m.recordFn(ctx, seekerID, jobID, action)
}

type mockSweepUC struct {
	n   int64
	err error
}

func (m *mockSweepUC) RunOnce(context.Context) (int64, error) { return m.n, m.err }

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }
