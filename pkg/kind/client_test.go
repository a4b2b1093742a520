package kind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/interaction"
	"github.com/kindph/matching/internal/domain/match"
	healthuc "github.com/kindph/matching/internal/usecase/health"
)

func TestNew_NoDatabase(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no database configured")
	}
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	client, err := New(ctx, WithSQLite(filepath.Join(t.TempDir(), "kind.db")))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()

	if got := client.Health(ctx); got.Status != "ok" {
		t.Errorf("health = %+v", got)
	}

	matches, err := client.Matches(ctx, "nobody", 5)
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", matches)
	}

	_, err = client.Record(ctx, "nobody", "missing-job", ActionApply)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown posting, got %v", err)
	}
}

func TestAppConfig(t *testing.T) {
	cfg := &clientConfig{}
	for _, o := range []Option{
		WithPostgres("postgres://kind@localhost/kind"),
		WithRedis("localhost:6379", "pw"),
		WithCacheTTL(90 * time.Second),
		WithEventsChannel("swipes"),
		WithDefaultLimit(7),
	} {
		o.apply(cfg)
	}

	got := appConfig(cfg)
	if got.Database.Driver != "postgres" || got.Database.DSN != "postgres://kind@localhost/kind" {
		t.Errorf("database = %+v", got.Database)
	}
	if !got.Cache.Enabled || got.Cache.Password != "pw" || got.Cache.TTLSec != 90 {
		t.Errorf("cache = %+v", got.Cache)
	}
	if got.Events.Channel != "swipes" || got.Matching.DefaultLimit != 7 {
		t.Errorf("events/matching = %+v / %+v", got.Events, got.Matching)
	}
	if got.Database.MaxConns == 0 {
		t.Error("defaults not applied")
	}
}

func TestAppConfig_CacheOffWithoutRedis(t *testing.T) {
	cfg := &clientConfig{}
	WithSQLite("x.db").apply(cfg)
	got := appConfig(cfg)
	if got.Cache.Enabled {
		t.Error("cache should be disabled without WithRedis")
	}
	if got.Matching.DefaultLimit != 20 || got.Cache.TTLSec != 300 {
		t.Errorf("defaults = %+v / %+v", got.Matching, got.Cache)
	}
}

func TestClient_Close_NoResources(t *testing.T) {
	c := &Client{}
	c.Close()
}

func TestClient_Matches(t *testing.T) {
	c := &Client{matchSvc: &mockMatchUC{
		findFn: func(_ context.Context, seekerID string, limit int) ([]match.Result, error) {
			if seekerID != "s1" || limit != 3 {
				t.Errorf("args = %q, %d", seekerID, limit)
			}
			return []match.Result{
				match.New("job-1", 90, []string{"Exact job title match"}, match.Breakdown{JobTitle: 100, Priority: 70}),
			}, nil
		},
	}}

	got, err := c.Matches(context.Background(), "s1", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Match{
		JobID:     "job-1",
		Score:     90,
		Reasons:   []string{"Exact job title match"},
		Breakdown: Breakdown{JobTitle: 100, Priority: 70},
	}
	if len(got) != 1 || got[0].JobID != want.JobID || got[0].Score != want.Score ||
		got[0].Breakdown != want.Breakdown || got[0].Reasons[0] != want.Reasons[0] {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClient_Matches_Error(t *testing.T) {
	c := &Client{matchSvc: &mockMatchUC{
		findFn: func(context.Context, string, int) ([]match.Result, error) {
			return []match.Result{}, fmt.Errorf("load preferences: %w", domain.ErrStoreUnavailable)
		},
	}}
	_, err := c.Matches(context.Background(), "s1", 0)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestClient_Record(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	c := &Client{interactions: &mockInteractionUC{
		recordFn: func(_ context.Context, seekerID, jobID, action string) (interaction.Record, error) {
			if action != "skip" {
				t.Errorf("action = %q", action)
			}
			return interaction.Record{SeekerID: seekerID, JobID: jobID, Action: interaction.ActionSkip, RecordedAt: at}, nil
		},
	}}

	got, err := c.Record(context.Background(), "s1", "job-1", ActionSkip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Interaction{SeekerID: "s1", JobID: "job-1", Action: ActionSkip, RecordedAt: at}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClient_SweepBoosts(t *testing.T) {
	c := &Client{sweeper: &mockSweepUC{n: 4}}
	n, err := c.SweepBoosts(context.Background())
	if err != nil || n != 4 {
		t.Errorf("got %d, %v", n, err)
	}

	c = &Client{sweeper: &mockSweepUC{err: errors.New("db gone")}}
	if _, err := c.SweepBoosts(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestClient_Health(t *testing.T) {
	c := &Client{healthSvc: &mockHealthUC{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "cache": healthuc.CheckError},
	}}}
	got := c.Health(context.Background())
	if got.Status != "degraded" || got.Checks["cache"] != "error" || got.Checks["database"] != "ok" {
		t.Errorf("got %+v", got)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{fmt.Errorf("x: %w", domain.NewFieldError("action", "bad")), "invalid_input"},
		{fmt.Errorf("x: %w", ErrNotFound), "not_found"},
		{fmt.Errorf("x: %w", ErrStoreUnavailable), "store_unavailable"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("matches", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("matches", time.Now(), fmt.Errorf("x: %w", ErrStoreUnavailable))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "kind_sdk_calls_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("kind_sdk_calls_total not found")
	}
}

func TestObserver_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second registration should reuse collectors: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("matches", time.Now(), nil)
	obs.observe("matches", time.Now(), errors.New("test error"))
}
