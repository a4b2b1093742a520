// Package app is the composition root shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kindph/matching/internal/config"
	pgdb "github.com/kindph/matching/internal/db/postgres"
	dbRedis "github.com/kindph/matching/internal/db/redis"
	sqlitedb "github.com/kindph/matching/internal/db/sqlite"
	"github.com/kindph/matching/internal/metrics"
	"github.com/kindph/matching/internal/repository/prefcache"
	pgrepo "github.com/kindph/matching/internal/repository/postgres"
	sqliterepo "github.com/kindph/matching/internal/repository/sqlite"
	"github.com/kindph/matching/internal/usecase/boost"
	healthuc "github.com/kindph/matching/internal/usecase/health"
	interactionuc "github.com/kindph/matching/internal/usecase/interaction"
	matchinguc "github.com/kindph/matching/internal/usecase/matching"
)

// App holds the wired services.
type App struct {
	Matching     *matchinguc.Service
	Interactions *interactionuc.Service
	Sweeper      *boost.Sweeper
	Health       *healthuc.Service
	// PrefCache is nil when the cache is disabled.
	PrefCache *prefcache.Loader

	closers []func()
}

// repos is what a primary store driver provides.
type repos struct {
	seekers      matchinguc.PreferenceLoader
	jobs         jobStore
	interactions interactionuc.Repository
	pinger       healthuc.DBPinger
}

type jobStore interface {
	matchinguc.CandidateReader
	boost.Store
}

// New connects the stores from cfg and wires every service.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}

	r, err := a.openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	var loader matchinguc.PreferenceLoader = r.seekers
	// Keep publisher a nil interface (not a typed nil *Store) when the cache is off.
	var publisher interactionuc.Publisher
	var cachePinger healthuc.CachePinger

	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		a.closers = append(a.closers, store.Close)

		timeout := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, timeout); err != nil {
			// Matching works uncached; health reports degraded.
			logger.Warn("Cache not ready, continuing", zap.Error(err))
		}

		a.PrefCache = prefcache.New(r.seekers, store, cfg.Cache.TTL(), metrics.PrefCacheTotal, logger)
		loader = a.PrefCache
		publisher = store
		cachePinger = store
	}

	a.Matching = matchinguc.New(loader, r.jobs, logger).
		WithObserver(metrics.MatchObserver{}).
		WithDefaultLimit(cfg.Matching.DefaultLimit)
	a.Interactions = interactionuc.New(r.interactions, publisher, cfg.Events.Channel, logger).
		WithCounter(metrics.InteractionsTotal)
	a.Sweeper = boost.New(r.jobs, cfg.BoostSweeper.Spec, logger).
		WithCounter(metrics.BoostsExpiredTotal)
	a.Health = healthuc.New(r.pinger, cachePinger)

	return a, nil
}

// Close releases stores in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (repos, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := pgdb.Connect(ctx, pgdb.Config{
			DSN:      cfg.DSN,
			MaxConns: cfg.MaxConns,
			MinConns: cfg.MinConns,
		})
		if err != nil {
			return repos{}, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		if err := pgdb.WaitForReady(ctx, pool, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			return repos{}, fmt.Errorf("postgres not ready: %w", err)
		}
		if err := pgdb.Migrate(ctx, pool); err != nil {
			return repos{}, fmt.Errorf("migrate postgres: %w", err)
		}
		logger.Info("Connected to database", zap.String("driver", cfg.Driver))

		return repos{
			seekers:      pgrepo.NewSeekerRepo(pool),
			jobs:         pgrepo.NewJobRepo(pool),
			interactions: pgrepo.NewInteractionRepo(pool),
			pinger:       pool,
		}, nil

	case config.DriverSQLite:
		conn, err := sqlitedb.Open(ctx, cfg.DSN)
		if err != nil {
			return repos{}, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { _ = conn.Close() })
		logger.Info("Opened database", zap.String("driver", cfg.Driver), zap.String("path", cfg.DSN))

		return repos{
			seekers:      sqliterepo.NewSeekerRepo(conn),
			jobs:         sqliterepo.NewJobRepo(conn, logger),
			interactions: sqliterepo.NewInteractionRepo(conn),
			pinger:       sqlPinger{conn},
		}, nil
	}
	return repos{}, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// sqlPinger adapts *sql.DB to healthuc.DBPinger.
type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
