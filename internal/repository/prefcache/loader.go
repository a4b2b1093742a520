// Package prefcache is a read-through Redis cache in front of the seeker
// preference store.
package prefcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kindph/matching/internal/db"
	"github.com/kindph/matching/internal/domain"
	"github.com/kindph/matching/internal/domain/seeker"
)

var keyPrefix = domain.KeyPrefix + "seeker:"

const (
	kindPrefs   = "prefs"
	kindProfile = "profile"
)

// source is the backing store being cached.
type source interface {
	GetPreferences(ctx context.Context, seekerID string) (seeker.Preferences, error)
	GetProfile(ctx context.Context, seekerID string) (seeker.Profile, error)
}

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Loader caches preferences and profiles. Cache failures are logged and fall
// through to the source; they never fail a read.
type Loader struct {
	inner      source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with labels "kind" and "result" ("hit"/"miss"), passed explicitly.
func New(inner source, s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Loader {
	return &Loader{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// GetPreferences returns cached preferences or loads them from the source.
// A missing record is passed through and not cached.
func (l *Loader) GetPreferences(ctx context.Context, seekerID string) (seeker.Preferences, error) {
	key := cacheKey(seekerID, kindPrefs)

	var dto prefsDTO
	if l.getFromCache(ctx, key, &dto) {
		l.incCache(kindPrefs, "hit")
		return dto.toDomain(), nil
	}
	l.incCache(kindPrefs, "miss")

	prefs, err := l.inner.GetPreferences(ctx, seekerID)
	if err != nil {
		return seeker.Preferences{}, err
	}

	l.putToCache(ctx, key, prefsToDTO(&prefs))
	return prefs, nil
}

// GetProfile returns the cached profile or loads it from the source.
func (l *Loader) GetProfile(ctx context.Context, seekerID string) (seeker.Profile, error) {
	key := cacheKey(seekerID, kindProfile)

	var dto profileDTO
	if l.getFromCache(ctx, key, &dto) {
		l.incCache(kindProfile, "hit")
		return dto.toDomain(), nil
	}
	l.incCache(kindProfile, "miss")

	profile, err := l.inner.GetProfile(ctx, seekerID)
	if err != nil {
		return seeker.Profile{}, err
	}

	l.putToCache(ctx, key, profileToDTO(&profile))
	return profile, nil
}

// Invalidate drops both cached entries for the seeker.
func (l *Loader) Invalidate(ctx context.Context, seekerID string) error {
	return l.store.Del(ctx, cacheKey(seekerID, kindPrefs), cacheKey(seekerID, kindProfile))
}

func cacheKey(seekerID, kind string) string {
	return keyPrefix + seekerID + ":" + kind
}

func (l *Loader) incCache(kind, result string) {
	if l.cacheTotal != nil {
		l.cacheTotal.WithLabelValues(kind, result).Inc()
	}
}

func (l *Loader) getFromCache(ctx context.Context, key string, dst any) bool {
	data, err := l.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			l.logger.Warn("Failed to read seeker cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		l.logger.Warn("Failed to parse seeker cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (l *Loader) putToCache(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		l.logger.Warn("Failed to encode seeker cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := l.store.SetWithTTL(ctx, key, data, l.ttl); err != nil {
		l.logger.Warn("Failed to write seeker cache", zap.String("key", key), zap.Error(err))
	}
}
