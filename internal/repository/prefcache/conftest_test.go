package prefcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kindph/matching/internal/db"
	"github.com/kindph/matching/internal/domain/seeker"
)

type mockSource struct {
	prefs        seeker.Preferences
	prefsErr     error
	profile      seeker.Profile
	profileErr   error
	prefsCalls   int
	profileCalls int
}

func (m *mockSource) GetPreferences(_ context.Context, _ string) (seeker.Preferences, error) {
	m.prefsCalls++
	return m.prefs, m.prefsErr
}

func (m *mockSource) GetProfile(_ context.Context, _ string) (seeker.Profile, error) {
	m.profileCalls++
	return m.profile, m.profileErr
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn func(ctx context.Context, keys ...string) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func newTestLoader(t *testing.T, inner *mockSource) (*Loader, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	return New(inner, ms, 5*time.Minute, nil, zap.NewNop()), ms
}
