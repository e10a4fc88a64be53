package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/marketloop/storefront-backend/pkg/redis"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	val, ok := f.values[key]
	if !ok {
		return "", redisclient.ErrNotFound
	}
	return val, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) SessionKey(sessionID string) string { return "test:session:" + sessionID }

func TestRecordHasRevoke(t *testing.T) {
	store := newFakeStore()
	mgr := &Manager{store: store, keyer: fakeKeyer{}, ttl: time.Hour}
	ctx := context.Background()

	sessionID := NewSessionID()
	require.NoError(t, mgr.Record(ctx, sessionID, uuid.New()))

	ok, err := mgr.HasSession(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mgr.Revoke(ctx, sessionID))

	ok, err = mgr.HasSession(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasSessionBlankID(t *testing.T) {
	mgr := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Hour}
	ok, err := mgr.HasSession(context.Background(), "  ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordRequiresID(t *testing.T) {
	mgr := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Hour}
	assert.Error(t, mgr.Record(context.Background(), "", uuid.New()))
}
