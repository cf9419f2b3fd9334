package security_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/security"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func memFingerprint(at time.Time) security.Fingerprint {
	return security.Fingerprint{
		UserID:       uuid.NewUUID(),
		CreatedAt:    at,
		LastAccessAt: at,
		IP:           "10.0.0.1",
		UserAgent:    "agent",
	}
}

func TestMemoryStore_LoadOrStore_FirstObservationWins(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{})
	ctx := t.Context()

	baseline := memFingerprint(time.Now().UTC())
	stored, created, err := store.LoadOrStore(ctx, "sess-1", baseline)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, baseline.UserID, stored.UserID)

	other := memFingerprint(time.Now().UTC())
	stored, created, err = store.LoadOrStore(ctx, "sess-1", other)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, baseline.UserID, stored.UserID)
}

func TestMemoryStore_CapEvictsOldestAccess(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{MaxEntries: 2})
	ctx := t.Context()

	now := time.Now().UTC()
	_, _, err := store.LoadOrStore(ctx, "old", memFingerprint(now.Add(-time.Hour)))
	require.NoError(t, err)
	_, _, err = store.LoadOrStore(ctx, "recent", memFingerprint(now))
	require.NoError(t, err)

	_, _, err = store.LoadOrStore(ctx, "newest", memFingerprint(now))
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	// The stale session went; the recent one survived.
	_, created, err := store.LoadOrStore(ctx, "recent", memFingerprint(now))
	require.NoError(t, err)
	assert.False(t, created)
	_, created, err = store.LoadOrStore(ctx, "old", memFingerprint(now))
	require.NoError(t, err)
	assert.True(t, created, "evicted session should be insertable again")
}

func TestMemoryStore_JanitorSweepsIdleSessions(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{
		IdleTTL:       10 * time.Millisecond,
		SweepInterval: 5 * time.Millisecond,
	})
	t.Cleanup(store.Close)

	_, _, err := store.LoadOrStore(t.Context(), "idle",
		memFingerprint(time.Now().UTC().Add(-time.Minute)))
	require.NoError(t, err)

	store.StartJanitor(t.Context())

	require.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestMemoryStore_JanitorStopsOnContextCancel(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{
		IdleTTL:       time.Hour,
		SweepInterval: 5 * time.Millisecond,
	})
	t.Cleanup(store.Close)

	ctx, cancel := context.WithCancel(t.Context())
	store.StartJanitor(ctx)
	cancel()

	now := time.Now().UTC()
	_, _, err := store.LoadOrStore(t.Context(), "sess", memFingerprint(now))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}
