package security_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/audit"
	"github.com/quizforge/quizforge/internal/application/security"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// collectingEmitter records emitted events synchronously.
type collectingEmitter struct {
	mu     sync.Mutex
	events []audit.Event
}

func (c *collectingEmitter) Emit(e audit.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collectingEmitter) all() []audit.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]audit.Event(nil), c.events...)
}

func (c *collectingEmitter) bySeverity(s audit.Severity) []audit.Event {
	var out []audit.Event
	for _, e := range c.all() {
		if e.Severity == s {
			out = append(out, e)
		}
	}
	return out
}

func newTestTracker(t *testing.T, strict bool) (*security.Tracker, *collectingEmitter) {
	t.Helper()
	emitter := &collectingEmitter{}
	tracker := security.NewTracker(security.TrackerConfig{
		Store:         security.NewMemoryStore(security.MemoryStoreConfig{}),
		Emitter:       emitter,
		StrictIPCheck: strict,
	})
	return tracker, emitter
}

func TestTracker_FirstObservationSucceeds(t *testing.T) {
	tracker, emitter := newTestTracker(t, false)

	result := tracker.CheckAndRecord(context.Background(), "s1", uuid.NewUUID(), "10.0.0.1", "agent-x")

	assert.True(t, result.IsSuccess())
	assert.Empty(t, emitter.all())
}

func TestTracker_UserMismatchIsHardBlock(t *testing.T) {
	tracker, emitter := newTestTracker(t, false)
	u1 := uuid.NewUUID()
	u2 := uuid.NewUUID()

	require.True(t, tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-x").IsSuccess())

	result := tracker.CheckAndRecord(context.Background(), "s1", u2, "10.0.0.1", "agent-x")

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeSessionHijacked, result.Code())

	critical := emitter.bySeverity(audit.SeverityCritical)
	require.Len(t, critical, 1)
	assert.Equal(t, audit.EventSessionHijacked, critical[0].Type)
	assert.Equal(t, u1.String(), critical[0].Details["expected_user"])
	assert.Equal(t, u2.String(), critical[0].Details["observed_user"])
}

func TestTracker_IPDriftIsSoftSignal(t *testing.T) {
	tracker, emitter := newTestTracker(t, false)
	u1 := uuid.NewUUID()

	require.True(t, tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-x").IsSuccess())

	result := tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.2", "agent-x")

	assert.True(t, result.IsSuccess(), "users roam networks; IP drift must not block")

	high := emitter.bySeverity(audit.SeverityHigh)
	require.Len(t, high, 1)
	assert.Equal(t, audit.EventSessionIPChanged, high[0].Type)
	assert.Equal(t, "10.0.0.1", high[0].Details["expected_ip"])
	assert.Equal(t, "10.0.0.2", high[0].Details["observed_ip"])
}

func TestTracker_IPDriftBlocksWhenStrict(t *testing.T) {
	tracker, emitter := newTestTracker(t, true)
	u1 := uuid.NewUUID()

	require.True(t, tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-x").IsSuccess())

	result := tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.2", "agent-x")

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeSessionHijacked, result.Code())
	assert.Len(t, emitter.bySeverity(audit.SeverityHigh), 1)
}

func TestTracker_UserAgentDriftIsMediumSignal(t *testing.T) {
	tracker, emitter := newTestTracker(t, false)
	u1 := uuid.NewUUID()

	require.True(t, tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-x").IsSuccess())

	result := tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-y")

	assert.True(t, result.IsSuccess())

	medium := emitter.bySeverity(audit.SeverityMedium)
	require.Len(t, medium, 1)
	assert.Equal(t, audit.EventSessionAgentChanged, medium[0].Type)
}

func TestTracker_MatchingAccessEmitsNothing(t *testing.T) {
	tracker, emitter := newTestTracker(t, false)
	u1 := uuid.NewUUID()

	require.True(t, tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-x").IsSuccess())
	require.True(t, tracker.CheckAndRecord(context.Background(), "s1", u1, "10.0.0.1", "agent-x").IsSuccess())

	assert.Empty(t, emitter.all())
}

func TestMemoryStore_LoadOrStoreIsAtomic(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{})

	const workers = 32
	var stored sync.Map
	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			fp := security.Fingerprint{
				UserID:       uuid.NewUUID(),
				CreatedAt:    time.Now(),
				LastAccessAt: time.Now(),
				IP:           "10.0.0.1",
			}
			_, wasStored, err := store.LoadOrStore(context.Background(), "same-session", fp)
			require.NoError(t, err)
			if wasStored {
				stored.Store(n, true)
			}
		}(i)
	}
	wg.Wait()

	count := 0
	stored.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count, "exactly one racing first-observation may establish the baseline")
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_CapEvictsOldest(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{MaxEntries: 2})
	now := time.Now().UTC()

	old := security.Fingerprint{UserID: uuid.NewUUID(), LastAccessAt: now.Add(-time.Hour)}
	fresh := security.Fingerprint{UserID: uuid.NewUUID(), LastAccessAt: now}

	_, _, err := store.LoadOrStore(context.Background(), "old", old)
	require.NoError(t, err)
	_, _, err = store.LoadOrStore(context.Background(), "fresh", fresh)
	require.NoError(t, err)

	newcomer := security.Fingerprint{UserID: uuid.NewUUID(), LastAccessAt: now}
	_, wasStored, err := store.LoadOrStore(context.Background(), "newcomer", newcomer)
	require.NoError(t, err)
	assert.True(t, wasStored)
	assert.Equal(t, 2, store.Len())

	// The idle session is gone; its next access re-establishes a baseline.
	_, wasStored, err = store.LoadOrStore(context.Background(), "old", old)
	require.NoError(t, err)
	assert.True(t, wasStored)
}

func TestMemoryStore_TouchUpdatesLastAccess(t *testing.T) {
	store := security.NewMemoryStore(security.MemoryStoreConfig{})
	now := time.Now().UTC()

	fp := security.Fingerprint{UserID: uuid.NewUUID(), LastAccessAt: now}
	_, _, err := store.LoadOrStore(context.Background(), "s1", fp)
	require.NoError(t, err)

	later := now.Add(time.Minute)
	require.NoError(t, store.Touch(context.Background(), "s1", later))

	got, wasStored, err := store.LoadOrStore(context.Background(), "s1", fp)
	require.NoError(t, err)
	assert.False(t, wasStored)
	assert.Equal(t, later, got.LastAccessAt)
}
