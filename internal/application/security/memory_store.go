package security

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Memory store defaults.
const (
	DefaultMaxSessions   = 100_000
	DefaultSessionTTL    = 12 * time.Hour
	DefaultSweepInterval = 5 * time.Minute
)

// MemoryStoreConfig configures the in-memory session store.
type MemoryStoreConfig struct {
	// MaxEntries caps the store size. Inserting past the cap evicts the
	// least-recently-accessed session.
	MaxEntries int

	// IdleTTL is how long an untouched session survives before the janitor
	// removes it.
	IdleTTL time.Duration

	// SweepInterval is how often the janitor scans for idle sessions.
	SweepInterval time.Duration

	// Logger is the structured logger for eviction reporting.
	Logger *slog.Logger
}

// MemoryStore is a mutex-guarded in-memory SessionStore with idle-TTL
// eviction and a hard size cap.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Fingerprint

	maxEntries    int
	idleTTL       time.Duration
	sweepInterval time.Duration
	logger        *slog.Logger

	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewMemoryStore creates an in-memory session store. Call StartJanitor to
// enable TTL eviction and Close on shutdown.
func NewMemoryStore(cfg MemoryStoreConfig) *MemoryStore {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxSessions
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultSessionTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryStore{
		entries:       make(map[string]Fingerprint),
		maxEntries:    cfg.MaxEntries,
		idleTTL:       cfg.IdleTTL,
		sweepInterval: cfg.SweepInterval,
		logger:        logger,
		done:          make(chan struct{}),
	}
}

// LoadOrStore implements SessionStore. The check-and-insert runs under one
// lock acquisition, so racing first observations of the same session id
// resolve to a single stored baseline.
func (s *MemoryStore) LoadOrStore(_ context.Context, sessionID string, fp Fingerprint) (Fingerprint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[sessionID]; ok {
		return existing, false, nil
	}

	if len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.entries[sessionID] = fp
	return fp, true, nil
}

// Touch implements SessionStore.
func (s *MemoryStore) Touch(_ context.Context, sessionID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fp, ok := s.entries[sessionID]; ok {
		fp.LastAccessAt = at
		s.entries[sessionID] = fp
	}
	return nil
}

// Len returns the number of tracked sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor launches the background sweep that evicts idle sessions.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.janitor(ctx)
	})
}

// Close stops the janitor.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *MemoryStore) janitor(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now().UTC())
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, fp := range s.entries {
		if now.Sub(fp.LastAccessAt) > s.idleTTL {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug("evicted idle sessions",
			slog.Int("removed", removed),
			slog.Int("remaining", len(s.entries)),
		)
	}
}

// evictOldestLocked removes the least-recently-accessed entry. Caller holds
// the lock.
func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	first := true

	for id, fp := range s.entries {
		if first || fp.LastAccessAt.Before(oldestAt) {
			oldestID = id
			oldestAt = fp.LastAccessAt
			first = false
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}
