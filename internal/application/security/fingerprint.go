package security

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/audit"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Fingerprint is the first-observed identity/network baseline for a session.
type Fingerprint struct {
	UserID       uuid.UUID
	CreatedAt    time.Time
	LastAccessAt time.Time
	IP           string
	UserAgent    string
}

// SessionStore persists session fingerprints. LoadOrStore must be atomic
// across racing first observations of the same session id: exactly one caller
// establishes the baseline.
type SessionStore interface {
	// LoadOrStore returns the existing fingerprint for sessionID, or stores
	// fp as the baseline. The boolean reports whether fp was stored.
	LoadOrStore(ctx context.Context, sessionID string, fp Fingerprint) (Fingerprint, bool, error)

	// Touch updates the last-access time of an existing fingerprint.
	Touch(ctx context.Context, sessionID string, at time.Time) error
}

// TrackerConfig configures the fingerprint tracker.
type TrackerConfig struct {
	// Store is the fingerprint backing store.
	Store SessionStore

	// Emitter receives security events for detected anomalies.
	Emitter audit.Emitter

	// Logger is the structured logger.
	Logger *slog.Logger

	// StrictIPCheck elevates an IP change from a logged signal to a blocking
	// failure. Off by default: legitimate users roam networks.
	StrictIPCheck bool
}

// Tracker detects session anomalies by comparing each validated access
// against the session's first-observed fingerprint. A user mismatch always
// blocks; IP and user-agent drift are soft signals unless configured strict.
type Tracker struct {
	store   SessionStore
	emitter audit.Emitter
	logger  *slog.Logger
	strict  bool
}

// NewTracker creates a Tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	emitter := cfg.Emitter
	if emitter == nil {
		emitter = audit.NopEmitter{}
	}

	return &Tracker{
		store:   cfg.Store,
		emitter: emitter,
		logger:  logger,
		strict:  cfg.StrictIPCheck,
	}
}

// CheckAndRecord validates one access of sessionID by userID and records it.
// The first observation establishes the baseline. On later observations a
// differing user is a hard SESSION_HIJACKED failure with a CRITICAL event;
// a differing IP or user agent emits a HIGH or MEDIUM event and lets the
// request proceed. Every validated access refreshes the last-access time.
func (t *Tracker) CheckAndRecord(
	ctx context.Context,
	sessionID string,
	userID uuid.UUID,
	ip, userAgent string,
) appcore.Result[appcore.Unit] {
	now := time.Now().UTC()
	candidate := Fingerprint{
		UserID:       userID,
		CreatedAt:    now,
		LastAccessAt: now,
		IP:           ip,
		UserAgent:    userAgent,
	}

	existing, stored, err := t.store.LoadOrStore(ctx, sessionID, candidate)
	if err != nil {
		return appcore.Fail(appcore.CodeConnection, fmt.Sprintf("session store: %v", err))
	}
	if stored {
		return appcore.OK()
	}

	if existing.UserID != userID {
		t.emitter.Emit(t.anomalyEvent(audit.EventSessionHijacked, audit.SeverityCritical,
			sessionID, userID, ip, userAgent, map[string]string{
				"expected_user": existing.UserID.String(),
				"observed_user": userID.String(),
			}))
		t.logger.Error("session user mismatch",
			slog.String("session_id", sessionID),
			slog.String("expected_user", existing.UserID.String()),
			slog.String("observed_user", userID.String()),
		)
		return appcore.Fail(appcore.CodeSessionHijacked,
			"session is bound to a different user")
	}

	if existing.IP != ip {
		t.emitter.Emit(t.anomalyEvent(audit.EventSessionIPChanged, audit.SeverityHigh,
			sessionID, userID, ip, userAgent, map[string]string{
				"expected_ip": existing.IP,
				"observed_ip": ip,
			}))
		if t.strict {
			return appcore.Fail(appcore.CodeSessionHijacked,
				"session IP changed and strict checking is enabled")
		}
	} else if existing.UserAgent != userAgent {
		t.emitter.Emit(t.anomalyEvent(audit.EventSessionAgentChanged, audit.SeverityMedium,
			sessionID, userID, ip, userAgent, map[string]string{
				"expected_user_agent": existing.UserAgent,
				"observed_user_agent": userAgent,
			}))
	}

	if err := t.store.Touch(ctx, sessionID, now); err != nil {
		// Losing one last-access update is harmless; the access itself was
		// already validated.
		t.logger.Warn("failed to touch session fingerprint",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}
	return appcore.OK()
}

func (t *Tracker) anomalyEvent(
	eventType audit.EventType,
	severity audit.Severity,
	sessionID string,
	userID uuid.UUID,
	ip, userAgent string,
	details map[string]string,
) audit.Event {
	e := audit.NewEvent(eventType, severity, details)
	e.SessionID = sessionID
	e.UserID = userID
	e.ClientIP = ip
	e.UserAgent = userAgent
	return e
}
