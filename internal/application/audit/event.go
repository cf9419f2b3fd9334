// Package audit defines security events and the asynchronous, best-effort
// emitter that delivers them. Emission is decoupled from the request path: a
// slow or unavailable sink never delays or fails a validation outcome.
package audit

import (
	"context"
	"maps"
	"time"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Severity ranks the urgency of a security event.
type Severity string

// Event severities.
const (
	SeverityInfo     Severity = "INFO"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// EventType names a detected condition.
type EventType string

// Event types emitted by the security chain and the dispatcher.
const (
	EventAuthMissing          EventType = "AUTH_MISSING"
	EventIdentityMismatch     EventType = "IDENTITY_MISMATCH"
	EventOwnershipViolation   EventType = "OWNERSHIP_VIOLATION"
	EventResourceInactive     EventType = "RESOURCE_INACTIVE"
	EventSessionHijacked      EventType = "SESSION_HIJACKED"
	EventSessionIPChanged     EventType = "SESSION_IP_CHANGED"
	EventSessionAgentChanged  EventType = "SESSION_USER_AGENT_CHANGED"
	EventHandlerPanic         EventType = "HANDLER_PANIC"
	EventValidationExhausted  EventType = "VALIDATION_RETRY_EXHAUSTED"
)

// Event is an immutable security audit record. It is created once by a
// validator or the dispatcher's fatal path and queued for asynchronous
// delivery; nothing mutates it afterwards.
type Event struct {
	Type      EventType         `json:"type"`
	UserID    uuid.UUID         `json:"user_id,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
	Severity  Severity          `json:"severity"`
	Details   map[string]string `json:"details,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	UserAgent string            `json:"user_agent,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time. The details map is
// copied so later caller mutations cannot leak into the queued record.
func NewEvent(eventType EventType, severity Severity, details map[string]string) Event {
	return Event{
		Type:      eventType,
		Severity:  severity,
		Details:   maps.Clone(details),
		Timestamp: time.Now().UTC(),
	}
}

// FromContext creates an event populated with the ambient identity and
// request metadata, when present. Both are optional: an unauthenticated
// request still produces a usable record.
func FromContext(ctx context.Context, eventType EventType, severity Severity, details map[string]string) Event {
	e := NewEvent(eventType, severity, details)

	if id, err := appcore.IdentityFrom(ctx); err == nil {
		e.UserID = id.UserID
	}
	if meta, err := appcore.RequestMetaFrom(ctx); err == nil {
		e.SessionID = meta.SessionID
		e.ClientIP = meta.ClientIP
		e.UserAgent = meta.UserAgent
		e.RequestID = meta.RequestID
	}

	return e
}
