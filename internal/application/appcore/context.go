package appcore

import (
	"context"
	"errors"

	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Context keys
type contextKey string

const (
	identityKey    contextKey = "identity"
	requestMetaKey contextKey = "requestMeta"
)

var (
	// ErrIdentityNotFound is returned when no authenticated identity is
	// present in the context.
	ErrIdentityNotFound = errors.New("authenticated identity not found in context")

	// ErrRequestMetaNotFound is returned when no request metadata is present
	// in the context.
	ErrRequestMetaNotFound = errors.New("request metadata not found in context")
)

// Identity is the ambient authenticated identity populated by the API
// boundary and read by the security chain. The core never parses transport
// payloads itself.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Roles    []string
}

// RequestMeta carries per-request transport metadata used for session
// fingerprinting and audit events.
type RequestMeta struct {
	SessionID string
	ClientIP  string
	UserAgent string
	RequestID string
}

// WithIdentity adds the authenticated identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the authenticated identity from the context.
func IdentityFrom(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID.IsZero() {
		return Identity{}, ErrIdentityNotFound
	}
	return id, nil
}

// WithRequestMeta adds request metadata to the context.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey, meta)
}

// RequestMetaFrom extracts request metadata from the context.
func RequestMetaFrom(ctx context.Context) (RequestMeta, error) {
	meta, ok := ctx.Value(requestMetaKey).(RequestMeta)
	if !ok {
		return RequestMeta{}, ErrRequestMetaNotFound
	}
	return meta, nil
}
