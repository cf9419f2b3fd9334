package security

import (
	"context"
	"fmt"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/audit"
)

// AuthPresenceValidator rejects commands arriving without an ambient
// authenticated identity. Cheapest check in the chain, so it runs first.
type AuthPresenceValidator struct {
	emitter audit.Emitter
}

// NewAuthPresenceValidator creates an AuthPresenceValidator.
func NewAuthPresenceValidator(emitter audit.Emitter) *AuthPresenceValidator {
	return &AuthPresenceValidator{emitter: emitter}
}

// Name implements Validator.
func (v *AuthPresenceValidator) Name() string { return "auth_presence" }

// Validate implements Validator.
func (v *AuthPresenceValidator) Validate(ctx context.Context, cmd appcore.Command) appcore.Result[appcore.Unit] {
	if _, err := appcore.IdentityFrom(ctx); err != nil {
		v.emitter.Emit(audit.FromContext(ctx, audit.EventAuthMissing, audit.SeverityHigh, map[string]string{
			"command": cmd.CommandName(),
		}))
		return appcore.Fail(appcore.CodeUnauthorized, "authentication required")
	}
	return appcore.OK()
}

// IdentityMatchValidator ensures a user-scoped command (user id taken from a
// path parameter) targets the authenticated caller. Commands without a user
// scope pass through untouched.
type IdentityMatchValidator struct {
	emitter audit.Emitter
}

// NewIdentityMatchValidator creates an IdentityMatchValidator.
func NewIdentityMatchValidator(emitter audit.Emitter) *IdentityMatchValidator {
	return &IdentityMatchValidator{emitter: emitter}
}

// Name implements Validator.
func (v *IdentityMatchValidator) Name() string { return "identity_match" }

// Validate implements Validator.
func (v *IdentityMatchValidator) Validate(ctx context.Context, cmd appcore.Command) appcore.Result[appcore.Unit] {
	scoped, ok := cmd.(appcore.UserScoped)
	if !ok {
		return appcore.OK()
	}

	identity, err := appcore.IdentityFrom(ctx)
	if err != nil {
		return appcore.Fail(appcore.CodeUnauthorized, "authentication required")
	}

	if scoped.ScopedUserID() != identity.UserID {
		v.emitter.Emit(audit.FromContext(ctx, audit.EventIdentityMismatch, audit.SeverityHigh, map[string]string{
			"command":     cmd.CommandName(),
			"target_user": scoped.ScopedUserID().String(),
		}))
		return appcore.Fail(appcore.CodeIdentityMismatch,
			"path user does not match authenticated identity")
	}
	return appcore.OK()
}

// SessionIntegrityValidator consults the fingerprint tracker for every
// command arriving with a session id. Requests without session metadata pass
// through; the boundary decides whether sessions are mandatory.
type SessionIntegrityValidator struct {
	tracker *Tracker
}

// NewSessionIntegrityValidator creates a SessionIntegrityValidator.
func NewSessionIntegrityValidator(tracker *Tracker) *SessionIntegrityValidator {
	return &SessionIntegrityValidator{tracker: tracker}
}

// Name implements Validator.
func (v *SessionIntegrityValidator) Name() string { return "session_integrity" }

// Validate implements Validator.
func (v *SessionIntegrityValidator) Validate(ctx context.Context, _ appcore.Command) appcore.Result[appcore.Unit] {
	meta, err := appcore.RequestMetaFrom(ctx)
	if err != nil || meta.SessionID == "" {
		return appcore.OK()
	}

	identity, err := appcore.IdentityFrom(ctx)
	if err != nil {
		return appcore.Fail(appcore.CodeUnauthorized, "authentication required")
	}

	return v.tracker.CheckAndRecord(ctx, meta.SessionID, identity.UserID, meta.ClientIP, meta.UserAgent)
}

// OwnershipValidator verifies that the caller owns the resource a
// resource-scoped command targets. The store lookup goes through the retry
// policy; ownership denials are terminal and never retried.
type OwnershipValidator struct {
	checker OwnershipChecker
	retry   RetryPolicy
	emitter audit.Emitter
}

// NewOwnershipValidator creates an OwnershipValidator.
func NewOwnershipValidator(checker OwnershipChecker, retry RetryPolicy, emitter audit.Emitter) *OwnershipValidator {
	return &OwnershipValidator{checker: checker, retry: retry, emitter: emitter}
}

// Name implements Validator.
func (v *OwnershipValidator) Name() string { return "resource_ownership" }

// Validate implements Validator.
func (v *OwnershipValidator) Validate(ctx context.Context, cmd appcore.Command) appcore.Result[appcore.Unit] {
	scoped, ok := cmd.(appcore.ResourceScoped)
	if !ok {
		return appcore.OK()
	}

	identity, err := appcore.IdentityFrom(ctx)
	if err != nil {
		return appcore.Fail(appcore.CodeUnauthorized, "authentication required")
	}
	resourceID := scoped.ScopedResourceID()

	result := ExecuteWithRetry(v.retry, "ownership lookup", func() appcore.Result[bool] {
		return v.checker.ValidateOwnership(ctx, identity.UserID, resourceID)
	})
	if result.IsFailure() {
		if result.Code() == appcore.CodeRetryExhausted {
			v.emitter.Emit(audit.FromContext(ctx, audit.EventValidationExhausted, audit.SeverityHigh, map[string]string{
				"command": cmd.CommandName(),
				"check":   v.Name(),
				"error":   result.Message(),
			}))
		}
		return appcore.FailureFrom[appcore.Unit](result)
	}

	if !result.Value() {
		v.emitter.Emit(audit.FromContext(ctx, audit.EventOwnershipViolation, audit.SeverityHigh, map[string]string{
			"command":  cmd.CommandName(),
			"resource": resourceID.String(),
		}))
		return appcore.Fail(appcore.CodeOwnershipViolation,
			fmt.Sprintf("resource %s is not owned by the caller", resourceID))
	}
	return appcore.OK()
}

// ActiveStateValidator rejects mutations of archived or disabled resources.
// Runs after ownership so the existence of foreign resources does not leak.
type ActiveStateValidator struct {
	checker OwnershipChecker
	retry   RetryPolicy
	emitter audit.Emitter
}

// NewActiveStateValidator creates an ActiveStateValidator.
func NewActiveStateValidator(checker OwnershipChecker, retry RetryPolicy, emitter audit.Emitter) *ActiveStateValidator {
	return &ActiveStateValidator{checker: checker, retry: retry, emitter: emitter}
}

// Name implements Validator.
func (v *ActiveStateValidator) Name() string { return "resource_active" }

// Validate implements Validator.
func (v *ActiveStateValidator) Validate(ctx context.Context, cmd appcore.Command) appcore.Result[appcore.Unit] {
	scoped, ok := cmd.(appcore.ResourceScoped)
	if !ok {
		return appcore.OK()
	}

	identity, err := appcore.IdentityFrom(ctx)
	if err != nil {
		return appcore.Fail(appcore.CodeUnauthorized, "authentication required")
	}
	resourceID := scoped.ScopedResourceID()

	result := ExecuteWithRetry(v.retry, "active-state lookup", func() appcore.Result[bool] {
		return v.checker.IsActive(ctx, identity.UserID, resourceID)
	})
	if result.IsFailure() {
		if result.Code() == appcore.CodeRetryExhausted {
			v.emitter.Emit(audit.FromContext(ctx, audit.EventValidationExhausted, audit.SeverityHigh, map[string]string{
				"command": cmd.CommandName(),
				"check":   v.Name(),
				"error":   result.Message(),
			}))
		}
		return appcore.FailureFrom[appcore.Unit](result)
	}

	if !result.Value() {
		v.emitter.Emit(audit.FromContext(ctx, audit.EventResourceInactive, audit.SeverityMedium, map[string]string{
			"command":  cmd.CommandName(),
			"resource": resourceID.String(),
		}))
		return appcore.Fail(appcore.CodeInactive,
			fmt.Sprintf("resource %s is not active", resourceID))
	}
	return appcore.OK()
}
