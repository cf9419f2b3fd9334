// Package user contains the authoring identity mirrored from the external
// identity provider.
package user

import (
	"time"

	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// User is a quiz author or administrator. Identities originate in the
// external auth provider; the local record carries authoring state.
type User struct {
	id          uuid.UUID
	externalID  string
	username    string
	email       string
	displayName string
	isAdmin     bool
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUser creates a user mirrored from the auth provider.
func NewUser(externalID, username, email, displayName string) (*User, error) {
	if externalID == "" || username == "" || email == "" {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now().UTC()
	return &User{
		id:          uuid.NewUUID(),
		externalID:  externalID,
		username:    username,
		email:       email,
		displayName: displayName,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct restores a user from storage.
func Reconstruct(
	id uuid.UUID,
	externalID, username, email, displayName string,
	isAdmin, isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:          id,
		externalID:  externalID,
		username:    username,
		email:       email,
		displayName: displayName,
		isAdmin:     isAdmin,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the local user ID.
func (u *User) ID() uuid.UUID { return u.id }

// ExternalID returns the ID in the external auth provider.
func (u *User) ExternalID() string { return u.externalID }

// Username returns the login name.
func (u *User) Username() string { return u.username }

// Email returns the email address.
func (u *User) Email() string { return u.email }

// DisplayName returns the human-readable name.
func (u *User) DisplayName() string { return u.displayName }

// IsAdmin reports whether the user has administrative privileges.
func (u *User) IsAdmin() bool { return u.isAdmin }

// IsActive reports whether the account is active. Deactivated accounts are
// kept for audit history.
func (u *User) IsActive() bool { return u.isActive }

// CreatedAt returns the creation time.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last modification time.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Deactivate soft-deletes the account.
func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now().UTC()
}

// Activate restores a deactivated account.
func (u *User) Activate() {
	u.isActive = true
	u.updatedAt = time.Now().UTC()
}

// UpdateProfile refreshes mutable profile fields from the auth provider.
func (u *User) UpdateProfile(username, email, displayName string) error {
	if username == "" || email == "" {
		return errs.ErrInvalidInput
	}
	u.username = username
	u.email = email
	u.displayName = displayName
	u.updatedAt = time.Now().UTC()
	return nil
}

// SetAdmin grants or revokes administrative privileges.
func (u *User) SetAdmin(isAdmin bool) {
	u.isAdmin = isAdmin
	u.updatedAt = time.Now().UTC()
}
