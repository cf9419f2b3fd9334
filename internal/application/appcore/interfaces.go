package appcore

import "github.com/quizforge/quizforge/internal/domain/uuid"

// Command is the marker interface for requests that mutate state. The name a
// command declares is its registry identity: the dispatcher binds exactly one
// handler to it, and the security chain gates it before that handler runs.
type Command interface {
	CommandName() string
}

// Query is the marker interface for read-only requests. Queries bypass the
// security chain.
type Query interface {
	QueryName() string
}

// UserScoped is implemented by commands that target a specific user, taken
// from a path parameter. The identity-match validator compares it against
// the ambient authenticated identity.
type UserScoped interface {
	ScopedUserID() uuid.UUID
}

// ResourceScoped is implemented by commands that operate on an existing
// resource. The ownership and active-state validators use it to run their
// store lookups.
type ResourceScoped interface {
	ScopedResourceID() uuid.UUID
}
