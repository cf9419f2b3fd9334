package security

import (
	"context"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// OwnershipChecker is the outbound port consulted by the ownership and
// active-state validators. Implementations back it with the document store;
// the validators wrap every call in the retry policy, so implementations
// should classify driver failures as CONNECTION_ERROR (transient) or
// RESOURCE_NOT_FOUND (terminal).
type OwnershipChecker interface {
	// ValidateOwnership reports whether userID owns resourceID.
	ValidateOwnership(ctx context.Context, userID, resourceID uuid.UUID) appcore.Result[bool]

	// IsActive reports whether resourceID is in a state that accepts
	// mutations for userID.
	IsActive(ctx context.Context, userID, resourceID uuid.UUID) appcore.Result[bool]
}
