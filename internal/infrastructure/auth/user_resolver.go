package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/user"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// ErrUserDeactivated is returned when a known user has been deactivated.
var ErrUserDeactivated = errors.New("user is deactivated")

// UserStore is the persistence the resolver needs. Satisfied by the
// MongoDB user repository.
type UserStore interface {
	FindByExternalID(ctx context.Context, externalID string) (*user.User, error)
	Save(ctx context.Context, u *user.User) error
}

// UserResolver maps identity-provider subjects to local users,
// provisioning a local record the first time a subject is seen.
type UserResolver struct {
	store  UserStore
	logger *slog.Logger
}

// NewUserResolver creates a resolver over the given store.
func NewUserResolver(store UserStore, logger *slog.Logger) *UserResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserResolver{store: store, logger: logger}
}

// ResolveUser returns the local user ID for the given external subject.
func (r *UserResolver) ResolveUser(
	ctx context.Context,
	externalID, username, email, displayName string,
) (uuid.UUID, error) {
	existing, err := r.store.FindByExternalID(ctx, externalID)
	if err == nil {
		if !existing.IsActive() {
			return uuid.UUID(""), ErrUserDeactivated
		}
		return existing.ID(), nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return uuid.UUID(""), fmt.Errorf("looking up user: %w", err)
	}

	provisioned, err := user.NewUser(externalID, username, email, displayName)
	if err != nil {
		return uuid.UUID(""), fmt.Errorf("provisioning user: %w", err)
	}
	if err := r.store.Save(ctx, provisioned); err != nil {
		return uuid.UUID(""), fmt.Errorf("saving provisioned user: %w", err)
	}

	r.logger.Info("provisioned new user",
		slog.String("user_id", provisioned.ID().String()),
		slog.String("external_id", externalID),
	)

	return provisioned.ID(), nil
}
