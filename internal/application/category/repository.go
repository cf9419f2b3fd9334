package category

import (
	"context"

	categorydomain "github.com/quizforge/quizforge/internal/domain/category"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Repository is the persistence port for categories. Slugs are unique;
// Create and Update return errs.ErrAlreadyExists on a slug collision.
type Repository interface {
	Create(ctx context.Context, c *categorydomain.Category) error
	Update(ctx context.Context, c *categorydomain.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*categorydomain.Category, error)
	List(ctx context.Context) ([]*categorydomain.Category, error)
}
