package category

import (
	categorydomain "github.com/quizforge/quizforge/internal/domain/category"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// CategoryResult is the transport-facing projection of a category.
type CategoryResult struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	ParentID uuid.UUID `json:"parent_id,omitempty"`
}

// CategoryListResult carries the full taxonomy.
type CategoryListResult struct {
	Categories []CategoryResult `json:"categories"`
}

// ResultFrom maps a domain category to its projection.
func ResultFrom(c *categorydomain.Category) CategoryResult {
	return CategoryResult{
		ID:       c.ID(),
		Name:     c.Name(),
		Slug:     c.Slug(),
		ParentID: c.ParentID(),
	}
}
