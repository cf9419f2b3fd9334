// Package category contains the taxonomy node used to organize quizzes.
package category

import (
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// MaxNameLength limits category names.
const MaxNameLength = 100

// Category is a taxonomy node. Categories form a single-parent tree; a zero
// parent marks a root.
type Category struct {
	id        uuid.UUID
	name      string
	slug      string
	parentID  uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewCategory creates a category. The slug is derived from the name.
func NewCategory(name string, parentID uuid.UUID) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now().UTC()
	return &Category{
		id:        uuid.NewUUID(),
		name:      name,
		slug:      Slugify(name),
		parentID:  parentID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores a category from storage.
func Reconstruct(id uuid.UUID, name, slug string, parentID uuid.UUID, createdAt, updatedAt time.Time) *Category {
	return &Category{
		id:        id,
		name:      name,
		slug:      slug,
		parentID:  parentID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the category ID.
func (c *Category) ID() uuid.UUID { return c.id }

// Name returns the display name.
func (c *Category) Name() string { return c.name }

// Slug returns the URL-safe identifier derived from the name.
func (c *Category) Slug() string { return c.slug }

// ParentID returns the parent category, zero for roots.
func (c *Category) ParentID() uuid.UUID { return c.parentID }

// CreatedAt returns the creation time.
func (c *Category) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last modification time.
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// Rename changes the name and regenerates the slug.
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return errs.ErrInvalidInput
	}
	c.name = name
	c.slug = Slugify(name)
	c.updatedAt = time.Now().UTC()
	return nil
}

// Slugify lowercases a name and replaces runs of non-alphanumerics with a
// single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
