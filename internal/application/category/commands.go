// Package category contains the use cases operating on the quiz taxonomy.
package category

import (
	"errors"

	"github.com/quizforge/quizforge/internal/application/appcore"
	categorydomain "github.com/quizforge/quizforge/internal/domain/category"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// CreateCategoryCommand creates a taxonomy node. Categories are shared
// across owners, so the command is gated by authentication only.
type CreateCategoryCommand struct {
	Name     string
	ParentID uuid.UUID
}

// NewCreateCategoryCommand validates the request fields eagerly. ParentID is
// optional; zero means a root node.
func NewCreateCategoryCommand(name string, parentID uuid.UUID) (CreateCategoryCommand, error) {
	if err := errors.Join(
		appcore.ValidateRequired("name", name),
		appcore.ValidateMaxLength("name", name, categorydomain.MaxNameLength),
	); err != nil {
		return CreateCategoryCommand{}, err
	}
	return CreateCategoryCommand{Name: name, ParentID: parentID}, nil
}

// CommandName returns the registry name of the command.
func (CreateCategoryCommand) CommandName() string { return "category.create" }

// RenameCategoryCommand renames a taxonomy node and regenerates its slug.
type RenameCategoryCommand struct {
	CategoryID uuid.UUID
	Name       string
}

// NewRenameCategoryCommand validates the request fields eagerly.
func NewRenameCategoryCommand(categoryID uuid.UUID, name string) (RenameCategoryCommand, error) {
	if err := errors.Join(
		appcore.ValidateUUID("category_id", categoryID),
		appcore.ValidateRequired("name", name),
		appcore.ValidateMaxLength("name", name, categorydomain.MaxNameLength),
	); err != nil {
		return RenameCategoryCommand{}, err
	}
	return RenameCategoryCommand{CategoryID: categoryID, Name: name}, nil
}

// CommandName returns the registry name of the command.
func (RenameCategoryCommand) CommandName() string { return "category.rename" }

// ListCategoriesQuery lists all categories ordered by name.
type ListCategoriesQuery struct{}

// QueryName returns the registry name of the query.
func (ListCategoriesQuery) QueryName() string { return "category.list" }
