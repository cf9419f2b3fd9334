package category

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
	categorydomain "github.com/quizforge/quizforge/internal/domain/category"
	"github.com/quizforge/quizforge/internal/domain/errs"
)

// repoFailure maps repository errors to failure codes.
func repoFailure[T any](err error) appcore.Result[T] {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return appcore.Failure[T](appcore.CodeNotFound, "category not found")
	case errors.Is(err, errs.ErrAlreadyExists):
		return appcore.Failure[T](appcore.CodeDuplicate, "a category with this name already exists")
	default:
		return appcore.Failure[T](appcore.CodeConnection, "category storage unavailable: "+err.Error())
	}
}

// CreateCategoryUseCase creates a taxonomy node.
type CreateCategoryUseCase struct {
	categories Repository
	logger     *slog.Logger
}

// NewCreateCategoryUseCase creates a CreateCategoryUseCase.
func NewCreateCategoryUseCase(categories Repository, logger *slog.Logger) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categories: categories, logger: logger}
}

// Execute implements dispatch.Handler. A non-zero parent must exist.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, cmd CreateCategoryCommand) appcore.Result[CategoryResult] {
	if !cmd.ParentID.IsZero() {
		if _, err := uc.categories.FindByID(ctx, cmd.ParentID); err != nil {
			return repoFailure[CategoryResult](err)
		}
	}

	c, err := categorydomain.NewCategory(cmd.Name, cmd.ParentID)
	if err != nil {
		return appcore.Failure[CategoryResult](appcore.CodeValidation, "invalid category: "+err.Error())
	}

	if err := uc.categories.Create(ctx, c); err != nil {
		return repoFailure[CategoryResult](err)
	}

	uc.logger.InfoContext(ctx, "category created",
		slog.String("category_id", c.ID().String()),
		slog.String("slug", c.Slug()),
	)
	return appcore.Success(ResultFrom(c))
}

// RenameCategoryUseCase renames a taxonomy node.
type RenameCategoryUseCase struct {
	categories Repository
	logger     *slog.Logger
}

// NewRenameCategoryUseCase creates a RenameCategoryUseCase.
func NewRenameCategoryUseCase(categories Repository, logger *slog.Logger) *RenameCategoryUseCase {
	return &RenameCategoryUseCase{categories: categories, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *RenameCategoryUseCase) Execute(ctx context.Context, cmd RenameCategoryCommand) appcore.Result[CategoryResult] {
	c, err := uc.categories.FindByID(ctx, cmd.CategoryID)
	if err != nil {
		return repoFailure[CategoryResult](err)
	}

	if err := c.Rename(cmd.Name); err != nil {
		return appcore.Failure[CategoryResult](appcore.CodeValidation, "invalid category name: "+err.Error())
	}

	if err := uc.categories.Update(ctx, c); err != nil {
		return repoFailure[CategoryResult](err)
	}

	uc.logger.InfoContext(ctx, "category renamed",
		slog.String("category_id", c.ID().String()),
		slog.String("slug", c.Slug()),
	)
	return appcore.Success(ResultFrom(c))
}

// ListCategoriesUseCase returns the full taxonomy.
type ListCategoriesUseCase struct {
	categories Repository
}

// NewListCategoriesUseCase creates a ListCategoriesUseCase.
func NewListCategoriesUseCase(categories Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categories: categories}
}

// Execute implements dispatch.Handler.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, _ ListCategoriesQuery) appcore.Result[CategoryListResult] {
	all, err := uc.categories.List(ctx)
	if err != nil {
		return repoFailure[CategoryListResult](err)
	}

	results := make([]CategoryResult, 0, len(all))
	for _, c := range all {
		results = append(results, ResultFrom(c))
	}
	return appcore.Success(CategoryListResult{Categories: results})
}
