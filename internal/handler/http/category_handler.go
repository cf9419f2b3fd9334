package httphandler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
	categoryapp "github.com/quizforge/quizforge/internal/application/category"
	"github.com/quizforge/quizforge/internal/application/dispatch"
)

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// RenameCategoryRequest is the body of PUT /categories/:id.
type RenameCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryHandler handles taxonomy HTTP requests.
type CategoryHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(dispatcher *dispatch.Dispatcher) *CategoryHandler {
	return &CategoryHandler{dispatcher: dispatcher}
}

// RegisterRoutes registers category routes on an Echo group.
func (h *CategoryHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/categories", h.Create)
	g.PUT("/categories/:id", h.Rename)
	g.GET("/categories", h.List)
}

// Create handles POST /api/v1/categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid request body")
	}

	parentID, ok := parseOptionalID(c, req.ParentID, "parent_id")
	if !ok {
		return nil
	}

	cmd, cmdErr := categoryapp.NewCreateCategoryCommand(req.Name, parentID)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[categoryapp.CategoryResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondCreated(c, result.Value())
}

// Rename handles PUT /api/v1/categories/:id.
func (h *CategoryHandler) Rename(c echo.Context) error {
	categoryID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	var req RenameCategoryRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid request body")
	}

	cmd, cmdErr := categoryapp.NewRenameCategoryCommand(categoryID, req.Name)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[categoryapp.CategoryResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	result := dispatch.Send[categoryapp.CategoryListResult](
		c.Request().Context(), h.dispatcher, categoryapp.ListCategoriesQuery{})
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}
