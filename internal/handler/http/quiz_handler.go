package httphandler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/dispatch"
	quizapp "github.com/quizforge/quizforge/internal/application/quiz"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// CreateQuizRequest is the body of POST /quizzes.
type CreateQuizRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id"`
	Tags        []string `json:"tags"`
}

// UpdateQuizRequest is the body of PUT /quizzes/:id.
type UpdateQuizRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id"`
	Tags        []string `json:"tags"`
}

// QuizHandler handles quiz HTTP requests.
type QuizHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(dispatcher *dispatch.Dispatcher) *QuizHandler {
	return &QuizHandler{dispatcher: dispatcher}
}

// RegisterRoutes registers quiz routes on an Echo group.
func (h *QuizHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/quizzes", h.Create)
	g.GET("/quizzes", h.List)
	g.GET("/quizzes/:id", h.Get)
	g.PUT("/quizzes/:id", h.Update)
	g.POST("/quizzes/:id/publish", h.Publish)
	g.POST("/quizzes/:id/archive", h.Archive)
	g.DELETE("/quizzes/:id", h.Delete)
}

// Create handles POST /api/v1/quizzes.
func (h *QuizHandler) Create(c echo.Context) error {
	identity, err := appcore.IdentityFrom(c.Request().Context())
	if err != nil {
		return RespondErrorWithCode(c, http.StatusUnauthorized,
			string(appcore.CodeUnauthorized), "authentication required")
	}

	var req CreateQuizRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid request body")
	}

	categoryID, ok := parseOptionalID(c, req.CategoryID, "category_id")
	if !ok {
		return nil
	}

	cmd, cmdErr := quizapp.NewCreateQuizCommand(
		identity.UserID, req.Title, req.Description, categoryID, req.Tags)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[quizapp.QuizResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondCreated(c, result.Value())
}

// Get handles GET /api/v1/quizzes/:id.
func (h *QuizHandler) Get(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	result := dispatch.Send[quizapp.QuizDetailResult](
		c.Request().Context(), h.dispatcher, quizapp.GetQuizQuery{QuizID: quizID})
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// List handles GET /api/v1/quizzes.
func (h *QuizHandler) List(c echo.Context) error {
	query := quizapp.ListQuizzesQuery{
		Status: quizdomain.Status(c.QueryParam("status")),
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("owner_id"); raw != "" {
		ownerID, err := uuid.ParseUUID(raw)
		if err != nil {
			return RespondErrorWithCode(c, http.StatusBadRequest,
				string(appcore.CodeValidation), "invalid owner_id format")
		}
		query.OwnerID = ownerID
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := uuid.ParseUUID(raw)
		if err != nil {
			return RespondErrorWithCode(c, http.StatusBadRequest,
				string(appcore.CodeValidation), "invalid category_id format")
		}
		query.CategoryID = categoryID
	}
	query.Page, _ = strconv.Atoi(c.QueryParam("page"))
	query.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	result := dispatch.Send[quizapp.QuizListResult](c.Request().Context(), h.dispatcher, query)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// Update handles PUT /api/v1/quizzes/:id.
func (h *QuizHandler) Update(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	var req UpdateQuizRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid request body")
	}

	categoryID, ok := parseOptionalID(c, req.CategoryID, "category_id")
	if !ok {
		return nil
	}

	cmd, cmdErr := quizapp.NewUpdateQuizCommand(
		quizID, req.Title, req.Description, categoryID, req.Tags)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[quizapp.QuizResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// Publish handles POST /api/v1/quizzes/:id/publish.
func (h *QuizHandler) Publish(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	cmd, cmdErr := quizapp.NewPublishQuizCommand(quizID)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[quizapp.QuizResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// Archive handles POST /api/v1/quizzes/:id/archive.
func (h *QuizHandler) Archive(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	cmd, cmdErr := quizapp.NewArchiveQuizCommand(quizID)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[quizapp.QuizResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// Delete handles DELETE /api/v1/quizzes/:id.
func (h *QuizHandler) Delete(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	cmd, cmdErr := quizapp.NewDeleteQuizCommand(quizID)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[appcore.Unit](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondNoContent(c)
}

// parsePathID parses a UUID path parameter, writing the error response
// itself when the value is malformed.
func parsePathID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.ParseUUID(c.Param(name))
	if err != nil {
		_ = RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid "+name+" format")
		return uuid.UUID(""), false
	}
	return id, true
}

// parseOptionalID parses an optional UUID field, treating empty as absent.
func parseOptionalID(c echo.Context, raw, name string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.UUID(""), true
	}
	id, err := uuid.ParseUUID(raw)
	if err != nil {
		_ = RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid "+name+" format")
		return uuid.UUID(""), false
	}
	return id, true
}
