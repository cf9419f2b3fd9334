package httphandler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/application/dispatch"
	questionapp "github.com/quizforge/quizforge/internal/application/question"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
)

// ChoiceRequest is one answer option in a question request body.
type ChoiceRequest struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// AddQuestionRequest is the body of POST /quizzes/:id/questions.
type AddQuestionRequest struct {
	Prompt          string          `json:"prompt"`
	Type            string          `json:"type"`
	Choices         []ChoiceRequest `json:"choices"`
	AcceptedAnswers []string        `json:"accepted_answers"`
	Points          int             `json:"points"`
	Position        int             `json:"position"`
}

// UpdateQuestionRequest is the body of PUT /quizzes/:id/questions/:question_id.
type UpdateQuestionRequest struct {
	Prompt          string          `json:"prompt"`
	Choices         []ChoiceRequest `json:"choices"`
	AcceptedAnswers []string        `json:"accepted_answers"`
	Points          int             `json:"points"`
}

// QuestionHandler handles question HTTP requests.
type QuestionHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(dispatcher *dispatch.Dispatcher) *QuestionHandler {
	return &QuestionHandler{dispatcher: dispatcher}
}

// RegisterRoutes registers question routes on an Echo group.
func (h *QuestionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/quizzes/:id/questions", h.Add)
	g.PUT("/quizzes/:id/questions/:question_id", h.Update)
	g.DELETE("/quizzes/:id/questions/:question_id", h.Remove)
}

// Add handles POST /api/v1/quizzes/:id/questions.
func (h *QuestionHandler) Add(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}

	var req AddQuestionRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid request body")
	}

	cmd, cmdErr := questionapp.NewAddQuestionCommand(
		quizID,
		req.Prompt,
		questiondomain.Type(req.Type),
		toDomainChoices(req.Choices),
		req.AcceptedAnswers,
		req.Points,
		req.Position,
	)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[questionapp.QuestionResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondCreated(c, result.Value())
}

// Update handles PUT /api/v1/quizzes/:id/questions/:question_id.
func (h *QuestionHandler) Update(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}
	questionID, ok := parsePathID(c, "question_id")
	if !ok {
		return nil
	}

	var req UpdateQuestionRequest
	if bindErr := c.Bind(&req); bindErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), "invalid request body")
	}

	cmd, cmdErr := questionapp.NewUpdateQuestionCommand(
		quizID,
		questionID,
		req.Prompt,
		toDomainChoices(req.Choices),
		req.AcceptedAnswers,
		req.Points,
	)
	if cmdErr != nil {
		return RespondErrorWithCode(c, http.StatusBadRequest,
			string(appcore.CodeValidation), cmdErr.Error())
	}

	result := dispatch.Send[questionapp.QuestionResult](c.Request().Context(), h.dispatcher, cmd)
	if result.IsFailure() {
		return RespondFailure(c, result)
	}
	return RespondOK(c, result.Value())
}

// Remove handles DELETE /api/v1/quizzes/:id/questions/:question_id.
func (h *QuestionHandler) Remove(c echo.Context) error {
	quizID, ok := parsePathID(c, "id")
	if !ok {
		return nil
	}
	questionID, ok := parsePathID(c, "question_id")
	if !ok {
		return nil
	}

	cmd, cmdErr := questionapp.NewRemoveQuestionCommand(quizID, questionID)
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

func toDomainChoices(choices []ChoiceRequest) []questiondomain.Choice {
	if len(choices) == 0 {
		return nil
	}
	out := make([]questiondomain.Choice, len(choices))
	for i, ch := range choices {
		out[i] = questiondomain.Choice{Text: ch.Text, Correct: ch.Correct}
	}
	return out
}
