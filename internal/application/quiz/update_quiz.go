package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/errs"
)

// UpdateQuizUseCase replaces the editable fields of a quiz.
type UpdateQuizUseCase struct {
	quizzes Repository
	logger  *slog.Logger
}

// NewUpdateQuizUseCase creates an UpdateQuizUseCase.
func NewUpdateQuizUseCase(quizzes Repository, logger *slog.Logger) *UpdateQuizUseCase {
	return &UpdateQuizUseCase{quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *UpdateQuizUseCase) Execute(ctx context.Context, cmd UpdateQuizCommand) appcore.Result[QuizResult] {
	q, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return repoFailure[QuizResult](err)
	}

	if err := q.Update(cmd.Title, cmd.Description, cmd.CategoryID, cmd.Tags); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidState):
			return appcore.Failure[QuizResult](appcore.CodeInactive, "archived quizzes cannot be edited")
		default:
			return appcore.Failure[QuizResult](appcore.CodeValidation, "invalid quiz: "+err.Error())
		}
	}

	if err := uc.quizzes.Update(ctx, q); err != nil {
		return repoFailure[QuizResult](err)
	}

	uc.logger.InfoContext(ctx, "quiz updated", slog.String("quiz_id", q.ID().String()))
	return appcore.Success(ResultFromQuiz(q))
}
