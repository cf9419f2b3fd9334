package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/errs"
)

// PublishQuizUseCase transitions a draft quiz to published.
type PublishQuizUseCase struct {
	quizzes Repository
	logger  *slog.Logger
}

// NewPublishQuizUseCase creates a PublishQuizUseCase.
func NewPublishQuizUseCase(quizzes Repository, logger *slog.Logger) *PublishQuizUseCase {
	return &PublishQuizUseCase{quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *PublishQuizUseCase) Execute(ctx context.Context, cmd PublishQuizCommand) appcore.Result[QuizResult] {
	q, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return repoFailure[QuizResult](err)
	}

	if err := q.Publish(); err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidTransition):
			return appcore.Failure[QuizResult](appcore.CodeValidation, "only draft quizzes can be published")
		case errors.Is(err, errs.ErrInvalidState):
			return appcore.Failure[QuizResult](appcore.CodeValidation, "a quiz needs at least one question to be published")
		default:
			return appcore.Failure[QuizResult](appcore.CodeValidation, err.Error())
		}
	}

	if err := uc.quizzes.Update(ctx, q); err != nil {
		return repoFailure[QuizResult](err)
	}

	uc.logger.InfoContext(ctx, "quiz published", slog.String("quiz_id", q.ID().String()))
	return appcore.Success(ResultFromQuiz(q))
}
