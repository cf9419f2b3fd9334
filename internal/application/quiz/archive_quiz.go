package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/errs"
)

// ArchiveQuizUseCase moves a quiz to its terminal archived state.
type ArchiveQuizUseCase struct {
	quizzes Repository
	logger  *slog.Logger
}

// NewArchiveQuizUseCase creates an ArchiveQuizUseCase.
func NewArchiveQuizUseCase(quizzes Repository, logger *slog.Logger) *ArchiveQuizUseCase {
	return &ArchiveQuizUseCase{quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *ArchiveQuizUseCase) Execute(ctx context.Context, cmd ArchiveQuizCommand) appcore.Result[QuizResult] {
	q, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return repoFailure[QuizResult](err)
	}

	if err := q.Archive(); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return appcore.Failure[QuizResult](appcore.CodeInactive, "quiz is already archived")
		}
		return appcore.Failure[QuizResult](appcore.CodeValidation, err.Error())
	}

	if err := uc.quizzes.Update(ctx, q); err != nil {
		return repoFailure[QuizResult](err)
	}

	uc.logger.InfoContext(ctx, "quiz archived", slog.String("quiz_id", q.ID().String()))
	return appcore.Success(ResultFromQuiz(q))
}
