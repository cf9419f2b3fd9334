package quiz

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// DeleteQuizUseCase removes a quiz and its questions permanently.
type DeleteQuizUseCase struct {
	quizzes   Repository
	questions QuestionReader
	logger    *slog.Logger
}

// NewDeleteQuizUseCase creates a DeleteQuizUseCase.
func NewDeleteQuizUseCase(quizzes Repository, questions QuestionReader, logger *slog.Logger) *DeleteQuizUseCase {
	return &DeleteQuizUseCase{quizzes: quizzes, questions: questions, logger: logger}
}

// Execute implements dispatch.Handler. Questions are deleted first so a
// failure cannot leave orphaned questions behind a missing quiz.
func (uc *DeleteQuizUseCase) Execute(ctx context.Context, cmd DeleteQuizCommand) appcore.Result[appcore.Unit] {
	q, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return repoFailure[appcore.Unit](err)
	}

	if err := uc.questions.DeleteByQuiz(ctx, q.ID()); err != nil {
		return repoFailure[appcore.Unit](err)
	}
	if err := uc.quizzes.Delete(ctx, q.ID()); err != nil {
		return repoFailure[appcore.Unit](err)
	}

	uc.logger.InfoContext(ctx, "quiz deleted",
		slog.String("quiz_id", q.ID().String()),
		slog.Int("question_count", q.QuestionCount()),
	)
	return appcore.OK()
}
