package question

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// RemoveQuestionUseCase removes a question from a quiz and refreshes the
// quiz's question count.
type RemoveQuestionUseCase struct {
	questions Repository
	quizzes   QuizStore
	logger    *slog.Logger
}

// NewRemoveQuestionUseCase creates a RemoveQuestionUseCase.
func NewRemoveQuestionUseCase(questions Repository, quizzes QuizStore, logger *slog.Logger) *RemoveQuestionUseCase {
	return &RemoveQuestionUseCase{questions: questions, quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *RemoveQuestionUseCase) Execute(ctx context.Context, cmd RemoveQuestionCommand) appcore.Result[appcore.Unit] {
	parent, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return appcore.Failure[appcore.Unit](appcore.CodeNotFound, "quiz not found")
	}
	if !parent.IsActive() {
		return appcore.Failure[appcore.Unit](appcore.CodeInactive, "archived quizzes cannot be edited")
	}

	q, err := uc.questions.FindByID(ctx, cmd.QuestionID)
	if err != nil {
		return repoFailure[appcore.Unit](err)
	}
	if q.QuizID() != cmd.QuizID {
		return appcore.Failure[appcore.Unit](appcore.CodeNotFound, "question not found")
	}

	if err := uc.questions.Delete(ctx, cmd.QuestionID); err != nil {
		return repoFailure[appcore.Unit](err)
	}
	syncCount(ctx, uc.questions, uc.quizzes, uc.logger, cmd.QuizID)

	uc.logger.InfoContext(ctx, "question removed",
		slog.String("question_id", cmd.QuestionID.String()),
		slog.String("quiz_id", cmd.QuizID.String()),
	)
	return appcore.OK()
}
