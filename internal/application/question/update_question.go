package question

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// UpdateQuestionUseCase replaces the editable fields of a question.
type UpdateQuestionUseCase struct {
	questions Repository
	quizzes   QuizStore
	logger    *slog.Logger
}

// NewUpdateQuestionUseCase creates an UpdateQuestionUseCase.
func NewUpdateQuestionUseCase(questions Repository, quizzes QuizStore, logger *slog.Logger) *UpdateQuestionUseCase {
	return &UpdateQuestionUseCase{questions: questions, quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *UpdateQuestionUseCase) Execute(ctx context.Context, cmd UpdateQuestionCommand) appcore.Result[QuestionResult] {
	parent, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return appcore.Failure[QuestionResult](appcore.CodeNotFound, "quiz not found")
	}
	if !parent.IsActive() {
		return appcore.Failure[QuestionResult](appcore.CodeInactive, "archived quizzes cannot be edited")
	}

	q, err := uc.questions.FindByID(ctx, cmd.QuestionID)
	if err != nil {
		return repoFailure[QuestionResult](err)
	}
	if q.QuizID() != cmd.QuizID {
		// A question ID from another quiz must look absent, not forbidden.
		return appcore.Failure[QuestionResult](appcore.CodeNotFound, "question not found")
	}

	if err := q.Update(cmd.Prompt, cmd.Choices, cmd.AcceptedAnswers, cmd.Points); err != nil {
		return appcore.Failure[QuestionResult](appcore.CodeValidation, "invalid question: "+err.Error())
	}

	if err := uc.questions.Update(ctx, q); err != nil {
		return repoFailure[QuestionResult](err)
	}

	uc.logger.InfoContext(ctx, "question updated",
		slog.String("question_id", q.ID().String()),
		slog.String("quiz_id", cmd.QuizID.String()),
	)
	return appcore.Success(ResultFrom(q))
}
