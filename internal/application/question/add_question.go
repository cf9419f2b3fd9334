package question

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
)

// AddQuestionUseCase appends a question to a quiz and refreshes the quiz's
// question count.
type AddQuestionUseCase struct {
	questions Repository
	quizzes   QuizStore
	logger    *slog.Logger
}

// NewAddQuestionUseCase creates an AddQuestionUseCase.
func NewAddQuestionUseCase(questions Repository, quizzes QuizStore, logger *slog.Logger) *AddQuestionUseCase {
	return &AddQuestionUseCase{questions: questions, quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler. Archived quizzes reject new
// questions.
func (uc *AddQuestionUseCase) Execute(ctx context.Context, cmd AddQuestionCommand) appcore.Result[QuestionResult] {
	parent, err := uc.quizzes.FindByID(ctx, cmd.QuizID)
	if err != nil {
		return appcore.Failure[QuestionResult](appcore.CodeNotFound, "quiz not found")
	}
	if !parent.IsActive() {
		return appcore.Failure[QuestionResult](appcore.CodeInactive, "archived quizzes cannot be edited")
	}

	position := cmd.Position
	if position == 0 {
		position = parent.QuestionCount() + 1
	}

	q, err := questiondomain.NewQuestion(
		cmd.QuizID, cmd.Prompt, cmd.Type, cmd.Choices, cmd.AcceptedAnswers, cmd.Points, position,
	)
	if err != nil {
		return appcore.Failure[QuestionResult](appcore.CodeValidation, "invalid question: "+err.Error())
	}

	if err := uc.questions.Create(ctx, q); err != nil {
		return repoFailure[QuestionResult](err)
	}
	syncCount(ctx, uc.questions, uc.quizzes, uc.logger, cmd.QuizID)

	uc.logger.InfoContext(ctx, "question added",
		slog.String("question_id", q.ID().String()),
		slog.String("quiz_id", cmd.QuizID.String()),
		slog.String("type", string(q.Type())),
	)
	return appcore.Success(ResultFrom(q))
}
