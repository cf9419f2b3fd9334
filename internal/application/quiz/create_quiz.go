package quiz

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
)

// CreateQuizUseCase creates a draft quiz owned by the caller.
type CreateQuizUseCase struct {
	quizzes Repository
	logger  *slog.Logger
}

// NewCreateQuizUseCase creates a CreateQuizUseCase.
func NewCreateQuizUseCase(quizzes Repository, logger *slog.Logger) *CreateQuizUseCase {
	return &CreateQuizUseCase{quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *CreateQuizUseCase) Execute(ctx context.Context, cmd CreateQuizCommand) appcore.Result[QuizResult] {
	q, err := quizdomain.NewQuiz(cmd.OwnerID, cmd.Title, cmd.Description, cmd.CategoryID, cmd.Tags)
	if err != nil {
		return appcore.Failure[QuizResult](appcore.CodeValidation, "invalid quiz: "+err.Error())
	}

	if err := uc.quizzes.Create(ctx, q); err != nil {
		return repoFailure[QuizResult](err)
	}

	uc.logger.InfoContext(ctx, "quiz created",
		slog.String("quiz_id", q.ID().String()),
		slog.String("owner_id", q.OwnerID().String()),
	)
	return appcore.Success(ResultFromQuiz(q))
}
