package quiz

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// GetQuizUseCase loads a quiz together with its ordered questions.
type GetQuizUseCase struct {
	quizzes   Repository
	questions QuestionReader
	logger    *slog.Logger
}

// NewGetQuizUseCase creates a GetQuizUseCase.
func NewGetQuizUseCase(quizzes Repository, questions QuestionReader, logger *slog.Logger) *GetQuizUseCase {
	return &GetQuizUseCase{quizzes: quizzes, questions: questions, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *GetQuizUseCase) Execute(ctx context.Context, query GetQuizQuery) appcore.Result[QuizDetailResult] {
	q, err := uc.quizzes.FindByID(ctx, query.QuizID)
	if err != nil {
		return repoFailure[QuizDetailResult](err)
	}

	domainQuestions, err := uc.questions.ListByQuiz(ctx, q.ID())
	if err != nil {
		return repoFailure[QuizDetailResult](err)
	}

	questions := make([]QuestionResult, 0, len(domainQuestions))
	for _, dq := range domainQuestions {
		questions = append(questions, ResultFromQuestion(dq))
	}

	return appcore.Success(QuizDetailResult{
		Quiz:      ResultFromQuiz(q),
		Questions: questions,
	})
}
