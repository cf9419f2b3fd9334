package quiz

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// ListQuizzesUseCase returns one page of quizzes matching a filter.
type ListQuizzesUseCase struct {
	quizzes Repository
	logger  *slog.Logger
}

// NewListQuizzesUseCase creates a ListQuizzesUseCase.
func NewListQuizzesUseCase(quizzes Repository, logger *slog.Logger) *ListQuizzesUseCase {
	return &ListQuizzesUseCase{quizzes: quizzes, logger: logger}
}

// Execute implements dispatch.Handler.
func (uc *ListQuizzesUseCase) Execute(ctx context.Context, query ListQuizzesQuery) appcore.Result[QuizListResult] {
	query = query.Normalized()

	quizzes, total, err := uc.quizzes.List(ctx, Filter{
		OwnerID:    query.OwnerID,
		Status:     query.Status,
		CategoryID: query.CategoryID,
		Search:     query.Search,
		Offset:     (query.Page - 1) * query.PageSize,
		Limit:      query.PageSize,
	})
	if err != nil {
		return repoFailure[QuizListResult](err)
	}

	results := make([]QuizResult, 0, len(quizzes))
	for _, q := range quizzes {
		results = append(results, ResultFromQuiz(q))
	}

	return appcore.Success(QuizListResult{
		Quizzes:  results,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}
