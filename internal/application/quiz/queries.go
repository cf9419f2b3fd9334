package quiz

import (
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// GetQuizQuery fetches a single quiz with its questions.
type GetQuizQuery struct {
	QuizID uuid.UUID
}

// QueryName returns the registry name of the query.
func (GetQuizQuery) QueryName() string { return "quiz.get" }

// ListQuizzesQuery lists quizzes matching a filter, paginated.
type ListQuizzesQuery struct {
	OwnerID    uuid.UUID // zero: any owner
	Status     quizdomain.Status
	CategoryID uuid.UUID
	Search     string // matched against title
	Page       int
	PageSize   int
}

// QueryName returns the registry name of the query.
func (ListQuizzesQuery) QueryName() string { return "quiz.list" }

// Normalized returns a copy with pagination clamped to sane bounds.
func (q ListQuizzesQuery) Normalized() ListQuizzesQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}
