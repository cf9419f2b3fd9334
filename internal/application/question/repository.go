package question

import (
	"context"

	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Repository is the persistence port for questions.
type Repository interface {
	// Create stores a new question.
	Create(ctx context.Context, q *questiondomain.Question) error

	// Update overwrites a stored question. Returns errs.ErrNotFound when
	// absent.
	Update(ctx context.Context, q *questiondomain.Question) error

	// FindByID loads a question. Returns errs.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*questiondomain.Question, error)

	// Delete removes a question. Returns errs.ErrNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByQuiz returns the number of questions attached to a quiz.
	CountByQuiz(ctx context.Context, quizID uuid.UUID) (int, error)
}

// QuizStore is the slice of the quiz port the question use cases need to
// keep the parent's question count and edit gate in sync.
type QuizStore interface {
	// FindByID loads a quiz. Returns errs.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*quizdomain.Quiz, error)

	// Update overwrites a stored quiz.
	Update(ctx context.Context, q *quizdomain.Quiz) error
}
