package quiz

import (
	"context"

	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Filter narrows a quiz listing. Zero values mean "any".
type Filter struct {
	OwnerID    uuid.UUID
	Status     quizdomain.Status
	CategoryID uuid.UUID
	Search     string
	Offset     int
	Limit      int
}

// Repository is the persistence port for the quiz aggregate.
type Repository interface {
	// Create stores a new quiz. Returns errs.ErrAlreadyExists on an ID
	// collision.
	Create(ctx context.Context, q *quizdomain.Quiz) error

	// Update overwrites a stored quiz. Returns errs.ErrNotFound when the
	// quiz does not exist.
	Update(ctx context.Context, q *quizdomain.Quiz) error

	// FindByID loads a quiz. Returns errs.ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*quizdomain.Quiz, error)

	// Delete removes a quiz permanently. Returns errs.ErrNotFound when
	// absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of quizzes matching the filter plus the total
	// match count.
	List(ctx context.Context, f Filter) ([]*quizdomain.Quiz, int64, error)
}

// QuestionReader is the read port the quiz use cases need for question data.
// The full question port lives with the question use cases.
type QuestionReader interface {
	// ListByQuiz returns the questions of a quiz ordered by position.
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*questiondomain.Question, error)

	// DeleteByQuiz removes every question of a quiz. Used by quiz deletion.
	DeleteByQuiz(ctx context.Context, quizID uuid.UUID) error
}
