package question

import (
	"time"

	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// QuestionResult is the transport-facing projection of a question.
type QuestionResult struct {
	ID              uuid.UUID               `json:"id"`
	QuizID          uuid.UUID               `json:"quiz_id"`
	Prompt          string                  `json:"prompt"`
	Type            questiondomain.Type     `json:"type"`
	Choices         []questiondomain.Choice `json:"choices,omitempty"`
	AcceptedAnswers []string                `json:"accepted_answers,omitempty"`
	Points          int                     `json:"points"`
	Position        int                     `json:"position"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ResultFrom maps a domain question to its projection.
func ResultFrom(q *questiondomain.Question) QuestionResult {
	return QuestionResult{
		ID:              q.ID(),
		QuizID:          q.QuizID(),
		Prompt:          q.Prompt(),
		Type:            q.Type(),
		Choices:         q.Choices(),
		AcceptedAnswers: q.AcceptedAnswers(),
		Points:          q.Points(),
		Position:        q.Position(),
		CreatedAt:       q.CreatedAt(),
		UpdatedAt:       q.UpdatedAt(),
	}
}
