package quiz

import (
	"time"

	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// QuizResult is the transport-facing projection of a quiz.
type QuizResult struct {
	ID            uuid.UUID         `json:"id"`
	OwnerID       uuid.UUID         `json:"owner_id"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	CategoryID    uuid.UUID         `json:"category_id,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Status        quizdomain.Status `json:"status"`
	QuestionCount int               `json:"question_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// QuizDetailResult is a quiz together with its ordered questions.
type QuizDetailResult struct {
	Quiz      QuizResult       `json:"quiz"`
	Questions []QuestionResult `json:"questions"`
}

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
}

// QuizListResult carries one page of quizzes.
type QuizListResult struct {
	Quizzes  []QuizResult `json:"quizzes"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// ResultFromQuiz maps a domain quiz to its projection.
func ResultFromQuiz(q *quizdomain.Quiz) QuizResult {
	return QuizResult{
		ID:            q.ID(),
		OwnerID:       q.OwnerID(),
		Title:         q.Title(),
		Description:   q.Description(),
		CategoryID:    q.CategoryID(),
		Tags:          q.Tags(),
		Status:        q.Status(),
		QuestionCount: q.QuestionCount(),
		CreatedAt:     q.CreatedAt(),
		UpdatedAt:     q.UpdatedAt(),
	}
}

// ResultFromQuestion maps a domain question to its projection.
func ResultFromQuestion(q *questiondomain.Question) QuestionResult {
	return QuestionResult{
		ID:              q.ID(),
		QuizID:          q.QuizID(),
		Prompt:          q.Prompt(),
		Type:            q.Type(),
		Choices:         q.Choices(),
		AcceptedAnswers: q.AcceptedAnswers(),
		Points:          q.Points(),
		Position:        q.Position(),
	}
}
