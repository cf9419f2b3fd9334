// Package question contains the question entity and the per-type business
// rules that gate its construction.
package question

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Field limits.
const (
	MaxPromptLength     = 1000
	MaxChoiceLength     = 500
	MaxChoices          = 10
	MaxAcceptedAnswers  = 20
	MaxPoints           = 100
	trueFalseChoiceSize = 2
)

// Rule violations. All wrap errs.ErrInvalidInput so callers can treat any of
// them as a construction failure.
var (
	ErrTooFewChoices       = fmt.Errorf("%w: at least two choices required", errs.ErrInvalidInput)
	ErrNoCorrectChoice     = fmt.Errorf("%w: at least one correct choice required", errs.ErrInvalidInput)
	ErrManyCorrectChoices  = fmt.Errorf("%w: exactly one correct choice required", errs.ErrInvalidInput)
	ErrChoicesNotAllowed   = fmt.Errorf("%w: open text questions take no choices", errs.ErrInvalidInput)
	ErrNoAcceptedAnswers   = fmt.Errorf("%w: open text questions require accepted answers", errs.ErrInvalidInput)
	ErrInvalidTrueFalse    = fmt.Errorf("%w: true/false questions take exactly two choices", errs.ErrInvalidInput)
	ErrUnknownQuestionType = errors.New("unknown question type")
)

// Type is the question kind.
type Type string

// Question kinds.
const (
	TypeSingleChoice   Type = "single_choice"
	TypeMultipleChoice Type = "multiple_choice"
	TypeTrueFalse      Type = "true_false"
	TypeOpenText       Type = "open_text"
)

// Types lists every valid question type, for request validation.
func Types() []string {
	return []string{
		string(TypeSingleChoice),
		string(TypeMultipleChoice),
		string(TypeTrueFalse),
		string(TypeOpenText),
	}
}

// Choice is one selectable answer option.
type Choice struct {
	Text    string
	Correct bool
}

// Question is a single quiz question.
type Question struct {
	id              uuid.UUID
	quizID          uuid.UUID
	prompt          string
	qType           Type
	choices         []Choice
	acceptedAnswers []string
	points          int
	position        int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewQuestion creates a question, enforcing the rules of its type.
func NewQuestion(
	quizID uuid.UUID,
	prompt string,
	qType Type,
	choices []Choice,
	acceptedAnswers []string,
	points, position int,
) (*Question, error) {
	prompt = strings.TrimSpace(prompt)
	if quizID.IsZero() || prompt == "" || len(prompt) > MaxPromptLength {
		return nil, errs.ErrInvalidInput
	}
	if points <= 0 || points > MaxPoints || position < 0 {
		return nil, errs.ErrInvalidInput
	}
	if err := validateByType(qType, choices, acceptedAnswers); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Question{
		id:              uuid.NewUUID(),
		quizID:          quizID,
		prompt:          prompt,
		qType:           qType,
		choices:         choices,
		acceptedAnswers: normalizeAnswers(acceptedAnswers),
		points:          points,
		position:        position,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct restores a question from storage.
func Reconstruct(
	id, quizID uuid.UUID,
	prompt string,
	qType Type,
	choices []Choice,
	acceptedAnswers []string,
	points, position int,
	createdAt, updatedAt time.Time,
) *Question {
	return &Question{
		id:              id,
		quizID:          quizID,
		prompt:          prompt,
		qType:           qType,
		choices:         choices,
		acceptedAnswers: acceptedAnswers,
		points:          points,
		position:        position,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the question ID.
func (q *Question) ID() uuid.UUID { return q.id }

// QuizID returns the owning quiz's ID.
func (q *Question) QuizID() uuid.UUID { return q.quizID }

// Prompt returns the question text.
func (q *Question) Prompt() string { return q.prompt }

// Type returns the question kind.
func (q *Question) Type() Type { return q.qType }

// Choices returns the answer options.
func (q *Question) Choices() []Choice { return q.choices }

// AcceptedAnswers returns the accepted answers of an open-text question.
func (q *Question) AcceptedAnswers() []string { return q.acceptedAnswers }

// Points returns the score awarded for a correct answer.
func (q *Question) Points() int { return q.points }

// Position returns the question's order within its quiz.
func (q *Question) Position() int { return q.position }

// CreatedAt returns the creation time.
func (q *Question) CreatedAt() time.Time { return q.createdAt }

// UpdatedAt returns the last modification time.
func (q *Question) UpdatedAt() time.Time { return q.updatedAt }

// Update replaces prompt, choices, answers and points, re-running the type
// rules.
func (q *Question) Update(prompt string, choices []Choice, acceptedAnswers []string, points int) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || len(prompt) > MaxPromptLength || points <= 0 || points > MaxPoints {
		return errs.ErrInvalidInput
	}
	if err := validateByType(q.qType, choices, acceptedAnswers); err != nil {
		return err
	}

	q.prompt = prompt
	q.choices = choices
	q.acceptedAnswers = normalizeAnswers(acceptedAnswers)
	q.points = points
	q.updatedAt = time.Now().UTC()
	return nil
}

// SetPosition moves the question within its quiz.
func (q *Question) SetPosition(position int) error {
	if position < 0 {
		return errs.ErrInvalidInput
	}
	q.position = position
	q.updatedAt = time.Now().UTC()
	return nil
}

// IsCorrectAnswer grades a submitted answer for open-text questions,
// case-insensitively.
func (q *Question) IsCorrectAnswer(answer string) bool {
	if q.qType != TypeOpenText {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, accepted := range q.acceptedAnswers {
		if answer == accepted {
			return true
		}
	}
	return false
}

func validateByType(qType Type, choices []Choice, acceptedAnswers []string) error {
	switch qType {
	case TypeSingleChoice:
		return validateChoices(choices, true)
	case TypeMultipleChoice:
		return validateChoices(choices, false)
	case TypeTrueFalse:
		if len(choices) != trueFalseChoiceSize {
			return ErrInvalidTrueFalse
		}
		return validateChoices(choices, true)
	case TypeOpenText:
		if len(choices) > 0 {
			return ErrChoicesNotAllowed
		}
		if len(normalizeAnswers(acceptedAnswers)) == 0 {
			return ErrNoAcceptedAnswers
		}
		if len(acceptedAnswers) > MaxAcceptedAnswers {
			return errs.ErrInvalidInput
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownQuestionType, qType)
	}
}

func validateChoices(choices []Choice, exactlyOneCorrect bool) error {
	if len(choices) < 2 {
		return ErrTooFewChoices
	}
	if len(choices) > MaxChoices {
		return errs.ErrInvalidInput
	}

	correct := 0
	for _, c := range choices {
		text := strings.TrimSpace(c.Text)
		if text == "" || len(text) > MaxChoiceLength {
			return errs.ErrInvalidInput
		}
		if c.Correct {
			correct++
		}
	}

	if correct == 0 {
		return ErrNoCorrectChoice
	}
	if exactlyOneCorrect && correct > 1 {
		return ErrManyCorrectChoices
	}
	return nil
}

func normalizeAnswers(answers []string) []string {
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
