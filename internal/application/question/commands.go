// Package question contains the use cases operating on quiz questions.
package question

import (
	"errors"

	"github.com/quizforge/quizforge/internal/application/appcore"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// AddQuestionCommand appends a question to a quiz. Ownership is checked
// against the parent quiz.
type AddQuestionCommand struct {
	QuizID          uuid.UUID
	Prompt          string
	Type            questiondomain.Type
	Choices         []questiondomain.Choice
	AcceptedAnswers []string
	Points          int
	Position        int
}

// NewAddQuestionCommand validates the request fields eagerly; per-type choice
// rules remain with the question aggregate.
func NewAddQuestionCommand(
	quizID uuid.UUID,
	prompt string,
	qType questiondomain.Type,
	choices []questiondomain.Choice,
	acceptedAnswers []string,
	points, position int,
) (AddQuestionCommand, error) {
	if err := errors.Join(
		appcore.ValidateUUID("quiz_id", quizID),
		appcore.ValidateRequired("prompt", prompt),
		appcore.ValidateMaxLength("prompt", prompt, questiondomain.MaxPromptLength),
		appcore.ValidateEnum("type", string(qType), questiondomain.Types()),
		appcore.ValidateRange("points", points, 1, questiondomain.MaxPoints),
		validatePosition(position),
	); err != nil {
		return AddQuestionCommand{}, err
	}
	return AddQuestionCommand{
		QuizID:          quizID,
		Prompt:          prompt,
		Type:            qType,
		Choices:         choices,
		AcceptedAnswers: acceptedAnswers,
		Points:          points,
		Position:        position,
	}, nil
}

func validatePosition(position int) error {
	if position < 0 {
		return appcore.NewValidationError("position", "must not be negative")
	}
	return nil
}

// CommandName returns the registry name of the command.
func (AddQuestionCommand) CommandName() string { return "question.add" }

// ScopedResourceID returns the parent quiz the command targets.
func (c AddQuestionCommand) ScopedResourceID() uuid.UUID { return c.QuizID }

// UpdateQuestionCommand replaces the editable fields of a question.
type UpdateQuestionCommand struct {
	QuizID          uuid.UUID
	QuestionID      uuid.UUID
	Prompt          string
	Choices         []questiondomain.Choice
	AcceptedAnswers []string
	Points          int
}

// NewUpdateQuestionCommand validates the request fields eagerly.
func NewUpdateQuestionCommand(
	quizID, questionID uuid.UUID,
	prompt string,
	choices []questiondomain.Choice,
	acceptedAnswers []string,
	points int,
) (UpdateQuestionCommand, error) {
	if err := errors.Join(
		appcore.ValidateUUID("quiz_id", quizID),
		appcore.ValidateUUID("question_id", questionID),
		appcore.ValidateRequired("prompt", prompt),
		appcore.ValidateMaxLength("prompt", prompt, questiondomain.MaxPromptLength),
		appcore.ValidateRange("points", points, 1, questiondomain.MaxPoints),
	); err != nil {
		return UpdateQuestionCommand{}, err
	}
	return UpdateQuestionCommand{
		QuizID:          quizID,
		QuestionID:      questionID,
		Prompt:          prompt,
		Choices:         choices,
		AcceptedAnswers: acceptedAnswers,
		Points:          points,
	}, nil
}

// CommandName returns the registry name of the command.
func (UpdateQuestionCommand) CommandName() string { return "question.update" }

// ScopedResourceID returns the parent quiz the command targets.
func (c UpdateQuestionCommand) ScopedResourceID() uuid.UUID { return c.QuizID }

// RemoveQuestionCommand removes a question from a quiz.
type RemoveQuestionCommand struct {
	QuizID     uuid.UUID
	QuestionID uuid.UUID
}

// NewRemoveQuestionCommand validates the request fields eagerly.
func NewRemoveQuestionCommand(quizID, questionID uuid.UUID) (RemoveQuestionCommand, error) {
	if err := errors.Join(
		appcore.ValidateUUID("quiz_id", quizID),
		appcore.ValidateUUID("question_id", questionID),
	); err != nil {
		return RemoveQuestionCommand{}, err
	}
	return RemoveQuestionCommand{QuizID: quizID, QuestionID: questionID}, nil
}

// CommandName returns the registry name of the command.
func (RemoveQuestionCommand) CommandName() string { return "question.remove" }

// ScopedResourceID returns the parent quiz the command targets.
func (c RemoveQuestionCommand) ScopedResourceID() uuid.UUID { return c.QuizID }
