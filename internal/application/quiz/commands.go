// Package quiz contains the use cases operating on the quiz aggregate.
package quiz

import (
	"errors"

	"github.com/quizforge/quizforge/internal/application/appcore"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// CreateQuizCommand creates a new draft quiz owned by the caller.
type CreateQuizCommand struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	CategoryID  uuid.UUID
	Tags        []string
}

// NewCreateQuizCommand validates the request fields eagerly; a malformed
// command never reaches the dispatcher.
func NewCreateQuizCommand(
	ownerID uuid.UUID,
	title, description string,
	categoryID uuid.UUID,
	tags []string,
) (CreateQuizCommand, error) {
	if err := errors.Join(
		appcore.ValidateUUID("owner_id", ownerID),
		appcore.ValidateRequired("title", title),
		appcore.ValidateMaxLength("title", title, quizdomain.MaxTitleLength),
		appcore.ValidateMaxLength("description", description, quizdomain.MaxDescriptionLength),
		appcore.ValidateRange("tags", len(tags), 0, quizdomain.MaxTags),
	); err != nil {
		return CreateQuizCommand{}, err
	}
	return CreateQuizCommand{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		Tags:        tags,
	}, nil
}

// CommandName returns the registry name of the command.
func (CreateQuizCommand) CommandName() string { return "quiz.create" }

// ScopedUserID returns the user the command acts on behalf of.
func (c CreateQuizCommand) ScopedUserID() uuid.UUID { return c.OwnerID }

// UpdateQuizCommand replaces the editable fields of a quiz.
type UpdateQuizCommand struct {
	QuizID      uuid.UUID
	Title       string
	Description string
	CategoryID  uuid.UUID
	Tags        []string
}

// NewUpdateQuizCommand validates the request fields eagerly.
func NewUpdateQuizCommand(
	quizID uuid.UUID,
	title, description string,
	categoryID uuid.UUID,
	tags []string,
) (UpdateQuizCommand, error) {
	if err := errors.Join(
		appcore.ValidateUUID("quiz_id", quizID),
		appcore.ValidateRequired("title", title),
		appcore.ValidateMaxLength("title", title, quizdomain.MaxTitleLength),
		appcore.ValidateMaxLength("description", description, quizdomain.MaxDescriptionLength),
		appcore.ValidateRange("tags", len(tags), 0, quizdomain.MaxTags),
	); err != nil {
		return UpdateQuizCommand{}, err
	}
	return UpdateQuizCommand{
		QuizID:      quizID,
		Title:       title,
		Description: description,
		CategoryID:  categoryID,
		Tags:        tags,
	}, nil
}

// CommandName returns the registry name of the command.
func (UpdateQuizCommand) CommandName() string { return "quiz.update" }

// ScopedResourceID returns the quiz the command targets.
func (c UpdateQuizCommand) ScopedResourceID() uuid.UUID { return c.QuizID }

// PublishQuizCommand transitions a draft quiz to published.
type PublishQuizCommand struct {
	QuizID uuid.UUID
}

// NewPublishQuizCommand validates the request fields eagerly.
func NewPublishQuizCommand(quizID uuid.UUID) (PublishQuizCommand, error) {
	if err := appcore.ValidateUUID("quiz_id", quizID); err != nil {
		return PublishQuizCommand{}, err
	}
	return PublishQuizCommand{QuizID: quizID}, nil
}

// CommandName returns the registry name of the command.
func (PublishQuizCommand) CommandName() string { return "quiz.publish" }

// ScopedResourceID returns the quiz the command targets.
func (c PublishQuizCommand) ScopedResourceID() uuid.UUID { return c.QuizID }

// ArchiveQuizCommand transitions a quiz to its terminal archived state.
type ArchiveQuizCommand struct {
	QuizID uuid.UUID
}

// NewArchiveQuizCommand validates the request fields eagerly.
func NewArchiveQuizCommand(quizID uuid.UUID) (ArchiveQuizCommand, error) {
	if err := appcore.ValidateUUID("quiz_id", quizID); err != nil {
		return ArchiveQuizCommand{}, err
	}
	return ArchiveQuizCommand{QuizID: quizID}, nil
}

// CommandName returns the registry name of the command.
func (ArchiveQuizCommand) CommandName() string { return "quiz.archive" }

// ScopedResourceID returns the quiz the command targets.
func (c ArchiveQuizCommand) ScopedResourceID() uuid.UUID { return c.QuizID }

// DeleteQuizCommand removes a quiz and its questions permanently. Archived
// quizzes are retained as history and cannot be deleted.
type DeleteQuizCommand struct {
	QuizID uuid.UUID
}

// NewDeleteQuizCommand validates the request fields eagerly.
func NewDeleteQuizCommand(quizID uuid.UUID) (DeleteQuizCommand, error) {
	if err := appcore.ValidateUUID("quiz_id", quizID); err != nil {
		return DeleteQuizCommand{}, err
	}
	return DeleteQuizCommand{QuizID: quizID}, nil
}

// CommandName returns the registry name of the command.
func (DeleteQuizCommand) CommandName() string { return "quiz.delete" }

// ScopedResourceID returns the quiz the command targets.
func (c DeleteQuizCommand) ScopedResourceID() uuid.UUID { return c.QuizID }
