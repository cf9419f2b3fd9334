// Package quiz contains the quiz aggregate and its lifecycle rules.
package quiz

import (
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Field limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxTags              = 10
)

// Status is the quiz lifecycle state.
type Status string

// Quiz lifecycle states. Draft quizzes accept edits, published quizzes are
// visible to players, archived quizzes are terminal.
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Statuses lists every valid status, for request validation.
func Statuses() []string {
	return []string{string(StatusDraft), string(StatusPublished), string(StatusArchived)}
}

// Quiz is a quiz-content aggregate.
type Quiz struct {
	id            uuid.UUID
	ownerID       uuid.UUID
	title         string
	description   string
	categoryID    uuid.UUID
	tags          []string
	status        Status
	questionCount int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewQuiz creates a draft quiz.
func NewQuiz(ownerID uuid.UUID, title, description string, categoryID uuid.UUID, tags []string) (*Quiz, error) {
	title = strings.TrimSpace(title)
	if ownerID.IsZero() || title == "" {
		return nil, errs.ErrInvalidInput
	}
	if len(title) > MaxTitleLength || len(description) > MaxDescriptionLength || len(tags) > MaxTags {
		return nil, errs.ErrInvalidInput
	}

	now := time.Now().UTC()
	return &Quiz{
		id:          uuid.NewUUID(),
		ownerID:     ownerID,
		title:       title,
		description: description,
		categoryID:  categoryID,
		tags:        normalizeTags(tags),
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct restores a quiz from storage.
func Reconstruct(
	id, ownerID uuid.UUID,
	title, description string,
	categoryID uuid.UUID,
	tags []string,
	status Status,
	questionCount int,
	createdAt, updatedAt time.Time,
) *Quiz {
	return &Quiz{
		id:            id,
		ownerID:       ownerID,
		title:         title,
		description:   description,
		categoryID:    categoryID,
		tags:          tags,
		status:        status,
		questionCount: questionCount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// ID returns the quiz ID.
func (q *Quiz) ID() uuid.UUID { return q.id }

// OwnerID returns the owning user's ID.
func (q *Quiz) OwnerID() uuid.UUID { return q.ownerID }

// Title returns the title.
func (q *Quiz) Title() string { return q.title }

// Description returns the description.
func (q *Quiz) Description() string { return q.description }

// CategoryID returns the taxonomy category, zero when uncategorized.
func (q *Quiz) CategoryID() uuid.UUID { return q.categoryID }

// Tags returns the tag list.
func (q *Quiz) Tags() []string { return q.tags }

// Status returns the lifecycle status.
func (q *Quiz) Status() Status { return q.status }

// QuestionCount returns the number of questions attached to the quiz.
func (q *Quiz) QuestionCount() int { return q.questionCount }

// CreatedAt returns the creation time.
func (q *Quiz) CreatedAt() time.Time { return q.createdAt }

// UpdatedAt returns the last modification time.
func (q *Quiz) UpdatedAt() time.Time { return q.updatedAt }

// IsActive reports whether the quiz accepts mutations.
func (q *Quiz) IsActive() bool {
	return q.status != StatusArchived
}

// Update changes title, description, category and tags. Archived quizzes
// reject edits.
func (q *Quiz) Update(title, description string, categoryID uuid.UUID, tags []string) error {
	if q.status == StatusArchived {
		return errs.ErrInvalidState
	}
	title = strings.TrimSpace(title)
	if title == "" || len(title) > MaxTitleLength || len(description) > MaxDescriptionLength || len(tags) > MaxTags {
		return errs.ErrInvalidInput
	}

	q.title = title
	q.description = description
	q.categoryID = categoryID
	q.tags = normalizeTags(tags)
	q.touch()
	return nil
}

// Publish transitions draft -> published. A quiz without questions cannot be
// published.
func (q *Quiz) Publish() error {
	if q.status != StatusDraft {
		return errs.ErrInvalidTransition
	}
	if q.questionCount == 0 {
		return errs.ErrInvalidState
	}
	q.status = StatusPublished
	q.touch()
	return nil
}

// Archive transitions draft/published -> archived. Archiving is terminal.
func (q *Quiz) Archive() error {
	if q.status == StatusArchived {
		return errs.ErrInvalidTransition
	}
	q.status = StatusArchived
	q.touch()
	return nil
}

// SetQuestionCount records the current number of attached questions.
func (q *Quiz) SetQuestionCount(n int) {
	if n < 0 {
		n = 0
	}
	q.questionCount = n
	q.touch()
}

func (q *Quiz) touch() {
	q.updatedAt = time.Now().UTC()
}

// normalizeTags trims, lowercases and deduplicates tags, preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
