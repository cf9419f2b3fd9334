package quiz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quizapp "github.com/quizforge/quizforge/internal/application/quiz"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func TestNewCreateQuizCommand(t *testing.T) {
	ownerID := uuid.NewUUID()

	t.Run("valid", func(t *testing.T) {
		cmd, err := quizapp.NewCreateQuizCommand(ownerID, "Go Basics", "intro", uuid.UUID(""), []string{"go"})
		require.NoError(t, err)
		assert.Equal(t, ownerID, cmd.OwnerID)
		assert.Equal(t, "Go Basics", cmd.Title)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := quizapp.NewCreateQuizCommand(ownerID, "", "", uuid.UUID(""), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("rejects zero owner", func(t *testing.T) {
		_, err := quizapp.NewCreateQuizCommand(uuid.UUID(""), "Go Basics", "", uuid.UUID(""), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner_id")
	})

	t.Run("rejects oversized title", func(t *testing.T) {
		_, err := quizapp.NewCreateQuizCommand(ownerID,
			strings.Repeat("a", quizdomain.MaxTitleLength+1), "", uuid.UUID(""), nil)
		require.Error(t, err)
	})

	t.Run("rejects too many tags", func(t *testing.T) {
		tags := make([]string, quizdomain.MaxTags+1)
		for i := range tags {
			tags[i] = "t"
		}
		_, err := quizapp.NewCreateQuizCommand(ownerID, "Go Basics", "", uuid.UUID(""), tags)
		require.Error(t, err)
	})
}

func TestNewUpdateQuizCommand(t *testing.T) {
	quizID := uuid.NewUUID()

	cmd, err := quizapp.NewUpdateQuizCommand(quizID, "Renamed", "desc", uuid.UUID(""), nil)
	require.NoError(t, err)
	assert.Equal(t, quizID, cmd.QuizID)

	_, err = quizapp.NewUpdateQuizCommand(quizID, "", "", uuid.UUID(""), nil)
	assert.Error(t, err, "empty title must not produce a command")

	_, err = quizapp.NewUpdateQuizCommand(uuid.UUID(""), "Renamed", "", uuid.UUID(""), nil)
	assert.Error(t, err)
}

func TestLifecycleCommandConstructors_RequireQuizID(t *testing.T) {
	quizID := uuid.NewUUID()

	_, err := quizapp.NewPublishQuizCommand(quizID)
	require.NoError(t, err)
	_, err = quizapp.NewPublishQuizCommand(uuid.UUID(""))
	assert.Error(t, err)

	_, err = quizapp.NewArchiveQuizCommand(uuid.UUID(""))
	assert.Error(t, err)

	_, err = quizapp.NewDeleteQuizCommand(uuid.UUID(""))
	assert.Error(t, err)
}
