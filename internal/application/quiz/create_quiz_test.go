package quiz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	appquiz "github.com/quizforge/quizforge/internal/application/quiz"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func TestCreateQuiz_Success(t *testing.T) {
	repo := newFakeQuizRepo()
	uc := appquiz.NewCreateQuizUseCase(repo, discardLogger())
	owner := uuid.NewUUID()

	result := uc.Execute(context.Background(), appquiz.CreateQuizCommand{
		OwnerID:     owner,
		Title:       "Go Basics",
		Description: "An introduction",
		Tags:        []string{"Go", "go", " beginner "},
	})

	require.True(t, result.IsSuccess())
	created := result.Value()
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, "Go Basics", created.Title)
	assert.Equal(t, quizdomain.StatusDraft, created.Status)
	assert.Equal(t, []string{"go", "beginner"}, created.Tags)
	assert.Len(t, repo.quizzes, 1)
}

func TestCreateQuiz_InvalidTitle(t *testing.T) {
	repo := newFakeQuizRepo()
	uc := appquiz.NewCreateQuizUseCase(repo, discardLogger())

	result := uc.Execute(context.Background(), appquiz.CreateQuizCommand{
		OwnerID: uuid.NewUUID(),
		Title:   "   ",
	})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeValidation, result.Code())
	assert.Empty(t, repo.quizzes)
}

func TestCreateQuiz_StorageError(t *testing.T) {
	repo := newFakeQuizRepo()
	repo.createErr = errors.New("connection reset")
	uc := appquiz.NewCreateQuizUseCase(repo, discardLogger())

	result := uc.Execute(context.Background(), appquiz.CreateQuizCommand{
		OwnerID: uuid.NewUUID(),
		Title:   "Go Basics",
	})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeConnection, result.Code())
}
