package quiz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	appquiz "github.com/quizforge/quizforge/internal/application/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func TestUpdateQuiz_Success(t *testing.T) {
	repo := newFakeQuizRepo()
	q := mustQuiz(uuid.NewUUID(), "Old Title")
	repo.quizzes[q.ID()] = q
	uc := appquiz.NewUpdateQuizUseCase(repo, discardLogger())

	result := uc.Execute(context.Background(), appquiz.UpdateQuizCommand{
		QuizID:      q.ID(),
		Title:       "New Title",
		Description: "updated",
	})

	require.True(t, result.IsSuccess())
	assert.Equal(t, "New Title", result.Value().Title)
	assert.Equal(t, "New Title", repo.quizzes[q.ID()].Title())
}

func TestUpdateQuiz_NotFound(t *testing.T) {
	uc := appquiz.NewUpdateQuizUseCase(newFakeQuizRepo(), discardLogger())

	result := uc.Execute(context.Background(), appquiz.UpdateQuizCommand{
		QuizID: uuid.NewUUID(),
		Title:  "New Title",
	})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeNotFound, result.Code())
}

func TestUpdateQuiz_ArchivedRejected(t *testing.T) {
	repo := newFakeQuizRepo()
	q := mustQuiz(uuid.NewUUID(), "Old Title")
	require.NoError(t, q.Archive())
	repo.quizzes[q.ID()] = q
	uc := appquiz.NewUpdateQuizUseCase(repo, discardLogger())

	result := uc.Execute(context.Background(), appquiz.UpdateQuizCommand{
		QuizID: q.ID(),
		Title:  "New Title",
	})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeInactive, result.Code())
}
