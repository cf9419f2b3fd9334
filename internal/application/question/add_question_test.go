package question_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	appquestion "github.com/quizforge/quizforge/internal/application/question"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
)

func TestAddQuestion_Success(t *testing.T) {
	questions := newFakeQuestionRepo()
	quizzes := newFakeQuizStore()
	parent := mustQuiz("Go Basics")
	quizzes.quizzes[parent.ID()] = parent
	uc := appquestion.NewAddQuestionUseCase(questions, quizzes, discardLogger())

	result := uc.Execute(context.Background(), appquestion.AddQuestionCommand{
		QuizID: parent.ID(),
		Prompt: "Is Go statically typed?",
		Type:   questiondomain.TypeTrueFalse,
		Choices: []questiondomain.Choice{
			{Text: "True", Correct: true},
			{Text: "False"},
		},
		Points: 5,
	})

	require.True(t, result.IsSuccess())
	created := result.Value()
	assert.Equal(t, parent.ID(), created.QuizID)
	assert.Equal(t, 1, created.Position)
	assert.Equal(t, 1, parent.QuestionCount())
}

func TestAddQuestion_InvalidRules(t *testing.T) {
	questions := newFakeQuestionRepo()
	quizzes := newFakeQuizStore()
	parent := mustQuiz("Go Basics")
	quizzes.quizzes[parent.ID()] = parent
	uc := appquestion.NewAddQuestionUseCase(questions, quizzes, discardLogger())

	// single_choice with two correct answers violates the type rules.
	result := uc.Execute(context.Background(), appquestion.AddQuestionCommand{
		QuizID: parent.ID(),
		Prompt: "Pick one",
		Type:   questiondomain.TypeSingleChoice,
		Choices: []questiondomain.Choice{
			{Text: "A", Correct: true},
			{Text: "B", Correct: true},
		},
		Points: 1,
	})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeValidation, result.Code())
	assert.Empty(t, questions.questions)
}

func TestAddQuestion_ArchivedQuizRejected(t *testing.T) {
	questions := newFakeQuestionRepo()
	quizzes := newFakeQuizStore()
	parent := mustQuiz("Go Basics")
	require.NoError(t, parent.Archive())
	quizzes.quizzes[parent.ID()] = parent
	uc := appquestion.NewAddQuestionUseCase(questions, quizzes, discardLogger())

	result := uc.Execute(context.Background(), appquestion.AddQuestionCommand{
		QuizID: parent.ID(),
		Prompt: "Is Go statically typed?",
		Type:   questiondomain.TypeTrueFalse,
		Choices: []questiondomain.Choice{
			{Text: "True", Correct: true},
			{Text: "False"},
		},
		Points: 1,
	})

	require.True(t, result.IsFailure())
	assert.Equal(t, appcore.CodeInactive, result.Code())
}
