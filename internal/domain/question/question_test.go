package question_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/question"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func twoChoices(correct int) []question.Choice {
	return []question.Choice{
		{Text: "A", Correct: correct >= 1},
		{Text: "B", Correct: correct >= 2},
	}
}

func TestNewQuestion_SingleChoice(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		q, err := question.NewQuestion(uuid.NewUUID(), "2+2?", question.TypeSingleChoice,
			[]question.Choice{{Text: "4", Correct: true}, {Text: "5"}}, nil, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, question.TypeSingleChoice, q.Type())
		assert.Equal(t, 10, q.Points())
	})

	t.Run("requires at least two choices", func(t *testing.T) {
		_, err := question.NewQuestion(uuid.NewUUID(), "p", question.TypeSingleChoice,
			[]question.Choice{{Text: "only", Correct: true}}, nil, 1, 0)
		assert.ErrorIs(t, err, question.ErrTooFewChoices)
	})

	t.Run("requires exactly one correct", func(t *testing.T) {
		_, err := question.NewQuestion(uuid.NewUUID(), "p", question.TypeSingleChoice,
			twoChoices(2), nil, 1, 0)
		assert.ErrorIs(t, err, question.ErrManyCorrectChoices)

		_, err = question.NewQuestion(uuid.NewUUID(), "p", question.TypeSingleChoice,
			twoChoices(0), nil, 1, 0)
		assert.ErrorIs(t, err, question.ErrNoCorrectChoice)
	})
}

func TestNewQuestion_MultipleChoice(t *testing.T) {
	q, err := question.NewQuestion(uuid.NewUUID(), "pick evens", question.TypeMultipleChoice,
		[]question.Choice{
			{Text: "2", Correct: true},
			{Text: "3"},
			{Text: "4", Correct: true},
		}, nil, 5, 1)
	require.NoError(t, err)
	assert.Len(t, q.Choices(), 3)
}

func TestNewQuestion_TrueFalse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		_, err := question.NewQuestion(uuid.NewUUID(), "Go has generics", question.TypeTrueFalse,
			[]question.Choice{{Text: "True", Correct: true}, {Text: "False"}}, nil, 1, 0)
		require.NoError(t, err)
	})

	t.Run("exactly two choices", func(t *testing.T) {
		_, err := question.NewQuestion(uuid.NewUUID(), "p", question.TypeTrueFalse,
			[]question.Choice{{Text: "True", Correct: true}, {Text: "False"}, {Text: "Maybe"}}, nil, 1, 0)
		assert.ErrorIs(t, err, question.ErrInvalidTrueFalse)
	})
}

func TestNewQuestion_OpenText(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		q, err := question.NewQuestion(uuid.NewUUID(), "Name Go's mascot", question.TypeOpenText,
			nil, []string{" Gopher ", "the gopher"}, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"gopher", "the gopher"}, q.AcceptedAnswers())
	})

	t.Run("choices not allowed", func(t *testing.T) {
		_, err := question.NewQuestion(uuid.NewUUID(), "p", question.TypeOpenText,
			twoChoices(1), []string{"x"}, 1, 0)
		assert.ErrorIs(t, err, question.ErrChoicesNotAllowed)
	})

	t.Run("accepted answers required", func(t *testing.T) {
		_, err := question.NewQuestion(uuid.NewUUID(), "p", question.TypeOpenText,
			nil, []string{"   "}, 1, 0)
		assert.ErrorIs(t, err, question.ErrNoAcceptedAnswers)
	})
}

func TestNewQuestion_CommonRules(t *testing.T) {
	quizID := uuid.NewUUID()

	_, err := question.NewQuestion(uuid.UUID(""), "p", question.TypeSingleChoice, twoChoices(1), nil, 1, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = question.NewQuestion(quizID, "  ", question.TypeSingleChoice, twoChoices(1), nil, 1, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = question.NewQuestion(quizID, "p", question.TypeSingleChoice, twoChoices(1), nil, 0, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = question.NewQuestion(quizID, "p", "essay", twoChoices(1), nil, 1, 0)
	assert.ErrorIs(t, err, question.ErrUnknownQuestionType)
}

func TestQuestion_IsCorrectAnswer(t *testing.T) {
	q, err := question.NewQuestion(uuid.NewUUID(), "Name Go's mascot", question.TypeOpenText,
		nil, []string{"Gopher"}, 1, 0)
	require.NoError(t, err)

	assert.True(t, q.IsCorrectAnswer("gopher"))
	assert.True(t, q.IsCorrectAnswer("  GOPHER  "))
	assert.False(t, q.IsCorrectAnswer("ferret"))
}

func TestQuestion_Update(t *testing.T) {
	q, err := question.NewQuestion(uuid.NewUUID(), "old", question.TypeSingleChoice, twoChoices(1), nil, 1, 0)
	require.NoError(t, err)

	require.NoError(t, q.Update("new prompt", twoChoices(1), nil, 3))
	assert.Equal(t, "new prompt", q.Prompt())
	assert.Equal(t, 3, q.Points())

	assert.ErrorIs(t, q.Update("bad", twoChoices(0), nil, 3), question.ErrNoCorrectChoice)
}

func TestQuestion_SetPosition(t *testing.T) {
	q, err := question.NewQuestion(uuid.NewUUID(), "p", question.TypeSingleChoice, twoChoices(1), nil, 1, 0)
	require.NoError(t, err)

	require.NoError(t, q.SetPosition(4))
	assert.Equal(t, 4, q.Position())
	assert.ErrorIs(t, q.SetPosition(-1), errs.ErrInvalidInput)
}
