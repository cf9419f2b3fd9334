package appcore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, appcore.ValidateRequired("title", "Go basics"))
	assert.Error(t, appcore.ValidateRequired("title", ""))
	assert.Error(t, appcore.ValidateRequired("title", "   "))
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, appcore.ValidateUUID("quiz_id", uuid.NewUUID()))

	var zero uuid.UUID
	err := appcore.ValidateUUID("quiz_id", zero)
	require.Error(t, err)

	var vErr *appcore.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quiz_id", vErr.Field)
}

func TestValidateLengths(t *testing.T) {
	assert.NoError(t, appcore.ValidateMaxLength("title", "short", 10))
	assert.Error(t, appcore.ValidateMaxLength("title", "this is way too long", 10))

	assert.NoError(t, appcore.ValidateMinLength("prompt", "abc", 3))
	assert.Error(t, appcore.ValidateMinLength("prompt", "ab", 3))
}

func TestValidateEnum(t *testing.T) {
	allowed := []string{"draft", "published", "archived"}

	assert.NoError(t, appcore.ValidateEnum("status", "draft", allowed))
	assert.Error(t, appcore.ValidateEnum("status", "deleted", allowed))
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, appcore.ValidateRange("points", 5, 1, 10))
	assert.Error(t, appcore.ValidateRange("points", 0, 1, 10))
	assert.Error(t, appcore.ValidateRange("points", 11, 1, 10))
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, appcore.ValidatePositive("limit", 1))
	assert.Error(t, appcore.ValidatePositive("limit", 0))
	assert.Error(t, appcore.ValidatePositive("limit", -5))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@sub.example.com"}
	for _, v := range valid {
		assert.NoError(t, appcore.ValidateEmail("email", v), v)
	}

	invalid := []string{"", "plain", "@no-local.com", "user@", "user@nodot", "user@.com", "user@dot."}
	for _, v := range invalid {
		assert.Error(t, appcore.ValidateEmail("email", v), v)
	}
}
