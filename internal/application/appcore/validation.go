package appcore

import (
	"fmt"
	"slices"
	"strings"

	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// ValidationError describes a single construction-time rule violation.
// Commands are validated eagerly by their constructors; a malformed request
// never enters the pipeline.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ValidateRequired checks that a string is not empty.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "is required")
	}
	return nil
}

// ValidateUUID checks that a UUID is set.
func ValidateUUID(field string, id uuid.UUID) error {
	if id.IsZero() {
		return NewValidationError(field, "must be a valid UUID")
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string.
func ValidateMaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return NewValidationError(field, fmt.Sprintf("must be at most %d characters", maxLength))
	}
	return nil
}

// ValidateMinLength checks the minimum length of a string.
func ValidateMinLength(field, value string, minLength int) error {
	if len(value) < minLength {
		return NewValidationError(field, fmt.Sprintf("must be at least %d characters", minLength))
	}
	return nil
}

// ValidateEnum checks that a value is one of the allowed set.
func ValidateEnum(field, value string, allowedValues []string) error {
	if slices.Contains(allowedValues, value) {
		return nil
	}
	return NewValidationError(field, fmt.Sprintf("must be one of: %v", allowedValues))
}

// ValidateRange checks that an integer falls within [minValue, maxValue].
func ValidateRange(field string, value, minValue, maxValue int) error {
	if value < minValue || value > maxValue {
		return NewValidationError(field, fmt.Sprintf("must be between %d and %d", minValue, maxValue))
	}
	return nil
}

// ValidatePositive checks that an integer is positive.
func ValidatePositive(field string, value int) error {
	if value <= 0 {
		return NewValidationError(field, "must be positive")
	}
	return nil
}

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(field, value string) error {
	if value == "" {
		return NewValidationError(field, "email is required")
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 {
		return NewValidationError(field, "must be a valid email address")
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return NewValidationError(field, "must be a valid email address")
	}
	return nil
}
