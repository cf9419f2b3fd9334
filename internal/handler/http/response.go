// Package httphandler provides the HTTP handlers of the quiz API.
package httphandler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// Response is the standard API envelope.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error carries the failure code and message in the API envelope.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON sends a successful JSON response.
func RespondJSON(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{
		Success: true,
		Data:    data,
	})
}

// RespondOK sends a 200 OK response with data.
func RespondOK(c echo.Context, data any) error {
	return RespondJSON(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data.
func RespondCreated(c echo.Context, data any) error {
	return RespondJSON(c, http.StatusCreated, data)
}

// RespondNoContent sends a 204 No Content response.
func RespondNoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// RespondFailure maps a failed result to its HTTP representation.
func RespondFailure[T any](c echo.Context, result appcore.Result[T]) error {
	return RespondErrorWithCode(c, StatusForCode(result.Code()), string(result.Code()), result.Message())
}

// RespondErrorWithCode sends an error response with a specific status.
func RespondErrorWithCode(c echo.Context, status int, errorCode, message string) error {
	return c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    errorCode,
			Message: message,
		},
	})
}

// StatusForCode maps result codes to HTTP status codes. Session hijacking,
// identity mismatches and ownership violations all surface as 403 so the
// response does not reveal which gate fired.
func StatusForCode(code appcore.Code) int {
	switch code {
	case appcore.CodeValidation:
		return http.StatusBadRequest
	case appcore.CodeUnauthorized:
		return http.StatusUnauthorized
	case appcore.CodeIdentityMismatch, appcore.CodeOwnershipViolation, appcore.CodeSessionHijacked:
		return http.StatusForbidden
	case appcore.CodeNotFound:
		return http.StatusNotFound
	case appcore.CodeDuplicate:
		return http.StatusConflict
	case appcore.CodeInactive:
		return http.StatusConflict
	case appcore.CodeRetryExhausted, appcore.CodeConnection:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
