package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// Recovery converts panics in downstream handlers into 500 responses with
// a stack trace in the log.
func Recovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						slog.String("panic", fmt.Sprintf("%v", r)),
						slog.String("request_id", RequestID(c)),
						slog.String("method", c.Request().Method),
						slog.String("path", c.Request().URL.Path),
						slog.String("stack", string(debug.Stack())),
					)

					err = c.JSON(http.StatusInternalServerError, map[string]any{
						"success": false,
						"error": map[string]any{
							"code":    string(appcore.CodeInternal),
							"message": "internal server error",
						},
					})
				}
			}()

			return next(c)
		}
	}
}
