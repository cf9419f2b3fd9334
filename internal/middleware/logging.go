package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDContextKey = "request_id"

// RequestID returns the request ID assigned by the logging middleware, or
// an empty string when it runs outside the middleware chain.
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDContextKey).(string)
	return id
}

// RequestLogging assigns each request an ID, echoes it back in the
// X-Request-ID header and logs method, path, status and latency. Server
// errors log at error level, client errors at warn.
func RequestLogging(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Set(requestIDContextKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []any{
				slog.String("request_id", requestID),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}

			switch {
			case status >= 500:
				logger.Error("request failed", attrs...)
			case status >= 400:
				logger.Warn("request rejected", attrs...)
			default:
				logger.Info("request completed", attrs...)
			}

			return err
		}
	}
}
