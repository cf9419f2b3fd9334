// Package middleware contains the echo middleware of the API boundary:
// authentication, request logging, panic recovery and rate limiting.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/infrastructure/auth"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Auth errors.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrUserNotFound      = errors.New("user not found")
)

// TokenValidator validates bearer tokens. Satisfied by the JWKS validator.
type TokenValidator interface {
	Validate(ctx context.Context, tokenString string) (*auth.TokenClaims, error)
}

// UserResolver maps an external subject to the local user, provisioning one
// on first sight.
type UserResolver interface {
	ResolveUser(ctx context.Context, externalID, username, email, displayName string) (uuid.UUID, error)
}

// AuthConfig configures the authentication middleware.
type AuthConfig struct {
	Logger    *slog.Logger
	Validator TokenValidator
	Resolver  UserResolver

	// SkipPaths bypass authentication entirely (health endpoints).
	SkipPaths []string
}

// DefaultAuthConfig returns an AuthConfig with the standard skip list.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Logger:    slog.Default(),
		SkipPaths: []string{"/health", "/ready"},
	}
}

// Auth returns middleware that validates the bearer token, resolves the
// local user and stores the ambient identity and request metadata on the
// request context for the application core.
func Auth(config AuthConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	skipPaths := make(map[string]struct{}, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skipPaths[path] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if _, ok := skipPaths[path]; ok {
				return next(c)
			}

			token, err := extractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return respondAuthError(c, err)
			}

			ctx := c.Request().Context()
			claims, err := config.Validator.Validate(ctx, token)
			if err != nil {
				config.Logger.Warn("token validation failed",
					slog.String("error", err.Error()),
					slog.String("path", path),
					slog.String("remote_ip", c.RealIP()),
				)
				return respondAuthError(c, err)
			}

			userID, err := config.Resolver.ResolveUser(ctx, claims.Subject, claims.Username, claims.Email, claims.Name)
			if err != nil {
				config.Logger.Error("failed to resolve user",
					slog.String("error", err.Error()),
					slog.String("external_id", claims.Subject),
				)
				return respondAuthError(c, ErrUserNotFound)
			}

			identity := appcore.Identity{
				UserID:   userID,
				Username: claims.Username,
				Email:    claims.Email,
				Roles:    claims.Roles,
			}
			meta := appcore.RequestMeta{
				SessionID: claims.SessionID,
				ClientIP:  c.RealIP(),
				UserAgent: c.Request().UserAgent(),
				RequestID: RequestID(c),
			}

			ctx = appcore.WithIdentity(ctx, identity)
			ctx = appcore.WithRequestMeta(ctx, meta)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrInvalidAuthHeader
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrInvalidAuthHeader
	}
	return token, nil
}

func respondAuthError(c echo.Context, err error) error {
	message := "authentication required"
	if errors.Is(err, auth.ErrTokenExpired) {
		message = "token expired"
	}

	return c.JSON(http.StatusUnauthorized, map[string]any{
		"success": false,
		"error": map[string]any{
			"code":    string(appcore.CodeUnauthorized),
			"message": message,
		},
	})
}
