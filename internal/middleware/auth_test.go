package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/uuid"
	"github.com/quizforge/quizforge/internal/infrastructure/auth"
	"github.com/quizforge/quizforge/internal/middleware"
)

type fakeValidator struct {
	claims *auth.TokenClaims
	err    error
}

func (v *fakeValidator) Validate(_ context.Context, _ string) (*auth.TokenClaims, error) {
	return v.claims, v.err
}

type fakeResolver struct {
	userID uuid.UUID
	err    error

	externalID string
}

func (r *fakeResolver) ResolveUser(
	_ context.Context, externalID, _, _, _ string,
) (uuid.UUID, error) {
	r.externalID = externalID
	return r.userID, r.err
}

func newAuthApp(validator middleware.TokenValidator, resolver middleware.UserResolver) (*echo.Echo, *appcore.Identity) {
	e := echo.New()
	e.Use(middleware.Auth(middleware.AuthConfig{
		Validator: validator,
		Resolver:  resolver,
		SkipPaths: []string{"/health"},
	}))

	var seen appcore.Identity
	e.GET("/quizzes", func(c echo.Context) error {
		identity, err := appcore.IdentityFrom(c.Request().Context())
		if err != nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		seen = identity
		return c.NoContent(http.StatusOK)
	})
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return e, &seen
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.NewUUID()
	validator := &fakeValidator{claims: &auth.TokenClaims{
		Subject:   "ext-123",
		Username:  "alice",
		Email:     "alice@example.com",
		SessionID: "sess-1",
		Roles:     []string{"user"},
	}}
	resolver := &fakeResolver{userID: userID}
	e, seen := newAuthApp(validator, resolver)

	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, seen.UserID)
	assert.Equal(t, "alice", seen.Username)
	assert.Equal(t, "ext-123", resolver.externalID)
}

func TestAuth_MissingHeader(t *testing.T) {
	e, _ := newAuthApp(&fakeValidator{}, &fakeResolver{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quizzes", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(appcore.CodeUnauthorized))
}

func TestAuth_MalformedHeader(t *testing.T) {
	e, _ := newAuthApp(&fakeValidator{}, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic abc123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &fakeValidator{err: auth.ErrInvalidToken}
	e, _ := newAuthApp(validator, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer bad")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	validator := &fakeValidator{err: auth.ErrTokenExpired}
	e, _ := newAuthApp(validator, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer stale")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAuth_ResolverFailure(t *testing.T) {
	validator := &fakeValidator{claims: &auth.TokenClaims{Subject: "ext-123"}}
	resolver := &fakeResolver{err: errors.New("database down")}
	e, _ := newAuthApp(validator, resolver)

	req := httptest.NewRequest(http.MethodGet, "/quizzes", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_SkipPaths(t *testing.T) {
	e, _ := newAuthApp(&fakeValidator{err: auth.ErrInvalidToken}, &fakeResolver{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
