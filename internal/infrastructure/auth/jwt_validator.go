// Package auth validates bearer tokens issued by the external identity
// provider, using a cached JWKS for offline signature checks.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// Token validation errors.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidClaims   = errors.New("invalid claims")
	ErrMissingSubject  = errors.New("missing subject claim")
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidIssuer   = errors.New("invalid issuer")
	ErrInvalidAudience = errors.New("invalid audience")
	ErrJWKSFetchFailed = errors.New("failed to fetch JWKS")
)

// TokenClaims are the validated claims the boundary cares about.
type TokenClaims struct {
	Subject   string
	Email     string
	Username  string
	Name      string
	SessionID string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	// Validate checks the token and returns its claims.
	Validate(ctx context.Context, tokenString string) (*TokenClaims, error)

	// Close stops the background JWKS refresh.
	Close() error
}

// Config configures the JWKS-backed validator.
type Config struct {
	// IssuerURL is the expected iss claim.
	IssuerURL string

	// JWKSURL is the key-set endpoint. Defaults to the OIDC well-known path
	// under IssuerURL.
	JWKSURL string

	// Audience is the expected aud claim; empty skips the check.
	Audience string

	// Leeway is the clock-skew tolerance.
	Leeway time.Duration

	// RefreshInterval is the JWKS refetch period.
	RefreshInterval time.Duration

	Logger *slog.Logger
}

// Defaults.
const (
	DefaultLeeway          = 30 * time.Second
	DefaultRefreshInterval = time.Hour
)

type jwksValidator struct {
	jwks   keyfunc.Keyfunc
	config Config
	logger *slog.Logger
	cancel context.CancelFunc
}

// NewTokenValidator creates a validator with background JWKS caching.
func NewTokenValidator(config Config) (TokenValidator, error) {
	if config.IssuerURL == "" {
		return nil, fmt.Errorf("%w: IssuerURL is required", ErrJWKSFetchFailed)
	}

	if config.Leeway == 0 {
		config.Leeway = DefaultLeeway
	}
	if config.RefreshInterval == 0 {
		config.RefreshInterval = DefaultRefreshInterval
	}
	if config.JWKSURL == "" {
		config.JWKSURL = config.IssuerURL + "/.well-known/jwks.json"
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("initializing token validator",
		slog.String("jwks_url", config.JWKSURL),
		slog.Duration("refresh_interval", config.RefreshInterval),
	)

	ctx, cancel := context.WithCancel(context.Background())

	storage, err := jwkset.NewStorageFromHTTP(config.JWKSURL, jwkset.HTTPClientStorageOptions{
		Ctx:             ctx,
		RefreshInterval: config.RefreshInterval,
		RefreshErrorHandler: func(_ context.Context, refreshErr error) {
			logger.Error("failed to refresh JWKS", slog.Any("error", refreshErr))
		},
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrJWKSFetchFailed, err)
	}

	jwks, err := keyfunc.New(keyfunc.Options{
		Ctx:     ctx,
		Storage: storage,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrJWKSFetchFailed, err)
	}

	return &jwksValidator{
		jwks:   jwks,
		config: config,
		logger: logger,
		cancel: cancel,
	}, nil
}

// Validate implements TokenValidator.
func (v *jwksValidator) Validate(_ context.Context, tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithLeeway(v.config.Leeway),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(v.config.IssuerURL),
	}
	if v.config.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.config.Audience))
	}

	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc, parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, fmt.Errorf("%w: %w", ErrInvalidIssuer, err)
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, fmt.Errorf("%w: %w", ErrInvalidAudience, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	return extractClaims(claims)
}

func extractClaims(claims jwt.MapClaims) (*TokenClaims, error) {
	tc := &TokenClaims{}

	tc.Subject, _ = claims["sub"].(string)
	if tc.Subject == "" {
		return nil, ErrMissingSubject
	}

	tc.Email, _ = claims["email"].(string)
	tc.Username, _ = claims["preferred_username"].(string)
	tc.Name, _ = claims["name"].(string)

	// Session id: OIDC front-channel sid, with the Keycloak-style
	// session_state as fallback.
	tc.SessionID, _ = claims["sid"].(string)
	if tc.SessionID == "" {
		tc.SessionID, _ = claims["session_state"].(string)
	}

	if roles, rolesOK := claims["roles"].([]any); rolesOK {
		tc.Roles = stringSlice(roles)
	} else if realmAccess, realmOK := claims["realm_access"].(map[string]any); realmOK {
		if realmRoles, realmRolesOK := realmAccess["roles"].([]any); realmRolesOK {
			tc.Roles = stringSlice(realmRoles)
		}
	}

	if iat, iatOK := claims["iat"].(float64); iatOK {
		tc.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, expOK := claims["exp"].(float64); expOK {
		tc.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return tc, nil
}

func stringSlice(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Close implements TokenValidator.
func (v *jwksValidator) Close() error {
	v.logger.Info("closing token validator")
	if v.cancel != nil {
		v.cancel()
	}
	return nil
}
