package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

const rateLimitKeyPrefix = "quizforge:ratelimit:"

// RateLimitStore counts requests per key inside a rolling window.
type RateLimitStore interface {
	// Increment bumps the counter for key, starting the window on the
	// first hit, and returns the new count.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)

	// TTL returns the time remaining until the window for key resets.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Logger *slog.Logger
	Store  RateLimitStore

	// Requests allowed per Window per client.
	Requests int
	Window   time.Duration

	// SkipPaths bypass rate limiting (health endpoints).
	SkipPaths []string
}

// DefaultRateLimitConfig allows 120 requests per minute.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Logger:    slog.Default(),
		Requests:  120,
		Window:    time.Minute,
		SkipPaths: []string{"/health", "/ready"},
	}
}

// RateLimit returns middleware enforcing a per-client request budget. The
// key is the authenticated user when available, the client IP otherwise.
// Store failures let the request through: availability over strictness
// here, unlike the security chain.
func RateLimit(config RateLimitConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	skipPaths := make(map[string]struct{}, len(config.SkipPaths))
	for _, path := range config.SkipPaths {
		skipPaths[path] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := skipPaths[c.Request().URL.Path]; ok {
				return next(c)
			}

			key := rateLimitKey(c)
			count, err := config.Store.Increment(c.Request().Context(), key, config.Window)
			if err != nil {
				config.Logger.Warn("rate limit store unavailable, allowing request",
					slog.String("error", err.Error()),
					slog.String("key", key),
				)
				return next(c)
			}

			remaining := int64(config.Requests) - count
			if remaining < 0 {
				remaining = 0
			}

			ttl, err := config.Store.TTL(c.Request().Context(), key)
			if err != nil || ttl < 0 {
				ttl = config.Window
			}

			c.Response().Header().Set("X-Ratelimit-Limit", strconv.Itoa(config.Requests))
			c.Response().Header().Set("X-Ratelimit-Remaining", strconv.FormatInt(remaining, 10))
			c.Response().Header().Set("X-Ratelimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

			if count > int64(config.Requests) {
				config.Logger.Warn("rate limit exceeded",
					slog.String("key", key),
					slog.Int64("count", count),
					slog.String("path", c.Request().URL.Path),
				)

				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"success": false,
					"error": map[string]any{
						"code":    string(appcore.CodeValidation),
						"message": "rate limit exceeded, retry later",
					},
				})
			}

			return next(c)
		}
	}
}

func rateLimitKey(c echo.Context) string {
	if identity, err := appcore.IdentityFrom(c.Request().Context()); err == nil {
		return rateLimitKeyPrefix + "user:" + identity.UserID.String()
	}
	return rateLimitKeyPrefix + "ip:" + c.RealIP()
}

// MemoryRateLimitStore is an in-process RateLimitStore for tests and
// single-instance deployments.
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	entries map[string]*memoryRateLimitEntry
	now     func() time.Time
}

type memoryRateLimitEntry struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryRateLimitStore creates an empty in-memory store.
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		entries: make(map[string]*memoryRateLimitEntry),
		now:     time.Now,
	}
}

// Increment implements RateLimitStore.
func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.expiresAt) {
		entry = &memoryRateLimitEntry{expiresAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++

	return entry.count, nil
}

// TTL implements RateLimitStore.
func (s *MemoryRateLimitStore) TTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return -1, nil
	}
	ttl := entry.expiresAt.Sub(s.now())
	if ttl < 0 {
		return -1, nil
	}
	return ttl, nil
}

// RedisRateLimitStore backs the rate limiter with Redis so the budget is
// shared across instances.
type RedisRateLimitStore struct {
	client *redis.Client
}

// NewRedisRateLimitStore creates a store over the given client.
func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// Increment implements RateLimitStore. The expiry is set only on the first
// hit of the window so later hits do not slide it.
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("setting rate limit window: %w", err)
		}
	}
	return count, nil
}

// TTL implements RateLimitStore.
func (s *RedisRateLimitStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("reading rate limit window: %w", err)
	}
	return ttl, nil
}
