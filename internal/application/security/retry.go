// Package security implements the ordered, fail-fast validation chain that
// gates every mutating command, together with the retry policy its validators
// use for external lookups and the session-fingerprint tracker.
package security

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// Retry defaults.
const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 100 * time.Millisecond
	DefaultMaxDelay     = 2 * time.Second

	jitterFraction = 0.25
)

// terminalCodes are failures a retry can never change. Retrying them would
// mask real denials as transient infrastructure trouble.
var terminalCodes = map[appcore.Code]struct{}{
	appcore.CodeOwnershipViolation: {},
	appcore.CodeValidation:         {},
	appcore.CodeNotFound:           {},
	appcore.CodeDuplicate:          {},
	appcore.CodeUnauthorized:       {},
}

// transientPatterns mark suspected-temporary failures, matched against the
// failure code and the lowercased message.
var transientPatterns = []string{"timeout", "connection", "network", "unavailable"}

// RetryPolicy wraps a fallible operation with bounded exponential backoff.
// Backoff sleeps block the calling goroutine; each request already occupies
// its own worker and no further fan-out happens during the wait.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration

	// Logger is the structured logger for retry warnings.
	Logger *slog.Logger

	// Sleep is the wait function, injectable for tests. Defaults to
	// time.Sleep.
	Sleep func(time.Duration)
}

// DefaultRetryPolicy returns the policy used by the validation chain.
func DefaultRetryPolicy(logger *slog.Logger) RetryPolicy {
	return RetryPolicy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Logger:       logger,
	}
}

// ExecuteWithRetry runs op up to 1+MaxRetries times. Terminal failures return
// immediately; transient ones back off exponentially with symmetric ±25%
// jitter on every delay after the first. A panic inside op is recovered and
// treated exactly like a returned failure. Exhausting every attempt yields
// RETRY_EXHAUSTED carrying the last error.
func ExecuteWithRetry[T any](policy RetryPolicy, name string, op func() appcore.Result[T]) appcore.Result[T] {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.InitialDelay <= 0 {
		policy.InitialDelay = DefaultInitialDelay
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = DefaultMaxDelay
	}
	logger := policy.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	// base doubles without jitter; jitter perturbs only the slept value so
	// it never compounds across attempts.
	base := policy.InitialDelay
	delay := base
	var last appcore.Result[T]

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		result := runGuarded(op)
		if result.IsSuccess() {
			if attempt > 0 {
				logger.Info("operation recovered after retry",
					slog.String("operation", name),
					slog.Int("attempt", attempt),
				)
			}
			return result
		}

		if !isTransient(result.Code(), result.Message()) {
			return result
		}

		last = result
		if attempt == policy.MaxRetries {
			break
		}

		logger.Warn("transient failure, backing off",
			slog.String("operation", name),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", result.Message()),
		)
		sleep(delay)

		base *= 2
		if base > policy.MaxDelay {
			base = policy.MaxDelay
		}
		delay = applyJitter(base)
	}

	return appcore.Failure[T](appcore.CodeRetryExhausted,
		fmt.Sprintf("%s: retries exhausted: %s", name, last.Message()))
}

// runGuarded invokes op, converting a panic into a failure so the
// classification below applies uniformly.
func runGuarded[T any](op func() appcore.Result[T]) (result appcore.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = appcore.Failure[T](appcore.CodeInternal, fmt.Sprintf("panic: %v", r))
		}
	}()
	return op()
}

// isTransient classifies a failure. Terminal codes are never retryable;
// unknown failures default to non-retryable to avoid masking them as
// transient.
func isTransient(code appcore.Code, message string) bool {
	if _, terminal := terminalCodes[code]; terminal {
		return false
	}

	haystack := strings.ToLower(string(code)) + " " + strings.ToLower(message)
	for _, pattern := range transientPatterns {
		if strings.Contains(haystack, pattern) {
			return true
		}
	}
	return false
}

// applyJitter perturbs d by up to ±25% to avoid synchronized retry storms
// across concurrent callers.
func applyJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	spread := float64(d) * jitterFraction
	offset := (rand.Float64()*2 - 1) * spread
	return time.Duration(float64(d) + offset)
}
