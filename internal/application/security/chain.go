package security

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/application/appcore"
)

// Validator is one link of the validation chain, enforcing a single business
// or security invariant. A validator that does not apply to the given command
// returns success with no side effect.
type Validator interface {
	// Name identifies the validator in logs and audit details.
	Name() string

	// Validate checks the command against this validator's invariant.
	Validate(ctx context.Context, cmd appcore.Command) appcore.Result[appcore.Unit]
}

// Chain is an immutable, ordered sequence of validators evaluated fail-fast:
// the first failure is returned and no later validator runs. Order is a
// deliberate cost/risk ordering, cheap broad checks before store round-trips.
type Chain struct {
	links  []Validator
	logger *slog.Logger
}

// NewChain builds a chain over the given validators, in order. The slice is
// copied; the chain never changes after construction.
func NewChain(logger *slog.Logger, links ...Validator) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	copied := make([]Validator, len(links))
	copy(copied, links)

	return &Chain{links: copied, logger: logger}
}

// Validate runs the command through every link until one rejects it. The
// last link's success yields overall success.
func (c *Chain) Validate(ctx context.Context, cmd appcore.Command) appcore.Result[appcore.Unit] {
	for i, link := range c.links {
		result := link.Validate(ctx, cmd)
		if result.IsFailure() {
			c.logger.Debug("command rejected by validation chain",
				slog.String("command", cmd.CommandName()),
				slog.String("validator", link.Name()),
				slog.Int("position", i),
				slog.String("code", string(result.Code())),
			)
			return result
		}
	}
	return appcore.OK()
}

// Len returns the number of links.
func (c *Chain) Len() int {
	return len(c.links)
}
