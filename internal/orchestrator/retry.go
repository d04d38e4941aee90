package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"gravity/internal/api"
	"gravity/internal/services"
	"gravity/pkg/logging"
)

// attemptPhase executes one lifecycle phase with bounded retries and
// exponential backoff. Every attempt runs under its own timeout; exceeding
// it counts as a phase failure and consumes one attempt. Retries re-enter
// the same phase, never an earlier one.
//
// Cancellation of the run context is distinct from failure: it aborts the
// phase immediately with a Cancelled error and is not weighed against the
// retry budget.
func (o *Orchestrator) attemptPhase(ctx context.Context, state *services.RuntimeState, phase api.Phase, timeout time.Duration, fn func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.cfg.InitialBackoff.Duration()
	b.MaxInterval = o.cfg.MaxBackoff.Duration()
	if o.cfg.BackoffMultiplier > 0 {
		b.Multiplier = o.cfg.BackoffMultiplier
	}
	if phase == api.PhaseHealthCheck && o.cfg.HealthInterval.Duration() > b.InitialInterval {
		// Health probes are never fired more often than the configured
		// probe interval.
		b.InitialInterval = o.cfg.HealthInterval.Duration()
	}

	maxAttempts := o.cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	for {
		if ctx.Err() != nil {
			return fmt.Errorf("%s phase: %w", phase, api.ErrCancelled)
		}

		attempt := state.RecordAttempt(phase)

		phaseCtx := ctx
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			phaseCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		err := fn(phaseCtx)
		cancel()

		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s phase: %w", phase, api.ErrCancelled)
		}

		if attempt >= maxAttempts {
			return fmt.Errorf("%s phase failed after %d attempt(s): %w", phase, attempt, err)
		}

		wait := b.NextBackOff()
		logging.Warn("Orchestrator", "Service %s %s attempt %d/%d failed, retrying in %s: %v",
			state.Name(), phase, attempt, maxAttempts, wait, err)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("%s phase: %w", phase, api.ErrCancelled)
		}
	}
}
