package orchestrator

import (
	"context"
	"time"

	"gravity/internal/api"
	"gravity/pkg/logging"
)

// Rollback tears the run down in reverse topological order: dependents are
// unwound before the services they depend on. For each service that got past
// Pending it stops the runtime process (if one was started) and drops every
// store provisioning created, then marks the service RolledBack. Teardown is
// best-effort throughout; individual stop or drop errors are logged and the
// rollback keeps going.
func (o *Orchestrator) Rollback(ctx context.Context) (*api.ExecutionReport, error) {
	logging.Info("Orchestrator", "Rolling back run %s", o.runID)
	start := time.Now()

	for i := len(o.plan.Order) - 1; i >= 0; i-- {
		name := o.plan.Order[i]
		state, _ := o.table.Get(name)

		switch state.State() {
		case api.StatePending, api.StateRolledBack:
			// Never provisioned anything, or already unwound.
			continue
		}

		if handle, ok := state.Handle(); ok {
			if err := o.runtime.StopService(ctx, handle); err != nil {
				logging.Error("Orchestrator", err, "Failed to stop service %s during rollback", name)
			}
		}
		o.coordinator.Teardown(ctx, name)

		state.UpdateState(api.StateRolledBack, "", nil)
		logging.Info("Orchestrator", "Service %s rolled back", name)
	}

	// The report keeps the run's outcome; only the per-service records show
	// RolledBack. A rollback before any run has nothing past Pending.
	o.mu.RLock()
	outcome := o.outcome
	o.mu.RUnlock()
	if outcome == "" {
		outcome = api.OutcomePartialFailure
	}

	return o.buildReport(start, outcome), nil
}
