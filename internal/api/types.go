package api

import (
	"context"
	"time"
)

// ServiceState represents where a service is in its start-up lifecycle.
type ServiceState string

const (
	StatePending        ServiceState = "pending"
	StateProvisioning   ServiceState = "provisioning"
	StateStarting       ServiceState = "starting"
	StateHealthChecking ServiceState = "healthchecking"
	StateReady          ServiceState = "ready"
	StateFailed         ServiceState = "failed"
	StateRolledBack     ServiceState = "rolledback"
)

// IsTerminal reports whether no further forward transition is possible.
func (s ServiceState) IsTerminal() bool {
	switch s {
	case StateReady, StateFailed, StateRolledBack:
		return true
	default:
		return false
	}
}

// Phase identifies the lifecycle phase an operation (or failure) belongs to.
type Phase string

const (
	PhaseProvision   Phase = "provision"
	PhaseStart       Phase = "start"
	PhaseHealthCheck Phase = "healthcheck"
)

// RunOutcome is the aggregate result of one orchestration run.
type RunOutcome string

const (
	OutcomeAllReady       RunOutcome = "AllReady"
	OutcomePartialFailure RunOutcome = "PartialFailure"
	OutcomeAbortedByUser  RunOutcome = "AbortedByUser"
)

// ServiceStatus is a point-in-time snapshot of one service's runtime state.
type ServiceStatus struct {
	Name     string       `json:"name" yaml:"name"`
	State    ServiceState `json:"state" yaml:"state"`
	Phase    Phase        `json:"phase,omitempty" yaml:"phase,omitempty"`
	Attempts int          `json:"attempts" yaml:"attempts"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// ServiceStateChangedEvent is published on every state transition.
type ServiceStateChangedEvent struct {
	Name      string       `json:"name"`
	OldState  ServiceState `json:"oldState"`
	NewState  ServiceState `json:"newState"`
	Phase     Phase        `json:"phase,omitempty"`
	Error     string       `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// ServiceRecord is the flat per-service entry of an ExecutionReport.
type ServiceRecord struct {
	Name        string       `json:"name" yaml:"name"`
	FinalStatus ServiceState `json:"finalStatus" yaml:"finalStatus"`
	Phase       Phase        `json:"phase,omitempty" yaml:"phase,omitempty"`
	Attempts    int          `json:"attempts" yaml:"attempts"`
	StartedAt   *time.Time   `json:"startedAt,omitempty" yaml:"startedAt,omitempty"`
	ReadyAt     *time.Time   `json:"readyAt,omitempty" yaml:"readyAt,omitempty"`
	FailedAt    *time.Time   `json:"failedAt,omitempty" yaml:"failedAt,omitempty"`
	ErrorMsg    string       `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// ExecutionReport is the aggregate result returned to the caller after a run
// (or rollback) completes.
type ExecutionReport struct {
	RunID    string          `json:"runId" yaml:"runId"`
	Outcome  RunOutcome      `json:"outcome" yaml:"outcome"`
	Elapsed  time.Duration   `json:"elapsed" yaml:"elapsed"`
	Services []ServiceRecord `json:"services" yaml:"services"`
}

// OrchestratorHandler is implemented by the lifecycle orchestrator and
// registered with the API so callers (CLI, dashboards) never import the
// orchestrator package directly.
type OrchestratorHandler interface {
	// Run drives every service of the plan to a terminal state and returns
	// the aggregate report. Long-running and cancellable through ctx.
	Run(ctx context.Context) (*ExecutionReport, error)

	// Rollback tears down provisioned resources in reverse topological
	// order. Best-effort; teardown errors are logged, never propagated.
	Rollback(ctx context.Context) (*ExecutionReport, error)

	// Status returns a snapshot of every service's runtime state.
	Status() []ServiceStatus

	// Subscribe returns a channel of state change events for the run.
	Subscribe() <-chan ServiceStateChangedEvent
}
