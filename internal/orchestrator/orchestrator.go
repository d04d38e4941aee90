package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gravity/internal/api"
	"gravity/internal/catalog"
	"gravity/internal/config"
	"gravity/internal/provision"
	"gravity/internal/resolver"
	"gravity/internal/services"
	"gravity/pkg/logging"
)

// Config holds everything one orchestration run needs: the resolved plan,
// the descriptors it was resolved from, the external collaborators and the
// lifecycle tunables.
type Config struct {
	Plan        *resolver.Plan
	Descriptors []catalog.ServiceDescriptor

	Backend services.DatabaseBackend
	Runtime services.Runtime
	Probe   services.HealthProbe

	Orchestrator config.OrchestratorConfig
}

// Orchestrator drives every service of a resolved plan through its start-up
// lifecycle. One goroutine per service; services on independent branches of
// the dependency graph run concurrently, while a service leaves Pending only
// once every service it requires is Ready.
type Orchestrator struct {
	runID       string
	plan        *resolver.Plan
	descriptors map[string]catalog.ServiceDescriptor

	coordinator *provision.Coordinator
	runtime     services.Runtime
	probe       services.HealthProbe
	cfg         config.OrchestratorConfig

	table *services.StateTable

	// done is closed per service when its lifecycle task exits, whether it
	// ended Ready, Failed or still Pending (blocked). Dependents wait on it.
	done map[string]chan struct{}

	mu          sync.RWMutex
	started     bool
	outcome     api.RunOutcome
	subscribers []chan api.ServiceStateChangedEvent
}

var _ api.OrchestratorHandler = (*Orchestrator)(nil)

// New creates an orchestrator for one run of the given plan.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Plan == nil {
		return nil, fmt.Errorf("orchestrator requires a resolved plan")
	}
	if cfg.Backend == nil || cfg.Runtime == nil || cfg.Probe == nil {
		return nil, fmt.Errorf("orchestrator requires backend, runtime and probe collaborators")
	}

	descriptors := make(map[string]catalog.ServiceDescriptor, len(cfg.Descriptors))
	for _, d := range cfg.Descriptors {
		descriptors[d.Name] = d
	}

	o := &Orchestrator{
		runID:       uuid.NewString(),
		plan:        cfg.Plan,
		descriptors: descriptors,
		coordinator: provision.NewCoordinator(cfg.Backend),
		runtime:     cfg.Runtime,
		probe:       cfg.Probe,
		cfg:         cfg.Orchestrator,
		table:       services.NewStateTable(),
		done:        make(map[string]chan struct{}, len(cfg.Plan.Order)),
	}

	for _, name := range cfg.Plan.Order {
		if _, ok := descriptors[name]; !ok {
			return nil, api.NewServiceNotFoundError(name)
		}
		state := services.NewRuntimeState(name)
		state.SetStateChangeCallback(o.publishStateChangeEvent)
		if err := o.table.Add(state); err != nil {
			return nil, err
		}
		o.done[name] = make(chan struct{})
	}

	return o, nil
}

// RunID returns the unique identifier of this run.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Run drives all services to a terminal (or blocked) state and returns the
// aggregate report. A failed service blocks only its transitive dependents;
// unrelated services still become Ready. Run is cancellable through ctx:
// waiting services stay Pending, mid-phase services fail with a Cancelled
// error, Ready services are left as-is.
func (o *Orchestrator) Run(ctx context.Context) (*api.ExecutionReport, error) {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return nil, fmt.Errorf("run %s already executed", o.runID)
	}
	o.started = true
	o.mu.Unlock()

	logging.Info("Orchestrator", "Starting run %s with %d service(s)", o.runID, len(o.plan.Order))
	start := time.Now()

	var group errgroup.Group
	for _, name := range o.plan.Order {
		group.Go(func() error {
			o.runService(ctx, name)
			return nil
		})
	}
	// Lifecycle tasks never return errors; failures are folded into each
	// service's runtime state.
	_ = group.Wait()

	outcome := o.computeOutcome(ctx)
	o.mu.Lock()
	o.outcome = outcome
	o.mu.Unlock()

	report := o.buildReport(start, outcome)
	logging.Info("Orchestrator", "Run %s finished: %s in %s", o.runID, report.Outcome, report.Elapsed)
	return report, nil
}

// runService is the lifecycle task for a single service. Only this goroutine
// mutates the service's runtime state.
func (o *Orchestrator) runService(ctx context.Context, name string) {
	defer close(o.done[name])

	state, _ := o.table.Get(name)
	descriptor := o.descriptors[name]

	if !o.waitForDependencies(ctx, name, state) {
		return // still Pending: blocked or cancelled while waiting
	}

	// Provisioning
	state.UpdateState(api.StateProvisioning, api.PhaseProvision, nil)
	var connections services.ConnectionSet
	err := o.attemptPhase(ctx, state, api.PhaseProvision, o.cfg.ProvisionTimeout.Duration(), func(phaseCtx context.Context) error {
		var provErr error
		connections, provErr = o.coordinator.Provision(phaseCtx, descriptor)
		return provErr
	})
	if err != nil {
		state.UpdateState(api.StateFailed, api.PhaseProvision, err)
		logging.Error("Orchestrator", err, "Service %s failed during provisioning", name)
		return
	}
	state.SetConnections(connections)

	// Starting
	state.UpdateState(api.StateStarting, api.PhaseStart, nil)
	var handle services.RuntimeHandle
	err = o.attemptPhase(ctx, state, api.PhaseStart, o.cfg.StartTimeout.Duration(), func(phaseCtx context.Context) error {
		var startErr error
		handle, startErr = o.runtime.StartService(phaseCtx, descriptor, connections)
		return startErr
	})
	if err != nil {
		state.UpdateState(api.StateFailed, api.PhaseStart, err)
		logging.Error("Orchestrator", err, "Service %s failed to start", name)
		return
	}
	state.SetHandle(handle)

	// HealthChecking
	state.UpdateState(api.StateHealthChecking, api.PhaseHealthCheck, nil)
	err = o.attemptPhase(ctx, state, api.PhaseHealthCheck, o.cfg.HealthTimeout.Duration(), func(phaseCtx context.Context) error {
		result, probeErr := o.probe.Probe(phaseCtx, handle)
		if probeErr != nil {
			return probeErr
		}
		if result != services.ProbeHealthy {
			return fmt.Errorf("service %s reported unhealthy", name)
		}
		return nil
	})
	if err != nil {
		state.UpdateState(api.StateFailed, api.PhaseHealthCheck, err)
		logging.Error("Orchestrator", err, "Service %s failed health checking", name)
		return
	}

	state.UpdateState(api.StateReady, api.PhaseHealthCheck, nil)
	logging.Info("Orchestrator", "Service %s is ready", name)
}

// waitForDependencies blocks until every required service is Ready. It
// returns false if the service must stay Pending: either a dependency ended
// in a non-Ready state (the service is blocked, not failed) or the run was
// cancelled while waiting.
func (o *Orchestrator) waitForDependencies(ctx context.Context, name string, state *services.RuntimeState) bool {
	for _, dep := range o.plan.Graph().Dependencies(name) {
		select {
		case <-o.done[dep]:
		case <-ctx.Done():
			logging.Debug("Orchestrator", "Service %s cancelled while waiting for %s", name, dep)
			return false
		}

		depState, _ := o.table.Get(dep)
		if depState.State() != api.StateReady {
			blockErr := fmt.Errorf("blocked: dependency %s is %s", dep, depState.State())
			// Same-state update: records the blocking reason without a
			// forward transition.
			state.UpdateState(api.StatePending, "", blockErr)
			logging.Warn("Orchestrator", "Service %s stays pending: %v", name, blockErr)
			return false
		}
	}
	return true
}

// computeOutcome folds the per-service terminal states into the run-level
// outcome.
func (o *Orchestrator) computeOutcome(ctx context.Context) api.RunOutcome {
	allReady := true
	for _, name := range o.plan.Order {
		state, _ := o.table.Get(name)
		if state.State() != api.StateReady {
			allReady = false
			break
		}
	}

	switch {
	case allReady:
		return api.OutcomeAllReady
	case ctx.Err() != nil:
		return api.OutcomeAbortedByUser
	default:
		return api.OutcomePartialFailure
	}
}

func (o *Orchestrator) buildReport(start time.Time, outcome api.RunOutcome) *api.ExecutionReport {
	report := &api.ExecutionReport{
		RunID:    o.runID,
		Outcome:  outcome,
		Elapsed:  time.Since(start),
		Services: make([]api.ServiceRecord, 0, len(o.plan.Order)),
	}
	for _, name := range o.plan.Order {
		state, _ := o.table.Get(name)
		report.Services = append(report.Services, state.Record())
	}
	return report
}

// Status returns a snapshot of every service's runtime state. Snapshots take
// per-service read locks only, so one slow service cannot stall queries for
// others.
func (o *Orchestrator) Status() []api.ServiceStatus {
	return o.table.Snapshot()
}

// Subscribe returns a channel for state change events. Events are delivered
// best-effort: a subscriber that cannot keep up misses events instead of
// blocking lifecycle tasks.
func (o *Orchestrator) Subscribe() <-chan api.ServiceStateChangedEvent {
	eventChan := make(chan api.ServiceStateChangedEvent, 100)
	o.mu.Lock()
	o.subscribers = append(o.subscribers, eventChan)
	o.mu.Unlock()
	return eventChan
}

// publishStateChangeEvent publishes a state change event to all subscribers.
func (o *Orchestrator) publishStateChangeEvent(name string, oldState, newState api.ServiceState, phase api.Phase, err error) {
	logging.Debug("Orchestrator", "Service %s state changed: %s -> %s", name, oldState, newState)

	event := api.ServiceStateChangedEvent{
		Name:      name,
		OldState:  oldState,
		NewState:  newState,
		Phase:     phase,
		Timestamp: time.Now(),
	}
	if err != nil {
		event.Error = err.Error()
	}

	o.mu.RLock()
	subscribers := make([]chan api.ServiceStateChangedEvent, len(o.subscribers))
	copy(subscribers, o.subscribers)
	o.mu.RUnlock()

	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Don't block if subscriber can't receive immediately
			logging.Debug("Orchestrator", "Subscriber blocked, skipping event for service %s", name)
		}
	}
}
