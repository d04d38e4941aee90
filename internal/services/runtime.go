package services

import (
	"sync"
	"time"

	"gravity/internal/api"
)

// RuntimeState tracks one service through its lifecycle. It is written only
// by the goroutine driving that service; readers (status queries, reporting)
// take snapshot reads under the per-service lock, so one slow service never
// stalls queries for others.
type RuntimeState struct {
	mu   sync.RWMutex
	name string

	state     api.ServiceState
	phase     api.Phase
	attempts  map[api.Phase]int
	lastError error

	connections ConnectionSet
	handle      *RuntimeHandle

	startedAt *time.Time
	readyAt   *time.Time
	failedAt  *time.Time

	stateChangeCb StateChangeCallback
}

// NewRuntimeState creates a runtime state in Pending.
func NewRuntimeState(name string) *RuntimeState {
	return &RuntimeState{
		name:     name,
		state:    api.StatePending,
		attempts: make(map[api.Phase]int),
	}
}

// Name returns the service name.
func (r *RuntimeState) Name() string {
	return r.name
}

// State returns the current lifecycle state.
func (r *RuntimeState) State() api.ServiceState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// LastError returns the last recorded failure, if any.
func (r *RuntimeState) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastError
}

// SetStateChangeCallback sets the state change callback.
func (r *RuntimeState) SetStateChangeCallback(callback StateChangeCallback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stateChangeCb = callback
}

// RecordAttempt increments and returns the attempt counter for a phase.
func (r *RuntimeState) RecordAttempt(phase api.Phase) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[phase]++
	return r.attempts[phase]
}

// Attempts returns the attempt counter for a phase.
func (r *RuntimeState) Attempts(phase api.Phase) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attempts[phase]
}

// SetConnections stores the connection set returned by provisioning.
func (r *RuntimeState) SetConnections(connections ConnectionSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections = connections
}

// Connections returns the stored connection set.
func (r *RuntimeState) Connections() ConnectionSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connections
}

// SetHandle stores the runtime handle returned by the start call.
func (r *RuntimeState) SetHandle(handle RuntimeHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handle = &handle
}

// Handle returns the runtime handle, if the service was started.
func (r *RuntimeState) Handle() (RuntimeHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.handle == nil {
		return RuntimeHandle{}, false
	}
	return *r.handle, true
}

// UpdateState transitions the service and notifies the callback. Timestamps
// are stamped on the first entry into Starting, Ready and Failed.
func (r *RuntimeState) UpdateState(newState api.ServiceState, phase api.Phase, err error) {
	r.mu.Lock()
	oldState := r.state
	r.state = newState
	r.phase = phase
	if err != nil {
		r.lastError = err
	}

	now := time.Now()
	switch newState {
	case api.StateStarting:
		if r.startedAt == nil {
			r.startedAt = &now
		}
	case api.StateReady:
		if r.readyAt == nil {
			r.readyAt = &now
		}
	case api.StateFailed:
		if r.failedAt == nil {
			r.failedAt = &now
		}
	}

	callback := r.stateChangeCb
	r.mu.Unlock()

	// Call the callback outside of the lock to avoid deadlocks
	if callback != nil && oldState != newState {
		callback(r.name, oldState, newState, phase, err)
	}
}

// Snapshot returns a point-in-time status view.
func (r *RuntimeState) Snapshot() api.ServiceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := api.ServiceStatus{
		Name:     r.name,
		State:    r.state,
		Phase:    r.phase,
		Attempts: r.totalAttemptsLocked(),
	}
	if r.lastError != nil {
		status.Error = r.lastError.Error()
	}
	return status
}

// Record folds the final state into a flat report entry.
func (r *RuntimeState) Record() api.ServiceRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record := api.ServiceRecord{
		Name:        r.name,
		FinalStatus: r.state,
		Phase:       r.phase,
		Attempts:    r.totalAttemptsLocked(),
		StartedAt:   r.startedAt,
		ReadyAt:     r.readyAt,
		FailedAt:    r.failedAt,
	}
	if r.lastError != nil {
		record.ErrorMsg = r.lastError.Error()
	}
	return record
}

func (r *RuntimeState) totalAttemptsLocked() int {
	total := 0
	for _, n := range r.attempts {
		total += n
	}
	return total
}
