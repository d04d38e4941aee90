package services

import (
	"fmt"
	"sort"
	"sync"

	"gravity/internal/api"
)

// StateTable holds the runtime state of every service in a run. The table
// itself is guarded by a read/write lock, but each entry carries its own
// lock; there is deliberately no global lock held while reading a service's
// state.
type StateTable struct {
	mu      sync.RWMutex
	entries map[string]*RuntimeState
}

// NewStateTable creates an empty state table.
func NewStateTable() *StateTable {
	return &StateTable{entries: make(map[string]*RuntimeState)}
}

// Add registers a runtime state. Duplicate names are rejected.
func (t *StateTable) Add(state *RuntimeState) error {
	if state == nil {
		return fmt.Errorf("cannot add nil runtime state")
	}
	if state.Name() == "" {
		return fmt.Errorf("runtime state has empty name")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.entries[state.Name()]; exists {
		return fmt.Errorf("service %s already tracked", state.Name())
	}
	t.entries[state.Name()] = state
	return nil
}

// Get returns the runtime state for a service.
func (t *StateTable) Get(name string) (*RuntimeState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	state, exists := t.entries[name]
	return state, exists
}

// Names returns all tracked service names in ascending order.
func (t *StateTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a status snapshot of every service, sorted by name.
func (t *StateTable) Snapshot() []api.ServiceStatus {
	t.mu.RLock()
	entries := make([]*RuntimeState, 0, len(t.entries))
	for _, state := range t.entries {
		entries = append(entries, state)
	}
	t.mu.RUnlock()

	statuses := make([]api.ServiceStatus, 0, len(entries))
	for _, state := range entries {
		statuses = append(statuses, state.Snapshot())
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}
