package api

import "sync"

// Handler registry variables store the registered implementations.
// These variables are protected by handlerMutex for thread-safe access.
var (
	orchestratorHandler OrchestratorHandler

	handlerMutex sync.RWMutex
)

// RegisterOrchestrator registers the orchestrator handler implementation.
// Only one handler can be registered at a time; subsequent registrations
// replace the previous one. Thread-safe.
func RegisterOrchestrator(h OrchestratorHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	orchestratorHandler = h
}

// GetOrchestrator returns the registered orchestrator handler, or nil if
// none has been registered yet.
func GetOrchestrator() OrchestratorHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return orchestratorHandler
}
