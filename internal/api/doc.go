// Package api defines the shared types and the service locator that decouple
// gravity's packages from one another.
//
// State enums, status snapshots and the execution report live here so that
// the orchestrator, formatting and CLI layers agree on one vocabulary
// without importing each other. Implementations register themselves via
// RegisterOrchestrator during bootstrap; callers retrieve them through
// GetOrchestrator.
package api
