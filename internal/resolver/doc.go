// Package resolver checks every inter-service version constraint against the
// declared versions and produces the execution plan consumed by the
// orchestrator.
//
// Resolution is pure and synchronous. Conflicts are reported with the
// offending service, its version and every unsatisfied (requirer, range)
// pair, so the caller can explain the failure without further digging.
package resolver
