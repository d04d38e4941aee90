// Package orchestrator drives resolved service plans through their start-up
// lifecycle.
//
// An Orchestrator is built for exactly one run of one resolved plan. Run
// launches a lifecycle task per service; tasks on independent branches of the
// dependency graph proceed concurrently, while a task whose service has
// dependencies blocks until every one of them is Ready. Each task walks the
// fixed phase sequence
//
//	Pending -> Provisioning -> Starting -> HealthChecking -> Ready
//
// with bounded per-phase retries and exponential backoff. A phase that
// exhausts its retry budget moves the service to Failed, which blocks the
// service's transitive dependents (they stay Pending) but leaves unrelated
// services untouched.
//
// Rollback unwinds a finished run in reverse topological order, stopping
// started processes and dropping provisioned stores best-effort.
//
// State changes are observable two ways: Status returns point-in-time
// snapshots, and Subscribe delivers ServiceStateChangedEvents on a buffered
// channel. Event delivery never blocks a lifecycle task; slow subscribers
// miss events.
package orchestrator
