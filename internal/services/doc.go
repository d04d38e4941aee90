// Package services defines the runtime state model shared by the
// orchestration engine and the interfaces of its external collaborators
// (database backend, process runtime, health probe).
//
// Runtime state is partitioned one-writer-per-service: only the goroutine
// driving a service mutates its entry, while readers take snapshot reads
// under the per-service lock. State change callbacks fire outside the lock.
package services
