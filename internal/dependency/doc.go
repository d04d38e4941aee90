// Package dependency models the "requires" relationships between services as
// a directed constraint graph and produces a deterministic installation
// order.
//
// The graph is built once from a validated descriptor set and is immutable
// afterwards. Ordering uses a depth-first traversal with three-colour
// marking; encountering an in-progress node signals a cycle, which is
// reported with its full path so callers can render it verbatim.
package dependency
