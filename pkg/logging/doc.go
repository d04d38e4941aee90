// Package logging provides a structured logging system for gravity with
// unified log handling and level filtering.
//
// The package is built on Go's standard slog package. Every log entry
// carries a subsystem identifier (e.g. "Orchestrator", "Resolver",
// "Provision") so that output can be filtered and categorised.
//
// Usage:
//
//	import "gravity/pkg/logging"
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("Orchestrator", "Service dependency not available")
//	logging.Error("Provision", err, "Failed to create store %s", name)
//
// Level filtering happens at the handler, so there is no allocation for
// filtered-out messages. The package is safe for concurrent use.
package logging
