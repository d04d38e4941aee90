package config

import "time"

// GetDefaultConfig returns the default configuration for gravity.
func GetDefaultConfig() GravityConfig {
	return GravityConfig{
		Orchestrator: OrchestratorConfig{
			MaxAttempts:       3,
			InitialBackoff:    Duration(200 * time.Millisecond),
			MaxBackoff:        Duration(5 * time.Second),
			BackoffMultiplier: 2.0,
			ProvisionTimeout:  Duration(30 * time.Second),
			StartTimeout:      Duration(30 * time.Second),
			HealthTimeout:     Duration(10 * time.Second),
			HealthInterval:    Duration(time.Second),
		},
	}
}
