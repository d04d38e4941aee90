package config

// GravityConfig is the top-level configuration structure for gravity.
type GravityConfig struct {
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
}

// OrchestratorConfig holds the lifecycle tunables. Retry and backoff
// parameters are deliberately configuration, never hard-coded at call sites.
type OrchestratorConfig struct {
	// MaxAttempts caps attempts per lifecycle phase (default: 3).
	MaxAttempts int `yaml:"maxAttempts,omitempty"`

	// InitialBackoff is the first retry delay; subsequent delays grow by
	// BackoffMultiplier up to MaxBackoff.
	InitialBackoff    Duration `yaml:"initialBackoff,omitempty"`
	MaxBackoff        Duration `yaml:"maxBackoff,omitempty"`
	BackoffMultiplier float64  `yaml:"backoffMultiplier,omitempty"`

	// Per-phase timeouts. Exceeding a phase timeout counts as a phase
	// failure and consumes one retry attempt.
	ProvisionTimeout Duration `yaml:"provisionTimeout,omitempty"`
	StartTimeout     Duration `yaml:"startTimeout,omitempty"`
	HealthTimeout    Duration `yaml:"healthTimeout,omitempty"`

	// HealthInterval is the pause between consecutive health probes.
	HealthInterval Duration `yaml:"healthInterval,omitempty"`
}
