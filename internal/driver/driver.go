package driver

import (
	"context"
	"fmt"
	"strings"

	"gravity/internal/api"
	"gravity/internal/services"
)

// Kind selects the collaborator implementation backing an orchestration run.
type Kind string

const (
	KindDocker Kind = "docker"
	KindSim    Kind = "sim"
)

// StatusReporter reports the lifecycle state of gravity-managed services
// visible to the driver. Unlike the orchestrator's in-memory status this
// works across process boundaries, e.g. for a status query after 'up' has
// exited.
type StatusReporter interface {
	ServiceStatuses(ctx context.Context) ([]api.ServiceStatus, error)
}

// Set bundles the external collaborators the orchestrator needs plus the
// driver's own status reporting.
type Set struct {
	Backend services.DatabaseBackend
	Runtime services.Runtime
	Probe   services.HealthProbe
	Status  StatusReporter
}

// New creates the collaborator set for the given driver kind.
func New(kind string) (Set, error) {
	switch Kind(strings.ToLower(kind)) {
	case KindDocker, "":
		// Default to Docker if not specified
		d, err := NewDockerDriver()
		if err != nil {
			return Set{}, err
		}
		return Set{Backend: d, Runtime: d, Probe: d, Status: d}, nil
	case KindSim:
		s := NewSimDriver()
		return Set{Backend: s, Runtime: s, Probe: s, Status: s}, nil
	default:
		return Set{}, fmt.Errorf("unsupported driver: %s", kind)
	}
}
