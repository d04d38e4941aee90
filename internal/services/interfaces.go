package services

import (
	"context"

	"gravity/internal/api"
	"gravity/internal/catalog"
)

// ConnectionDescriptor is the opaque handle the database backend returns for
// one created store. The orchestration core never interprets the DSN.
type ConnectionDescriptor struct {
	StoreName string            `yaml:"storeName"`
	StoreKind catalog.StoreKind `yaml:"storeKind"`
	DSN       string            `yaml:"dsn"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

// ConnectionSet aggregates connection descriptors keyed by store name.
type ConnectionSet map[string]ConnectionDescriptor

// RuntimeHandle identifies a started service within the process/container
// runtime collaborator.
type RuntimeHandle struct {
	ID       string
	Metadata map[string]string
}

// ProbeResult is the outcome of a single health probe.
type ProbeResult int

const (
	ProbeHealthy ProbeResult = iota
	ProbeUnhealthy
)

// DatabaseBackend is the external collaborator that creates and drops data
// stores. Implementations must make CreateStore idempotent-friendly: calling
// it twice for the same store may create duplicates, so the provisioning
// coordinator tracks what it already created and never re-issues a call.
type DatabaseBackend interface {
	CreateStore(ctx context.Context, kind catalog.StoreKind, name string, options map[string]string) (ConnectionDescriptor, error)
	DropStore(ctx context.Context, descriptor ConnectionDescriptor) error
}

// Runtime is the external process/container runtime collaborator.
type Runtime interface {
	StartService(ctx context.Context, descriptor catalog.ServiceDescriptor, connections ConnectionSet) (RuntimeHandle, error)
	StopService(ctx context.Context, handle RuntimeHandle) error
}

// HealthProbe is the external readiness check, invoked repeatedly while a
// service is health checking.
type HealthProbe interface {
	Probe(ctx context.Context, handle RuntimeHandle) (ProbeResult, error)
}

// StateChangeCallback is called after a service's state changes. Callbacks
// run outside the state lock and must not block for long.
type StateChangeCallback func(name string, oldState, newState api.ServiceState, phase api.Phase, err error)
