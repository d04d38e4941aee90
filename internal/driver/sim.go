package driver

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"gravity/internal/api"
	"gravity/internal/catalog"
	"gravity/internal/services"
	"gravity/pkg/logging"
)

const simSubsystem = "Sim"

// SimDriver is an in-process driver that creates nothing: stores and services
// exist only as bookkeeping entries and every probe reports healthy. It is
// used for dry runs and for exercising orchestration logic without a
// container runtime.
type SimDriver struct {
	mu      sync.Mutex
	stores  map[string]services.ConnectionDescriptor
	handles map[string]string // handle ID -> service name
}

// NewSimDriver creates an empty simulated driver.
func NewSimDriver() *SimDriver {
	return &SimDriver{
		stores:  make(map[string]services.ConnectionDescriptor),
		handles: make(map[string]string),
	}
}

// CreateStore registers the store and fabricates a DSN for it.
func (s *SimDriver) CreateStore(_ context.Context, kind catalog.StoreKind, name string, _ map[string]string) (services.ConnectionDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn := services.ConnectionDescriptor{
		StoreName: name,
		StoreKind: kind,
		DSN:       fmt.Sprintf("%s://sim/%s", kind, name),
	}
	s.stores[name] = conn
	logging.Debug(simSubsystem, "Simulated %s store %s", kind, name)
	return conn, nil
}

// DropStore forgets the store.
func (s *SimDriver) DropStore(_ context.Context, descriptor services.ConnectionDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, descriptor.StoreName)
	return nil
}

// StartService registers a handle for the service.
func (s *SimDriver) StartService(_ context.Context, descriptor catalog.ServiceDescriptor, _ services.ConnectionSet) (services.RuntimeHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.handles[id] = descriptor.Name
	logging.Debug(simSubsystem, "Simulated start of %s@%s", descriptor.Name, descriptor.Version)
	return services.RuntimeHandle{ID: id}, nil
}

// StopService forgets the handle.
func (s *SimDriver) StopService(_ context.Context, handle services.RuntimeHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, handle.ID)
	return nil
}

// ServiceStatuses reports every simulated service still holding a handle as
// ready.
func (s *SimDriver) ServiceStatuses(_ context.Context) ([]api.ServiceStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]api.ServiceStatus, 0, len(s.handles))
	for _, name := range s.handles {
		statuses = append(statuses, api.ServiceStatus{Name: name, State: api.StateReady})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses, nil
}

// Probe reports healthy for every known handle.
func (s *SimDriver) Probe(_ context.Context, handle services.RuntimeHandle) (services.ProbeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handles[handle.ID]; !ok {
		return services.ProbeUnhealthy, &api.NotFoundError{ResourceType: "handle", ResourceName: handle.ID}
	}
	return services.ProbeHealthy, nil
}
