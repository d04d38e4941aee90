package provision

import (
	"context"
	"fmt"
	"sync"

	"gravity/internal/catalog"
	"gravity/internal/services"
	"gravity/pkg/logging"
)

// Coordinator turns a service's declared data requirements into created
// stores. Actual resource creation is delegated to the database backend
// collaborator; the coordinator's own job is ordering the declarations,
// de-duplicating identical store requests, remembering what already exists
// so retries are idempotent, and aggregating connection descriptors.
type Coordinator struct {
	backend services.DatabaseBackend

	mu      sync.Mutex
	created map[string][]services.ConnectionDescriptor // service -> stores in creation order
}

// NewCoordinator creates a coordinator on top of the given backend.
func NewCoordinator(backend services.DatabaseBackend) *Coordinator {
	return &Coordinator{
		backend: backend,
		created: make(map[string][]services.ConnectionDescriptor),
	}
}

// Provision creates every declared store of the descriptor and returns the
// aggregated connection set keyed by store name. Stores created by an
// earlier (partially failed) call are never created twice. On failure the
// returned ProvisionError reports which stores exist and which one failed.
func (c *Coordinator) Provision(ctx context.Context, descriptor catalog.ServiceDescriptor) (services.ConnectionSet, error) {
	requirements, err := dedupe(descriptor)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	existing := make(map[string]bool, len(c.created[descriptor.Name]))
	for _, conn := range c.created[descriptor.Name] {
		existing[conn.StoreName] = true
	}
	c.mu.Unlock()

	for _, req := range requirements {
		if existing[req.StoreName] {
			logging.Debug("Provision", "Store %s for %s already created, skipping", req.StoreName, descriptor.Name)
			continue
		}

		conn, err := c.backend.CreateStore(ctx, req.StoreKind, req.StoreName, req.Options)
		if err != nil {
			return nil, &ProvisionError{
				Service:     descriptor.Name,
				Created:     c.CreatedStores(descriptor.Name),
				FailedStore: req.StoreName,
				Err:         err,
			}
		}

		c.mu.Lock()
		c.created[descriptor.Name] = append(c.created[descriptor.Name], conn)
		c.mu.Unlock()
		logging.Info("Provision", "Created %s store %s for %s", req.StoreKind, req.StoreName, descriptor.Name)
	}

	return c.connections(descriptor.Name), nil
}

// Teardown drops every store created for the service, in reverse creation
// order. Teardown is best-effort: individual drop errors are logged, never
// propagated, and the record is cleared regardless.
func (c *Coordinator) Teardown(ctx context.Context, name string) {
	c.mu.Lock()
	conns := c.created[name]
	delete(c.created, name)
	c.mu.Unlock()

	for i := len(conns) - 1; i >= 0; i-- {
		if err := c.backend.DropStore(ctx, conns[i]); err != nil {
			logging.Error("Provision", err, "Failed to drop store %s for %s", conns[i].StoreName, name)
			continue
		}
		logging.Info("Provision", "Dropped store %s for %s", conns[i].StoreName, name)
	}
}

// CreatedStores returns the names of stores already created for a service,
// in creation order.
func (c *Coordinator) CreatedStores(name string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.created[name]))
	for _, conn := range c.created[name] {
		names = append(names, conn.StoreName)
	}
	return names
}

func (c *Coordinator) connections(name string) services.ConnectionSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := make(services.ConnectionSet, len(c.created[name]))
	for _, conn := range c.created[name] {
		set[conn.StoreName] = conn
	}
	return set
}

// dedupe collapses identical store declarations and rejects conflicting ones
// (same store name, different kind).
func dedupe(descriptor catalog.ServiceDescriptor) ([]catalog.DataRequirement, error) {
	seen := make(map[string]catalog.StoreKind, len(descriptor.DataRequirements))
	out := make([]catalog.DataRequirement, 0, len(descriptor.DataRequirements))

	for _, req := range descriptor.DataRequirements {
		if kind, ok := seen[req.StoreName]; ok {
			if kind != req.StoreKind {
				return nil, fmt.Errorf("service %s declares store %s with conflicting kinds %s and %s",
					descriptor.Name, req.StoreName, kind, req.StoreKind)
			}
			continue
		}
		seen[req.StoreName] = req.StoreKind
		out = append(out, req)
	}
	return out, nil
}
