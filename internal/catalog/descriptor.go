package catalog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// StoreKind identifies the kind of data store a service declares.
type StoreKind string

const (
	StorePostgres StoreKind = "postgresql"
	StoreMySQL    StoreKind = "mysql"
	StoreMongoDB  StoreKind = "mongodb"
	StoreRedis    StoreKind = "redis"
)

// Requirement declares a dependency on another service, constrained to a
// semantic version range (e.g. ">=1.0.0", "^2.1", "~1.4.2").
type Requirement struct {
	Name  string `yaml:"name"`
	Range string `yaml:"range,omitempty"`

	// Optional requirements that cannot be satisfied are skipped with a
	// warning instead of failing graph construction.
	Optional bool `yaml:"optional,omitempty"`
}

// DataRequirement declares a data store the service needs before it can
// start. It is purely declarative; connection information is produced by the
// database backend during provisioning.
type DataRequirement struct {
	StoreName string            `yaml:"storeName"`
	StoreKind StoreKind         `yaml:"storeKind"`
	Options   map[string]string `yaml:"options,omitempty"`
}

// ServiceDescriptor describes one service: identity, declared version,
// dependencies and data store requirements. Descriptors are produced by the
// discovery collaborator and are immutable once constructed.
type ServiceDescriptor struct {
	Name             string            `yaml:"name"`
	Version          string            `yaml:"version"`
	Requires         []Requirement     `yaml:"requires,omitempty"`
	DataRequirements []DataRequirement `yaml:"dataRequirements,omitempty"`
}

// Validate checks a descriptor set for structural problems before any graph
// is built: empty or duplicate names, unparsable versions, self-references.
// Structural errors are always fatal and never retried.
func Validate(descriptors []ServiceDescriptor) error {
	seen := make(map[string]bool, len(descriptors))

	for _, d := range descriptors {
		if d.Name == "" {
			return fmt.Errorf("service descriptor has empty name")
		}
		if seen[d.Name] {
			return &DuplicateServiceError{Name: d.Name}
		}
		seen[d.Name] = true

		if _, err := semver.NewVersion(d.Version); err != nil {
			return fmt.Errorf("service %s declares invalid version %q: %w", d.Name, d.Version, err)
		}

		for _, req := range d.Requires {
			if req.Name == d.Name {
				return &SelfDependencyError{Name: d.Name}
			}
			if req.Range != "" {
				if _, err := semver.NewConstraint(req.Range); err != nil {
					return fmt.Errorf("service %s declares invalid range %q for dependency %s: %w",
						d.Name, req.Range, req.Name, err)
				}
			}
		}
	}

	return nil
}
