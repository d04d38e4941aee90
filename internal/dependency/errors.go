package dependency

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownServiceError indicates an edge targets a name with no descriptor.
// There are no implicit external services; every requirement must resolve to
// a known node.
type UnknownServiceError struct {
	Requirer string
	Name     string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service: %s requires %s, but no descriptor with that name exists", e.Requirer, e.Name)
}

// IsUnknownService checks if an error is an UnknownServiceError.
func IsUnknownService(err error) bool {
	var unknown *UnknownServiceError
	return errors.As(err, &unknown)
}

// CircularDependencyError reports a dependency cycle. Path is the full cycle,
// starting and ending at the same service (e.g. [A B C A]).
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Path, " -> "))
}

// IsCircularDependency checks if an error is a CircularDependencyError.
func IsCircularDependency(err error) bool {
	var circ *CircularDependencyError
	return errors.As(err, &circ)
}
