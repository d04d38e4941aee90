package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// UnsatisfiedRange names one requirer whose declared range the service's
// version does not satisfy.
type UnsatisfiedRange struct {
	Requirer string
	Range    string
}

// ConflictError reports that a service's declared version fails one or more
// incoming range constraints. It carries the full diagnostic context so
// callers can render it verbatim; the resolver never silently substitutes
// another version.
type ConflictError struct {
	Service     string
	Version     string
	Unsatisfied []UnsatisfiedRange
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "version conflict: %s declares version %s", e.Service, e.Version)
	for _, u := range e.Unsatisfied {
		fmt.Fprintf(&b, "; %s requires %s %s", u.Requirer, e.Service, u.Range)
	}
	return b.String()
}

// IsConflict checks if an error is a ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
