package api

import (
	"errors"
	"fmt"
)

// ErrCancelled marks a failure caused by run cancellation rather than a
// genuine operational error. Cancellation is never counted against retry
// budgets.
var ErrCancelled = errors.New("cancelled")

// IsCancelled checks whether an error stems from run cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// NotFoundError represents a resource not found error with contextual
// information.
type NotFoundError struct {
	// ResourceType categorises the type of resource that was not found
	// (e.g. "service", "store", "run").
	ResourceType string

	// ResourceName is the specific identifier of the resource.
	ResourceName string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.ResourceType, e.ResourceName)
}

// IsNotFound checks if an error is a NotFoundError using error unwrapping.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// NewServiceNotFoundError creates a NotFoundError for a service.
func NewServiceNotFoundError(name string) *NotFoundError {
	return &NotFoundError{ResourceType: "service", ResourceName: name}
}
