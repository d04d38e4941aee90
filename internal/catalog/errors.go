package catalog

import (
	"errors"
	"fmt"
)

// DuplicateServiceError indicates two descriptors share the same name.
type DuplicateServiceError struct {
	Name string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("duplicate service descriptor: %s", e.Name)
}

// IsDuplicateService checks if an error is a DuplicateServiceError.
func IsDuplicateService(err error) bool {
	var dup *DuplicateServiceError
	return errors.As(err, &dup)
}

// SelfDependencyError indicates a descriptor requires itself.
type SelfDependencyError struct {
	Name string
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("service %s depends on itself", e.Name)
}

// IsSelfDependency checks if an error is a SelfDependencyError.
func IsSelfDependency(err error) bool {
	var self *SelfDependencyError
	return errors.As(err, &self)
}
