package provision

import (
	"errors"
	"fmt"
	"strings"
)

// ProvisionError reports a partial provisioning failure: which stores were
// created successfully (so an idempotent retry can skip them) and which one
// failed.
type ProvisionError struct {
	Service     string
	Created     []string
	FailedStore string
	Err         error
}

func (e *ProvisionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "provisioning %s: store %s failed", e.Service, e.FailedStore)
	if len(e.Created) > 0 {
		fmt.Fprintf(&b, " (already created: %s)", strings.Join(e.Created, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// IsProvisionError checks if an error is a ProvisionError.
func IsProvisionError(err error) bool {
	var pe *ProvisionError
	return errors.As(err, &pe)
}
