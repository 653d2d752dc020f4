// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInterpreterNotFound indicates no usable Python interpreter was found
	ErrInterpreterNotFound = errors.New("python interpreter not found")

	// ErrProvision indicates the virtual environment could not be created
	ErrProvision = errors.New("virtual environment creation failed")

	// ErrInstall indicates the package installer reported a failure
	ErrInstall = errors.New("package installation failed")

	// ErrFallback indicates the alternate-source install attempt failed
	ErrFallback = errors.New("fallback installation failed")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
