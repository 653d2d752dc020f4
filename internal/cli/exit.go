// internal/cli/exit.go
package cli

import "fmt"

// ExitError carries a semantic process exit code out of a command. The
// diagnostic text has already been written by the time it is returned; main
// only needs the code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
