// pkg/core/runner.go
package core

import (
	"context"
	"os/exec"
)

// Runner abstracts external process invocation so that callers can be
// exercised against a fake in tests.
//
// Run treats non-zero exit codes as ordinary results, not errors. A non-nil
// error indicates an infrastructure failure (the process could not be started,
// or the context expired before it finished); in that case exitCode is -1 and
// output holds whatever the process produced before dying.
type Runner interface {
	// Run executes a command and returns its combined stdout/stderr and exit code.
	Run(ctx context.Context, name string, args ...string) (output []byte, exitCode int, err error)

	// LookPath reports the absolute path of an executable found on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner that invokes real processes.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures its combined output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()

	// A context expiry kills the process; surface it as an infrastructure
	// error rather than a tool exit code.
	if ctx.Err() != nil {
		return out, -1, ctx.Err()
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return out, exitErr.ExitCode(), nil
		}
		return out, -1, err
	}

	return out, 0, nil
}

// LookPath reports the absolute path of an executable found on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
