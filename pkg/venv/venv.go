// pkg/venv/venv.go
package venv

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/blip-analyzer/envboot/pkg/core"
	"github.com/blip-analyzer/envboot/pkg/python"
)

// Env is a handle to a virtual environment on disk.
type Env struct {
	Root    string // Absolute or invocation-relative environment root
	Created bool   // Whether this run created the environment (false = reused)
}

// Python returns the path of the environment's own interpreter.
func (e *Env) Python() string {
	return pythonPath(e.Root)
}

func pythonPath(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "Scripts", "python.exe")
	}
	return filepath.Join(root, "bin", "python")
}

// Valid reports whether root holds a structurally complete virtual
// environment. Directory existence alone is not enough: an interrupted
// creation leaves a directory without pyvenv.cfg or the interpreter, and
// treating that as valid would poison every later run.
func Valid(root string) bool {
	if _, err := os.Stat(filepath.Join(root, "pyvenv.cfg")); err != nil {
		return false
	}
	if _, err := os.Stat(pythonPath(root)); err != nil {
		return false
	}
	return true
}

// Provisioner creates virtual environments idempotently.
type Provisioner struct {
	runner core.Runner
	logger *log.Logger
}

// NewProvisioner creates a Provisioner.
func NewProvisioner(runner core.Runner, debug bool) *Provisioner {
	logger := log.New(io.Discard, "", 0)
	if debug {
		logger = log.New(os.Stdout, "[VENV] ", log.LstdFlags)
	}
	return &Provisioner{runner: runner, logger: logger}
}

// Ensure returns a handle to a valid environment at root, creating one with
// the given interpreter if needed. A structurally valid environment is reused
// without any external invocation; a leftover partial directory is removed and
// recreated.
func (p *Provisioner) Ensure(ctx context.Context, interp *python.Interpreter, root string) (*Env, error) {
	if Valid(root) {
		p.logger.Printf("Reusing existing environment at %s", root)
		return &Env{Root: root, Created: false}, nil
	}

	if _, err := os.Stat(root); err == nil {
		p.logger.Printf("Removing incomplete environment at %s", root)
		if err := os.RemoveAll(root); err != nil {
			return nil, &core.Error{Op: "removing incomplete environment", Err: err}
		}
	}

	p.logger.Printf("Creating environment at %s with %s", root, interp.Path)
	out, code, err := p.runner.Run(ctx, interp.Path, "-m", "venv", root)
	if err != nil {
		return nil, &core.Error{Op: "creating environment", Err: fmt.Errorf("%w: %v", core.ErrProvision, err)}
	}
	if code != 0 {
		return nil, &core.Error{
			Op:  "creating environment",
			Err: fmt.Errorf("%w: venv exited with status %d: %s", core.ErrProvision, code, strings.TrimSpace(string(out))),
		}
	}

	if !Valid(root) {
		return nil, &core.Error{
			Op:  "creating environment",
			Err: fmt.Errorf("%w: venv reported success but %s is not a valid environment", core.ErrProvision, root),
		}
	}

	p.logger.Printf("Environment ready at %s", root)
	return &Env{Root: root, Created: true}, nil
}
