// envboot.go
package envboot

import (
	"context"

	"github.com/blip-analyzer/envboot/pkg/bootstrap"
	"github.com/blip-analyzer/envboot/pkg/core"
	"github.com/blip-analyzer/envboot/pkg/pip"
	"github.com/blip-analyzer/envboot/pkg/python"
	"github.com/blip-analyzer/envboot/pkg/venv"
)

// Re-export core types for convenience
type (
	Config      = core.Config
	Runner      = core.Runner
	Interpreter = python.Interpreter
	Env         = venv.Env
	Manifest    = pip.Manifest
	Requirement = pip.Requirement
	Outcome     = pip.Outcome
	Result      = bootstrap.Result
	Status      = bootstrap.Status
)

// Re-export result statuses
const (
	StatusSuccess            = bootstrap.StatusSuccess
	StatusSuccessViaFallback = bootstrap.StatusSuccessViaFallback
	StatusFatal              = bootstrap.StatusFatal
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Bootstrap provisions the environment described by config and installs its
// dependency manifest, falling back to the CPU-only index for GPU packages
// with no build for the local interpreter. A nil config uses defaults.
func Bootstrap(ctx context.Context, config *Config) *Result {
	return bootstrap.New(config, nil).Run(ctx)
}
