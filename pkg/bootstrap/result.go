// pkg/bootstrap/result.go
package bootstrap

import (
	"github.com/blip-analyzer/envboot/pkg/python"
	"github.com/blip-analyzer/envboot/pkg/venv"
)

// Exit codes returned by the envboot CLI.
// These constants allow wrapping tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the environment is ready (primary or fallback path).
	ExitSuccess = 0

	// ExitInstallFailure indicates dependency installation failed.
	ExitInstallFailure = 1

	// ExitConfigError indicates invalid configuration or usage.
	ExitConfigError = 2

	// ExitEnvError indicates no usable interpreter or a provisioning failure.
	ExitEnvError = 3
)

// Status is the final aggregate outcome of a bootstrap run.
type Status int

const (
	// StatusSuccess means the manifest installed on the primary path.
	StatusSuccess Status = iota
	// StatusSuccessViaFallback means the primary install failed but the
	// CPU-only fallback install succeeded.
	StatusSuccessViaFallback
	// StatusFatal means the run failed; Remediation carries guidance.
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSuccessViaFallback:
		return "success-via-fallback"
	case StatusFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Stage names the component whose failure terminated a fatal run.
type Stage int

const (
	StageNone Stage = iota
	StageLocate
	StageProvision
	StageInstall
	StageFallback
)

// Result is the final aggregate of a bootstrap run.
type Result struct {
	Status      Status
	Interpreter *python.Interpreter // nil when discovery failed
	Env         *venv.Env           // nil before provisioning succeeded
	FailedStage Stage               // StageNone unless Status is StatusFatal
	Remediation []string            // Ordered remediation steps for fatal runs
	Diagnostic  string              // Raw tool output appended for diagnostic value

	// FallbackPackage is the package installed (or attempted) from the
	// CPU-only index; empty when no fallback ran.
	FallbackPackage string
}

// ExitCode maps the result onto the process exit status contract: zero for
// both success variants, a symbolic non-zero code per failure stage otherwise.
func (r *Result) ExitCode() int {
	if r.Status != StatusFatal {
		return ExitSuccess
	}
	switch r.FailedStage {
	case StageLocate, StageProvision:
		return ExitEnvError
	default:
		return ExitInstallFailure
	}
}
