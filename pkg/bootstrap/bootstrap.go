// pkg/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/blip-analyzer/envboot/pkg/core"
	"github.com/blip-analyzer/envboot/pkg/pip"
	"github.com/blip-analyzer/envboot/pkg/python"
	"github.com/blip-analyzer/envboot/pkg/venv"
)

// Bootstrapper sequences interpreter discovery, environment provisioning and
// dependency installation, and owns all user-facing remediation text.
//
// A Bootstrapper runs once. Concurrent runs against the same RootPath are not
// guarded against and may race on the environment directory; run one
// bootstrap per environment at a time.
type Bootstrapper struct {
	config      *core.Config
	runner      core.Runner
	provisioner *venv.Provisioner
	installer   *pip.Installer
	logger      *log.Logger
	state       State
}

// New creates a Bootstrapper from config. A nil config uses defaults; a nil
// runner uses real process invocation.
func New(config *core.Config, runner core.Runner) *Bootstrapper {
	if config == nil {
		config = core.DefaultConfig()
	}
	if runner == nil {
		runner = core.NewExecRunner()
	}

	// Set defaults
	defaults := core.DefaultConfig()
	if config.RootPath == "" {
		config.RootPath = defaults.RootPath
	}
	if config.ManifestPath == "" {
		config.ManifestPath = defaults.ManifestPath
	}
	if config.FallbackIndexURL == "" {
		config.FallbackIndexURL = defaults.FallbackIndexURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.InstallTimeout == 0 {
		config.InstallTimeout = defaults.InstallTimeout
	}

	logger := log.New(io.Discard, "", 0)
	if config.Debug {
		logger = log.New(os.Stdout, "[BOOTSTRAP] ", log.LstdFlags)
	}

	return &Bootstrapper{
		config:      config,
		runner:      runner,
		provisioner: venv.NewProvisioner(runner, config.Debug),
		installer:   pip.NewInstaller(runner, config.FallbackIndexURL, time.Duration(config.InstallTimeout), config.Debug),
		logger:      logger,
		state:       StateStart,
	}
}

// State returns the current machine state; terminal runs report StateDone.
func (b *Bootstrapper) State() State {
	return b.state
}

// Run executes the bootstrap sequence exactly once: locate -> ensure ->
// install -> (fallback) -> done. Every failure is terminal for the run; the
// single retry-like behavior is the one-shot CPU-only fallback, which is a
// different strategy rather than a repeat of the same action.
func (b *Bootstrapper) Run(ctx context.Context) *Result {
	// Stage 1: interpreter discovery. Bounded: a version query should be
	// near-instant, a hang means a broken interpreter shim.
	lctx, cancel := context.WithTimeout(ctx, time.Duration(b.config.Timeout))
	interp, err := python.Locate(lctx, b.runner)
	cancel()
	if err != nil {
		b.mustTransition(StateDone)
		return b.fatalLocate(err)
	}
	b.logger.Printf("Found interpreter: %s", interp)
	b.mustTransition(StateInterpreterFound)

	// Stage 2: environment provisioning, idempotent against RootPath.
	pctx, cancel := context.WithTimeout(ctx, time.Duration(b.config.Timeout))
	env, err := b.provisioner.Ensure(pctx, interp, b.config.RootPath)
	cancel()
	if err != nil {
		b.mustTransition(StateDone)
		return b.fatalProvision(interp, err)
	}
	b.mustTransition(StateEnvironmentReady)

	// Stage 3: primary install, one atomic pip invocation over the manifest.
	primary := b.installer.InstallManifest(ctx, env, b.config.ManifestPath)
	if primary.OK {
		b.mustTransition(StatePrimaryInstalled)
		b.mustTransition(StateDone)
		return &Result{Status: StatusSuccess, Interpreter: interp, Env: env}
	}
	b.mustTransition(StatePrimaryFailed)

	// Stage 4: at most one fallback attempt, and only when the failure is
	// attributable to a missing GPU-package build for this interpreter.
	if primary.Reason == pip.ReasonFallbackEligible {
		b.mustTransition(StateFallbackAttempted)
		fb := b.installer.InstallFallback(ctx, env, primary.Package)
		b.mustTransition(StateDone)
		if fb.OK {
			return &Result{
				Status:          StatusSuccessViaFallback,
				Interpreter:     interp,
				Env:             env,
				FallbackPackage: primary.Package,
			}
		}
		return b.fatalFallback(interp, env, primary.Package, fb)
	}

	b.mustTransition(StateDone)
	return b.fatalInstall(interp, env, primary)
}

// mustTransition applies a transition that Run's control flow guarantees is
// legal; a failure here is a programming error.
func (b *Bootstrapper) mustTransition(to State) {
	if err := b.transition(to); err != nil {
		panic(err)
	}
}

func (b *Bootstrapper) fatalLocate(err error) *Result {
	return &Result{
		Status:      StatusFatal,
		FailedStage: StageLocate,
		Remediation: []string{
			"Install Python 3 and ensure the `python3` (or `python`) executable is on PATH.",
			"Verify the interpreter answers `python3 --version` with a parseable version.",
			"Re-run envboot.",
		},
		Diagnostic: err.Error(),
	}
}

func (b *Bootstrapper) fatalProvision(interp *python.Interpreter, err error) *Result {
	return &Result{
		Status:      StatusFatal,
		Interpreter: interp,
		FailedStage: StageProvision,
		Remediation: []string{
			fmt.Sprintf("Ensure write permission and free disk space at %s.", b.config.RootPath),
			fmt.Sprintf("Verify `%s -m venv` works on this machine.", interp.Path),
			"Re-run envboot; a partially created environment is removed automatically.",
		},
		Diagnostic: err.Error(),
	}
}

func (b *Bootstrapper) fatalInstall(interp *python.Interpreter, env *venv.Env, out pip.Outcome) *Result {
	steps := []string{
		"Inspect the installer output below for the failing package.",
		fmt.Sprintf("Retry manually with `%s -m pip install -r %s`.", env.Python(), b.config.ManifestPath),
	}
	if out.TimedOut {
		steps = append(steps, "Check network connectivity to the package index; the install did not finish within its deadline.")
	}
	return &Result{
		Status:      StatusFatal,
		Interpreter: interp,
		Env:         env,
		FailedStage: StageInstall,
		Remediation: steps,
		Diagnostic:  out.Output,
	}
}

func (b *Bootstrapper) fatalFallback(interp *python.Interpreter, env *venv.Env, pkg string, out pip.Outcome) *Result {
	steps := []string{
		fmt.Sprintf("The CPU-only install of %s from %s also failed; see output below.", pkg, b.config.FallbackIndexURL),
		fmt.Sprintf("Use a Python version with prebuilt %s packages (currently %s is running Python %s).", pkg, interp.Path, interp.Version()),
		fmt.Sprintf("Or install %s manually with a build compatible with your platform, then re-run envboot.", pkg),
	}
	if out.TimedOut {
		steps = append(steps, "Check network connectivity to the package index; the install did not finish within its deadline.")
	}
	return &Result{
		Status:          StatusFatal,
		Interpreter:     interp,
		Env:             env,
		FailedStage:     StageFallback,
		Remediation:     steps,
		Diagnostic:      out.Output,
		FallbackPackage: pkg,
	}
}
