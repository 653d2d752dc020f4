// pkg/pip/installer.go
package pip

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/blip-analyzer/envboot/pkg/core"
	"github.com/blip-analyzer/envboot/pkg/venv"
)

// FailureReason classifies a failed install attempt.
type FailureReason int

const (
	// ReasonNone means the attempt succeeded.
	ReasonNone FailureReason = iota
	// ReasonFallbackEligible means pip could not find a distribution of a
	// known GPU numerical package for this interpreter/platform. The CPU-only
	// index may still carry a usable build.
	ReasonFallbackEligible
	// ReasonUnclassified covers every other failure. Retrying against an
	// alternate index would not help differently, so no fallback is attempted.
	ReasonUnclassified
)

func (r FailureReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonFallbackEligible:
		return "fallback-eligible"
	case ReasonUnclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Outcome is the immutable result of one install invocation.
type Outcome struct {
	OK       bool
	Reason   FailureReason // ReasonNone when OK
	Package  string        // Extracted package name when fallback-eligible
	Output   string        // Raw combined pip output, unstructured
	TimedOut bool          // The invocation hit its deadline
}

// gpuPackages are the packages that ship GPU wheels by default but also
// publish CPU-only builds on an alternate index.
var gpuPackages = map[string]bool{
	"torch":       true,
	"torchvision": true,
	"torchaudio":  true,
}

// Pip's unavailable-distribution messages. The output format is not a stable
// contract; matching is best-effort.
var unavailableRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no matching distribution found for ([A-Za-z0-9][A-Za-z0-9._-]*)`),
	regexp.MustCompile(`(?i)could not find a version that satisfies the requirement ([A-Za-z0-9][A-Za-z0-9._-]*)`),
}

// Classify inspects raw pip output from a failed install and decides whether
// the failure is fallback-eligible. It returns the affected package name when
// it is.
func Classify(output string) (FailureReason, string) {
	for _, re := range unavailableRes {
		for _, m := range re.FindAllStringSubmatch(output, -1) {
			name := NormalizeName(m[1])
			if gpuPackages[name] {
				return ReasonFallbackEligible, name
			}
		}
	}
	return ReasonUnclassified, ""
}

// Installer drives pip inside a virtual environment.
type Installer struct {
	runner           core.Runner
	fallbackIndexURL string
	timeout          time.Duration
	logger           *log.Logger
}

// NewInstaller creates an Installer. timeout bounds each pip invocation;
// zero means no bound.
func NewInstaller(runner core.Runner, fallbackIndexURL string, timeout time.Duration, debug bool) *Installer {
	logger := log.New(io.Discard, "", 0)
	if debug {
		logger = log.New(os.Stdout, "[PIP] ", log.LstdFlags)
	}
	if fallbackIndexURL == "" {
		fallbackIndexURL = core.DefaultFallbackIndexURL
	}
	return &Installer{
		runner:           runner,
		fallbackIndexURL: fallbackIndexURL,
		timeout:          timeout,
		logger:           logger,
	}
}

// InstallManifest installs the whole manifest into env as one atomic pip
// invocation. It performs no retries; strategy decisions belong to the caller.
func (i *Installer) InstallManifest(ctx context.Context, env *venv.Env, manifestPath string) Outcome {
	i.logger.Printf("Installing manifest %s into %s", manifestPath, env.Root)
	return i.invoke(ctx, env, "install", "-r", manifestPath)
}

// InstallFallback installs the single named package from the CPU-only index.
// Callers invoke it at most once per bootstrap run.
func (i *Installer) InstallFallback(ctx context.Context, env *venv.Env, pkg string) Outcome {
	i.logger.Printf("Installing %s from %s into %s", pkg, i.fallbackIndexURL, env.Root)
	return i.invoke(ctx, env, "install", "--index-url", i.fallbackIndexURL, pkg)
}

func (i *Installer) invoke(ctx context.Context, env *venv.Env, args ...string) Outcome {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	full := append([]string{"-m", "pip"}, args...)
	out, code, err := i.runner.Run(ctx, env.Python(), full...)
	output := strings.TrimSpace(string(out))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			i.logger.Printf("pip timed out after %s", i.timeout)
			return Outcome{
				Reason:   ReasonUnclassified,
				Output:   fmt.Sprintf("pip timed out after %s\n%s", i.timeout, output),
				TimedOut: true,
			}
		}
		return Outcome{
			Reason: ReasonUnclassified,
			Output: fmt.Sprintf("invoking pip: %v\n%s", err, output),
		}
	}

	if code == 0 {
		i.logger.Printf("pip succeeded")
		return Outcome{OK: true, Output: output}
	}

	reason, pkg := Classify(output)
	i.logger.Printf("pip exited with status %d, classified %s", code, reason)
	return Outcome{Reason: reason, Package: pkg, Output: output}
}
