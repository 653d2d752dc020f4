// pkg/python/locator.go
package python

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/blip-analyzer/envboot/pkg/core"
)

// Interpreter describes a discovered Python interpreter.
// Discovered once per run and never mutated afterwards.
type Interpreter struct {
	Path  string // Absolute path of the executable
	Major int
	Minor int
}

// Version returns the interpreter version as "major.minor"
func (i *Interpreter) Version() string {
	return fmt.Sprintf("%d.%d", i.Major, i.Minor)
}

func (i *Interpreter) String() string {
	return fmt.Sprintf("%s (Python %s)", i.Path, i.Version())
}

// versionRe matches the output of `python --version`, e.g. "Python 3.11.4".
var versionRe = regexp.MustCompile(`Python (\d+)\.(\d+)`)

// candidates returns executable names to probe, in preference order.
func candidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"python", "python3", "py"}
	}
	return []string{"python3", "python"}
}

// Locate finds a usable Python interpreter on PATH and queries its version.
// Returns core.ErrInterpreterNotFound when no candidate resolves or none
// reports a parseable version.
func Locate(ctx context.Context, runner core.Runner) (*Interpreter, error) {
	for _, name := range candidates() {
		path, err := runner.LookPath(name)
		if err != nil {
			continue
		}

		out, code, err := runner.Run(ctx, path, "--version")
		if err != nil || code != 0 {
			continue
		}

		m := versionRe.FindStringSubmatch(strings.TrimSpace(string(out)))
		if m == nil {
			continue
		}

		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])

		return &Interpreter{Path: path, Major: major, Minor: minor}, nil
	}

	return nil, &core.Error{Op: "locating interpreter", Err: core.ErrInterpreterNotFound}
}
