// pkg/pip/manifest.go
package pip

import (
	"fmt"
	"os"
	"strings"
)

// Requirement is a single package specifier from a requirements file.
type Requirement struct {
	Name       string // Package name, lowercased per PEP 503 normalization
	Constraint string // Version constraint as written, e.g. ">=2.0", empty if none
}

// Manifest is the ordered list of requirements declared for the environment.
// It is read-only: envboot never resolves or rewrites it, pip is handed the
// file itself.
type Manifest struct {
	Path         string
	Requirements []Requirement
}

// constraint operators in match-priority order (longest first)
var constraintOps = []string{"===", "==", ">=", "<=", "~=", "!=", ">", "<"}

// ParseManifest reads a pip requirements file. Comments, blank lines and pip
// option lines (-r, --index-url, ...) are skipped for reporting purposes; they
// remain in the file and still reach pip.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m := &Manifest{Path: path}
	for _, line := range strings.Split(string(data), "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}

		// Environment markers are pip's concern, not ours.
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		m.Requirements = append(m.Requirements, parseRequirement(line))
	}

	return m, nil
}

func parseRequirement(spec string) Requirement {
	for _, op := range constraintOps {
		if idx := strings.Index(spec, op); idx >= 0 {
			return Requirement{
				Name:       NormalizeName(strings.TrimSpace(spec[:idx])),
				Constraint: strings.TrimSpace(spec[idx:]),
			}
		}
	}
	return Requirement{Name: NormalizeName(spec)}
}

// NormalizeName lowercases a package name and strips any extras suffix,
// e.g. "Transformers[torch]" -> "transformers".
func NormalizeName(name string) string {
	if idx := strings.Index(name, "["); idx >= 0 {
		name = name[:idx]
	}
	return strings.ToLower(strings.TrimSpace(name))
}
