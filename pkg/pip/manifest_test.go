// pkg/pip/manifest_test.go
package pip

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	content := `# BLIP image analyzer dependencies
torch
transformers>=4.30  # pinned for BLIP support
gradio==4.19.2
Pillow

requests; python_version < "3.12"
-r extra-requirements.txt
--extra-index-url https://example.com/simple
uvicorn[standard]~=0.27
`
	path := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := ParseManifest(path)
	require.NoError(t, err)

	want := []Requirement{
		{Name: "torch"},
		{Name: "transformers", Constraint: ">=4.30"},
		{Name: "gradio", Constraint: "==4.19.2"},
		{Name: "pillow"},
		{Name: "requests"},
		{Name: "uvicorn", Constraint: "~=0.27"},
	}
	if diff := cmp.Diff(want, m.Requirements); diff != "" {
		t.Errorf("requirements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseManifestMissingFile(t *testing.T) {
	_, err := ParseManifest(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Torch", "torch"},
		{"Transformers[torch]", "transformers"},
		{"  pillow ", "pillow"},
		{"uvicorn[standard]", "uvicorn"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
