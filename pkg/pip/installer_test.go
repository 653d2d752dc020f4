// pkg/pip/installer_test.go
package pip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-analyzer/envboot/internal/testutil"
	"github.com/blip-analyzer/envboot/pkg/venv"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantReason FailureReason
		wantPkg    string
	}{
		{
			name: "torch unavailable",
			output: "ERROR: Could not find a version that satisfies the requirement torch (from versions: none)\n" +
				"ERROR: No matching distribution found for torch",
			wantReason: ReasonFallbackEligible,
			wantPkg:    "torch",
		},
		{
			name:       "torchvision unavailable",
			output:     "ERROR: No matching distribution found for torchvision",
			wantReason: ReasonFallbackEligible,
			wantPkg:    "torchvision",
		},
		{
			name:       "torchaudio with constraint",
			output:     "ERROR: Could not find a version that satisfies the requirement torchaudio==2.1.0",
			wantReason: ReasonFallbackEligible,
			wantPkg:    "torchaudio",
		},
		{
			name:       "case insensitive",
			output:     "NO MATCHING DISTRIBUTION FOUND FOR TORCH",
			wantReason: ReasonFallbackEligible,
			wantPkg:    "torch",
		},
		{
			name:       "unavailable package outside the gpu family",
			output:     "ERROR: No matching distribution found for numpy",
			wantReason: ReasonUnclassified,
		},
		{
			name:       "similarly named package is not eligible",
			output:     "ERROR: No matching distribution found for torchy",
			wantReason: ReasonUnclassified,
		},
		{
			name:       "permission denied",
			output:     "PermissionError: [Errno 13] Permission denied: '/usr/lib/python3.11'",
			wantReason: ReasonUnclassified,
		},
		{
			name:       "empty output",
			output:     "",
			wantReason: ReasonUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, pkg := Classify(tt.output)
			assert.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.wantPkg, pkg)
		})
	}
}

func testEnv(t *testing.T) *venv.Env {
	return &venv.Env{Root: t.TempDir()}
}

func TestInstallManifestSuccess(t *testing.T) {
	env := testEnv(t)
	r := testutil.NewFakeRunner()
	r.Handle(env.Python()+" -m pip install -r", testutil.Response{Output: "Successfully installed torch-2.2.0"})

	i := NewInstaller(r, "", 0, false)
	out := i.InstallManifest(context.Background(), env, "requirements.txt")
	assert.True(t, out.OK)
	assert.Equal(t, ReasonNone, out.Reason)
	assert.Equal(t, 1, r.CountMatching("-m pip install -r requirements.txt"))
}

func TestInstallManifestClassifiesFailure(t *testing.T) {
	env := testEnv(t)
	r := testutil.NewFakeRunner()
	r.Handle(env.Python()+" -m pip install -r", testutil.Response{
		Output:   "ERROR: No matching distribution found for torch",
		ExitCode: 1,
	})

	i := NewInstaller(r, "", 0, false)
	out := i.InstallManifest(context.Background(), env, "requirements.txt")
	assert.False(t, out.OK)
	assert.Equal(t, ReasonFallbackEligible, out.Reason)
	assert.Equal(t, "torch", out.Package)
	assert.Contains(t, out.Output, "No matching distribution")
}

func TestInstallFallbackTargetsAlternateIndex(t *testing.T) {
	env := testEnv(t)
	r := testutil.NewFakeRunner()
	var got testutil.Invocation
	r.HandleFunc(env.Python()+" -m pip install --index-url", func(inv testutil.Invocation) testutil.Response {
		got = inv
		return testutil.Response{Output: "Successfully installed torch-2.2.0+cpu"}
	})

	i := NewInstaller(r, "https://download.pytorch.org/whl/cpu", 0, false)
	out := i.InstallFallback(context.Background(), env, "torch")
	require.True(t, out.OK)
	assert.Equal(t, []string{"-m", "pip", "install", "--index-url", "https://download.pytorch.org/whl/cpu", "torch"}, got.Args)
}

func TestInstallTimeoutIsUnclassified(t *testing.T) {
	env := testEnv(t)
	r := testutil.NewFakeRunner()
	r.Handle(env.Python(), testutil.Response{Err: context.DeadlineExceeded, ExitCode: -1})

	i := NewInstaller(r, "", time.Nanosecond, false)
	out := i.InstallManifest(context.Background(), env, "requirements.txt")
	assert.False(t, out.OK)
	assert.Equal(t, ReasonUnclassified, out.Reason)
	assert.True(t, out.TimedOut)
	assert.Contains(t, out.Output, "timed out")
}
