// internal/cli/bootstrap.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blip-analyzer/envboot/pkg/bootstrap"
	"github.com/blip-analyzer/envboot/pkg/pip"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Provision the environment and install dependencies",
	Long: `Provision the virtual environment and install the dependency manifest.

Examples:
  envboot bootstrap
  envboot bootstrap --root .venv --manifest requirements.txt
  envboot bootstrap --fallback-index https://download.pytorch.org/whl/cpu`,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	res := executeBootstrap(cmd.Context())
	if res.Status == bootstrap.StatusFatal {
		return &ExitError{Code: res.ExitCode()}
	}
	return nil
}

// executeBootstrap runs a bootstrap and renders its result. All guidance text
// comes composed from the orchestrator; this layer only prints it.
func executeBootstrap(ctx context.Context) *bootstrap.Result {
	if m, err := pip.ParseManifest(config.ManifestPath); err == nil {
		fmt.Printf("Manifest %s: %d requirements\n", m.Path, len(m.Requirements))
	}

	b := bootstrap.New(config, nil)
	res := b.Run(ctx)

	switch res.Status {
	case bootstrap.StatusSuccess:
		fmt.Printf("✓ Environment ready at %s (Python %s)\n", res.Env.Root, res.Interpreter.Version())
	case bootstrap.StatusSuccessViaFallback:
		fmt.Printf("✓ Environment ready at %s (Python %s, CPU-only build of %s)\n",
			res.Env.Root, res.Interpreter.Version(), res.FallbackPackage)
	case bootstrap.StatusFatal:
		fmt.Fprintf(os.Stderr, "✗ Bootstrap failed\n")
		printRemediation(res)
	}

	return res
}

func printRemediation(res *bootstrap.Result) {
	fmt.Fprintf(os.Stderr, "\nTo fix this:\n")
	for i, step := range res.Remediation {
		fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, step)
	}
	if res.Diagnostic != "" {
		fmt.Fprintf(os.Stderr, "\nTool output:\n%s\n", res.Diagnostic)
	}
}
