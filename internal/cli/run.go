// internal/cli/run.go
package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/blip-analyzer/envboot/pkg/bootstrap"
)

var runCmd = &cobra.Command{
	Use:   "run script.py [args...]",
	Short: "Bootstrap the environment, then run a script inside it",
	Long: `Bootstrap the environment, then run the given script with the
environment's own interpreter. The script's exit code is propagated.

Examples:
  envboot run ImageCaptioning.py
  envboot run app.py --port 7860`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	res := executeBootstrap(cmd.Context())
	if res.Status == bootstrap.StatusFatal {
		return &ExitError{Code: res.ExitCode()}
	}

	fmt.Printf("Running %s...\n", args[0])

	c := exec.CommandContext(cmd.Context(), res.Env.Python(), args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("running %s: %w", args[0], err)
	}
	return nil
}
