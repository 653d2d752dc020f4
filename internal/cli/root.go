// internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blip-analyzer/envboot/pkg/core"
)

var (
	cfgFile      string
	rootPath     string
	manifestPath string
	indexURL     string
	timeout      time.Duration
	debug        bool
	config       *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "envboot",
	Short: "Python environment bootstrapper",
	Long: `envboot - Python environment bootstrapper

Provisions an isolated virtual environment, installs the declared
dependencies, and falls back to the CPU-only PyTorch index when no
GPU build exists for the local interpreter.`,
	Version:       "0.1.0",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runBootstrap,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/envboot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "environment location (default is .venv)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "dependency manifest (default is requirements.txt)")
	rootCmd.PersistentFlags().StringVar(&indexURL, "fallback-index", "", "CPU-only package index for the fallback install")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "deadline per install invocation (default is 30m)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if rootPath != "" {
		config.RootPath = rootPath
	}
	if manifestPath != "" {
		config.ManifestPath = manifestPath
	}
	if indexURL != "" {
		config.FallbackIndexURL = indexURL
	}
	if timeout != 0 {
		config.InstallTimeout = core.Duration(timeout)
	}
	if debug {
		config.Debug = true
	}
}
