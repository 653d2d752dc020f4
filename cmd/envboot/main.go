// cmd/envboot/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blip-analyzer/envboot/internal/cli"
	"github.com/blip-analyzer/envboot/pkg/bootstrap"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		// Diagnostics were already printed by the command.
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(bootstrap.ExitConfigError)
}
