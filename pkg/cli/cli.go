// Package cli provides the command-line interface for waypoint.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "waypoint",
		Usage:   "Frame-aware browser automation runner",
		Version: Version,
		Description: `Waypoint executes scripted browser workflows, resolving elements
across nested frames automatically.

Examples:
  waypoint run checkout.yaml
  waypoint run flows/*.yaml --parallel 4 --tag smoke
  waypoint validate flows/*.yaml`,
		Commands: []*cli.Command{
			runCommand,
			validateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
