// Package main is the waypoint command-line entrypoint.
package main

import (
	"github.com/entrhq/waypoint/pkg/cli"
)

func main() {
	cli.Execute()
}
