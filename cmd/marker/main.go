package main

import (
	"github.com/berrythewa/marker/internal/cli/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "none"
)

func main() {
	// Set version information
	cmd.SetVersionInfo(version, buildTime, commit)

	// Execute the root command
	cmd.Execute()
}
