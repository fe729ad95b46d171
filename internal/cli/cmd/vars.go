package cmd

import (
	"github.com/berrythewa/marker/internal/config"
	"go.uber.org/zap"
)

// Shared variables across all commands
var (
	// Global flags
	configFile string
	verbose    bool
	quiet      bool
	useJSON    bool

	// Set by setup before any command runs
	cfg    *config.Config
	logger *zap.Logger
)

// Version information, set from main
var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "none"
)

// SetVersionInfo allows setting version info from outside
func SetVersionInfo(v, bt, c string) {
	version = v
	buildTime = bt
	commit = c
}
