package common

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/berrythewa/marker/internal/config"
)

// LoggerOptions tweaks the configured logger from the command line.
type LoggerOptions struct {
	Verbose bool // force debug level with development output
	Quiet   bool // only warnings and errors
}

// NewLogger creates a new logger instance
func NewLogger(cfg *config.Config, opts LoggerOptions) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	switch {
	case opts.Verbose:
		level = zapcore.DebugLevel
	case opts.Quiet:
		level = zapcore.WarnLevel
	}

	encoding := strings.ToLower(cfg.Log.Format)
	if encoding == "" {
		encoding = "console"
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	outputs := []string{"stderr"}
	if cfg.Log.EnableFileLogging && cfg.SystemPaths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.SystemPaths.LogDir, "marker.log"))
	}

	zcfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: opts.Verbose,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	return zcfg.Build()
}
