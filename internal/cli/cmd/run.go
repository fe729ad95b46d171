package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/bridge"
	"github.com/berrythewa/marker/internal/gui"
	"github.com/berrythewa/marker/internal/host"
	"github.com/berrythewa/marker/internal/platform"
)

const appID = "io.github.berrythewa.marker"

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Open the editor window",
		Long: `Open the editor window, optionally loading a markdown file.

The editor hosts the command registry in-process and also serves it on the
IPC socket. If another host is already running, the editor connects to it
instead and sends every command over the socket.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEditor,
	}
}

func runEditor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fyneApp := app.NewWithID(appID)

	var invoker bridge.Invoker
	h, err := host.New(cfg, logger, host.Options{Opener: fyneApp})
	switch {
	case errors.Is(err, platform.ErrAlreadyRunning):
		remote := bridge.NewRemote(cfg.SocketPath())
		if !remote.Available(ctx) {
			return fmt.Errorf("%w but is not answering on %s", err, cfg.SocketPath())
		}
		logger.Info("Host already running, connecting over IPC", zap.String("socket", cfg.SocketPath()))
		invoker = remote
	case err != nil:
		return fmt.Errorf("failed to start host: %w", err)
	default:
		invoker = h.Invoker()
		stop := h.Start(ctx)
		defer func() {
			if err := stop(); err != nil {
				logger.Error("IPC server stopped", zap.Error(err))
			}
			if err := h.Close(); err != nil {
				logger.Warn("Failed to release host", zap.Error(err))
			}
		}()
	}

	editor := gui.NewApp(fyneApp, cfg, logger, invoker)
	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", args[0], err)
		}
		editor.OpenPath(path)
	}

	// A signal quits the window; a closed window ends the watcher.
	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(fyneApp.Quit)
		case <-closed:
		}
	}()

	logger.Info("Editor started")
	editor.Run()
	return nil
}
