package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/bridge"
	"github.com/berrythewa/marker/internal/host"
	"github.com/berrythewa/marker/internal/platform"
)

func newServeCmd() *cobra.Command {
	var detach bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the command host without a window",
		Long: `Run the command host on the IPC socket without opening the editor.

External tools call it with "marker invoke". The host stops on SIGINT or
SIGTERM and removes its socket.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if detach {
				return serveDetached()
			}

			h, err := host.New(cfg, logger, host.Options{})
			if err != nil {
				if errors.Is(err, platform.ErrAlreadyRunning) {
					if pid, perr := platform.ReadLockPID(cfg.SystemPaths.LockFile); perr == nil {
						return fmt.Errorf("%w (PID %d)", err, pid)
					}
				}
				return err
			}
			defer h.Close()

			logger.Info("Serving commands",
				zap.String("socket", cfg.SocketPath()),
				zap.Bool("detached", platform.IsDetached()),
				zap.Int("pid", os.Getpid()))

			if err := h.Serve(cmd.Context()); err != nil {
				return err
			}
			logger.Info("Host stopped")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detach, "detach", "d", false, "run in the background")
	return cmd
}

// serveDetached re-executes the binary without --detach in its own session
// and waits until the new host answers.
func serveDetached() error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	args, err := detachArgs(os.Args[1:])
	if err != nil {
		return err
	}

	pid, err := platform.Detach(executable, args, cfg.SystemPaths.DataDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	remote := bridge.NewRemote(cfg.SocketPath())
	for !remote.Available(ctx) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("host (PID %d) did not start listening on %s", pid, cfg.SocketPath())
		case <-time.After(100 * time.Millisecond):
		}
	}

	pterm.Success.Printfln("Host running in background (PID %d)", pid)
	pterm.Info.Printfln("Socket: %s", cfg.SocketPath())
	return nil
}

// detachArgs rewrites the command line for the background child: the detach
// flag is dropped and --config is made absolute, since the child runs in the
// data directory.
func detachArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-d" || arg == "--detach" || strings.HasPrefix(arg, "--detach="):
			continue
		case arg == "--config" && i+1 < len(args):
			abs, err := filepath.Abs(args[i+1])
			if err != nil {
				return nil, fmt.Errorf("invalid config path %q: %w", args[i+1], err)
			}
			out = append(out, arg, abs)
			i++
		case strings.HasPrefix(arg, "--config="):
			abs, err := filepath.Abs(strings.TrimPrefix(arg, "--config="))
			if err != nil {
				return nil, fmt.Errorf("invalid config path %q: %w", arg, err)
			}
			out = append(out, "--config="+abs)
		default:
			out = append(out, arg)
		}
	}
	return out, nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a host is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			running := bridge.NewRemote(cfg.SocketPath()).Available(cmd.Context())
			pid, _ := platform.ReadLockPID(cfg.SystemPaths.LockFile)

			if useJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"running": running,
					"pid":     pid,
					"socket":  cfg.SocketPath(),
				})
			}

			if !running {
				pterm.Warning.Println("No host is answering")
				pterm.Printfln("Socket: %s", cfg.SocketPath())
				return nil
			}
			pterm.Success.Println("Host is running")
			if pid > 0 {
				pterm.Printfln("PID:    %d", pid)
			}
			pterm.Printfln("Socket: %s", cfg.SocketPath())
			return nil
		},
	}
}
