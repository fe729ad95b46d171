// Package host assembles the backend: the instance lock, the recent
// documents store, the command registry with its plugins, and the IPC
// server exposing the registry to external front ends.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/bridge"
	"github.com/berrythewa/marker/internal/commands"
	"github.com/berrythewa/marker/internal/config"
	"github.com/berrythewa/marker/internal/ipc"
	"github.com/berrythewa/marker/internal/platform"
	"github.com/berrythewa/marker/internal/plugins/opener"
	"github.com/berrythewa/marker/internal/plugins/recent"
	"github.com/berrythewa/marker/internal/storage"
)

// Options selects optional host features.
type Options struct {
	// Opener enables plugin:opener commands. Only GUI hosts have one.
	Opener opener.URLOpener
}

// Host owns every backend resource for the lifetime of the process.
type Host struct {
	cfg      *config.Config
	logger   *zap.Logger
	lock     *platform.InstanceLock
	store    *storage.RecentStore
	registry *commands.Registry
}

// New acquires the instance lock and builds the command registry.
func New(cfg *config.Config, logger *zap.Logger, opts Options) (*Host, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	lock, err := platform.AcquireInstanceLock(cfg.SystemPaths.LockFile)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewRecentStore(storage.StorageConfig{
		DBPath:     cfg.DBPath(),
		MaxEntries: cfg.Storage.MaxRecent,
		Logger:     logger,
	})
	if err != nil {
		lock.Release()
		return nil, err
	}

	registry, err := commands.Build(logger, plugins(store, opts, logger)...)
	if err != nil {
		store.Close()
		lock.Release()
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}

	logger.Info("Host initialized",
		zap.Strings("commands", registry.Names()),
		zap.String("db_path", cfg.DBPath()))

	return &Host{
		cfg:      cfg,
		logger:   logger,
		lock:     lock,
		store:    store,
		registry: registry,
	}, nil
}

func plugins(store recent.Store, opts Options, logger *zap.Logger) []commands.Plugin {
	list := []commands.Plugin{recent.New(store, logger)}
	if opts.Opener != nil {
		list = append(list, opener.New(opts.Opener, logger))
	}
	return list
}

// CommandNames lists every command a host may expose, without opening any
// resources.
func CommandNames() []string {
	registry, err := commands.Build(nil, plugins(nil, Options{Opener: noopOpener{}}, nil)...)
	if err != nil {
		return nil
	}
	return registry.Names()
}

// Invoker returns an in-process invoker for a front end living in this
// process.
func (h *Host) Invoker() bridge.Invoker {
	return bridge.NewLocal(h.registry)
}

// Serve runs the IPC server until ctx is cancelled. With IPC disabled it
// simply waits for cancellation.
func (h *Host) Serve(ctx context.Context) error {
	if !h.cfg.IPC.Enabled {
		h.logger.Info("IPC server disabled")
		<-ctx.Done()
		return nil
	}
	err := ipc.NewServer(h.cfg.SocketPath(), h.registry, h.logger).ListenAndServe(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Start runs Serve in the background. The returned stop function cancels
// the server and waits until it has closed its listener and removed the
// socket; calling it again returns the same result.
func (h *Host) Start(ctx context.Context) (stop func() error) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx) }()

	return sync.OnceValue(func() error {
		cancel()
		return <-done
	})
}

// Close releases the store and the instance lock.
func (h *Host) Close() error {
	return errors.Join(h.store.Close(), h.lock.Release())
}
