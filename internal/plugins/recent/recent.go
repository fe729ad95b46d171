// Package recent keeps the recent documents list current. It records every
// path successfully read or written through the registry and exposes the
// list as plugin commands.
package recent

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/commands"
	"github.com/berrythewa/marker/internal/storage"
)

// PluginName is the namespace of the plugin's commands.
const PluginName = "recent"

// Store is the persistence the plugin needs. *storage.RecentStore
// satisfies it.
type Store interface {
	Touch(path string, at time.Time) error
	List(limit int) ([]storage.RecentEntry, error)
	Remove(path string) error
	Clear() error
}

// Plugin wires a Store into a command registry.
type Plugin struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// New creates the plugin.
func New(store Store, logger *zap.Logger) *Plugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Plugin{store: store, logger: logger, now: time.Now}
}

func (p *Plugin) Name() string { return PluginName }

func (p *Plugin) Setup(r *commands.Registry) error {
	handlers := map[string]commands.Handler{
		"list":   p.list,
		"remove": p.remove,
		"clear":  p.clear,
	}
	for name, h := range handlers {
		if err := r.Register(commands.PluginCommand(PluginName, name), h); err != nil {
			return err
		}
	}
	for _, observed := range []string{commands.CommandReadFile, commands.CommandWriteFile} {
		if err := r.Observe(observed, p.record); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) record(_ context.Context, call commands.Call) error {
	var args commands.PathArgs
	if err := json.Unmarshal(call.Args, &args); err != nil {
		return err
	}
	if args.Path == "" {
		return nil
	}
	p.logger.Debug("Recording recent document", zap.String("path", args.Path), zap.String("via", call.Command))
	return p.store.Touch(args.Path, p.now())
}

type listArgs struct {
	Limit int `json:"limit"`
}

func (p *Plugin) list(_ context.Context, raw json.RawMessage) (any, error) {
	command := commands.PluginCommand(PluginName, "list")
	var args listArgs
	if err := commands.DecodeArgs(command, raw, &args); err != nil {
		return nil, err
	}
	entries, err := p.store.List(args.Limit)
	if err != nil {
		return nil, &commands.CommandError{Command: command, Message: err.Error()}
	}
	if entries == nil {
		entries = []storage.RecentEntry{}
	}
	return entries, nil
}

func (p *Plugin) remove(_ context.Context, raw json.RawMessage) (any, error) {
	command := commands.PluginCommand(PluginName, "remove")
	var args commands.PathArgs
	if err := commands.DecodeArgs(command, raw, &args, "path"); err != nil {
		return nil, err
	}
	if err := p.store.Remove(args.Path); err != nil {
		return nil, &commands.CommandError{Command: command, Message: err.Error()}
	}
	return nil, nil
}

func (p *Plugin) clear(_ context.Context, _ json.RawMessage) (any, error) {
	if err := p.store.Clear(); err != nil {
		return nil, &commands.CommandError{Command: commands.PluginCommand(PluginName, "clear"), Message: err.Error()}
	}
	return nil, nil
}
