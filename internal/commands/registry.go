// Package commands holds the command registry that sits on the backend side
// of the invocation boundary, together with the built-in handlers.
//
// A Registry is populated once during process initialization and frozen
// before the first call is dispatched. Lookups after that point never mutate
// the registry, so a frozen Registry is safe for concurrent use.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Handler executes one command. args holds the JSON object of named
// arguments sent by the caller. The returned value must be JSON-encodable.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Call describes a completed, successful invocation.
type Call struct {
	Command string
	Args    json.RawMessage
	Result  any
}

// Hook observes successful calls of a command.
type Hook func(ctx context.Context, call Call) error

// Plugin bundles extra commands and hooks registered at initialization.
type Plugin interface {
	Name() string
	Setup(r *Registry) error
}

// PluginPrefix starts every plugin command name.
const PluginPrefix = "plugin:"

// PluginCommand returns the namespaced name of a plugin command.
func PluginCommand(plugin, command string) string {
	return fmt.Sprintf("%s%s|%s", PluginPrefix, plugin, command)
}

// Registry maps command names to handlers.
type Registry struct {
	handlers map[string]Handler
	hooks    map[string][]Hook
	frozen   bool
	logger   *zap.Logger
}

// New creates an empty, unfrozen registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		handlers: make(map[string]Handler),
		hooks:    make(map[string][]Hook),
		logger:   logger,
	}
}

// Build creates a registry holding the built-in commands and the given
// plugins, then freezes it.
func Build(logger *zap.Logger, plugins ...Plugin) (*Registry, error) {
	r := New(logger)
	if err := RegisterBuiltins(r); err != nil {
		return nil, err
	}
	for _, p := range plugins {
		if err := r.Use(p); err != nil {
			return nil, err
		}
	}
	r.Freeze()
	return r, nil
}

// Register adds a handler under name.
func (r *Registry) Register(name string, h Handler) error {
	if r.frozen {
		return fmt.Errorf("register %q: %w", name, ErrFrozen)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateCommand)
	}
	r.handlers[name] = h
	return nil
}

// Observe attaches a hook that runs after every successful call of command.
func (r *Registry) Observe(command string, hook Hook) error {
	if r.frozen {
		return fmt.Errorf("observe %q: %w", command, ErrFrozen)
	}
	r.hooks[command] = append(r.hooks[command], hook)
	return nil
}

// Use lets a plugin register its commands and hooks.
func (r *Registry) Use(p Plugin) error {
	if err := p.Setup(r); err != nil {
		return fmt.Errorf("plugin %s: %w", p.Name(), err)
	}
	r.logger.Debug("Plugin registered", zap.String("plugin", p.Name()))
	return nil
}

// Freeze stops further registration.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a command is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Invoke dispatches a call synchronously on the calling goroutine.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	result, err := r.call(ctx, name, h, args)
	if err != nil {
		r.logger.Debug("Command failed", zap.String("command", name), zap.Error(err))
		return nil, err
	}

	for _, hook := range r.hooks[name] {
		if err := hook(ctx, Call{Command: name, Args: args, Result: result}); err != nil {
			r.logger.Warn("Command hook failed", zap.String("command", name), zap.Error(err))
		}
	}
	return result, nil
}

func (r *Registry) call(ctx context.Context, name string, h Handler, args json.RawMessage) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Command handler panicked", zap.String("command", name), zap.Any("panic", p))
			result = nil
			err = &CommandError{Command: name, Message: fmt.Sprint(p)}
		}
	}()
	return h(ctx, args)
}
