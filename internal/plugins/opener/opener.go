// Package opener lets the front end open links and files with the desktop's
// default handler.
package opener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/commands"
)

// PluginName is the namespace of the plugin's commands.
const PluginName = "opener"

// URLOpener opens a URL. fyne.App satisfies it.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// Plugin registers plugin:opener|open_url.
type Plugin struct {
	opener URLOpener
	logger *zap.Logger
}

// New creates the plugin.
func New(opener URLOpener, logger *zap.Logger) *Plugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Plugin{opener: opener, logger: logger}
}

func (p *Plugin) Name() string { return PluginName }

func (p *Plugin) Setup(r *commands.Registry) error {
	return r.Register(commands.PluginCommand(PluginName, "open_url"), p.openURL)
}

type openArgs struct {
	URL string `json:"url"`
}

func (p *Plugin) openURL(_ context.Context, raw json.RawMessage) (any, error) {
	command := commands.PluginCommand(PluginName, "open_url")
	var args openArgs
	if err := commands.DecodeArgs(command, raw, &args, "url"); err != nil {
		return nil, err
	}

	u, err := ParseTarget(args.URL)
	if err != nil {
		return nil, &commands.CommandError{Command: command, Message: err.Error()}
	}
	p.logger.Debug("Opening with default handler", zap.Stringer("url", u))
	if err := p.opener.OpenURL(u); err != nil {
		return nil, &commands.CommandError{Command: command, Message: err.Error()}
	}
	return nil, nil
}

// ParseTarget turns a URL or a filesystem path into a URL. Strings without a
// scheme are treated as paths and converted to file:// URLs.
func ParseTarget(target string) (*url.URL, error) {
	if target == "" {
		return nil, fmt.Errorf("empty url")
	}
	u, err := url.Parse(target)
	if err == nil && len(u.Scheme) > 1 {
		return u, nil
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}
