package bridge

import (
	"context"
	"time"

	"github.com/berrythewa/marker/internal/commands"
)

// Greet calls greet.
func Greet(ctx context.Context, inv Invoker, name string) (string, error) {
	var greeting string
	err := inv.Invoke(ctx, commands.CommandGreet, commands.GreetArgs{Name: name}, &greeting)
	return greeting, err
}

// ReadFile calls read_file.
func ReadFile(ctx context.Context, inv Invoker, path string) (string, error) {
	var content string
	err := inv.Invoke(ctx, commands.CommandReadFile, commands.PathArgs{Path: path}, &content)
	return content, err
}

// WriteFile calls write_file.
func WriteFile(ctx context.Context, inv Invoker, path, content string) error {
	return inv.Invoke(ctx, commands.CommandWriteFile, commands.WriteArgs{Path: path, Content: content}, nil)
}

// RecentDocument is one entry returned by the recent plugin.
type RecentDocument struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
	Count    int       `json:"count"`
}

// RecentDocuments lists recently opened or saved documents.
func RecentDocuments(ctx context.Context, inv Invoker, limit int) ([]RecentDocument, error) {
	var docs []RecentDocument
	err := inv.Invoke(ctx, commands.PluginCommand("recent", "list"), Args{"limit": limit}, &docs)
	return docs, err
}

// ClearRecentDocuments empties the recent documents list.
func ClearRecentDocuments(ctx context.Context, inv Invoker) error {
	return inv.Invoke(ctx, commands.PluginCommand("recent", "clear"), nil, nil)
}

// RemoveRecentDocument drops path from the recent documents list.
func RemoveRecentDocument(ctx context.Context, inv Invoker, path string) error {
	return inv.Invoke(ctx, commands.PluginCommand("recent", "remove"), commands.PathArgs{Path: path}, nil)
}

// OpenURL asks the host to open a URL or path with the default application.
func OpenURL(ctx context.Context, inv Invoker, target string) error {
	return inv.Invoke(ctx, commands.PluginCommand("opener", "open_url"), Args{"url": target}, nil)
}
