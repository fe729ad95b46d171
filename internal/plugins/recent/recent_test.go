package recent

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/marker/internal/commands"
	"github.com/berrythewa/marker/internal/storage"
)

func setup(t *testing.T) (*commands.Registry, *storage.RecentStore) {
	t.Helper()
	store, err := storage.NewRecentStore(storage.StorageConfig{
		DBPath: filepath.Join(t.TempDir(), "marker.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	plugin := New(store, nil)
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	plugin.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	r, err := commands.Build(nil, plugin)
	require.NoError(t, err)
	return r, store
}

func invoke(t *testing.T, r *commands.Registry, name string, args any) (any, error) {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return r.Invoke(context.Background(), name, raw)
}

func TestRecordsSuccessfulFileCalls(t *testing.T) {
	r, store := setup(t)
	dir := t.TempDir()
	written := filepath.Join(dir, "written.md")
	missing := filepath.Join(dir, "missing.md")

	_, err := invoke(t, r, commands.CommandWriteFile, commands.WriteArgs{Path: written, Content: "x"})
	require.NoError(t, err)
	_, err = invoke(t, r, commands.CommandReadFile, commands.PathArgs{Path: written})
	require.NoError(t, err)
	_, err = invoke(t, r, commands.CommandReadFile, commands.PathArgs{Path: missing})
	require.Error(t, err)

	entries, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, written, entries[0].Path)
	assert.Equal(t, 2, entries[0].Count)
}

func TestListRemoveClear(t *testing.T) {
	r, store := setup(t)
	require.NoError(t, store.Touch("/a.md", time.Unix(100, 0)))
	require.NoError(t, store.Touch("/b.md", time.Unix(200, 0)))

	got, err := invoke(t, r, commands.PluginCommand(PluginName, "list"), map[string]int{"limit": 1})
	require.NoError(t, err)
	entries := got.([]storage.RecentEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, "/b.md", entries[0].Path)

	_, err = invoke(t, r, commands.PluginCommand(PluginName, "remove"), commands.PathArgs{Path: "/b.md"})
	require.NoError(t, err)
	_, err = invoke(t, r, commands.PluginCommand(PluginName, "remove"), commands.PathArgs{Path: "/b.md"})
	assert.ErrorContains(t, err, "entry not found")

	got, err = invoke(t, r, commands.PluginCommand(PluginName, "list"), struct{}{})
	require.NoError(t, err)
	entries = got.([]storage.RecentEntry)
	require.Len(t, entries, 1)
	assert.Equal(t, "/a.md", entries[0].Path)

	_, err = invoke(t, r, commands.PluginCommand(PluginName, "clear"), nil)
	require.NoError(t, err)

	got, err = invoke(t, r, commands.PluginCommand(PluginName, "list"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
