package opener

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/marker/internal/commands"
)

type recordingOpener struct {
	opened []*url.URL
	err    error
}

func (o *recordingOpener) OpenURL(u *url.URL) error {
	o.opened = append(o.opened, u)
	return o.err
}

func TestParseTarget(t *testing.T) {
	u, err := ParseTarget("https://example.com/docs?q=1")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "example.com", u.Host)

	u, err = ParseTarget("notes/today.md")
	require.NoError(t, err)
	assert.Equal(t, "file", u.Scheme)
	assert.True(t, filepath.IsAbs(filepath.FromSlash(u.Path)) || filepath.VolumeName(u.Path) != "")
	assert.Contains(t, u.Path, "notes/today.md")

	_, err = ParseTarget("")
	assert.Error(t, err)
}

func TestOpenURLCommand(t *testing.T) {
	rec := &recordingOpener{}
	r, err := commands.Build(nil, New(rec, nil))
	require.NoError(t, err)
	name := commands.PluginCommand(PluginName, "open_url")

	_, err = r.Invoke(context.Background(), name, json.RawMessage(`{"url":"https://fyne.io"}`))
	require.NoError(t, err)
	require.Len(t, rec.opened, 1)
	assert.Equal(t, "https://fyne.io", rec.opened[0].String())

	_, err = r.Invoke(context.Background(), name, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, commands.ErrInvalidArgs)

	rec.err = errors.New("no handler for scheme")
	_, err = r.Invoke(context.Background(), name, json.RawMessage(`{"url":"mailto:someone@example.com"}`))
	assert.EqualError(t, err, "no handler for scheme")
}
