package ipc

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrythewa/marker/internal/commands"
)

// shortSocketPath keeps socket paths under the platform sun_path limit.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "mk")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "ipc.sock")
}

func startServer(t *testing.T) *Client {
	t.Helper()
	registry, err := commands.Build(nil)
	require.NoError(t, err)

	socket := shortSocketPath(t)
	ln, err := Listen(socket)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(socket, registry, nil).Serve(ctx, ln) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return NewClient(socket)
}

func TestGreetOverSocket(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	req := NewRequest(commands.CommandGreet, json.RawMessage(`{"name":"Alice"}`))
	resp, err := client.Do(ctx, req)
	require.NoError(t, err)
	require.True(t, resp.OK(), resp.Message)
	assert.Equal(t, req.ID, resp.ID)

	var greeting string
	require.NoError(t, json.Unmarshal(resp.Data, &greeting))
	assert.Equal(t, "Hello, Alice! You've been greeted from Go!", greeting)
}

func TestFileRoundTripOverSocket(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")

	args, _ := json.Marshal(commands.WriteArgs{Path: path, Content: "# Round trip"})
	resp, err := client.Call(ctx, commands.CommandWriteFile, args)
	require.NoError(t, err)
	require.True(t, resp.OK(), resp.Message)
	assert.Empty(t, resp.Data)

	args, _ = json.Marshal(commands.PathArgs{Path: path})
	resp, err = client.Call(ctx, commands.CommandReadFile, args)
	require.NoError(t, err)
	require.True(t, resp.OK(), resp.Message)

	var content string
	require.NoError(t, json.Unmarshal(resp.Data, &content))
	assert.Equal(t, "# Round trip", content)
}

func TestErrorsOverSocket(t *testing.T) {
	client := startServer(t)
	ctx := context.Background()

	args, _ := json.Marshal(commands.PathArgs{Path: filepath.Join(t.TempDir(), "missing.md")})
	resp, err := client.Call(ctx, commands.CommandReadFile, args)
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "no such file")

	resp, err = client.Call(ctx, "format_disk", nil)
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "unknown command")
}

func TestMalformedRequest(t *testing.T) {
	client := startServer(t)

	conn, err := net.Dial("unix", client.SocketPath())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("not json\n"))
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.NewDecoder(conn).Decode(&resp))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "invalid request")
}

func TestPing(t *testing.T) {
	client := startServer(t)
	assert.True(t, client.Ping(context.Background()))

	absent := NewClient(shortSocketPath(t))
	assert.False(t, absent.Ping(context.Background()))
}

func TestClientNoServer(t *testing.T) {
	client := NewClient(shortSocketPath(t))
	client.delay = time.Millisecond

	_, err := client.Call(context.Background(), commands.CommandGreet, nil)
	assert.ErrorContains(t, err, "failed to connect")
}

func TestListenRemovesStaleSocket(t *testing.T) {
	socket := shortSocketPath(t)
	require.NoError(t, os.WriteFile(socket, nil, 0o600))

	ln, err := Listen(socket)
	require.NoError(t, err)
	ln.Close()
}
