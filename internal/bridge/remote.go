package bridge

import (
	"context"

	"github.com/berrythewa/marker/internal/ipc"
)

// Remote dispatches to a host over its IPC socket.
type Remote struct {
	client *ipc.Client
}

// NewRemote creates an invoker for the host listening on socketPath.
func NewRemote(socketPath string) *Remote {
	return &Remote{client: ipc.NewClient(socketPath)}
}

func (r *Remote) Invoke(ctx context.Context, command string, args any, out any) error {
	raw, err := encodeArgs(args)
	if err != nil {
		return err
	}

	resp, err := r.client.Call(ctx, command, raw)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &InvokeError{Command: command, Message: resp.Message}
	}
	return decodeResult(resp.Data, out)
}

// Available reports whether a host is listening.
func (r *Remote) Available(ctx context.Context) bool {
	return r.client.Ping(ctx)
}
