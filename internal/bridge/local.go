package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/berrythewa/marker/internal/ipc"
)

// Local dispatches into an in-process host. Arguments and results still go
// through JSON so callers see exactly what a remote host would return.
type Local struct {
	dispatcher ipc.Dispatcher
}

// NewLocal wraps an in-process dispatcher such as *commands.Registry.
func NewLocal(dispatcher ipc.Dispatcher) *Local {
	return &Local{dispatcher: dispatcher}
}

func (l *Local) Invoke(ctx context.Context, command string, args any, out any) error {
	raw, err := encodeArgs(args)
	if err != nil {
		return err
	}

	result, err := l.dispatcher.Invoke(ctx, command, raw)
	if err != nil {
		return &InvokeError{Command: command, Message: err.Error()}
	}
	if result == nil || out == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return decodeResult(data, out)
}
