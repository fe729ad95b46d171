// Package bridge is the front end's side of the invocation boundary. An
// Invoker takes a command name and its named arguments, hands them to the
// host, and decodes the host's reply.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
)

// Invoker calls host commands. args is encoded as a JSON object of named
// parameters (a struct or map); out, when non-nil, receives the decoded
// result.
type Invoker interface {
	Invoke(ctx context.Context, command string, args any, out any) error
}

// InvokeError is a failed call as the front end sees it: a command name and
// an opaque message.
type InvokeError struct {
	Command string
	Message string
}

func (e *InvokeError) Error() string {
	return e.Message
}

// Args is a convenience type for ad hoc argument objects.
type Args map[string]any

func encodeArgs(args any) (json.RawMessage, error) {
	if args == nil {
		return nil, nil
	}
	if raw, ok := args.(json.RawMessage); ok {
		return raw, nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments: %w", err)
	}
	return data, nil
}

func decodeResult(data json.RawMessage, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}
