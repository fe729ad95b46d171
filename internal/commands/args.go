package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var nullArgs = []byte("null")

// DecodeArgs decodes the named arguments of a call into dst. Every key listed
// in required must be present and non-null.
func DecodeArgs(command string, raw json.RawMessage, dst any, required ...string) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, nullArgs) {
		raw = json.RawMessage("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w for command `%s`: arguments must be an object", ErrInvalidArgs, command)
	}
	for _, key := range required {
		v, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), nullArgs) {
			return invalidArgs(command, key, fmt.Errorf("command %s missing required key %s", command, key))
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return invalidArgs(command, typeErr.Field, fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value))
		}
		return fmt.Errorf("%w for command `%s`: %v", ErrInvalidArgs, command, err)
	}
	return nil
}
