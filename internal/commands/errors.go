package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned when no handler is registered under a name.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidArgs is returned when arguments cannot be decoded for a handler.
	ErrInvalidArgs = errors.New("invalid args")
	// ErrDuplicateCommand is returned when a name is registered twice.
	ErrDuplicateCommand = errors.New("command already registered")
	// ErrFrozen is returned when registering after the registry was frozen.
	ErrFrozen = errors.New("registry is frozen")
)

// CommandError is the failure result of a handler. Message is the opaque,
// human-readable description handed back to the caller.
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// failure converts err into the string-shaped error callers see.
func failure(command string, err error) error {
	return &CommandError{Command: command, Message: err.Error()}
}

// invalidArgs mirrors the shape of the host's argument decoding errors.
func invalidArgs(command, key string, err error) error {
	return fmt.Errorf("%w `%s` for command `%s`: %v", ErrInvalidArgs, key, command, err)
}
