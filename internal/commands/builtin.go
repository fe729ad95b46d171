package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"
)

// Names of the built-in commands.
const (
	CommandGreet     = "greet"
	CommandReadFile  = "read_file"
	CommandWriteFile = "write_file"
)

const greetingFormat = "Hello, %s! You've been greeted from Go!"

// ErrInvalidUTF8 is reported when a file read as text is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// GreetArgs are the arguments of greet.
type GreetArgs struct {
	Name string `json:"name"`
}

// PathArgs are the arguments of read_file.
type PathArgs struct {
	Path string `json:"path"`
}

// WriteArgs are the arguments of write_file.
type WriteArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Greet formats the greeting for name. name is used verbatim.
func Greet(name string) string {
	return fmt.Sprintf(greetingFormat, name)
}

// ReadFile returns the full contents of the file at path as text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", &fs.PathError{Op: "read", Path: path, Err: ErrInvalidUTF8}
	}
	return string(data), nil
}

// WriteFile writes content to path, creating or truncating the file.
// The write is neither atomic nor synced.
func WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// RegisterBuiltins registers greet, read_file and write_file on r.
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		name    string
		handler Handler
	}{
		{CommandGreet, greetHandler},
		{CommandReadFile, readFileHandler},
		{CommandWriteFile, writeFileHandler},
	}
	for _, b := range builtins {
		if err := r.Register(b.name, b.handler); err != nil {
			return err
		}
	}
	return nil
}

func greetHandler(_ context.Context, raw json.RawMessage) (any, error) {
	var args GreetArgs
	if err := DecodeArgs(CommandGreet, raw, &args, "name"); err != nil {
		return nil, err
	}
	return Greet(args.Name), nil
}

func readFileHandler(_ context.Context, raw json.RawMessage) (any, error) {
	var args PathArgs
	if err := DecodeArgs(CommandReadFile, raw, &args, "path"); err != nil {
		return nil, err
	}
	content, err := ReadFile(args.Path)
	if err != nil {
		return nil, failure(CommandReadFile, err)
	}
	return content, nil
}

func writeFileHandler(_ context.Context, raw json.RawMessage) (any, error) {
	var args WriteArgs
	if err := DecodeArgs(CommandWriteFile, raw, &args, "path", "content"); err != nil {
		return nil, err
	}
	if err := WriteFile(args.Path, args.Content); err != nil {
		return nil, failure(CommandWriteFile, err)
	}
	return nil, nil
}
