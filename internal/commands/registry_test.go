package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name  string
	setup func(r *Registry) error
}

func (p stubPlugin) Name() string            { return p.name }
func (p stubPlugin) Setup(r *Registry) error { return p.setup(r) }

func echoHandler(_ context.Context, args json.RawMessage) (any, error) {
	return string(args), nil
}

func TestRegistryUnknownCommand(t *testing.T) {
	r, err := Build(nil)
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), "delete_everything", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRegistryNames(t *testing.T) {
	r, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{CommandGreet, CommandReadFile, CommandWriteFile}, r.Names())
	assert.True(t, r.Has(CommandGreet))
	assert.False(t, r.Has("open"))
}

func TestRegistryDuplicate(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register("echo", echoHandler))
	assert.ErrorIs(t, r.Register("echo", echoHandler), ErrDuplicateCommand)
}

func TestRegistryFrozen(t *testing.T) {
	r := New(nil)
	r.Freeze()
	assert.ErrorIs(t, r.Register("echo", echoHandler), ErrFrozen)
	assert.ErrorIs(t, r.Observe("echo", nil), ErrFrozen)
}

func TestRegistryPanicBecomesCommandError(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register("boom", func(context.Context, json.RawMessage) (any, error) {
		panic("kaboom")
	}))

	_, err := r.Invoke(context.Background(), "boom", nil)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "kaboom", cmdErr.Message)
}

func TestRegistryHooks(t *testing.T) {
	var calls []Call
	plugin := stubPlugin{name: "spy", setup: func(r *Registry) error {
		if err := r.Register(PluginCommand("spy", "echo"), echoHandler); err != nil {
			return err
		}
		return r.Observe(CommandGreet, func(_ context.Context, c Call) error {
			calls = append(calls, c)
			return errors.New("hook errors are only logged")
		})
	}}

	r, err := Build(nil, plugin)
	require.NoError(t, err)
	assert.True(t, r.Has("plugin:spy|echo"))

	got, err := r.Invoke(context.Background(), CommandGreet, json.RawMessage(`{"name":"Ann"}`))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ann! You've been greeted from Go!", got)

	_, err = r.Invoke(context.Background(), CommandGreet, json.RawMessage(`{}`))
	require.Error(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, CommandGreet, calls[0].Command)
	assert.Equal(t, got, calls[0].Result)
}

func TestBuildPluginError(t *testing.T) {
	plugin := stubPlugin{name: "clash", setup: func(r *Registry) error {
		return r.Register(CommandGreet, echoHandler)
	}}

	_, err := Build(nil, plugin)
	assert.ErrorIs(t, err, ErrDuplicateCommand)
}

func TestDecodeArgs(t *testing.T) {
	var args WriteArgs

	require.NoError(t, DecodeArgs("write_file", json.RawMessage(`{"path":"a","content":""}`), &args, "path", "content"))
	assert.Equal(t, WriteArgs{Path: "a"}, args)

	assert.ErrorIs(t, DecodeArgs("write_file", json.RawMessage(`[1,2]`), &args), ErrInvalidArgs)
	assert.ErrorIs(t, DecodeArgs("write_file", json.RawMessage(`{"path":null}`), &args, "path"), ErrInvalidArgs)

	var empty struct{}
	assert.NoError(t, DecodeArgs("noop", nil, &empty))
}
