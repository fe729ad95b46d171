package commands

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreet(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Alice", "Hello, Alice! You've been greeted from Go!"},
		{"Bob", "Hello, Bob! You've been greeted from Go!"},
		{"", "Hello, ! You've been greeted from Go!"},
		{"  {name} %s ", "Hello,   {name} %s ! You've been greeted from Go!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Greet(tt.name))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NotEmpty(t, err.Error())
}

func TestReadFileDirectory(t *testing.T) {
	_, err := ReadFile(t.TempDir())
	assert.Error(t, err)
}

func TestReadFileInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0xfd}, 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestReadFileNoPermission(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	path := filepath.Join(t.TempDir(), "locked.md")
	require.NoError(t, os.WriteFile(path, []byte("secret"), 0o000))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}

// Runs for every user, including root, where permission bits are not
// enforced.
func TestReadFileUnreachablePath(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.md")
	require.NoError(t, os.WriteFile(file, []byte("plain"), 0o644))
	path := filepath.Join(file, "child.md")

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidUTF8)
	assert.Contains(t, err.Error(), path)

	r, err := Build(nil)
	require.NoError(t, err)
	_, err = r.Invoke(context.Background(), CommandReadFile, json.RawMessage(`{"path":"`+filepath.ToSlash(path)+`"}`))
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, CommandReadFile, cmdErr.Command)
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	contents := []string{"", "# Title\n\nbody", "ünïcødé ✓", "line1\r\nline2\n"}

	for _, content := range contents {
		require.NoError(t, WriteFile(path, content))
		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	}
}

func TestWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, WriteFile(path, "a much longer first version"))
	require.NoError(t, WriteFile(path, "short"))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "nope", "note.md"), "x")
	assert.Error(t, err)
}

func TestBuiltinHandlers(t *testing.T) {
	r, err := Build(nil)
	require.NoError(t, err)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")

	t.Run("Greet", func(t *testing.T) {
		got, err := r.Invoke(ctx, CommandGreet, json.RawMessage(`{"name":"Alice"}`))
		require.NoError(t, err)
		assert.Equal(t, "Hello, Alice! You've been greeted from Go!", got)
	})

	t.Run("GreetMissingName", func(t *testing.T) {
		_, err := r.Invoke(ctx, CommandGreet, json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrInvalidArgs)
	})

	t.Run("GreetWrongType", func(t *testing.T) {
		_, err := r.Invoke(ctx, CommandGreet, json.RawMessage(`{"name":42}`))
		assert.ErrorIs(t, err, ErrInvalidArgs)
	})

	t.Run("WriteAndRead", func(t *testing.T) {
		args, _ := json.Marshal(WriteArgs{Path: path, Content: "# hi"})
		got, err := r.Invoke(ctx, CommandWriteFile, args)
		require.NoError(t, err)
		assert.Nil(t, got)

		args, _ = json.Marshal(PathArgs{Path: path})
		got, err = r.Invoke(ctx, CommandReadFile, args)
		require.NoError(t, err)
		assert.Equal(t, "# hi", got)
	})

	t.Run("WriteEmptyContent", func(t *testing.T) {
		args, _ := json.Marshal(WriteArgs{Path: path, Content: ""})
		_, err := r.Invoke(ctx, CommandWriteFile, args)
		require.NoError(t, err)
	})

	t.Run("WriteMissingContent", func(t *testing.T) {
		args, _ := json.Marshal(PathArgs{Path: path})
		_, err := r.Invoke(ctx, CommandWriteFile, args)
		assert.ErrorIs(t, err, ErrInvalidArgs)
	})

	t.Run("ReadMissingFile", func(t *testing.T) {
		args, _ := json.Marshal(PathArgs{Path: path + ".missing"})
		_, err := r.Invoke(ctx, CommandReadFile, args)
		require.Error(t, err)

		var cmdErr *CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, CommandReadFile, cmdErr.Command)
		assert.Contains(t, cmdErr.Message, "no such file")
	})
}
