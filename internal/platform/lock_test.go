package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker.lock")

	lock, err := AcquireInstanceLock(path)
	require.NoError(t, err)

	pid, err := ReadLockPID(path)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	_, err = AcquireInstanceLock(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := AcquireInstanceLock(path)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestReadLockPIDInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker.lock")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	_, err := ReadLockPID(path)
	assert.Error(t, err)

	_, err = ReadLockPID(filepath.Join(t.TempDir(), "absent.lock"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
