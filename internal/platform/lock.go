package platform

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrAlreadyRunning is returned when another host holds the instance lock.
var ErrAlreadyRunning = errors.New("another marker host is already running")

// InstanceLock is held for the lifetime of a host process.
type InstanceLock struct {
	path string
	file *os.File
}

// AcquireInstanceLock takes the lock file at path without blocking and
// records the current PID in it.
func AcquireInstanceLock(path string) (*InstanceLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.Truncate(0); err == nil {
		f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
	}
	return &InstanceLock{path: path, file: f}, nil
}

// Release drops the lock.
func (l *InstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockFile(l.file)
	err := l.file.Close()
	l.file = nil
	return err
}

// ReadLockPID returns the PID recorded in the lock file at path.
func ReadLockPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID in lock file: %q", string(data))
	}
	return pid, nil
}
