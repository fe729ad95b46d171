//go:build linux || darwin || freebsd

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// Detach starts executable with args as a new session leader with its
// standard streams on /dev/null, and returns its PID.
func Detach(executable string, args []string, workDir string) (int, error) {
	cmd := exec.Command(executable, args...)
	cmd.Dir = workDir

	nullDev, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer nullDev.Close()

	cmd.Stdin = nullDev
	cmd.Stdout = nullDev
	cmd.Stderr = nullDev
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start background process: %w", err)
	}
	pid := cmd.Process.Pid
	cmd.Process.Release()
	return pid, nil
}

// IsDetached reports whether the current process leads its own session.
func IsDetached() bool {
	sid, err := unix.Getsid(0)
	if err != nil {
		return false
	}
	return sid == os.Getpid()
}
