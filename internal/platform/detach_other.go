//go:build !linux && !darwin && !freebsd

package platform

import "errors"

// Detach is not supported on this platform.
func Detach(executable string, args []string, workDir string) (int, error) {
	return 0, errors.New("running in the background is not supported on this platform")
}

// IsDetached always reports false on this platform.
func IsDetached() bool {
	return false
}
