package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CreateSymlink creates a symbolic link at link pointing to target.
// On Windows this requires developer mode or elevated privileges; the
// error is annotated so the operator knows why it failed.
func CreateSymlink(target, link string) error {
	err := os.Symlink(target, link)
	if err != nil && runtime.GOOS == "windows" {
		return fmt.Errorf("%w (enable Windows developer mode to allow symlinks)", err)
	}
	return err
}

// RemoveSymlink removes a symlink without touching its target.
func RemoveSymlink(path string) error {
	return os.Remove(path)
}

// ReadSymlinkTarget returns the recorded target of a symlink, unresolved.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// IsSymlinkSupported returns true if the current platform can create native symlinks.
// On Windows this attempts a test symlink to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	dir, err := os.MkdirTemp("", "symlink-probe")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	if err := os.Symlink(dir, filepath.Join(dir, "probe")); err != nil {
		return false
	}
	return true
}
