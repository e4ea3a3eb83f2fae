// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// execReplace replaces the launcher process with the target, execvp-style.
// It returns only on failure.
func execReplace(path string, argv []string) error {
	if err := unix.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("cannot exec %q: %w", path, err)
	}
	return nil
}

// detachAttr puts the detached child in its own session so it survives the
// launcher's terminal going away.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
