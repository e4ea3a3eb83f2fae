// SPDX-License-Identifier: MPL-2.0

//go:build unix

package source

import "golang.org/x/sys/unix"

// canExecute reports whether the current user may execute path, using the
// same access(2) check a shell would make before running it.
func canExecute(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
