// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package launch

import (
	"os"
	"os/exec"
	"syscall"
)

// execReplace approximates process replacement where exec(2) does not
// exist: run the target with inherited stdio and report its outcome.
func execReplace(path string, argv []string) error {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	return cmd.Run()
}

// detachAttr has no session handling to do here; Release alone detaches.
func detachAttr() *syscall.SysProcAttr {
	return nil
}
