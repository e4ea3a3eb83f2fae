// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package source

import (
	"os"
	"path/filepath"
	"strings"
)

// canExecute approximates executability where access(2) is unavailable. On
// Windows the shell decides by extension, so PATHEXT (defaulting to the
// usual .COM/.EXE/.BAT/.CMD set) is the authority.
func canExecute(path string) bool {
	exts := os.Getenv("PATHEXT")
	if exts == "" {
		exts = ".COM;.EXE;.BAT;.CMD"
	}
	ext := filepath.Ext(path)
	for _, candidate := range strings.Split(exts, ";") {
		if candidate != "" && strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}
