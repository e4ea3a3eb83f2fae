// SPDX-License-Identifier: MPL-2.0

package source

import (
	"testing"

	"quiver-cli/internal/config"
	"quiver-cli/internal/testutil"
)

func TestPathSource_Name(t *testing.T) {
	t.Parallel()
	if got := newPathSource().Name(); got != "Raw $PATH Variable" {
		t.Errorf("Name() = %q, want %q", got, "Raw $PATH Variable")
	}
}

func TestPathSource_Next_EmptyPath(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, "PATH", ""))

	src := newPathSource()
	src.Start(config.DefaultConfig())
	if ent, ok := src.Next(); ok {
		t.Errorf("expected immediate exhaustion, got %+v", ent)
	}
}

func TestPathSource_Next_MissingDirectory(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, "PATH", "/does/not/exist"))

	src := newPathSource()
	src.Start(config.DefaultConfig())
	if ent, ok := src.Next(); ok {
		t.Errorf("expected immediate exhaustion, got %+v", ent)
	}
}
