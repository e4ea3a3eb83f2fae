// SPDX-License-Identifier: MPL-2.0

// Package source implements the catalog's entry producers: freedesktop
// .desktop files from the XDG data directories, executables on $PATH, and
// user plugins that emit entries as JSON lines from a shell script.
//
// Every source is pull-based and fails soft. Start never returns an error;
// a source that cannot do its job logs the reason and reports exhaustion,
// so a broken plugin or unreadable directory costs its own entries and
// nothing else.
package source
