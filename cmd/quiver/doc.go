// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for quiver.
//
// This package implements the Cobra command hierarchy: the root command
// (which opens the picker on a terminal and degrades to a plain listing
// otherwise) and subcommands for running, listing, configuration, and
// version information.
package cmd
