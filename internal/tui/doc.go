// SPDX-License-Identifier: MPL-2.0

// Package tui implements the interactive picker: a search field over the
// catalog with an incrementally filtered result list. Every keystroke
// re-runs the search, which may pull more entries out of the sources, so
// all catalog access stays on the update loop.
package tui
