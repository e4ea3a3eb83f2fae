// SPDX-License-Identifier: MPL-2.0

// Package launch executes a picked catalog entry: plain entries replace the
// launcher process, terminal entries are wrapped in the configured terminal
// runner first, and detached entries are started in their own session and
// released.
package launch
