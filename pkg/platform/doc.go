// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes the runtime.GOOS string literals used when
// behavior differs per operating system, such as locating the
// configuration directory.
package platform
