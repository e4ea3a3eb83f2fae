// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/quiver/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/quiver/config.toml on macOS, %APPDATA%\quiver\config.toml
// on Windows). The package provides type-safe configuration access and covers the entry
// sources to scan, scripted plugins, the terminal runner template, display language, and
// UI settings.
//
// Values resolve in layers: built-in defaults, then the config file, then QUIVER_*
// environment variables.
package config
