// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// SourceDesktop discovers applications from freedesktop .desktop files.
	SourceDesktop SourceName = "desktop"
	// SourcePath discovers executables on the $PATH search path.
	SourcePath SourceName = "path"

	// sourceXDGAlias is accepted in config files as a legacy spelling of
	// SourceDesktop.
	sourceXDGAlias SourceName = "xdg"
)

var (
	// ErrInvalidListSize is returned when a ListSize value is not positive.
	ErrInvalidListSize = errors.New("invalid list size")
	// ErrInvalidTerminalRunner is returned when a TerminalRunner value is whitespace-only.
	ErrInvalidTerminalRunner = errors.New("invalid terminal runner")
	// ErrInvalidSourceName is returned when a SourceName value is not recognized.
	ErrInvalidSourceName = errors.New("invalid source name")
	// ErrInvalidPluginEntry is the sentinel error wrapped by InvalidPluginEntryError.
	ErrInvalidPluginEntry = errors.New("invalid plugin entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// SourceName identifies one of the built-in entry sources.
	SourceName string

	// InvalidSourceNameError is returned when a SourceName value is not recognized.
	// It wraps ErrInvalidSourceName for errors.Is() compatibility.
	InvalidSourceNameError struct {
		Value SourceName
	}

	// ListSize is the number of rows the interactive picker shows at once.
	// A valid size is positive.
	ListSize int

	// InvalidListSizeError is returned when a ListSize value is zero or negative.
	// It wraps ErrInvalidListSize for errors.Is() compatibility.
	InvalidListSizeError struct {
		Value ListSize
	}

	// TerminalRunner is the command template used to launch terminal
	// applications. It may reference $DISPLAY_NAME, $BINARY, $FLAGS and
	// $COMMAND; see Config.TerminalCommand. A valid template is non-empty
	// and not whitespace-only.
	TerminalRunner string

	// InvalidTerminalRunnerError is returned when a TerminalRunner value is
	// empty or whitespace-only. It wraps ErrInvalidTerminalRunner for errors.Is().
	InvalidTerminalRunnerError struct {
		Value TerminalRunner
	}

	// PluginEntry configures one scripted entry source.
	PluginEntry struct {
		// Name optionally overrides the display name reported by the script.
		Name string `json:"name,omitempty" mapstructure:"name" toml:"name,omitempty"`
		// Path is the filesystem path to the plugin script.
		Path string `json:"path" mapstructure:"path" toml:"path"`
	}

	// InvalidPluginEntryError is returned when a PluginEntry has invalid fields.
	// It wraps ErrInvalidPluginEntry for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidPluginEntryError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		// Language selects localized display names from desktop entries,
		// e.g. "pt_BR". Empty means derive from $LANG.
		Language string `json:"language" mapstructure:"language" toml:"language"`
		// ListSize is the number of rows the interactive picker shows.
		ListSize ListSize `json:"list_size" mapstructure:"list_size" toml:"list_size"`
		// TerminalRunner is the template used to run terminal applications.
		TerminalRunner TerminalRunner `json:"terminal_runner" mapstructure:"terminal_runner" toml:"terminal_runner"`
		// Sources lists the built-in entry sources to start, in priority order.
		Sources []SourceName `json:"sources" mapstructure:"sources" toml:"sources"`
		// Plugins lists scripted entry sources to start after the built-ins.
		Plugins []PluginEntry `json:"plugins,omitempty" mapstructure:"plugins" toml:"plugins,omitempty"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}
)

// String returns the string representation of the SourceName.
func (s SourceName) String() string { return string(s) }

// Canonical maps legacy spellings to their current names. Unknown values
// pass through unchanged so IsValid can report them.
func (s SourceName) Canonical() SourceName {
	if s == sourceXDGAlias {
		return SourceDesktop
	}
	return s
}

// IsValid returns whether the SourceName is one of the defined sources,
// and a list of validation errors if it is not.
func (s SourceName) IsValid() (bool, []error) {
	switch s.Canonical() {
	case SourceDesktop, SourcePath:
		return true, nil
	default:
		return false, []error{&InvalidSourceNameError{Value: s}}
	}
}

// Error implements the error interface for InvalidSourceNameError.
func (e *InvalidSourceNameError) Error() string {
	return fmt.Sprintf("invalid source name %q (valid: desktop, path)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidSourceNameError) Unwrap() error { return ErrInvalidSourceName }

// IsValid returns whether the ListSize is positive, and a list of
// validation errors if it is not.
func (s ListSize) IsValid() (bool, []error) {
	if s <= 0 {
		return false, []error{&InvalidListSizeError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidListSizeError.
func (e *InvalidListSizeError) Error() string {
	return fmt.Sprintf("invalid list size %d: must be positive", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidListSizeError) Unwrap() error { return ErrInvalidListSize }

// String returns the string representation of the TerminalRunner.
func (t TerminalRunner) String() string { return string(t) }

// IsValid returns whether the TerminalRunner is valid.
// A valid template must be non-empty and not whitespace-only.
func (t TerminalRunner) IsValid() (bool, []error) {
	if strings.TrimSpace(string(t)) == "" {
		return false, []error{&InvalidTerminalRunnerError{Value: t}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTerminalRunnerError.
func (e *InvalidTerminalRunnerError) Error() string {
	return fmt.Sprintf("invalid terminal runner %q: must be non-empty", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidTerminalRunnerError) Unwrap() error { return ErrInvalidTerminalRunner }

// IsValid returns whether the PluginEntry has valid fields. Path must be
// non-empty and not whitespace-only; Name is free-form.
func (e PluginEntry) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(e.Path) == "" {
		errs = append(errs, fmt.Errorf("plugin %q: path must be non-empty", e.Name))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPluginEntryError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPluginEntryError.
func (e *InvalidPluginEntryError) Error() string {
	return fmt.Sprintf("invalid plugin entry: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidPluginEntry for errors.Is() compatibility.
func (e *InvalidPluginEntryError) Unwrap() error { return ErrInvalidPluginEntry }

// IsValid returns whether the Config has valid fields.
// It delegates to ListSize.IsValid(), TerminalRunner.IsValid(), each
// source name's IsValid(), and each plugin entry's IsValid().
// Language and UI have no constraints.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ListSize.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.TerminalRunner.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, src := range c.Sources {
		if valid, fieldErrs := src.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, plugin := range c.Plugins {
		if valid, fieldErrs := plugin.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// EffectiveLanguage resolves the language used for localized desktop names.
// An explicit Language wins; otherwise $LANG supplies one ("pt_BR.UTF-8"
// yields "pt_BR"). Empty means no localization.
func (c *Config) EffectiveLanguage(env func(string) string) string {
	if c.Language != "" {
		return c.Language
	}
	lang := env("LANG")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return ""
	}
	lang, _, _ = strings.Cut(lang, ".")
	return lang
}

// TerminalCommand renders the terminal runner template for one entry.
// displayName and execName come from the entry; argv is its full launch
// command. Substitutions are applied in order: $DISPLAY_NAME, $BINARY
// (the bare executable name), $FLAGS (the arguments after the executable)
// and $COMMAND (executable plus arguments).
func (c *Config) TerminalCommand(displayName, execName string, argv []string) string {
	flags := ""
	if len(argv) > 1 {
		flags = strings.Join(argv[1:], " ")
	}
	command := strings.TrimSpace(execName + " " + flags)
	subs := [...][2]string{
		{"$DISPLAY_NAME", displayName},
		{"$BINARY", execName},
		{"$FLAGS", flags},
		{"$COMMAND", command},
	}
	raw := string(c.TerminalRunner)
	for _, sub := range subs {
		raw = strings.ReplaceAll(raw, sub[0], sub[1])
	}
	return raw
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Language:       "", // Will use $LANG if empty
		ListSize:       15,
		TerminalRunner: "x-terminal-emulator -e $COMMAND",
		Sources:        []SourceName{SourceDesktop, SourcePath},
		Plugins:        []PluginEntry{},
		UI: UIConfig{
			Verbose: false,
		},
	}
}
