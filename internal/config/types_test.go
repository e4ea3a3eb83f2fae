// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Language != "" {
		t.Errorf("expected default language to be empty, got %q", cfg.Language)
	}

	if cfg.ListSize != 15 {
		t.Errorf("expected default list size to be 15, got %d", cfg.ListSize)
	}

	if cfg.TerminalRunner != "x-terminal-emulator -e $COMMAND" {
		t.Errorf("unexpected default terminal runner: %q", cfg.TerminalRunner)
	}

	if len(cfg.Sources) != 2 || cfg.Sources[0] != SourceDesktop || cfg.Sources[1] != SourcePath {
		t.Errorf("expected default sources [desktop path], got %v", cfg.Sources)
	}

	if len(cfg.Plugins) != 0 {
		t.Errorf("expected default plugins to be empty, got %v", cfg.Plugins)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}

	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestSourceName_Canonical(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   SourceName
		want SourceName
	}{
		{SourceDesktop, SourceDesktop},
		{SourcePath, SourcePath},
		{"xdg", SourceDesktop},
		{"bogus", "bogus"},
	}
	for _, tt := range tests {
		if got := tt.in.Canonical(); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourceName_IsValid(t *testing.T) {
	t.Parallel()
	for _, name := range []SourceName{SourceDesktop, SourcePath, "xdg"} {
		if valid, errs := name.IsValid(); !valid {
			t.Errorf("%q should be valid, got %v", name, errs)
		}
	}

	valid, errs := SourceName("lua").IsValid()
	if valid {
		t.Fatal("unknown source name should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidSourceName) {
		t.Errorf("error should wrap ErrInvalidSourceName, got %v", errs[0])
	}
}

func TestListSize_IsValid(t *testing.T) {
	t.Parallel()
	if valid, _ := ListSize(15).IsValid(); !valid {
		t.Error("15 should be a valid list size")
	}
	for _, size := range []ListSize{0, -1} {
		valid, errs := size.IsValid()
		if valid {
			t.Errorf("%d should be an invalid list size", size)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidListSize) {
			t.Errorf("error should wrap ErrInvalidListSize, got %v", errs[0])
		}
	}
}

func TestTerminalRunner_IsValid(t *testing.T) {
	t.Parallel()
	if valid, _ := TerminalRunner("xterm -e $COMMAND").IsValid(); !valid {
		t.Error("non-empty runner should be valid")
	}
	for _, runner := range []TerminalRunner{"", "   ", "\t"} {
		valid, errs := runner.IsValid()
		if valid {
			t.Errorf("%q should be an invalid terminal runner", runner)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidTerminalRunner) {
			t.Errorf("error should wrap ErrInvalidTerminalRunner, got %v", errs[0])
		}
	}
}

func TestPluginEntry_IsValid(t *testing.T) {
	t.Parallel()
	valid, _ := PluginEntry{Name: "games", Path: "/opt/quiver/games.sh"}.IsValid()
	if !valid {
		t.Error("plugin entry with path should be valid")
	}

	valid, errs := PluginEntry{Name: "broken"}.IsValid()
	if valid {
		t.Fatal("plugin entry without path should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidPluginEntry) {
		t.Errorf("error should wrap ErrInvalidPluginEntry, got %v", errs[0])
	}
}

func TestConfig_IsValid_CollectsFieldErrors(t *testing.T) {
	t.Parallel()
	cfg := Config{
		ListSize:       0,
		TerminalRunner: "  ",
		Sources:        []SourceName{"desktop", "bogus"},
		Plugins:        []PluginEntry{{Name: "nopath"}},
	}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("config with bad fields should be invalid")
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}
}

func TestConfig_TerminalCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		runner      TerminalRunner
		displayName string
		execName    string
		argv        []string
		want        string
	}{
		{
			name:        "bare command, no arguments",
			runner:      "$COMMAND",
			displayName: "Firefox",
			execName:    "firefox",
			argv:        []string{"firefox"},
			want:        "firefox",
		},
		{
			name:        "command with arguments",
			runner:      "xterm -e $COMMAND",
			displayName: "Media Player",
			execName:    "mpv",
			argv:        []string{"/usr/bin/mpv", "--fs", "video.mp4"},
			want:        "xterm -e mpv --fs video.mp4",
		},
		{
			name:        "binary and flags separately",
			runner:      "run $BINARY with $FLAGS",
			displayName: "Media Player",
			execName:    "mpv",
			argv:        []string{"/usr/bin/mpv", "--fs", "video.mp4"},
			want:        "run mpv with --fs video.mp4",
		},
		{
			name:        "display name substitution",
			runner:      "kitty --title $DISPLAY_NAME $COMMAND",
			displayName: "Htop",
			execName:    "htop",
			argv:        []string{"htop"},
			want:        "kitty --title Htop htop",
		},
		{
			name:        "template without placeholders",
			runner:      "x-terminal-emulator",
			displayName: "Htop",
			execName:    "htop",
			argv:        []string{"htop"},
			want:        "x-terminal-emulator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{TerminalRunner: tt.runner}
			got := cfg.TerminalCommand(tt.displayName, tt.execName, tt.argv)
			if got != tt.want {
				t.Errorf("TerminalCommand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_EffectiveLanguage(t *testing.T) {
	t.Parallel()
	env := func(vars map[string]string) func(string) string {
		return func(key string) string { return vars[key] }
	}

	tests := []struct {
		name     string
		language string
		vars     map[string]string
		want     string
	}{
		{"explicit language wins", "de_DE", map[string]string{"LANG": "pt_BR.UTF-8"}, "de_DE"},
		{"derived from LANG", "", map[string]string{"LANG": "pt_BR.UTF-8"}, "pt_BR"},
		{"LANG without encoding", "", map[string]string{"LANG": "fr_FR"}, "fr_FR"},
		{"C locale means none", "", map[string]string{"LANG": "C"}, ""},
		{"POSIX locale means none", "", map[string]string{"LANG": "POSIX"}, ""},
		{"unset LANG means none", "", map[string]string{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Language: tt.language}
			if got := cfg.EffectiveLanguage(env(tt.vars)); got != tt.want {
				t.Errorf("EffectiveLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}
