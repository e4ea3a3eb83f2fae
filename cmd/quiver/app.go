// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
	"quiver-cli/internal/issue"
	"quiver-cli/internal/launch"
	"quiver-cli/internal/source"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: command handlers receive an App reference and
	// reach configuration, the catalog, and the launcher through it.
	App struct {
		Config config.Provider

		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific behavior.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// loadConfig resolves the effective configuration for a command handler.
// Load failures fall back to the defaults so a broken config file degrades
// the launcher instead of bricking it; the warning for the user already
// went out during command initialization.
func (a *App) loadConfig(ctx context.Context) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		log.Debug("using default configuration", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}

// newCatalog assembles the catalog over the configured sources. A plugin
// whose script is already unreadable gets the guidance card up front; the
// source layer still logs and degrades on its own when it runs.
func (a *App) newCatalog(cfg *config.Config) *catalog.Catalog {
	broken := false
	for _, p := range cfg.Plugins {
		if _, err := os.Stat(p.Path); err != nil {
			log.Warn("plugin script unavailable", "path", p.Path, "error", err)
			broken = true
		}
	}
	if broken {
		a.renderIssue(issue.SourceStartFailedId)
	}
	return catalog.New(cfg, source.FromConfig(cfg)...)
}

// launchEntry hands a picked entry to the launcher, rendering guidance
// when it fails.
func (a *App) launchEntry(cfg *config.Config, ent catalog.Entry) error {
	if err := launch.NewRunner(cfg).Run(ent); err != nil {
		a.renderIssue(issue.LaunchFailedId)
		fmt.Fprintf(a.stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

// renderIssue prints an issue card to stderr, falling back to the raw
// markdown when rendering fails.
func (a *App) renderIssue(id issue.Id) {
	card := issue.Get(id)
	if card == nil {
		return
	}

	rendered, err := card.Render("dark")
	if err != nil {
		log.Warn("failed to render issue card", "id", id, "error", err)
		fmt.Fprintln(a.stderr, string(card.MarkdownMsg()))
		return
	}
	fmt.Fprint(a.stderr, rendered)
}
