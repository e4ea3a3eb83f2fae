// SPDX-License-Identifier: MPL-2.0

package source

import (
	"os"

	"github.com/charmbracelet/log"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

// FromConfig assembles the source list for the catalog: the configured
// built-in sources in their configured order, followed by one script source
// per configured plugin. Order is priority; earlier sources win dedup ties.
func FromConfig(cfg *config.Config) []catalog.Source {
	sources := make([]catalog.Source, 0, len(cfg.Sources)+len(cfg.Plugins))
	for _, name := range cfg.Sources {
		switch name.Canonical() {
		case config.SourceDesktop:
			sources = append(sources, newDesktopSource())
		case config.SourcePath:
			sources = append(sources, newPathSource())
		default:
			// Validation rejects unknown names, but a caller skipping it
			// should not crash the launcher.
			log.NewWithOptions(os.Stderr, log.Options{Prefix: "source"}).
				Warn("unknown source name, using inert placeholder", "name", name)
			sources = append(sources, newDummySource(string(name)))
		}
	}
	for _, plugin := range cfg.Plugins {
		sources = append(sources, newScriptSource(plugin))
	}
	return sources
}
