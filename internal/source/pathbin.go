// SPDX-License-Identifier: MPL-2.0

package source

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

// pathSource yields one catalog entry per executable file on $PATH. It is
// the coarse fallback behind the friendlier desktop source: entries carry
// the full binary path as their command and no search terms, so they match
// by file name only.
type pathSource struct {
	dirs   []string
	queue  []catalog.Entry
	logger *log.Logger
}

func newPathSource() *pathSource {
	return &pathSource{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "path",
			Level:  log.GetLevel(),
		}),
	}
}

func (s *pathSource) Name() string {
	return "Raw $PATH Variable"
}

func (s *pathSource) Start(_ *config.Config) {
	s.dirs = filepath.SplitList(os.Getenv("PATH"))
}

func (s *pathSource) Next() (catalog.Entry, bool) {
	for {
		if len(s.queue) > 0 {
			ent := s.queue[0]
			s.queue = s.queue[1:]
			return ent, true
		}
		if len(s.dirs) == 0 {
			return catalog.Entry{}, false
		}
		dir := s.dirs[0]
		s.dirs = s.dirs[1:]
		s.queue = s.scanDir(dir)
	}
}

// scanDir lists one $PATH directory and keeps the executable files. Listing
// failures are logged and the directory is skipped; $PATH routinely names
// directories that do not exist.
func (s *pathSource) scanDir(dir string) []catalog.Entry {
	if dir == "" {
		return nil
	}
	items, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("cannot list search path directory", "path", dir, "error", err)
		}
		return nil
	}

	var entries []catalog.Entry
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		full := filepath.Join(dir, item.Name())
		if !canExecute(full) {
			continue
		}
		entries = append(entries, catalog.Entry{
			Command: []string{full},
		})
	}
	return entries
}
