// SPDX-License-Identifier: MPL-2.0

package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

// desktopSource yields one catalog entry per launchable application found in
// the XDG applications directories. Files are parsed lazily, one per Next
// refill, so a huge /usr/share/applications does not stall the first result.
type desktopSource struct {
	language string
	files    []string
	queue    []catalog.Entry
	logger   *log.Logger
}

func newDesktopSource() *desktopSource {
	return &desktopSource{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "desktop",
			Level:  log.GetLevel(),
		}),
	}
}

func (s *desktopSource) Name() string {
	return "FreeDesktop"
}

func (s *desktopSource) Start(cfg *config.Config) {
	s.language = cfg.EffectiveLanguage(os.Getenv)
	s.files = desktopFiles(s.logger)
}

func (s *desktopSource) Next() (catalog.Entry, bool) {
	for {
		if len(s.queue) > 0 {
			ent := s.queue[0]
			s.queue = s.queue[1:]
			return ent, true
		}
		if len(s.files) == 0 {
			return catalog.Entry{}, false
		}
		path := s.files[0]
		s.files = s.files[1:]
		s.queue = s.parseFile(path)
	}
}

// parseFile reads one desktop file and converts every launchable section
// into an entry. Hidden sections are dropped silently; malformed ones are
// logged and skipped.
func (s *desktopSource) parseFile(path string) []catalog.Entry {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Error("cannot read desktop file", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	var entries []catalog.Entry
	collect := func(sec section) {
		if sec.hidden() {
			return
		}
		ent, err := sectionToEntry(sec, s.language)
		if err != nil {
			s.logger.Debug("skipping section", "path", path, "section", sec.header, "reason", err)
			return
		}
		entries = append(entries, ent)
	}

	var reader sectionReader
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if sec, done := reader.push(scanner.Text()); done {
			collect(sec)
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("cannot read desktop file", "path", path, "error", err)
		return entries
	}
	if sec, done := reader.finish(); done {
		collect(sec)
	}
	return entries
}

// sectionToEntry builds the catalog entry for one desktop-file section.
// The display name prefers the configured language; the command comes from
// TryExec when present, else Exec, with %-field codes stripped.
func sectionToEntry(sec section, language string) (catalog.Entry, error) {
	name, ok := sec.name(language)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("section has no Name field")
	}
	cmdline, ok := sec.command()
	if !ok {
		return catalog.Entry{}, fmt.Errorf("section has no Exec or TryExec field")
	}
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("unparseable command %q: %w", cmdline, err)
	}
	argv = stripFieldCodes(argv)
	if len(argv) == 0 {
		return catalog.Entry{}, fmt.Errorf("command %q is empty after stripping field codes", cmdline)
	}

	var flags catalog.RunFlags
	if sec.terminal() {
		flags |= catalog.FlagTerminal
	}
	return catalog.Entry{
		DisplayName: name,
		SearchTerms: []string{name, argv[0]},
		Command:     argv,
		Flags:       flags,
	}, nil
}

// desktopFiles enumerates every *.desktop file in the XDG data directories'
// applications/ subdirectories, in precedence order.
func desktopFiles(logger *log.Logger) []string {
	var files []string
	for _, dir := range applicationDirs() {
		items, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Error("cannot list applications directory", "path", dir, "error", err)
			}
			continue
		}
		for _, item := range items {
			if item.IsDir() || !strings.HasSuffix(item.Name(), ".desktop") {
				continue
			}
			files = append(files, filepath.Join(dir, item.Name()))
		}
	}
	return files
}

// applicationDirs resolves the XDG base-directory chain: XDG_DATA_HOME
// (default ~/.local/share) followed by XDG_DATA_DIRS (default
// /usr/local/share:/usr/share), each with applications/ appended.
func applicationDirs() []string {
	var data []string
	if home := os.Getenv("XDG_DATA_HOME"); home != "" {
		data = append(data, home)
	} else if home, err := os.UserHomeDir(); err == nil {
		data = append(data, filepath.Join(home, ".local", "share"))
	}
	dirs := os.Getenv("XDG_DATA_DIRS")
	if dirs == "" {
		dirs = "/usr/local/share:/usr/share"
	}
	data = append(data, filepath.SplitList(dirs)...)

	apps := make([]string, 0, len(data))
	for _, dir := range data {
		if dir == "" {
			continue
		}
		apps = append(apps, filepath.Join(dir, "applications"))
	}
	return apps
}
