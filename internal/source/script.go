// SPDX-License-Identifier: MPL-2.0

package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
)

// maxPluginLine bounds a single line of plugin output. Deeply nested entry
// trees serialize onto one line, so the default scanner token size is too
// small.
const maxPluginLine = 1 << 20

type (
	// scriptSource runs a user-provided shell script through the embedded
	// interpreter and reads catalog entries from its stdout, one JSON object
	// per line:
	//
	//	{"plugin": "Games"}
	//	{"name": "Doom", "exec": "gzdoom -iwad doom.wad", "terminal": false}
	//	{"name": "Servers", "children": [{"name": "ssh home", "exec": "ssh home", "terminal": true}]}
	//
	// A line carrying "plugin" names the source; every other line is an
	// entry. A failing script degrades to an exhausted source so one broken
	// plugin cannot take the launcher down.
	scriptSource struct {
		conf     config.PluginEntry
		declared string
		queue    []catalog.Entry
		logger   *log.Logger
	}

	// scriptEntry is the wire form of one plugin output line.
	scriptEntry struct {
		Plugin   string        `json:"plugin,omitempty"`
		Name     string        `json:"name,omitempty"`
		Exec     string        `json:"exec,omitempty"`
		Terms    []string      `json:"terms,omitempty"`
		Terminal bool          `json:"terminal,omitempty"`
		Detach   bool          `json:"detach,omitempty"`
		Children []scriptEntry `json:"children,omitempty"`
	}
)

func newScriptSource(conf config.PluginEntry) *scriptSource {
	return &scriptSource{
		conf: conf,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "plugin",
			Level:  log.GetLevel(),
		}),
	}
}

// Name prefers the configured name, then the name the script declared for
// itself, then the script path.
func (s *scriptSource) Name() string {
	if s.conf.Name != "" {
		return s.conf.Name
	}
	if s.declared != "" {
		return s.declared
	}
	return s.conf.Path
}

// Start executes the plugin script and queues everything it emitted. Any
// failure leaves the queue empty: the source still participates, it just
// has nothing to say.
func (s *scriptSource) Start(_ *config.Config) {
	src, err := os.ReadFile(s.conf.Path)
	if err != nil {
		s.logger.Error("cannot read plugin script", "plugin", s.Name(), "error", err)
		return
	}

	prog, err := syntax.NewParser().Parse(bytes.NewReader(src), s.conf.Path)
	if err != nil {
		s.logger.Error("cannot parse plugin script", "plugin", s.Name(), "error", err)
		return
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Dir(filepath.Dir(s.conf.Path)),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		s.logger.Error("cannot create plugin interpreter", "plugin", s.Name(), "error", err)
		return
	}

	runErr := runner.Run(context.Background(), prog)
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		s.logger.Debug("plugin stderr", "plugin", s.Name(), "output", msg)
	}
	if runErr != nil {
		var exitStatus interp.ExitStatus
		if errors.As(runErr, &exitStatus) {
			s.logger.Error("plugin script failed", "plugin", s.Name(), "exit", int(exitStatus))
		} else {
			s.logger.Error("plugin script failed", "plugin", s.Name(), "error", runErr)
		}
		return
	}

	s.queue = s.ingest(stdout.Bytes())
}

func (s *scriptSource) Next() (catalog.Entry, bool) {
	if len(s.queue) == 0 {
		return catalog.Entry{}, false
	}
	ent := s.queue[0]
	s.queue = s.queue[1:]
	return ent, true
}

// ingest decodes the script's stdout. Unparseable lines and invalid entries
// are skipped with a warning so one typo does not void the whole plugin.
func (s *scriptSource) ingest(output []byte) []catalog.Entry {
	var entries []catalog.Entry
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(nil, maxPluginLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw scriptEntry
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			s.logger.Warn("skipping unparseable plugin output", "plugin", s.Name(), "line", line, "error", err)
			continue
		}
		if raw.Plugin != "" {
			s.declared = raw.Plugin
			continue
		}
		ent, err := raw.toEntry()
		if err != nil {
			s.logger.Warn("skipping invalid plugin entry", "plugin", s.Name(), "error", err)
			continue
		}
		entries = append(entries, ent)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("plugin output truncated", "plugin", s.Name(), "error", err)
	}
	return entries
}

// toEntry converts one wire entry, recursing into children. An invalid
// child invalidates its parent.
func (e *scriptEntry) toEntry() (catalog.Entry, error) {
	var argv []string
	if e.Exec != "" {
		var err error
		argv, err = shlex.Split(e.Exec)
		if err != nil {
			return catalog.Entry{}, fmt.Errorf("unparseable exec %q: %w", e.Exec, err)
		}
	}
	switch {
	case len(argv) == 0 && len(e.Children) == 0:
		return catalog.Entry{}, fmt.Errorf("entry %q has neither exec nor children", e.Name)
	case len(argv) == 0 && e.Name == "":
		return catalog.Entry{}, fmt.Errorf("group entry has no name")
	}

	var children []catalog.Entry
	for _, child := range e.Children {
		ent, err := child.toEntry()
		if err != nil {
			return catalog.Entry{}, err
		}
		children = append(children, ent)
	}

	var flags catalog.RunFlags
	if e.Terminal {
		flags |= catalog.FlagTerminal
	}
	if e.Detach {
		flags |= catalog.FlagDetach
	}
	return catalog.Entry{
		DisplayName: e.Name,
		SearchTerms: e.Terms,
		Command:     argv,
		Flags:       flags,
		Children:    children,
	}, nil
}
