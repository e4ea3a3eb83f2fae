// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quiver-cli/internal/catalog"
	"quiver-cli/internal/config"
	"quiver-cli/internal/source"
)

const (
	// desktopTemplate is a representative desktop file for benchmarking the
	// parser, parameterized on display name and executable. The action
	// sections make it yield three entries per file, the shape a browser or
	// image viewer ships with.
	desktopTemplate = `[Desktop Entry]
Type=Application
Version=1.0
Name=%[1]s
Name[pt_BR]=%[1]s
GenericName=Picture Browser
Comment=Browse and view images
TryExec=%[2]s
Exec=%[2]s %%U
Icon=%[2]s
Terminal=false
Categories=Graphics;Viewer;
Actions=new-window;slideshow;

[Desktop Action new-window]
Name=New Window
Exec=%[2]s --new-window

[Desktop Action slideshow]
Name=Slideshow
Exec=%[2]s --slideshow %%F
`

	// samplePlugin emits the line protocol a scripted source speaks: a
	// declaration line, a nested group, and a handful of leaf entries.
	samplePlugin = `echo '{"plugin": "Projects"}'
echo '{"name": "Blog", "exec": "codium /home/me/blog"}'
echo '{"name": "Servers", "children": [{"name": "ssh home", "exec": "ssh home", "terminal": true}, {"name": "ssh work", "exec": "ssh work", "terminal": true}]}'
for i in 1 2 3 4 5; do
  echo "{\"name\": \"Project $i\", \"exec\": \"codium /home/me/project-$i\"}"
done
`
)

// seedSource replays a fixed forest, cloning each entry the way the real
// sources build fresh values per scan.
type seedSource struct {
	entries []catalog.Entry
	next    int
}

func (s *seedSource) Name() string           { return "seed" }
func (s *seedSource) Start(_ *config.Config) { s.next = 0 }

func (s *seedSource) Next() (catalog.Entry, bool) {
	if s.next >= len(s.entries) {
		return catalog.Entry{}, false
	}
	ent := s.entries[s.next].Clone()
	s.next++
	return ent, true
}

// makeForest builds a mixed forest of n roots: mostly leaves, with a small
// subtree under every tenth root.
func makeForest(n int) []catalog.Entry {
	bases := []string{
		"Text Editor", "Image Viewer", "Music Player", "File Manager",
		"Terminal", "Web Browser", "Calculator", "System Monitor",
	}
	out := make([]catalog.Entry, 0, n)
	for i := 0; i < n; i++ {
		base := bases[i%len(bases)]
		name := fmt.Sprintf("%s %d", base, i)
		if i%10 == 9 {
			group := catalog.Entry{DisplayName: fmt.Sprintf("Suite %d", i)}
			for j := 0; j < 4; j++ {
				group.Children = append(group.Children, catalog.Entry{
					DisplayName: fmt.Sprintf("Tool %d-%d", i, j),
					Command:     []string{"tool", fmt.Sprintf("%d-%d", i, j)},
				})
			}
			out = append(out, group)
			continue
		}
		out = append(out, catalog.Entry{
			DisplayName: name,
			SearchTerms: []string{name, strings.ToLower(base)},
			Command:     []string{"launch", fmt.Sprintf("app-%d", i)},
		})
	}
	return out
}

// writeDesktopDir fills dir/applications with count distinct desktop files.
func writeDesktopDir(b *testing.B, dir string, count int) {
	b.Helper()
	appsDir := filepath.Join(dir, "applications")
	if err := os.MkdirAll(appsDir, 0o755); err != nil {
		b.Fatalf("Failed to create applications dir: %v", err)
	}
	for i := 0; i < count; i++ {
		content := fmt.Sprintf(desktopTemplate, fmt.Sprintf("Viewer %02d", i), fmt.Sprintf("imgview-%02d", i))
		path := filepath.Join(appsDir, fmt.Sprintf("app-%02d.desktop", i))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			b.Fatalf("Failed to write desktop file: %v", err)
		}
	}
}

// BenchmarkDesktopScan benchmarks a full scan of an applications directory.
// This exercises the hot path in internal/source/desktop_parse.go.
func BenchmarkDesktopScan(b *testing.B) {
	tmpDir := b.TempDir()
	const fileCount = 40
	writeDesktopDir(b, tmpDir, fileCount)
	b.Setenv("XDG_DATA_HOME", tmpDir)
	b.Setenv("XDG_DATA_DIRS", filepath.Join(tmpDir, "empty"))

	cfg := config.DefaultConfig()
	cfg.Sources = []config.SourceName{config.SourceDesktop}

	// Three entries per file: the main section plus two actions.
	const wantEntries = fileCount * 3

	b.ResetTimer()
	for b.Loop() {
		cat := catalog.New(cfg, source.FromConfig(cfg)...)
		cat.Start()
		if got := len(cat.AllEntries()); got != wantEntries {
			b.Fatalf("scan produced %d entries, want %d", got, wantEntries)
		}
	}
}

// BenchmarkDedupOverride benchmarks dedup and deferred deletion using the
// override layout that produces duplicates in practice: the same desktop
// files present in both the user and the system data directories.
func BenchmarkDedupOverride(b *testing.B) {
	tmpDir := b.TempDir()
	const fileCount = 20
	writeDesktopDir(b, filepath.Join(tmpDir, "home"), fileCount)
	writeDesktopDir(b, filepath.Join(tmpDir, "system"), fileCount)
	b.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "home"))
	b.Setenv("XDG_DATA_DIRS", filepath.Join(tmpDir, "system"))

	cfg := config.DefaultConfig()
	cfg.Sources = []config.SourceName{config.SourceDesktop}

	// The system copies lose every dedup decision against the user copies.
	const wantEntries = fileCount * 3

	b.ResetTimer()
	for b.Loop() {
		cat := catalog.New(cfg, source.FromConfig(cfg)...)
		cat.Start()
		if got := len(cat.AllEntries()); got != wantEntries {
			b.Fatalf("scan produced %d entries, want %d", got, wantEntries)
		}
	}
}

// BenchmarkPluginScript benchmarks running a plugin through the embedded
// shell and ingesting its output. This exercises the hot path in
// internal/source/script.go.
func BenchmarkPluginScript(b *testing.B) {
	tmpDir := b.TempDir()
	scriptPath := filepath.Join(tmpDir, "projects.sh")
	if err := os.WriteFile(scriptPath, []byte(samplePlugin), 0o755); err != nil {
		b.Fatalf("Failed to write plugin script: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Sources = nil
	cfg.Plugins = []config.PluginEntry{{Path: scriptPath}}

	// One root per entry line: Blog, Servers, Project 1..5.
	const wantEntries = 7

	b.ResetTimer()
	for b.Loop() {
		cat := catalog.New(cfg, source.FromConfig(cfg)...)
		cat.Start()
		if got := len(cat.AllEntries()); got != wantEntries {
			b.Fatalf("plugin produced %d entries, want %d", got, wantEntries)
		}
	}
}

// BenchmarkIncrementalSearch benchmarks the batched ingest-until-enough-
// matches path the interactive picker drives on every keystroke.
func BenchmarkIncrementalSearch(b *testing.B) {
	entries := makeForest(300)
	cfg := config.DefaultConfig()

	b.ResetTimer()
	for b.Loop() {
		cat := catalog.New(cfg, &seedSource{entries: entries})
		cat.StartSources()
		if got := cat.Search("editor", int(cfg.ListSize)); len(got) == 0 {
			b.Fatal("Search returned no entries")
		}
	}
}

// BenchmarkSearchLoaded benchmarks filtering and snapshotting a fully
// ingested forest.
func BenchmarkSearchLoaded(b *testing.B) {
	entries := makeForest(300)
	cfg := config.DefaultConfig()
	cat := catalog.New(cfg, &seedSource{entries: entries})
	cat.Start()

	b.ResetTimer()
	for b.Loop() {
		if got := cat.SearchLoaded("editor"); len(got) == 0 {
			b.Fatal("SearchLoaded returned no entries")
		}
	}
}

// BenchmarkForestWalk benchmarks the depth-first traversal the list and
// picker views use to flatten results into rows.
func BenchmarkForestWalk(b *testing.B) {
	forest := makeForest(300)
	want := catalog.Count(forest, catalog.MaxPathDepth)

	b.ResetTimer()
	for b.Loop() {
		n := 0
		for range catalog.Walk(forest, catalog.MaxPathDepth) {
			n++
		}
		if n != want {
			b.Fatalf("walked %d nodes, want %d", n, want)
		}
	}
}

// BenchmarkEntryLookup benchmarks resolving entry paths back to entries,
// the operation behind picking a row.
func BenchmarkEntryLookup(b *testing.B) {
	forest := makeForest(300)
	var paths []catalog.EntryPath
	for path := range catalog.Walk(forest, catalog.MaxPathDepth) {
		paths = append(paths, path)
	}

	b.ResetTimer()
	for b.Loop() {
		for _, path := range paths {
			if _, ok := catalog.Lookup(forest, path); !ok {
				b.Fatalf("Lookup failed for path %s", path)
			}
		}
	}
}

// BenchmarkConfigLoad benchmarks loading and validating a config file.
func BenchmarkConfigLoad(b *testing.B) {
	tmpDir := b.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.toml")
	content, err := config.GenerateTOML(config.DefaultConfig())
	if err != nil {
		b.Fatalf("GenerateTOML failed: %v", err)
	}
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		b.Fatalf("Failed to write config file: %v", err)
	}

	provider := config.NewProvider()
	ctx := b.Context()

	b.ResetTimer()
	for b.Loop() {
		if _, err := provider.Load(ctx, config.LoadOptions{ConfigFilePath: cfgPath}); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}
