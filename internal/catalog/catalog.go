// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ef-ds/deque/v2"

	"quiver-cli/internal/config"
)

// searchBatchSize bounds how many entries one search iteration ingests
// before deletions are applied and the matched weight is re-checked. Small
// batches keep interactive latency bounded while slow sources are still
// producing.
const searchBatchSize = 32

type (
	// Source produces raw entries for the catalog. Implementations live in
	// internal/source; the catalog only ever pulls.
	Source interface {
		// Name identifies the source in logs.
		Name() string
		// Start prepares the source with the loaded configuration.
		Start(cfg *config.Config)
		// Next yields the next entry. A false return signals exhaustion,
		// which the catalog treats as permanent.
		Next() (Entry, bool)
	}

	// Catalog owns the entry forest and everything that reshapes it:
	// incremental ingestion from the configured sources, dedup decisions,
	// the deferred-deletion queue, and substring search. It is not safe for
	// concurrent use; all work happens on the calling goroutine.
	Catalog struct {
		cfg     *config.Config
		sources []Source
		drained []bool
		entries []Entry
		index   *dedupeIndex
		pending *deque.Deque[EntryPath]
		logger  *log.Logger
	}
)

// New builds a catalog over the given sources. Sources are polled in the
// given order, which fixes ingestion priority.
func New(cfg *config.Config, sources ...Source) *Catalog {
	return &Catalog{
		cfg:     cfg,
		sources: sources,
		drained: make([]bool, len(sources)),
		index:   newDedupeIndex(),
		pending: deque.New[EntryPath](),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "catalog",
			Level:  log.GetLevel(),
		}),
	}
}

// Start spins up every source and ingests until all of them are exhausted,
// then settles the dedup decisions in one deletion batch. Front-ends that
// want results before the slowest source finishes use Search instead.
func (c *Catalog) Start() {
	names := make([]string, len(c.sources))
	for i, src := range c.sources {
		names[i] = src.Name()
	}
	c.logger.Debug("starting sources", "sources", strings.Join(names, ", "))
	for _, src := range c.sources {
		src.Start(c.cfg)
	}
	for c.ingestNext() {
	}
	c.applyPendingDeletions()
	c.logger.Debug("catalog loaded",
		"roots", len(c.entries), "nodes", Count(c.entries, MaxPathDepth))
}

// StartSources runs only the sources' start hooks, leaving ingestion to a
// later Search. Interactive front-ends use this to come up instantly and
// stream entries in while the user is already typing.
func (c *Catalog) StartSources() {
	for _, src := range c.sources {
		src.Start(c.cfg)
	}
}

// ingestNext pulls one entry from the first source that still has one and
// merges it into the forest. Sources are polled in priority order; a source
// that reports exhaustion is never polled again. The entry is pushed onto
// the forest unconditionally, even when dedup doomed it, so every path
// computed during this step stays valid until the next deletion batch.
func (c *Catalog) ingestNext() bool {
	for i, src := range c.sources {
		if c.drained[i] {
			continue
		}
		ent, ok := src.Next()
		if !ok {
			c.drained[i] = true
			c.logger.Debug("source exhausted", "source", src.Name())
			continue
		}
		c.indexSubtree(&ent, PathOf(len(c.entries)))
		c.entries = append(c.entries, ent)
		return true
	}
	return false
}

// indexSubtree runs the dedup contract over the node and, when it survives,
// over its children. A doomed node's descendants die with it and are never
// indexed.
func (c *Catalog) indexSubtree(ent *Entry, path EntryPath) {
	doomed, kept := c.index.insert(ent, path)
	for _, p := range doomed {
		c.pending.PushBack(p)
	}
	if !kept {
		return
	}
	for i := range ent.Children {
		c.indexSubtree(&ent.Children[i], path.Then(i))
	}
}

// applyPendingDeletions executes the queued deletions in depth-first
// descending order. Deleting deepest-and-rightmost first means no pending
// path is invalidated by an earlier deletion of the same batch. A path that
// no longer resolves indicates corrupted dedup bookkeeping and is fatal.
func (c *Catalog) applyPendingDeletions() {
	if c.pending.Len() == 0 {
		return
	}
	paths := make([]EntryPath, 0, c.pending.Len())
	for {
		p, ok := c.pending.PopFront()
		if !ok {
			break
		}
		paths = append(paths, p)
	}
	slices.SortFunc(paths, func(a, b EntryPath) int {
		return b.CompareDepthFirst(a)
	})
	for _, p := range paths {
		c.deleteAt(p)
		c.index.shift(p)
	}
	c.logger.Debug("applied pending deletions", "count", len(paths))
}

// deleteAt removes the node addressed by path from the forest.
func (c *Catalog) deleteAt(path EntryPath) {
	if path.Level() == 0 {
		panic("catalog: cannot delete the empty path")
	}
	level := &c.entries
	last := path.Level() - 1
	for i := 0; i < last; i++ {
		idx := path.At(i)
		if idx >= len(*level) {
			panic(fmt.Sprintf("catalog: deletion path %s does not resolve", path))
		}
		level = &(*level)[idx].Children
	}
	idx := path.At(last)
	if idx >= len(*level) {
		panic(fmt.Sprintf("catalog: deletion path %s does not resolve", path))
	}
	*level = append((*level)[:idx], (*level)[idx+1:]...)
}

// Search ingests in small batches until the entries matching query weigh at
// least minWeight nodes, or every source is exhausted, then returns the
// filtered snapshot. The weight cut-off bounds latency against slow sources
// without materializing the whole forest first.
func (c *Catalog) Search(query string, minWeight int) []Entry {
	for !c.Exhausted() && c.matchedWeight(query) < minWeight {
		for i := 0; i < searchBatchSize && c.ingestNext(); i++ {
		}
		c.applyPendingDeletions()
	}
	return c.SearchLoaded(query)
}

// SearchLoaded filters whatever is currently ingested, triggering no
// further ingestion. The result is a deep-cloned snapshot in forest order.
func (c *Catalog) SearchLoaded(query string) []Entry {
	refs := c.matchRefs(query)
	out := make([]Entry, len(refs))
	for i, ref := range refs {
		out[i] = ref.Clone()
	}
	return out
}

// AllEntries returns a deep-cloned snapshot of the root forest.
func (c *Catalog) AllEntries() []Entry {
	out := make([]Entry, len(c.entries))
	for i := range c.entries {
		out[i] = c.entries[i].Clone()
	}
	return out
}

// Exhausted reports whether every source has permanently run dry.
func (c *Catalog) Exhausted() bool {
	for _, done := range c.drained {
		if !done {
			return false
		}
	}
	return true
}

// matchRefs filters the live forest without cloning. A matching root is
// included whole; under a non-matching root only matching direct children
// surface, each promoted to a standalone result with its own subtree
// intact. Deeper descendants are deliberately not re-filtered: drill-down
// stops one level below a non-matching parent.
func (c *Catalog) matchRefs(query string) []*Entry {
	query = strings.ToLower(query)
	var out []*Entry
	for i := range c.entries {
		root := &c.entries[i]
		if matchesQuery(query, root) {
			out = append(out, root)
			continue
		}
		for j := range root.Children {
			if child := &root.Children[j]; matchesQuery(query, child) {
				out = append(out, child)
			}
		}
	}
	return out
}

// matchedWeight is the node count, at all depths, of the current matches.
func (c *Catalog) matchedWeight(query string) int {
	total := 0
	for _, ref := range c.matchRefs(query) {
		total += 1 + Count(ref.Children, MaxPathDepth)
	}
	return total
}

// matchesQuery implements the matching rule shared by Search and
// SearchLoaded: case-insensitive substring of the query in the entry's name
// (display name, else command basename) or in any search term. The query
// arrives pre-lowercased; the empty query matches everything.
func matchesQuery(query string, ent *Entry) bool {
	if strings.Contains(strings.ToLower(ent.Name()), query) {
		return true
	}
	for _, term := range ent.SearchTerms {
		if strings.Contains(strings.ToLower(term), query) {
			return true
		}
	}
	return false
}
