// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxPathDepth is the deepest forest level an EntryPath can address. Real
// entry forests are shallow (desktop-entry actions nest one level, scripted
// plugins rarely more); exceeding the limit is a configuration defect, not a
// runtime condition.
const MaxPathDepth = 8

// EntryPath addresses one node in a forest of entries: the first offset
// indexes a root entry, each further offset indexes into the Children of the
// node addressed so far. Level is the number of offsets in use; the zero
// value is the empty path.
//
// Paths are transient lookup values: computed during traversal and dedup
// bookkeeping, compared, and discarded. They are never stored alongside the
// nodes they address. Unused offset slots are kept zeroed so paths compare
// with ==.
type EntryPath struct {
	offsets [MaxPathDepth]uint16
	level   uint8
}

// PathOf builds a path from explicit root-to-leaf offsets. Like Then it
// panics past MaxPathDepth.
func PathOf(offsets ...int) EntryPath {
	var p EntryPath
	for _, off := range offsets {
		p = p.Then(off)
	}
	return p
}

// Level returns the number of offsets in use.
func (p EntryPath) Level() int { return int(p.level) }

// At returns the offset at position i. It panics when i is outside the
// path's level.
func (p EntryPath) At(i int) int {
	if i < 0 || i >= int(p.level) {
		panic(fmt.Sprintf("catalog: offset %d out of range for level-%d path", i, p.level))
	}
	return int(p.offsets[i])
}

// Then returns the path extended by one child offset. Forests deeper than
// MaxPathDepth cannot be addressed; descending past the limit panics.
func (p EntryPath) Then(index int) EntryPath {
	if p.level >= MaxPathDepth {
		panic(fmt.Sprintf("catalog: entry path deeper than %d levels", MaxPathDepth))
	}
	if index < 0 || index > math.MaxUint16 {
		panic(fmt.Sprintf("catalog: child offset %d outside addressable range", index))
	}
	p.offsets[p.level] = uint16(index)
	p.level++
	return p
}

// Parent returns the path with its last offset removed. The empty path is
// its own parent.
func (p EntryPath) Parent() EntryPath {
	if p.level == 0 {
		return p
	}
	p.level--
	p.offsets[p.level] = 0
	return p
}

// PrevSibling returns the path addressing the previous sibling. The second
// return is false at the first position of a level and on the empty path.
func (p EntryPath) PrevSibling() (EntryPath, bool) {
	if p.level == 0 || p.offsets[p.level-1] == 0 {
		return EntryPath{}, false
	}
	p.offsets[p.level-1]--
	return p, true
}

// NextSibling returns the path addressing the next sibling. Whether a node
// exists there is for Lookup to decide, so the second return is false only
// on the empty path.
func (p EntryPath) NextSibling() (EntryPath, bool) {
	if p.level == 0 {
		return EntryPath{}, false
	}
	p.offsets[p.level-1]++
	return p, true
}

// TailFrom returns the suffix of the path starting at the given level,
// renumbered to start at level zero. Rebasing a path computed inside a
// freshly built subtree onto its root position in the forest is
// root.Join(sub.TailFrom(1)).
func (p EntryPath) TailFrom(level int) EntryPath {
	var out EntryPath
	for i := max(level, 0); i < int(p.level); i++ {
		out = out.Then(int(p.offsets[i]))
	}
	return out
}

// Join returns the path extended by every offset of other. Like Then it
// panics past MaxPathDepth.
func (p EntryPath) Join(other EntryPath) EntryPath {
	for i := 0; i < int(other.level); i++ {
		p = p.Then(int(other.offsets[i]))
	}
	return p
}

// HasPrefix reports whether prefix addresses the same node as p or one of
// its ancestors. Every path has the empty path as a prefix.
func (p EntryPath) HasPrefix(prefix EntryPath) bool {
	if prefix.level > p.level {
		return false
	}
	for i := 0; i < int(prefix.level); i++ {
		if p.offsets[i] != prefix.offsets[i] {
			return false
		}
	}
	return true
}

// CompareDepthFirst orders paths the way a depth-first traversal visits
// them: lexicographically by offsets, with an ancestor sorting before any of
// its descendants. Batch deletion relies on the reverse of this order to
// keep not-yet-applied paths valid.
func (p EntryPath) CompareDepthFirst(other EntryPath) int {
	for i := 0; i < min(int(p.level), int(other.level)); i++ {
		if p.offsets[i] != other.offsets[i] {
			return cmp.Compare(p.offsets[i], other.offsets[i])
		}
	}
	return cmp.Compare(p.level, other.level)
}

// shiftLeftAt returns the path with the offset at position i decremented by
// one. Callers guarantee the offset is positive.
func (p EntryPath) shiftLeftAt(i int) EntryPath {
	p.offsets[i]--
	return p
}

// String renders the path as dot-separated offsets, for logs and panic
// messages.
func (p EntryPath) String() string {
	if p.level == 0 {
		return "(empty)"
	}
	parts := make([]string, p.level)
	for i := range parts {
		parts[i] = strconv.Itoa(int(p.offsets[i]))
	}
	return strings.Join(parts, ".")
}
