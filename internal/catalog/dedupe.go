// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"slices"
	"strings"
)

const (
	// verdictEqual: the two nodes describe the same thing; the indexed one
	// stays.
	verdictEqual verdict = iota
	// verdictSubset: the incoming node carries strictly less than the indexed
	// one and is redundant.
	verdictSubset
	// verdictSuperset: the incoming node carries strictly more and supersedes
	// the indexed one.
	verdictSuperset
	// verdictDisjoint: the nodes are not comparable; both stay.
	verdictDisjoint
)

type (
	// verdict classifies how an incoming node relates to an already indexed
	// node with the same command key.
	verdict uint8

	// fingerprint is the comparison record kept per indexed node. It is
	// derived at insertion time and never stored on the entry itself; the
	// path is kept current by purge and shift as the forest changes.
	fingerprint struct {
		path     EntryPath
		name     string
		children int
		terms    map[string]struct{}
	}

	// dedupeIndex buckets fingerprints of live forest nodes by launch
	// command. It decides which of two same-command nodes survives and hands
	// the loser's path back to the catalog for deferred deletion.
	dedupeIndex struct {
		buckets map[string][]*fingerprint
	}
)

// commandKey normalizes an argv sequence into a bucket key. The key is
// order-sensitive: ["foo"] and ["foo","--flag"] are different commands.
func commandKey(command []string) string {
	return strings.Join(command, "\x00")
}

func newFingerprint(ent *Entry, path EntryPath) *fingerprint {
	fp := &fingerprint{
		path:     path,
		name:     ent.DisplayName,
		children: len(ent.Children),
	}
	if len(ent.SearchTerms) > 0 {
		fp.terms = make(map[string]struct{}, len(ent.SearchTerms))
		for _, term := range ent.SearchTerms {
			fp.terms[term] = struct{}{}
		}
	}
	return fp
}

// merge folds another axis vote into an accumulated verdict. A no-signal
// Equal leaves the accumulated direction alone; agreement keeps it; opposing
// directions, or a Disjoint vote, destroy comparability.
func (v verdict) merge(next verdict) verdict {
	switch {
	case next == verdictEqual:
		return v
	case v == verdictEqual:
		return next
	case v == next:
		return v
	default:
		return verdictDisjoint
	}
}

// compare classifies the incoming fingerprint against an indexed one across
// the four comparison axes. Superset means the incoming node supersedes the
// indexed one, Subset the reverse.
func (fp *fingerprint) compare(old *fingerprint) verdict {
	v := compareNames(fp.name, old.name)
	v = v.merge(compareKinds(fp.path, old.path))
	v = v.merge(compareAggregation(fp.children, old.children))
	return v.merge(compareTerms(fp.terms, old.terms))
}

// compareNames: two different explicit names are two different programs no
// matter how alike their commands; a named node beats an unnamed one.
func compareNames(a, b string) verdict {
	switch {
	case a == b:
		return verdictEqual
	case a == "":
		return verdictSubset
	case b == "":
		return verdictSuperset
	default:
		return verdictDisjoint
	}
}

// compareKinds: a child occurrence carries the context of its parent entry
// and supersedes a bare root occurrence of the same command.
func compareKinds(a, b EntryPath) verdict {
	aChild, bChild := a.Level() > 1, b.Level() > 1
	switch {
	case aChild == bChild:
		return verdictEqual
	case aChild:
		return verdictSuperset
	default:
		return verdictSubset
	}
}

// compareAggregation: a node that aggregates children supersedes one that
// does not.
func compareAggregation(a, b int) verdict {
	switch {
	case (a > 0) == (b > 0):
		return verdictEqual
	case a > 0:
		return verdictSuperset
	default:
		return verdictSubset
	}
}

// compareTerms relates two search-term sets. An absent set carries no signal
// and compares leniently as Equal; two populated sets compare by strict
// containment; incomparable populated sets make the pair Disjoint.
func compareTerms(a, b map[string]struct{}) verdict {
	if len(a) == 0 || len(b) == 0 {
		return verdictEqual
	}
	aInB, bInA := subsetOf(a, b), subsetOf(b, a)
	switch {
	case aInB && bInA:
		return verdictEqual
	case aInB:
		return verdictSubset
	case bInA:
		return verdictSuperset
	default:
		return verdictDisjoint
	}
}

func subsetOf(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for term := range a {
		if _, ok := b[term]; !ok {
			return false
		}
	}
	return true
}

func newDedupeIndex() *dedupeIndex {
	return &dedupeIndex{buckets: make(map[string][]*fingerprint)}
}

// insert runs the dedup contract for one node about to enter the forest at
// path. It returns the paths of the nodes the decision doomed (either the
// new node itself, or one or more indexed nodes it supersedes) and whether
// the new node survives. A surviving node's fingerprint is recorded; a
// doomed indexed node is scrubbed from the index together with its whole
// subtree.
func (ix *dedupeIndex) insert(ent *Entry, path EntryPath) (doomed []EntryPath, kept bool) {
	key := commandKey(ent.Command)
	fp := newFingerprint(ent, path)

	// Scan a snapshot newest-first: purging a superseded node can remove
	// arbitrary members of this same bucket (its descendants may share the
	// key), so liveness is rechecked against the live bucket as we go.
	snapshot := slices.Clone(ix.buckets[key])
	for i := len(snapshot) - 1; i >= 0; i-- {
		old := snapshot[i]
		if !slices.Contains(ix.buckets[key], old) {
			continue
		}
		switch fp.compare(old) {
		case verdictEqual, verdictSubset:
			// The new node adds nothing over what is already indexed.
			return append(doomed, path), false
		case verdictSuperset:
			ix.purge(old.path)
			doomed = append(doomed, old.path)
		case verdictDisjoint:
			// Unrelated enough to coexist.
		}
	}
	ix.buckets[key] = append(ix.buckets[key], fp)
	return doomed, true
}

// purge drops every fingerprint addressing the node at path or a descendant
// of it, across all buckets. A doomed subtree must neither win nor lose any
// later comparison.
func (ix *dedupeIndex) purge(path EntryPath) {
	for key, bucket := range ix.buckets {
		kept := bucket[:0]
		for _, fp := range bucket {
			if !fp.path.HasPrefix(path) {
				kept = append(kept, fp)
			}
		}
		if len(kept) == 0 {
			delete(ix.buckets, key)
		} else {
			ix.buckets[key] = kept
		}
	}
}

// shift renumbers surviving fingerprints after the node at deleted was
// removed from the forest: every fingerprint addressing a later sibling of
// the deleted node, or a node inside such a sibling's subtree, moves one
// offset left at the deleted node's level. Without this the index would
// dangle across search's interleaved ingest/delete batches.
func (ix *dedupeIndex) shift(deleted EntryPath) {
	level := deleted.Level()
	if level == 0 {
		return
	}
	parent := deleted.Parent()
	removedAt := deleted.At(level - 1)
	for _, bucket := range ix.buckets {
		for _, fp := range bucket {
			if fp.path.Level() < level || !fp.path.HasPrefix(parent) {
				continue
			}
			if fp.path.At(level-1) > removedAt {
				fp.path = fp.path.shiftLeftAt(level - 1)
			}
		}
	}
}
