// SPDX-License-Identifier: MPL-2.0

package catalog

import "iter"

// Walk yields every node of the forest as a (path, entry) pair in
// depth-first pre-order, preserving sibling order and descending into
// children only while a node's depth below the roots is less than maxDepth.
// Roots are yielded at level 1, so maxDepth 0 yields exactly the root
// entries. The sequence is lazy and restartable: each range starts a fresh
// traversal.
func Walk(forest []Entry, maxDepth int) iter.Seq2[EntryPath, *Entry] {
	return func(yield func(EntryPath, *Entry) bool) {
		type frame struct {
			path EntryPath
			node *Entry
		}
		stack := make([]frame, 0, len(forest))
		for i := len(forest) - 1; i >= 0; i-- {
			stack = append(stack, frame{PathOf(i), &forest[i]})
		}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top.path, top.node) {
				return
			}
			if top.path.Level()-1 >= maxDepth {
				continue
			}
			kids := top.node.Children
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, frame{top.path.Then(i), &kids[i]})
			}
		}
	}
}

// Lookup resolves a path against the forest. It returns false when the path
// is empty or any offset along the chain is out of range.
func Lookup(forest []Entry, path EntryPath) (*Entry, bool) {
	if path.Level() == 0 {
		return nil, false
	}
	level := forest
	var node *Entry
	for i := 0; i < path.Level(); i++ {
		idx := path.At(i)
		if idx >= len(level) {
			return nil, false
		}
		node = &level[idx]
		level = node.Children
	}
	return node, true
}

// Count returns how many pairs Walk(forest, maxDepth) yields, without
// materializing them. Search uses it to weigh result subtrees against the
// result budget.
func Count(forest []Entry, maxDepth int) int {
	total := 0
	for range Walk(forest, maxDepth) {
		total++
	}
	return total
}
