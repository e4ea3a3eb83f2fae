// SPDX-License-Identifier: MPL-2.0

// Package catalog implements the deduplicating entry catalog at the heart of
// quiver.
//
// Entries stream in from heterogeneous sources (desktop-entry files, $PATH,
// scripted plugins) in no particular order and frequently describe the same
// program more than once. The catalog merges them into a single forest,
// resolving duplicates through a fingerprint index keyed by launch command,
// and exposes substring search over the result. Nodes are addressed by
// EntryPath values rather than pointers or array indices, so deferred batch
// deletion can reshape the forest without invalidating references held by
// in-flight bookkeeping.
package catalog
