// Package avl implements an intrusive self-balancing binary search tree for
// allocation-bounded contexts.
//
// # Overview
//
// The tree is intrusive: linkage lives inside a Node that the caller embeds in
// (or stores alongside) the indexed entity. The tree itself never allocates;
// it only relinks caller-owned nodes. All operations complete in O(log n)
// worst case, which makes the structure suitable for indexing work that must
// stay bounded, such as a register store looked up from a transfer hot path.
//
// # Ownership
//
// Node storage always belongs to the caller. Removing a node resets its links
// so it can be reused or reinserted. A zero Tree value is an empty, usable
// tree; a zero Node value is unlinked.
//
// # Concurrency
//
// No internal synchronization is performed. Callers sharing a tree across
// goroutines or interrupt-like contexts must serialize all access externally.
// The tree must not be mutated while a traversal is in progress.
package avl
