// Package arena implements a constant-time segregated-fit memory allocator
// over a caller-supplied byte buffer.
//
// # Overview
//
// The allocator carves the arena into fragments linked in an address-ordered
// chain. Free fragments are additionally threaded onto per-size-class free
// lists (bins); a bitmask records which bins are non-empty so the best
// size class for a request is found with a single bit scan. Allocation and
// deallocation therefore complete in a small, bounded number of steps
// regardless of heap state, which is what makes the allocator usable for
// frame and transfer buffers in hard-real-time contexts where the worst case
// of a general-purpose malloc is unacceptable.
//
// # Layout
//
// Fragment headers are encoded little-endian directly inside the arena and
// addressed by offset, never by raw pointer arithmetic. Free-list links live
// in the payload area of free fragments, so the header overhead of a used
// fragment is a single alignment quantum.
//
// # Failure semantics
//
// Out-of-memory is reported with ErrNoSpace and counted in the diagnostics;
// the heap remains fully usable afterwards. There are no partial allocations
// and no panics on any recoverable path.
//
// # Concurrency
//
// No internal synchronization is performed; callers sharing a heap across
// goroutines or interrupt-like contexts must serialize access externally.
package arena
