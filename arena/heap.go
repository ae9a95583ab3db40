package arena

import (
	"math/bits"

	"github.com/cyphalkit/cyphalkit/internal/format"
)

const (
	// Alignment is the guaranteed alignment of every payload offset within
	// the arena.
	Alignment = 16

	// HeaderSize is the per-fragment header overhead. It occupies exactly
	// one alignment quantum so payloads stay aligned.
	HeaderSize = Alignment

	// SizeMin is the smallest fragment size, header included. The payload
	// of the smallest free fragment is what holds the free-list links.
	SizeMin = 2 * Alignment

	// maxCapacity bounds the arena so that fragment offsets and sizes
	// always fit a positive int32.
	maxCapacity = 1 << 30

	// binCount covers every size class up to maxCapacity:
	// log2(maxCapacity/SizeMin)+1.
	binCount = 26
)

// Ref is a handle to an allocated payload: its offset within the arena.
// Valid refs are always >= HeaderSize, so the zero value doubles as NilRef.
type Ref = int32

// NilRef is the null payload handle returned on failed or empty requests.
const NilRef Ref = 0

// Diagnostics is a read-only snapshot of the heap's health counters.
type Diagnostics struct {
	// Capacity is the usable byte count of the arena, fragment headers
	// included. Constant over the heap's lifetime.
	Capacity int64
	// Allocated is the total size of fragments currently in use.
	Allocated int64
	// PeakAllocated is the high watermark of Allocated.
	PeakAllocated int64
	// PeakRequestSize is the largest request ever passed to Allocate,
	// whether it succeeded or not.
	PeakRequestSize int64
	// OOMCount is the number of allocation requests denied for lack of a
	// suitable free fragment.
	OOMCount int64
}

// Allocator is the surface consumed by transport layers that need frame and
// transfer buffers; a *Heap satisfies it directly.
type Allocator interface {
	Allocate(n int) (Ref, []byte, error)
	Free(ref Ref) error
	Payload(ref Ref) []byte
}

// Heap is a segregated-fit allocator over a fixed arena. The bookkeeping
// (bin heads, occupancy mask, diagnostics) lives in this struct; the
// fragments themselves live inside the arena bytes. Use New to construct.
type Heap struct {
	data []byte // SizeMin-floored window of the caller's buffer

	bins [binCount]int32 // head fragment offset per size class, nilOff if empty
	mask uint32          // bit i set iff bins[i] is non-empty

	diag Diagnostics
}

var _ Allocator = (*Heap)(nil)

// New creates a heap over the supplied arena. The usable capacity is the
// buffer length floored to a multiple of SizeMin and capped so offsets fit an
// int32; buffers smaller than one minimum fragment are rejected. The whole
// capacity starts as a single free fragment and all diagnostics are zero.
//
// The heap retains (and writes into) the buffer; the caller must not touch
// bytes it has not been handed via Allocate.
func New(buf []byte) (*Heap, error) {
	capacity := format.AlignDown(len(buf), SizeMin)
	if capacity > maxCapacity {
		capacity = maxCapacity
	}
	if capacity < SizeMin {
		return nil, ErrArenaTooSmall
	}
	h := &Heap{data: buf[:capacity]}
	h.diag.Capacity = int64(capacity)
	for i := range h.bins {
		h.bins[i] = nilOff
	}
	h.setPrev(0, nilOff)
	h.setNext(0, nilOff)
	h.setSize(0, int32(capacity))
	h.setUsed(0, false)
	h.rebin(0)
	return h, nil
}

// Allocate reserves n payload bytes and returns the handle plus the payload
// slice. The owning fragment size is n plus the header, rounded up to the
// nearest power of two (never below SizeMin), so the usable slice may exceed
// n. A zero or negative n returns (NilRef, nil, nil): nothing was requested,
// and it is not counted as a failure. On out-of-memory the error is
// ErrNoSpace, OOMCount is incremented, and the heap remains fully usable.
func (h *Heap) Allocate(n int) (Ref, []byte, error) {
	if n <= 0 {
		return NilRef, nil, nil
	}
	if int64(n) > h.diag.PeakRequestSize {
		h.diag.PeakRequestSize = int64(n)
	}
	capacity := int32(h.diag.Capacity)
	if n > int(capacity)-HeaderSize {
		// The request cannot fit even a pristine arena. Checked before the
		// size rounding so huge n cannot overflow the arithmetic below.
		h.diag.OOMCount++
		return NilRef, nil, ErrNoSpace
	}
	need := int32(roundUpPow2(uint32(n + HeaderSize)))
	if need < SizeMin {
		need = SizeMin
	}

	// Find the lowest non-empty bin guaranteed to satisfy the request.
	// need is a power of two, so every fragment in bin log2(need/SizeMin)
	// and above is large enough; the bit scan keeps this O(1).
	optimal := log2Ceil(uint32(need) / SizeMin)
	suitable := h.mask &^ (1<<uint(optimal) - 1)
	if suitable == 0 {
		h.diag.OOMCount++
		return NilRef, nil, ErrNoSpace
	}
	off := h.bins[bits.TrailingZeros32(suitable)]
	h.unbin(off)

	// Split: the tail remainder becomes a new free fragment in the bin
	// matching its smaller size. Both parts stay multiples of SizeMin.
	leftover := h.size(off) - need
	h.setSize(off, need)
	if leftover > 0 {
		tail := off + need
		h.setSize(tail, leftover)
		h.setUsed(tail, false)
		nxt := h.next(off)
		h.setNext(tail, nxt)
		h.setPrev(tail, off)
		if nxt != nilOff {
			h.setPrev(nxt, tail)
		}
		h.setNext(off, tail)
		h.rebin(tail)
	}

	h.setUsed(off, true)
	h.diag.Allocated += int64(need)
	if h.diag.Allocated > h.diag.PeakAllocated {
		h.diag.PeakAllocated = h.diag.Allocated
	}
	ref := off + HeaderSize
	return ref, h.data[ref : off+need], nil
}

// Free returns the fragment owning ref to the heap, merging it with any free
// address-adjacent neighbor so that no two adjacent fragments are ever both
// free. Freeing NilRef is a no-op. The ref must be a live handle previously
// returned by Allocate on this heap; cheap structural violations are reported
// as ErrBadRef/ErrNotAllocated, but passing a stale or foreign ref that
// happens to look valid is undefined behavior, exactly as with free(3).
func (h *Heap) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}
	off, err := h.checkRef(ref)
	if err != nil {
		return err
	}
	size := h.size(off)
	h.setUsed(off, false)
	// Diagnostics drop by the pre-merge size: merged neighbors were
	// already accounted as free.
	h.diag.Allocated -= int64(size)

	// Merge forward. A single step suffices: the no-adjacent-free invariant
	// means the fragment past a free neighbor is necessarily used.
	if nxt := h.next(off); nxt != nilOff && !h.used(nxt) {
		h.unbin(nxt)
		h.setSize(off, h.size(off)+h.size(nxt))
		nn := h.next(nxt)
		h.setNext(off, nn)
		if nn != nilOff {
			h.setPrev(nn, off)
		}
	}
	// Merge backward, possibly absorbing the result of the forward merge.
	if prv := h.prev(off); prv != nilOff && !h.used(prv) {
		h.unbin(prv)
		h.setSize(prv, h.size(prv)+h.size(off))
		nn := h.next(off)
		h.setNext(prv, nn)
		if nn != nilOff {
			h.setPrev(nn, prv)
		}
		off = prv
	}
	h.rebin(off)
	return nil
}

// Payload recovers the usable byte slice for a live handle. Returns nil for
// NilRef or a structurally invalid ref.
func (h *Heap) Payload(ref Ref) []byte {
	if ref == NilRef {
		return nil
	}
	off, err := h.checkRef(ref)
	if err != nil {
		return nil
	}
	return h.data[ref : off+h.size(off)]
}

// checkRef validates the structural soundness of a payload handle and
// returns the owning fragment offset.
func (h *Heap) checkRef(ref Ref) (int32, error) {
	off := ref - HeaderSize
	if off < 0 || !format.IsAligned(int(off), Alignment) || int64(off)+SizeMin > h.diag.Capacity {
		return 0, ErrBadRef
	}
	size := h.size(off)
	if size < SizeMin || int64(off)+int64(size) > h.diag.Capacity || !format.IsAligned(int(size), SizeMin) {
		return 0, ErrBadRef
	}
	if !h.used(off) {
		return 0, ErrNotAllocated
	}
	return off, nil
}

// Diagnostics returns a snapshot of the heap's counters.
func (h *Heap) Diagnostics() Diagnostics {
	return h.diag
}

// Capacity returns the usable arena size in bytes, header overhead included.
func (h *Heap) Capacity() int {
	return int(h.diag.Capacity)
}
