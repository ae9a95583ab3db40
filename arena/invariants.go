package arena

import "github.com/cyphalkit/cyphalkit/internal/format"

// CheckInvariants performs a non-mutating audit of the heap's structural
// invariants and reports whether they all hold. Linear in the number of
// fragments; intended for diagnostics and the test suite, not hot paths.
//
// The audited invariants:
//   - every fragment size is a multiple of SizeMin and within capacity;
//   - the address-ordered chain is mutually linked and tiles the arena
//     exactly (fragment sizes sum to capacity);
//   - no two address-adjacent fragments are both free;
//   - Allocated equals the sum of used fragment sizes;
//   - the bin mask is exact, every bin holds only free fragments of its size
//     class, and the free lists are mutually linked;
//   - free fragment sizes sum to capacity minus Allocated.
func (h *Heap) CheckInvariants() bool {
	capacity := h.diag.Capacity
	if capacity < SizeMin || capacity > maxCapacity || !format.IsAligned(int(capacity), SizeMin) {
		return false
	}
	if h.diag.Allocated < 0 || h.diag.Allocated > capacity ||
		!format.IsAligned(int(h.diag.Allocated), SizeMin) {
		return false
	}
	if h.diag.PeakAllocated < h.diag.Allocated || h.diag.PeakAllocated > capacity {
		return false
	}
	if h.diag.PeakRequestSize > capacity && h.diag.OOMCount == 0 {
		return false
	}

	// Walk the whole-arena chain front to back.
	var totalSize, totalUsed int64
	prev := nilOff
	prevWasFree := false
	for off := int32(0); ; {
		size := h.size(off)
		if size < SizeMin || !format.IsAligned(int(size), SizeMin) ||
			int64(off)+int64(size) > capacity {
			return false
		}
		if h.prev(off) != prev {
			return false
		}
		used := h.used(off)
		if !used && prevWasFree {
			return false // Adjacent free fragments must have been merged.
		}
		totalSize += int64(size)
		if used {
			totalUsed += int64(size)
		}
		next := h.next(off)
		if next == nilOff {
			if int64(off)+int64(size) != capacity {
				return false
			}
			break
		}
		if next != off+size {
			return false // The chain must tile the arena with no gaps.
		}
		prev, prevWasFree, off = off, !used, next
	}
	if totalSize != capacity || totalUsed != h.diag.Allocated {
		return false
	}

	// Audit the segregated free lists against the occupancy mask.
	var totalFree int64
	for i := 0; i < binCount; i++ {
		head := h.bins[i]
		if (h.mask&(1<<uint(i)) != 0) != (head != nilOff) {
			return false
		}
		minSize := int32(SizeMin) << uint(i)
		prevFree := nilOff
		for off := head; off != nilOff; off = h.nextFree(off) {
			if h.used(off) {
				return false
			}
			size := h.size(off)
			if size < minSize || (minSize<<1 > 0 && size >= minSize<<1) {
				return false
			}
			if h.prevFree(off) != prevFree {
				return false
			}
			totalFree += int64(size)
			prevFree = off
		}
	}
	return totalFree == capacity-h.diag.Allocated
}
