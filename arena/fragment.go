package arena

import "github.com/cyphalkit/cyphalkit/internal/format"

// Fragment header layout (little-endian, offsets relative to fragment start):
//
//	0x00  4  prev      Offset of the address-preceding fragment, nilOff if first.
//	0x04  4  next      Offset of the address-following fragment, nilOff if last.
//	0x08  4  size      Total fragment size in bytes, header included.
//	                   Always a multiple of SizeMin.
//	0x0C  4  used      1 if allocated, 0 if free.
//
// Free fragments carry the segregated free-list links in their payload area
// (there is always room: the smallest fragment has SizeMin-HeaderSize payload):
//
//	0x10  4  nextFree  Next fragment in the same size-class bin, nilOff at tail.
//	0x14  4  prevFree  Previous fragment in the same bin, nilOff at head.
const (
	fragPrev     = 0x00
	fragNext     = 0x04
	fragSize     = 0x08
	fragUsed     = 0x0C
	fragNextFree = 0x10
	fragPrevFree = 0x14
)

// nilOff is the null fragment offset. Offset zero is a valid fragment (the
// first one), so the sentinel must be out of band.
const nilOff int32 = -1

func (h *Heap) prev(off int32) int32     { return format.ReadI32(h.data, int(off)+fragPrev) }
func (h *Heap) next(off int32) int32     { return format.ReadI32(h.data, int(off)+fragNext) }
func (h *Heap) size(off int32) int32     { return format.ReadI32(h.data, int(off)+fragSize) }
func (h *Heap) used(off int32) bool      { return format.ReadU32(h.data, int(off)+fragUsed) != 0 }
func (h *Heap) nextFree(off int32) int32 { return format.ReadI32(h.data, int(off)+fragNextFree) }
func (h *Heap) prevFree(off int32) int32 { return format.ReadI32(h.data, int(off)+fragPrevFree) }

func (h *Heap) setPrev(off, v int32)     { format.PutI32(h.data, int(off)+fragPrev, v) }
func (h *Heap) setNext(off, v int32)     { format.PutI32(h.data, int(off)+fragNext, v) }
func (h *Heap) setSize(off, v int32)     { format.PutI32(h.data, int(off)+fragSize, v) }
func (h *Heap) setNextFree(off, v int32) { format.PutI32(h.data, int(off)+fragNextFree, v) }
func (h *Heap) setPrevFree(off, v int32) { format.PutI32(h.data, int(off)+fragPrevFree, v) }

func (h *Heap) setUsed(off int32, used bool) {
	var v uint32
	if used {
		v = 1
	}
	format.PutU32(h.data, int(off)+fragUsed, v)
}

// binIndex maps a fragment size to its segregated free-list index:
// bin i holds fragments with size in [SizeMin<<i, SizeMin<<(i+1)).
func binIndex(size int32) int {
	return log2Floor(uint32(size) / SizeMin)
}

// unbin splices a free fragment out of its size-class free list, clearing the
// bin's mask bit if the list becomes empty.
func (h *Heap) unbin(off int32) {
	idx := binIndex(h.size(off))
	nf := h.nextFree(off)
	pf := h.prevFree(off)
	if nf != nilOff {
		h.setPrevFree(nf, pf)
	}
	if pf != nilOff {
		h.setNextFree(pf, nf)
	} else {
		h.bins[idx] = nf
		if nf == nilOff {
			h.mask &^= 1 << uint(idx)
		}
	}
}

// rebin pushes a free fragment onto the head of the free list matching its
// size and marks the bin non-empty.
func (h *Heap) rebin(off int32) {
	idx := binIndex(h.size(off))
	head := h.bins[idx]
	h.setNextFree(off, head)
	h.setPrevFree(off, nilOff)
	if head != nilOff {
		h.setPrevFree(head, off)
	}
	h.bins[idx] = off
	h.mask |= 1 << uint(idx)
}
