package arena

import "errors"

var (
	// ErrNoSpace indicates that no free fragment large enough exists for the request.
	ErrNoSpace = errors.New("arena: no free fragment large enough")

	// ErrBadRef indicates an invalid, misaligned, or out-of-bounds fragment reference.
	ErrBadRef = errors.New("arena: bad fragment reference")

	// ErrNotAllocated indicates an attempt to free a fragment that is not marked used.
	ErrNotAllocated = errors.New("arena: fragment is not allocated")

	// ErrArenaTooSmall indicates the supplied buffer cannot hold even one minimum fragment.
	ErrArenaTooSmall = errors.New("arena: buffer smaller than one minimum fragment")
)
