package format

// Alignment utilities. The allocator requires every fragment boundary to sit
// on a fixed power-of-two alignment within the arena.

// AlignUp returns n aligned up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 16)  = 16
//	AlignUp(16, 16) = 16
//	AlignUp(17, 16) = 32
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n aligned down to the previous multiple of align.
// align must be a power of two.
func AlignDown(n, align int) int {
	return n &^ (align - 1)
}

// IsAligned reports whether n is a multiple of align.
// align must be a power of two.
func IsAligned(n, align int) bool {
	return n&(align-1) == 0
}
