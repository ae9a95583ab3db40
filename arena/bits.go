package arena

import "math/bits"

// The O(1) complexity guarantee of the allocator rests on these being single
// machine instructions (bit scans), not loops.

// log2Floor returns floor(log2(x)). x must be positive.
func log2Floor(x uint32) int {
	return 31 - bits.LeadingZeros32(x)
}

// log2Ceil returns ceil(log2(x)). x must be positive.
func log2Ceil(x uint32) int {
	if x <= 1 {
		return 0
	}
	return 32 - bits.LeadingZeros32(x-1)
}

// roundUpPow2 returns the smallest power of two >= x, saturating at 1<<31 so
// size arithmetic can never wrap around to a small value.
func roundUpPow2(x uint32) uint32 {
	if x <= 1 {
		return 1
	}
	if x > 1<<31 {
		return 1 << 31
	}
	return 1 << uint(32-bits.LeadingZeros32(x-1))
}
