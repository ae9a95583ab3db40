package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog2Floor(t *testing.T) {
	cases := []struct {
		x    uint32
		want int
	}{
		{1, 0}, {2, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {1 << 30, 30}, {1<<32 - 1, 31},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, log2Floor(c.x), "log2Floor(%d)", c.x)
	}
}

func TestLog2Ceil(t *testing.T) {
	cases := []struct {
		x    uint32
		want int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {1 << 30, 30},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, log2Ceil(c.x), "log2Ceil(%d)", c.x)
	}
}

func TestRoundUpPow2(t *testing.T) {
	cases := []struct{ x, want uint32 }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{48, 64}, {64, 64}, {65, 128}, {1<<30 + 1, 1 << 31},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, roundUpPow2(c.x), "roundUpPow2(%d)", c.x)
	}
}

func TestRoundUpPow2_Saturates(t *testing.T) {
	// Size arithmetic must never wrap around to a small value.
	assert.Equal(t, uint32(1<<31), roundUpPow2(1<<31+1))
	assert.Equal(t, uint32(1<<31), roundUpPow2(1<<32-1))
}

func TestBinIndex(t *testing.T) {
	assert.Equal(t, 0, binIndex(SizeMin))
	assert.Equal(t, 1, binIndex(2*SizeMin))
	assert.Equal(t, 1, binIndex(3*SizeMin))
	assert.Equal(t, 2, binIndex(4*SizeMin))
	assert.Equal(t, 6, binIndex(64*SizeMin))
}
