package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoding_RoundTrip(t *testing.T) {
	b := make([]byte, 16)

	PutU32(b, 0, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadU32(b, 0))

	PutI32(b, 4, -12345)
	require.Equal(t, int32(-12345), ReadI32(b, 4))

	// Negative values survive the unsigned view.
	PutI32(b, 8, -1)
	assert.Equal(t, uint32(0xFFFFFFFF), ReadU32(b, 8))
}

func TestEncoding_LittleEndianLayout(t *testing.T) {
	b := make([]byte, 4)
	PutU32(b, 0, 0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
}

func TestAlignUp(t *testing.T) {
	cases := []struct{ n, align, want int }{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{31, 32, 32},
		{33, 32, 64},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AlignUp(c.n, c.align), "AlignUp(%d, %d)", c.n, c.align)
	}
}

func TestAlignDown(t *testing.T) {
	assert.Equal(t, 0, AlignDown(15, 16))
	assert.Equal(t, 16, AlignDown(16, 16))
	assert.Equal(t, 16, AlignDown(31, 16))
	assert.Equal(t, 4096, AlignDown(4111, 32))
}

func TestIsAligned(t *testing.T) {
	assert.True(t, IsAligned(0, 16))
	assert.True(t, IsAligned(64, 16))
	assert.False(t, IsAligned(8, 16))
}
