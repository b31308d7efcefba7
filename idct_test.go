package jpegcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdct8x8AllZeroProducesMidGray(t *testing.T) {
	var blk [64]int32
	out := make([]byte, 64)

	idct8x8(&blk, out, 0, 8)

	for i, v := range out {
		assert.Equal(t, byte(128), v, "pixel %d", i)
	}
}

func TestIdct8x8DCOnlyIsUniformAndMonotonic(t *testing.T) {
	low := runDCOnly(t, 32)
	high := runDCOnly(t, 128)

	firstLow := low[0]
	for i, v := range low {
		assert.Equal(t, firstLow, v, "pixel %d not uniform", i)
	}

	assert.Greater(t, high[0], firstLow, "larger DC coefficient should yield a brighter block")
}

func runDCOnly(t *testing.T, dc int32) []byte {
	t.Helper()

	var blk [64]int32
	blk[0] = dc

	out := make([]byte, 64)
	idct8x8(&blk, out, 0, 8)

	return out
}

func TestIdct8x8WritesAtStrideOffset(t *testing.T) {
	var blk [64]int32
	blk[0] = 64

	stride := 16
	out := make([]byte, stride*8)
	idct8x8(&blk, out, 2, stride)

	for row := 0; row < 8; row++ {
		assert.NotZero(t, out[row*stride+2])
	}
}
