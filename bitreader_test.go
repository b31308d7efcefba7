package jpegcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitReaderDecodeBitsMSBFirst(t *testing.T) {
	src := newByteSource(bytes.NewReader([]byte{0b1011_0100, 0xAA}))
	br := newBitReader(src)

	assert.Equal(t, int32(0b1011), br.decodeBits(4))
	assert.Equal(t, int32(0b0100), br.decodeBits(4))
	assert.Equal(t, int32(0xAA), br.decodeBits(8))
}

func TestBitReaderDecodeBitsShortfallPadsWithOnes(t *testing.T) {
	src := newByteSource(bytes.NewReader([]byte{0b1100_0000}))
	br := newBitReader(src)

	br.decodeBits(8) // consume the only real bits, leaving the stream dry

	// Past the end of the (single-byte) stream, decodeBits pads with 1s.
	got := br.decodeBits(8)
	assert.Equal(t, int32(0xFF), got)
}

func TestBitReaderDecodeBitShortfallPadsWithZero(t *testing.T) {
	src := newByteSource(bytes.NewReader(nil))
	br := newBitReader(src)

	assert.Equal(t, 0, br.decodeBit())
}

func TestBitReaderReceiveExtendSignExtension(t *testing.T) {
	// category 3, value 0b011 (3) is below the 4 threshold -> negative branch.
	src := newByteSource(bytes.NewReader([]byte{0b0110_0000}))
	br := newBitReader(src)

	got := br.receiveExtend(3)
	assert.Equal(t, int32(-4), got)
}

func TestBitReaderReceiveExtendPositive(t *testing.T) {
	// category 3, value 0b101 (5) is >= the 4 threshold -> returned as-is.
	src := newByteSource(bytes.NewReader([]byte{0b1010_0000}))
	br := newBitReader(src)

	got := br.receiveExtend(3)
	assert.Equal(t, int32(5), got)
}

func TestBitReaderStopsAtRealMarker(t *testing.T) {
	src := newByteSource(bytes.NewReader([]byte{0xFF, 0xD9}))
	br := newBitReader(src)

	br.ensure(16)
	assert.True(t, br.atMarker)
	assert.Less(t, br.n, 16)
}

func TestBitReaderByteAlignDropsPartialBits(t *testing.T) {
	src := newByteSource(bytes.NewReader([]byte{0xFF, 0x00, 0xAB}))
	br := newBitReader(src)

	br.decodeBits(3)
	br.byteAlign()
	assert.Equal(t, 0, br.n%8)
}
