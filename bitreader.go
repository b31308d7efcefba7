package jpegcore

// bitReader turns a byteSource into an MSB-first stream of bits. It peeks
// non-destructively: ensure() fills the accumulator without committing to
// how many bits will actually be consumed, so the Huffman fast path can test
// an 8-bit lookup and fall back to the slow path over the same buffered bits
// without ever pushing bytes back into the byte source.
type bitReader struct {
	src      *byteSource
	acc      uint64
	n        int // valid bits held in acc, right-justified
	atMarker bool
}

func newBitReader(src *byteSource) *bitReader {
	return &bitReader{src: src}
}

// reset clears buffered bits and the marker-hit latch. Called at the start
// of every scan and after every restart marker.
func (br *bitReader) reset() {
	br.acc = 0
	br.n = 0
	br.atMarker = false
}

// ensure tries to grow the accumulator to at least k bits. If the entropy
// stream ends (a real marker, or the underlying reader is exhausted) before
// k bits are available, it sets atMarker and returns with n < k; callers pad
// the shortfall per their own convention.
func (br *bitReader) ensure(k int) {
	for br.n < k {
		b, sig, err := br.src.readStuffed()
		if err != nil || sig == stuffingMissingFF00 {
			br.atMarker = true
			return
		}

		br.acc = (br.acc << 8) | uint64(b)
		br.n += 8
	}
}

// decodeBit reads one bit, returning 0 if the stream has run dry. Used for
// progressive successive-approximation refinement, where a missing bit is
// defined to mean zero.
func (br *bitReader) decodeBit() int {
	if br.n < 1 {
		br.ensure(1)
	}

	if br.n < 1 {
		return 0
	}

	br.n--

	return int((br.acc >> uint(br.n)) & 1)
}

// decodeBits reads k bits (0 <= k <= 16), padding any shortfall with 1s —
// the convention a compliant encoder uses when it pads the final byte of
// entropy data before a marker.
func (br *bitReader) decodeBits(k int) int32 {
	if k == 0 {
		return 0
	}

	br.ensure(k)

	if br.n >= k {
		v := uint32(br.acc>>uint(br.n-k)) & ((1 << uint(k)) - 1)
		br.n -= k

		return int32(v)
	}

	have := br.n
	val := uint32(br.acc) & ((1 << uint(have)) - 1)
	missing := k - have
	val = (val << uint(missing)) | ((1 << uint(missing)) - 1)
	br.n = 0

	return int32(val)
}

// huffmanBit is like decodeBit but pads shortfall with 1, matching
// decodeBits' convention; used only by the Huffman slow path so a
// truncated stream still terminates on some code rather than looping on 0s.
func (br *bitReader) huffmanBit() int {
	if br.n < 1 {
		br.ensure(1)
	}

	if br.n < 1 {
		return 1
	}

	br.n--

	return int((br.acc >> uint(br.n)) & 1)
}

// receiveExtend implements T.81 Annex F's sign extension of a t-bit
// magnitude into a signed DC/AC coefficient delta.
func (br *bitReader) receiveExtend(t int) int32 {
	if t == 0 {
		return 0
	}

	x := br.decodeBits(t)
	threshold := int32(1) << uint(t-1)

	if x < threshold {
		return x + (int32(-1) << uint(t)) + 1
	}

	return x
}

// byteAlign discards any bits left over past the last whole byte boundary;
// those bits are encoder padding, never real entropy data.
func (br *bitReader) byteAlign() {
	br.n -= br.n % 8
}

// nextRawByte returns the next byte of the underlying stream, preferring a
// whole byte still sitting unconsumed in the accumulator (the common case
// right after byteAlign) before falling through to the byte source. Used
// only for restart-marker resynchronization, never inside entropy decode.
func (br *bitReader) nextRawByte() (byte, error) {
	if br.n >= 8 {
		br.n -= 8

		return byte(br.acc >> uint(br.n)), nil
	}

	return br.src.readByte()
}
