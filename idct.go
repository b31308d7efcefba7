package jpegcore

// Fixed-point AAN inverse DCT. Grounded on the teacher's idct_noasm.go: the
// same constants, the same two-pass row/column butterfly structure, and the
// same all-zero-AC shortcut. Only the architecture-specific SIMD variants
// were dropped — this portable version is the one the teacher falls back to
// on any platform without assembly, and it already satisfies the
// fixed-point-only requirement.
const (
	idctW1 = 2841 // 2048*sqrt(2)*cos(1*pi/16)
	idctW2 = 2676 // 2048*sqrt(2)*cos(2*pi/16)
	idctW3 = 2408 // 2048*sqrt(2)*cos(3*pi/16)
	idctW5 = 1609 // 2048*sqrt(2)*cos(5*pi/16)
	idctW6 = 1108 // 2048*sqrt(2)*cos(6*pi/16)
	idctW7 = 565  // 2048*sqrt(2)*cos(7*pi/16)
)

func clip8(x int32) byte {
	if x < 0 {
		return 0
	}

	if x > 255 {
		return 255
	}

	return byte(x)
}

func idctRow(blk *[64]int32, offset int) {
	b := blk[offset : offset+8]

	x4 := b[1]
	x6 := b[5]
	x2 := b[6]
	x3 := b[2]
	x5 := b[7]
	x7 := b[3]
	x1 := b[4] << 11

	if (x1 | x2 | x3 | x4 | x5 | x6 | x7) == 0 {
		val := b[0] << 3
		for i := 0; i < 8; i++ {
			b[i] = val
		}

		return
	}

	x0 := (b[0] << 11) + 128

	x8 := idctW7 * (x4 + x5)
	x4 = x8 + (idctW1-idctW7)*x4
	x5 = x8 - (idctW1+idctW7)*x5
	x8 = idctW3 * (x6 + x7)
	x6 = x8 - (idctW3-idctW5)*x6
	x7 = x8 - (idctW3+idctW5)*x7

	x8 = x0 + x1
	x0 -= x1
	x1 = idctW6 * (x3 + x2)
	x2 = x1 - (idctW2+idctW6)*x2
	x3 = x1 + (idctW2-idctW6)*x3

	x1 = x4 + x6
	x4 -= x6
	x6 = x5 + x7
	x5 -= x7

	x7 = x8 + x3
	x8 -= x3
	x3 = x0 + x2
	x0 -= x2

	x2 = (181*(x4+x5) + 128) >> 8
	x4 = (181*(x4-x5) + 128) >> 8

	b[0] = (x7 + x1) >> 8
	b[1] = (x3 + x2) >> 8
	b[2] = (x0 + x4) >> 8
	b[3] = (x8 + x6) >> 8
	b[4] = (x8 - x6) >> 8
	b[5] = (x0 - x4) >> 8
	b[6] = (x3 - x2) >> 8
	b[7] = (x7 - x1) >> 8
}

func idctCol(blk *[64]int32, offset int, out []byte, outOffset, stride int) {
	x4 := blk[offset+8*1]
	x6 := blk[offset+8*5]
	x2 := blk[offset+8*6]
	x3 := blk[offset+8*2]
	x5 := blk[offset+8*7]
	x7 := blk[offset+8*3]
	x1 := blk[offset+8*4] << 8

	if (x1 | x2 | x3 | x4 | x5 | x6 | x7) == 0 {
		v := clip8(((blk[offset] + 32) >> 6) + 128)
		o := outOffset

		for i := 0; i < 8; i++ {
			out[o] = v
			o += stride
		}

		return
	}

	x0 := (blk[offset] << 8) + 8192

	x8 := idctW7*(x4+x5) + 4
	x4 = (x8 + (idctW1-idctW7)*x4) >> 3
	x5 = (x8 - (idctW1+idctW7)*x5) >> 3
	x8 = idctW3*(x6+x7) + 4
	x6 = (x8 - (idctW3-idctW5)*x6) >> 3
	x7 = (x8 - (idctW3+idctW5)*x7) >> 3

	x8 = x0 + x1
	x0 -= x1
	x1 = idctW6*(x3+x2) + 4
	x2 = (x1 - (idctW2+idctW6)*x2) >> 3
	x3 = (x1 + (idctW2-idctW6)*x3) >> 3

	x1 = x4 + x6
	x4 -= x6
	x6 = x5 + x7
	x5 -= x7

	x7 = x8 + x3
	x8 -= x3
	x3 = x0 + x2
	x0 -= x2

	x2 = (181*(x4+x5) + 128) >> 8
	x4 = (181*(x4-x5) + 128) >> 8

	o := outOffset
	out[o] = clip8(((x7 + x1) >> 14) + 128)
	o += stride
	out[o] = clip8(((x3 + x2) >> 14) + 128)
	o += stride
	out[o] = clip8(((x0 + x4) >> 14) + 128)
	o += stride
	out[o] = clip8(((x8 + x6) >> 14) + 128)
	o += stride
	out[o] = clip8(((x8 - x6) >> 14) + 128)
	o += stride
	out[o] = clip8(((x0 - x4) >> 14) + 128)
	o += stride
	out[o] = clip8(((x3 - x2) >> 14) + 128)
	o += stride
	out[o] = clip8(((x7 - x1) >> 14) + 128)
}

// idct8x8 performs the full 2D inverse DCT on a dequantized, natural-order
// block and writes the resulting 8x8 samples into out at outOffset with the
// given row stride.
func idct8x8(blk *[64]int32, out []byte, outOffset, stride int) {
	for row := 0; row < 8; row++ {
		idctRow(blk, row*8)
	}

	for col := 0; col < 8; col++ {
		idctCol(blk, col, out, outOffset+col, stride)
	}
}
