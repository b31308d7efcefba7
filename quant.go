package jpegcore

// unzig maps a zig-zag scan position to its natural row-major position
// within an 8x8 block, per T.81 Figure A.6. Carried over unchanged from the
// teacher's zz table — the mapping is a fixed constant of the format, not
// something that varies with any of this decoder's redesigned behavior.
var unzig = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// quantTable holds one DQT segment's 64 coefficients in zig-zag order, as
// stored on the wire; dequantization indexes it by zig-zag position, not
// natural position.
type quantTable struct {
	values [64]uint16
}

// dequantize scales a block of raw coefficients (in zig-zag order) by this
// table and scatters the result into natural (row-major) order.
func (q *quantTable) dequantize(coeffs *[64]int32, out *[64]int32) {
	for zig := 0; zig < 64; zig++ {
		out[unzig[zig]] = coeffs[zig] * int32(q.values[zig])
	}
}
