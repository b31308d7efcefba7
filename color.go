package jpegcore

// colorModel identifies how a decoded set of component planes maps onto
// output RGB (or grayscale) samples, per the decision table: component
// count and the APP14 Adobe transform tag (when present) jointly pick the
// model; bare component IDs 'R','G','B' select RGB for a 3-component image
// even without an Adobe marker, matching how the format is used in the
// wild. A JFIF APP0 marker rules out RGB in either case.
type colorModel int

const (
	colorGray colorModel = iota
	colorYCbCr
	colorRGB
	colorCMYK
	colorYCCK
)

func pickColorModel(numComponents int, ids [4]byte, isJfif, adobePresent bool, adobeTransform int) (colorModel, error) {
	switch numComponents {
	case 1:
		return colorGray, nil
	case 3:
		isRGB := !isJfif && ((adobePresent && adobeTransform == 0) ||
			(ids[0] == 'R' && ids[1] == 'G' && ids[2] == 'B'))
		if isRGB {
			return colorRGB, nil
		}

		return colorYCbCr, nil
	case 4:
		if !adobePresent {
			return colorGray, newErr(KindUnknownColorModel, "4 components without an Adobe APP14 marker")
		}

		if adobeTransform == 0 {
			return colorCMYK, nil
		}

		return colorYCCK, nil
	default:
		return colorGray, newErr(KindUnknownColorModel, "%d components", numComponents)
	}
}

func (m colorModel) String() string {
	switch m {
	case colorGray:
		return "grayscale"
	case colorYCbCr:
		return "ycbcr"
	case colorRGB:
		return "rgb"
	case colorCMYK:
		return "cmyk"
	case colorYCCK:
		return "ycck"
	default:
		return "unknown"
	}
}

func clampToByte(v int32) byte {
	if v < 0 {
		return 0
	}

	if v > 255 {
		return 255
	}

	return byte(v)
}

// ycbcrToRGB applies the JFIF/BT.601 full-range formulas.
func ycbcrToRGB(y, cb, cr byte) (r, g, b byte) {
	yy := int32(y)
	cbb := int32(cb) - 128
	crr := int32(cr) - 128

	const round = 1 << 15

	r = clampToByte(yy + (91881*crr+round)>>16)
	g = clampToByte(yy - (22554*cbb+46802*crr+round)>>16)
	b = clampToByte(yy + (116130*cbb+round)>>16)

	return
}

// cmykToRGB converts a CMYK sample to RGB via R=(1-C)(1-K). Each argument
// is the complement of its ink amount (255 = no ink, 0 = full ink), which is
// the inverted form Adobe CMYK JPEGs store on the wire, so c*k/255 is R.
func cmykToRGB(c, m, y, k byte) (r, g, b byte) {
	kk := int32(k)

	r = clampToByte(int32(c) * kk / 255)
	g = clampToByte(int32(m) * kk / 255)
	b = clampToByte(int32(y) * kk / 255)

	return
}

// convertRow fills one row of an interleaved RGB (or grayscale-replicated
// RGB) output buffer from the decoded planes, applying the model picked by
// pickColorModel. out must have room for width*3 bytes.
func convertRow(model colorModel, ps *planeStore, y, width int, out []byte) {
	for x := 0; x < width; x++ {
		var r, g, b byte

		switch model {
		case colorGray:
			v := ps.sample(0, x, y)
			r, g, b = v, v, v
		case colorYCbCr:
			r, g, b = ycbcrToRGB(ps.sample(0, x, y), ps.sample(1, x, y), ps.sample(2, x, y))
		case colorRGB:
			r = ps.sample(0, x, y)
			g = ps.sample(1, x, y)
			b = ps.sample(2, x, y)
		case colorCMYK:
			c := ps.sample(0, x, y)
			m := ps.sample(1, x, y)
			yy := ps.sample(2, x, y)
			k := ps.sample(3, x, y)
			r, g, b = cmykToRGB(c, m, yy, k)
		case colorYCCK:
			rr, gg, bb := ycbcrToRGB(ps.sample(0, x, y), ps.sample(1, x, y), ps.sample(2, x, y))
			c := 255 - rr
			m := 255 - gg
			yy := 255 - bb
			k := ps.sample(3, x, y)
			r, g, b = cmykToRGB(c, m, yy, k)
		}

		out[x*3+0] = r
		out[x*3+1] = g
		out[x*3+2] = b
	}
}
