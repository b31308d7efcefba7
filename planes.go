package jpegcore

// plane is one decoded, full-resolution-within-its-own-subsampling component
// plane: a stride-addressed byte grid, one sample per pixel of that
// component's own (possibly subsampled) grid.
type plane struct {
	pix           []byte
	width, height int
	stride        int
}

func newPlane(width, height int) *plane {
	return &plane{
		pix:    make([]byte, width*height),
		width:  width,
		height: height,
		stride: width,
	}
}

func (p *plane) at(x, y int) byte {
	return p.pix[y*p.stride+x]
}

// upsampleMode selects the resampling filter planeStore.sample applies when
// a component's plane is subsampled relative to hMax/vMax.
type upsampleMode int

const (
	upsampleNearest upsampleMode = iota
	upsampleCatmullRom
)

// planeStore holds every component's decoded plane plus the subsampling
// factors needed to resample them onto the common output grid during color
// conversion.
type planeStore struct {
	planes   []*plane
	hMax     int
	vMax     int
	hFactors []int
	vFactors []int
	mode     upsampleMode
}

func newPlaneStore(comps []component, mcuWidth, mcuHeight, hMax, vMax int) *planeStore {
	ps := &planeStore{hMax: hMax, vMax: vMax}

	for _, c := range comps {
		w := mcuWidth * c.hFactor / hMax
		h := mcuHeight * c.vFactor / vMax
		ps.planes = append(ps.planes, newPlane(w, h))
		ps.hFactors = append(ps.hFactors, c.hFactor)
		ps.vFactors = append(ps.vFactors, c.vFactor)
	}

	return ps
}

// sample returns component ci's value upsampled to output pixel (x, y) on
// the full-resolution image grid, using whichever filter ps.mode selects.
// A component sampled at full resolution (hFactor==hMax, vFactor==vMax)
// always takes the fast nearest path regardless of mode, since there is
// nothing to interpolate.
func (ps *planeStore) sample(ci, x, y int) byte {
	if ps.mode == upsampleNearest || (ps.hFactors[ci] == ps.hMax && ps.vFactors[ci] == ps.vMax) {
		return ps.sampleNearest(ci, x, y)
	}

	return ps.sampleCatmullRom(ci, x, y)
}

func (ps *planeStore) sampleNearest(ci, x, y int) byte {
	p := ps.planes[ci]
	sx := x * ps.hFactors[ci] / ps.hMax
	sy := y * ps.vFactors[ci] / ps.vMax

	if sx >= p.width {
		sx = p.width - 1
	}

	if sy >= p.height {
		sy = p.height - 1
	}

	return p.at(sx, sy)
}

// clampPos pins an integer plane coordinate to [0, n-1], the edge-extension
// convention Catmull-Rom interpolation needs for its out-of-range taps.
func clampPos(v, n int) int {
	if v < 0 {
		return 0
	}

	if v >= n {
		return n - 1
	}

	return v
}

// catmullRom1D evaluates the 4-point Catmull-Rom cubic at fractional offset
// t in [0,1) between p1 and p2, with p0/p3 the neighbors on either side.
func catmullRom1D(p0, p1, p2, p3 float64, t float64) float64 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t*t +
		(-p0+3*p1-3*p2+p3)*t*t*t)
}

// sampleCatmullRom upsamples component ci via separable bicubic (Catmull-Rom)
// interpolation: fancier than nearest-neighbor replication and the usual
// choice for chroma upsampling in quality-oriented decoders, at the cost of
// reading a 4x4 neighborhood per output pixel.
func (ps *planeStore) sampleCatmullRom(ci, x, y int) byte {
	p := ps.planes[ci]

	fx := float64(x)*float64(ps.hFactors[ci])/float64(ps.hMax) - 0.5
	fy := float64(y)*float64(ps.vFactors[ci])/float64(ps.vMax) - 0.5

	ix := int(fx)
	iy := int(fy)
	tx := fx - float64(ix)
	ty := fy - float64(iy)

	if fx < 0 {
		ix--
		tx = fx - float64(ix)
	}

	if fy < 0 {
		iy--
		ty = fy - float64(iy)
	}

	var cols [4]float64
	for row := -1; row <= 2; row++ {
		sy := clampPos(iy+row, p.height)

		var samples [4]float64
		for col := -1; col <= 2; col++ {
			sx := clampPos(ix+col, p.width)
			samples[col+1] = float64(p.at(sx, sy))
		}

		cols[row+1] = catmullRom1D(samples[0], samples[1], samples[2], samples[3], tx)
	}

	v := catmullRom1D(cols[0], cols[1], cols[2], cols[3], ty)

	return clampToByte(int32(v + 0.5))
}
