package jpegcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleNearestClampsToPlaneBounds(t *testing.T) {
	p := newPlane(2, 2)
	p.pix = []byte{10, 20, 30, 40}

	ps := &planeStore{
		planes:   []*plane{p},
		hMax:     2, vMax: 2,
		hFactors: []int{1}, vFactors: []int{1},
		mode: upsampleNearest,
	}

	// Output grid is 4x4 (hMax=vMax=2 over a 2x2 plane); (4,4) maps to plane
	// column/row 2, one past the plane, and must clamp to the last column/row
	// rather than index out of range.
	assert.Equal(t, byte(40), ps.sample(0, 4, 4))
	assert.Equal(t, byte(10), ps.sample(0, 0, 0))
}

func TestSampleCatmullRomMatchesConstantPlane(t *testing.T) {
	p := newPlane(4, 4)
	for i := range p.pix {
		p.pix[i] = 100
	}

	ps := &planeStore{
		planes:   []*plane{p},
		hMax:     2, vMax: 2,
		hFactors: []int{1}, vFactors: []int{1},
		mode: upsampleCatmullRom,
	}

	// A constant plane must interpolate back to the same constant everywhere.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, byte(100), ps.sample(0, x, y))
		}
	}
}

func TestSampleFullResolutionComponentBypassesInterpolation(t *testing.T) {
	p := newPlane(2, 2)
	p.pix = []byte{5, 6, 7, 8}

	ps := &planeStore{
		planes:   []*plane{p},
		hMax:     1, vMax: 1,
		hFactors: []int{1}, vFactors: []int{1},
		mode: upsampleCatmullRom,
	}

	assert.Equal(t, byte(5), ps.sample(0, 0, 0))
	assert.Equal(t, byte(8), ps.sample(0, 1, 1))
}

func TestSetUpsampleFilterValidation(t *testing.T) {
	d := &Decoder{}

	assert.NoError(t, d.SetUpsampleFilter("nearest"))
	assert.Equal(t, upsampleNearest, d.upsampleMode)

	assert.NoError(t, d.SetUpsampleFilter("catmullrom"))
	assert.Equal(t, upsampleCatmullRom, d.upsampleMode)

	assert.NoError(t, d.SetUpsampleFilter(""))
	assert.Equal(t, upsampleNearest, d.upsampleMode)

	err := d.SetUpsampleFilter("bogus")
	assert.Error(t, err)
}
