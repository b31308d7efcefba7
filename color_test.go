package jpegcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickColorModelGrayscale(t *testing.T) {
	model, err := pickColorModel(1, [4]byte{1}, true, false, 0)
	require.NoError(t, err)
	assert.Equal(t, colorGray, model)
}

func TestPickColorModelJfifIsAlwaysYCbCr(t *testing.T) {
	// isJfif=true forbids RGB even with literal 'R','G','B' component IDs.
	model, err := pickColorModel(3, [4]byte{'R', 'G', 'B'}, true, false, 0)
	require.NoError(t, err)
	assert.Equal(t, colorYCbCr, model)
}

func TestPickColorModelLiteralRGBIds(t *testing.T) {
	model, err := pickColorModel(3, [4]byte{'R', 'G', 'B'}, false, false, 0)
	require.NoError(t, err)
	assert.Equal(t, colorRGB, model)
}

func TestPickColorModelAdobeTransformZeroIsRGB(t *testing.T) {
	model, err := pickColorModel(3, [4]byte{1, 2, 3}, false, true, 0)
	require.NoError(t, err)
	assert.Equal(t, colorRGB, model)
}

func TestPickColorModelDefaultThreeComponentIsYCbCr(t *testing.T) {
	model, err := pickColorModel(3, [4]byte{1, 2, 3}, false, false, 0)
	require.NoError(t, err)
	assert.Equal(t, colorYCbCr, model)
}

func TestPickColorModelFourComponentsWithoutAdobeIsUnknown(t *testing.T) {
	_, err := pickColorModel(4, [4]byte{1, 2, 3, 4}, false, false, 0)
	require.Error(t, err)

	de, ok := err.(*DecodeError)
	require.True(t, ok)
	assert.Equal(t, KindUnknownColorModel, de.Kind)
}

func TestPickColorModelFourComponentsCMYKvsYCCK(t *testing.T) {
	cmyk, err := pickColorModel(4, [4]byte{1, 2, 3, 4}, false, true, 0)
	require.NoError(t, err)
	assert.Equal(t, colorCMYK, cmyk)

	ycck, err := pickColorModel(4, [4]byte{1, 2, 3, 4}, false, true, 2)
	require.NoError(t, err)
	assert.Equal(t, colorYCCK, ycck)
}

func TestYCbCrToRGBGrayAxis(t *testing.T) {
	// Cb=Cr=128 (neutral chroma) must reproduce the luma value exactly.
	r, g, b := ycbcrToRGB(200, 128, 128)
	assert.Equal(t, byte(200), r)
	assert.Equal(t, byte(200), g)
	assert.Equal(t, byte(200), b)
}

func TestClampToByte(t *testing.T) {
	assert.Equal(t, byte(0), clampToByte(-5))
	assert.Equal(t, byte(255), clampToByte(300))
	assert.Equal(t, byte(42), clampToByte(42))
}
