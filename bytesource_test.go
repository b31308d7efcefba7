package jpegcore

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stuff applies JPEG byte-stuffing to b: every literal 0xFF is followed by
// an inserted 0x00.
func stuff(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, v := range b {
		out = append(out, v)
		if v == 0xFF {
			out = append(out, 0x00)
		}
	}

	return out
}

func TestByteSourceStuffingRoundTrip(t *testing.T) {
	original := []byte{0x01, 0x02, 0xFF, 0x03, 0xFF, 0xFF, 0x04, 0x05}

	src := newByteSource(bytes.NewReader(stuff(original)))

	var got []byte
	for i := 0; i < len(original); i++ {
		b, sig, err := src.readStuffed()
		require.NoError(t, err)
		require.Equal(t, stuffingOK, sig)
		got = append(got, b)
	}

	assert.Equal(t, original, got)
}

func TestByteSourceRealMarkerSignalsMissingFF00(t *testing.T) {
	src := newByteSource(bytes.NewReader([]byte{0xFF, 0xD9}))

	_, sig, err := src.readStuffed()
	require.NoError(t, err)
	assert.Equal(t, stuffingMissingFF00, sig)

	// The 0xFF was not consumed: a raw read still sees it.
	b, err := src.readByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), b)
}

func TestByteSourceUnreadStuffed(t *testing.T) {
	src := newByteSource(bytes.NewReader([]byte{0x7A, 0x7B}))

	b, sig, err := src.readStuffed()
	require.NoError(t, err)
	require.Equal(t, stuffingOK, sig)
	require.Equal(t, byte(0x7A), b)

	src.unreadStuffed()

	b2, err := src.readByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7A), b2)
}
