package cmd

import (
	"image"
	"log/slog"

	"github.com/lggomez/jpegcore/internal/exifmeta"
)

// pngSink is the CLI's PixelSink: image/png plus image.RGBA is the minimal,
// dependency-free pluggable "image container" the core package itself stays
// agnostic of (§6 places any concrete output format out of scope for the
// library).
type pngSink struct {
	log *slog.Logger

	width, height int
	img           *image.RGBA

	resH, resV int
	exif       exifmeta.Profile
	hasExif    bool
}

func newPNGSink(log *slog.Logger) *pngSink {
	return &pngSink{log: log}
}

func (s *pngSink) SetPixels(width, height int, rgba []byte) {
	s.width, s.height = width, height
	s.img = &image.RGBA{
		Pix:    rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	s.log.Info("decoded image", "width", width, "height", height)
}

func (s *pngSink) SetResolution(h, v int) {
	s.resH, s.resV = h, v
}

func (s *pngSink) SetExifProfile(profile []byte) {
	// The decoder hands over the whole APP1 payload; exifmeta.Parse expects
	// it to start at the TIFF header that follows "Exif\0\0".
	if len(profile) >= 6 && string(profile[:6]) == "Exif\x00\x00" {
		profile = profile[6:]
	}

	if p, ok := exifmeta.Parse(profile); ok {
		s.exif = p
		s.hasExif = true

		s.log.Debug("exif profile",
			"orientation", p.Orientation, "make", p.Make, "model", p.Model, "dateTime", p.DateTime)
	}
}
