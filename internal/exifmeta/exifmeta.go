// Package exifmeta walks the TIFF header and first IFD of an APP1 "Exif"
// profile to recover a handful of human-readable tags. It is an external
// collaborator's helper, not part of the core decoder: the decoder only
// ever hands APP1 payload bytes to a PixelSink unparsed (see markers.go),
// the way §4.4/§6 specify. Grounded on jrm-1535-jpeg/exif.go's TIFF/IFD
// field accessors, generalized from that file's single-purpose reader into
// a small reusable tag table.
package exifmeta

import "encoding/binary"

const (
	tagOrientation = 0x0112
	tagMake        = 0x010F
	tagModel       = 0x0110
	tagDateTime    = 0x0132

	typeASCII = 2
	typeShort = 3
)

// Profile holds the tags this package knows how to read. Fields are left
// zero when the IFD doesn't carry them.
type Profile struct {
	Orientation int
	Make        string
	Model       string
	DateTime    string
}

// Parse walks profile, the raw bytes following an APP1 segment's "Exif\0\0"
// tag (i.e. starting at the TIFF header), and extracts Profile. It returns
// false if the TIFF header or first IFD is malformed or absent.
func Parse(profile []byte) (Profile, bool) {
	var p Profile

	if len(profile) < 8 {
		return p, false
	}

	var order binary.ByteOrder
	switch {
	case profile[0] == 'I' && profile[1] == 'I':
		order = binary.LittleEndian
	case profile[0] == 'M' && profile[1] == 'M':
		order = binary.BigEndian
	default:
		return p, false
	}

	if order.Uint16(profile[2:4]) != 42 {
		return p, false
	}

	ifdOffset := int(order.Uint32(profile[4:8]))
	if ifdOffset+2 > len(profile) {
		return p, false
	}

	numEntries := int(order.Uint16(profile[ifdOffset : ifdOffset+2]))
	entriesStart := ifdOffset + 2

	for i := 0; i < numEntries; i++ {
		entryOff := entriesStart + i*12
		if entryOff+12 > len(profile) {
			break
		}

		tag := order.Uint16(profile[entryOff : entryOff+2])
		typ := order.Uint16(profile[entryOff+2 : entryOff+4])
		count := order.Uint32(profile[entryOff+4 : entryOff+8])
		valueOff := entryOff + 8

		switch tag {
		case tagOrientation:
			if typ == typeShort {
				p.Orientation = int(order.Uint16(profile[valueOff : valueOff+2]))
			}
		case tagMake:
			if typ == typeASCII {
				p.Make = readASCII(order, profile, valueOff, int(count))
			}
		case tagModel:
			if typ == typeASCII {
				p.Model = readASCII(order, profile, valueOff, int(count))
			}
		case tagDateTime:
			if typ == typeASCII {
				p.DateTime = readASCII(order, profile, valueOff, int(count))
			}
		}
	}

	return p, true
}

// readASCII resolves an ASCII-typed IFD entry: inline if it fits in the
// 4-byte value slot, otherwise via the offset it contains.
func readASCII(order binary.ByteOrder, profile []byte, valueOff, count int) string {
	if count <= 4 {
		return trimNUL(profile[valueOff : valueOff+count])
	}

	off := int(order.Uint32(profile[valueOff : valueOff+4]))
	if off+count > len(profile) {
		return ""
	}

	return trimNUL(profile[off : off+count])
}

func trimNUL(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
