/*
Package fonttest creates fonts for tests: synthetic Type 1 fonts with AFM
metrics, and modified copies of sfnt fonts.

All functions leave their input untouched and panic on malformed input, as
they are meant to be used with well-known test fonts only.
*/
package fonttest

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// --- sfnt fonts ------------------------------------------------------------

// TableRecord finds the directory entry of table tag.
func TableRecord(font []byte, tag string) (offset, length uint32, ok bool) {
	n := int(binary.BigEndian.Uint16(font[4:]))
	for i := range n {
		rec := font[12+16*i:]
		if string(rec[:4]) == tag {
			return binary.BigEndian.Uint32(rec[8:]), binary.BigEndian.Uint32(rec[12:]), true
		}
	}
	return 0, 0, false
}

// Patch returns a copy of font with bytes of table tag, starting at offset
// at, replaced by data.
func Patch(font []byte, tag string, at int, data []byte) []byte {
	offset, length, ok := TableRecord(font, tag)
	if !ok || at+len(data) > int(length) {
		panic(fmt.Sprintf("fonttest: cannot patch table %s at %d", tag, at))
	}
	patched := bytes.Clone(font)
	copy(patched[int(offset)+at:], data)
	return patched
}

// WithFsType returns a copy of font with embedding permissions fsType.
func WithFsType(font []byte, fsType uint16) []byte {
	return Patch(font, "OS/2", 8, binary.BigEndian.AppendUint16(nil, fsType))
}

// WithOS2Version returns a copy of font with the version field of table
// 'OS/2' set. Downgrading a table below version 2 hides its x-height and
// cap-height fields.
func WithOS2Version(font []byte, version uint16) []byte {
	return Patch(font, "OS/2", 0, binary.BigEndian.AppendUint16(nil, version))
}

// RenameTable returns a copy of font with table from renamed to to, which
// effectively removes table from. The table directory may end up unsorted.
func RenameTable(font []byte, from, to string) []byte {
	if len(from) != 4 || len(to) != 4 {
		panic("fonttest: table tags must have 4 bytes")
	}
	patched := bytes.Clone(font)
	n := int(binary.BigEndian.Uint16(patched[4:]))
	for i := range n {
		rec := patched[12+16*i:]
		if string(rec[:4]) == from {
			copy(rec, to)
			return patched
		}
	}
	panic(fmt.Sprintf("fonttest: font has no table %s", from))
}
