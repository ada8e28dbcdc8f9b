package ot

import (
	"encoding/binary"
	"errors"
)

var errBounds = errors.New("ot: read beyond end of font data")

var be = binary.BigEndian

func u16(b []byte) uint16 { return be.Uint16(b) }
func u32(b []byte) uint32 { return be.Uint32(b) }

// fontData is a view into the binary data of a font or of one of its tables.
// sfnt data is big-endian throughout.
type fontData []byte

// view returns n bytes at offset, sharing memory with d.
func (d fontData) view(offset, n int) (fontData, error) {
	if offset < 0 || n < 0 || offset > len(d)-n {
		return nil, errBounds
	}
	return d[offset : offset+n], nil
}

func (d fontData) u16(offset int) (uint16, error) {
	b, err := d.view(offset, 2)
	if err != nil {
		return 0, err
	}
	return u16(b), nil
}

func (d fontData) i16(offset int) (int16, error) {
	n, err := d.u16(offset)
	return int16(n), err
}

func (d fontData) u32(offset int) (uint32, error) {
	b, err := d.view(offset, 4)
	if err != nil {
		return 0, err
	}
	return u32(b), nil
}

// U16 reads a uint16 at offset, or 0 if offset is out of bounds.
func (d fontData) U16(offset int) uint16 {
	n, _ := d.u16(offset)
	return n
}

// U32 reads a uint32 at offset, or 0 if offset is out of bounds.
func (d fontData) U32(offset int) uint32 {
	n, _ := d.u32(offset)
	return n
}
