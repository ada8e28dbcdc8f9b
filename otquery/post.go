package otquery

import (
	"encoding/binary"

	"github.com/npillmayer/typeface/ot"
)

// PostTableInfo is a typed query view over the header of OpenType table 'post'.
// Glyph names of version 2 tables are not decoded.
type PostTableInfo struct {
	Version            uint32 // 16.16 fixed-point, e.g. 0x00030000
	ItalicAngle        int32  // 16.16 fixed-point, degrees counter-clockwise from the vertical
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32 // 0 if proportionally spaced
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}

const postHeaderSize = 32

// DecodePost decodes the header bytes of table 'post'.
func DecodePost(b []byte) (PostTableInfo, bool) {
	var info PostTableInfo
	if len(b) < postHeaderSize {
		return info, false
	}
	be := binary.BigEndian
	info.Version = be.Uint32(b[0:])
	info.ItalicAngle = int32(be.Uint32(b[4:]))
	info.UnderlinePosition = int16(be.Uint16(b[8:]))
	info.UnderlineThickness = int16(be.Uint16(b[10:]))
	info.IsFixedPitch = be.Uint32(b[12:])
	info.MinMemType42 = be.Uint32(b[16:])
	info.MaxMemType42 = be.Uint32(b[20:])
	info.MinMemType1 = be.Uint32(b[24:])
	info.MaxMemType1 = be.Uint32(b[28:])
	return info, true
}

// PostInfo decodes table 'post' of a font.
func PostInfo(otf *ot.Font) (PostTableInfo, bool) {
	return decodeTable(otf, "post", DecodePost)
}

// ItalicAngleDegrees converts the fixed-point italic angle to degrees.
func (info PostTableInfo) ItalicAngleDegrees() float64 {
	return float64(info.ItalicAngle) / 65536.0
}
