package otquery

import (
	"encoding/binary"

	"github.com/npillmayer/typeface/ot"
)

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// Fonts with CFF outlines use version 0.5, which carries the glyph count only.
// For version 1.0 tables, the TrueType profile fields are decoded if present.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	HasExtendedProfile    bool // version 1.0 with TrueType profile
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// DecodeMaxP decodes the bytes of table 'maxp'.
func DecodeMaxP(b []byte) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	if len(b) < maxpMinSize {
		return info, false
	}
	be := binary.BigEndian
	info.VersionFixed = be.Uint32(b[0:])
	info.NumGlyphs = be.Uint16(b[4:])
	if info.VersionFixed != 0x00010000 || len(b) < maxpV10Size {
		return info, true
	}
	info.HasExtendedProfile = true
	profile := []*uint16{
		&info.MaxPoints, &info.MaxContours, &info.MaxCompositePoints,
		&info.MaxCompositeContours, &info.MaxZones, &info.MaxTwilightPoints,
		&info.MaxStorage, &info.MaxFunctionDefs, &info.MaxInstructionDefs,
		&info.MaxStackElements, &info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	}
	for i, field := range profile {
		*field = be.Uint16(b[6+2*i:])
	}
	return info, true
}

// MaxPInfo decodes table 'maxp' of a font.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	return decodeTable(otf, "maxp", DecodeMaxP)
}
