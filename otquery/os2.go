package otquery

import (
	"encoding/binary"
	"strings"

	"github.com/npillmayer/typeface/ot"
)

// OS2TableInfo is a typed query view over OpenType table 'OS/2'.
// Fields not present in the table's version are left zero.
type OS2TableInfo struct {
	Version       uint16
	XAvgCharWidth int16
	WeightClass   uint16 // 100 … 900
	WidthClass    uint16 // 1 … 9
	FsType        uint16 // embedding licensing rights
	FamilyClass   int16
	Panose        [10]byte
	VendorID      string
	FsSelection   uint16
	FirstChar     uint16
	LastChar      uint16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	WinAscent     uint16
	WinDescent    uint16
	CodePageRange [2]uint32 // since version 1
	XHeight       int16     // since version 2
	CapHeight     int16     // since version 2
	DefaultChar   uint16    // since version 2
	BreakChar     uint16    // since version 2
	MaxContext    uint16    // since version 2
	size          int
}

// Bits of field fsSelection.
const (
	FsSelectionItalic  uint16 = 1 << 0
	FsSelectionBold    uint16 = 1 << 5
	FsSelectionRegular uint16 = 1 << 6
	FsSelectionOblique uint16 = 1 << 9
)

// Some Apple fonts carry a version 0 table with only 68 bytes, missing the
// typographic metrics.
const os2MinSize = 68

// Size of a version 2 table, which is the first to carry height fields.
const os2V2Size = 96

// DecodeOS2 decodes the bytes of table 'OS/2'.
func DecodeOS2(b []byte) (OS2TableInfo, bool) {
	var info OS2TableInfo
	if len(b) < os2MinSize {
		return info, false
	}
	be := binary.BigEndian
	info.size = len(b)
	info.Version = be.Uint16(b[0:])
	info.XAvgCharWidth = int16(be.Uint16(b[2:]))
	info.WeightClass = be.Uint16(b[4:])
	info.WidthClass = be.Uint16(b[6:])
	info.FsType = be.Uint16(b[8:])
	info.FamilyClass = int16(be.Uint16(b[30:]))
	copy(info.Panose[:], b[32:42])
	info.VendorID = strings.TrimRight(string(b[58:62]), " \x00")
	info.FsSelection = be.Uint16(b[62:])
	info.FirstChar = be.Uint16(b[64:])
	info.LastChar = be.Uint16(b[66:])
	if len(b) < 78 {
		return info, true
	}
	info.TypoAscender = int16(be.Uint16(b[68:]))
	info.TypoDescender = int16(be.Uint16(b[70:]))
	info.TypoLineGap = int16(be.Uint16(b[72:]))
	info.WinAscent = be.Uint16(b[74:])
	info.WinDescent = be.Uint16(b[76:])
	if info.Version < 1 || len(b) < 86 {
		return info, true
	}
	info.CodePageRange[0] = be.Uint32(b[78:])
	info.CodePageRange[1] = be.Uint32(b[82:])
	if info.Version < 2 || len(b) < os2V2Size {
		return info, true
	}
	info.XHeight = int16(be.Uint16(b[86:]))
	info.CapHeight = int16(be.Uint16(b[88:]))
	info.DefaultChar = be.Uint16(b[90:])
	info.BreakChar = be.Uint16(b[92:])
	info.MaxContext = be.Uint16(b[94:])
	return info, true
}

// OS2Info decodes table 'OS/2' of a font.
// Returns (zero, false) if the table is missing or too short.
func OS2Info(otf *ot.Font) (OS2TableInfo, bool) {
	return decodeTable(otf, "OS/2", DecodeOS2)
}

// HasHeightFields reports whether the table carries x-height and cap-height,
// i.e. is at least of version 2 and long enough to hold them.
func (info OS2TableInfo) HasHeightFields() bool {
	return info.Version >= 2 && info.size >= os2V2Size
}
