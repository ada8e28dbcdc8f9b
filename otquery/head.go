package otquery

import (
	"encoding/binary"
	"time"

	"github.com/npillmayer/typeface/ot"
)

// HeadTableInfo mirrors the layout of table 'head', version 1.0.
type HeadTableInfo struct {
	MajorVersion, MinorVersion uint16
	FontRevision               uint32 // 16.16 fixed-point
	CheckSumAdjustment         uint32
	MagicNumber                uint32 // HeadMagicNumber
	Flags                      uint16
	UnitsPerEm                 uint16
	Created, Modified          int64 // seconds since 1904-01-01 UTC
	XMin, YMin, XMax, YMax     int16
	MacStyle                   uint16 // bit 0 bold, bit 1 italic
	LowestRecPPEM              uint16
	FontDirectionHint          int16
	IndexToLocFormat           int16
	GlyphDataFormat            int16
}

// HeadMagicNumber is the value of field magicNumber of every valid 'head' table.
const HeadMagicNumber = 0x5F0F3CF5

// DecodeHead decodes the bytes of table 'head'.
func DecodeHead(b []byte) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if _, err := binary.Decode(b, binary.BigEndian, &info); err != nil {
		return HeadTableInfo{}, false
	}
	return info, true
}

// HeadInfo decodes table 'head' of a font.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	return decodeTable(otf, "head", DecodeHead)
}

var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// CreatedAt returns the creation date of the font.
func (h HeadTableInfo) CreatedAt() time.Time {
	return macEpoch.Add(time.Duration(h.Created) * time.Second)
}

// ModifiedAt returns the date of the last modification of the font.
func (h HeadTableInfo) ModifiedAt() time.Time {
	return macEpoch.Add(time.Duration(h.Modified) * time.Second)
}
