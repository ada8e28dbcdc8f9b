package otquery

import (
	"encoding/binary"
	"strings"

	"github.com/npillmayer/typeface/ot"
)

// PCLTTableInfo is a typed query view over table 'PCLT', which holds
// information for HP PCL printers. Modern fonts do not carry it, but older
// TrueType fonts use it to state x-height and cap-height, which are missing from
// version 0 and 1 'OS/2' tables.
type PCLTTableInfo struct {
	Version      uint32
	FontNumber   uint32
	Pitch        uint16
	XHeight      uint16
	Style        uint16
	TypeFamily   uint16
	CapHeight    uint16
	SymbolSet    uint16
	Typeface     string
	StrokeWeight int8
	WidthType    int8
	SerifStyle   uint8
}

const pcltTableSize = 54

// DecodePCLT decodes the bytes of table 'PCLT'.
func DecodePCLT(b []byte) (PCLTTableInfo, bool) {
	var info PCLTTableInfo
	if len(b) < pcltTableSize {
		return info, false
	}
	be := binary.BigEndian
	info.Version = be.Uint32(b[0:])
	info.FontNumber = be.Uint32(b[4:])
	info.Pitch = be.Uint16(b[8:])
	info.XHeight = be.Uint16(b[10:])
	info.Style = be.Uint16(b[12:])
	info.TypeFamily = be.Uint16(b[14:])
	info.CapHeight = be.Uint16(b[16:])
	info.SymbolSet = be.Uint16(b[18:])
	info.Typeface = strings.TrimRight(string(b[20:36]), " \x00")
	info.StrokeWeight = int8(b[50])
	info.WidthType = int8(b[51])
	info.SerifStyle = b[52]
	return info, true
}

// PCLTInfo decodes table 'PCLT' of a font.
func PCLTInfo(otf *ot.Font) (PCLTTableInfo, bool) {
	return decodeTable(otf, "PCLT", DecodePCLT)
}
