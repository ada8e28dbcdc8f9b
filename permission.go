package typeface

import "github.com/npillmayer/typeface/engine"

// Bits of field fsType of table 'OS/2'.
const (
	fsTypeRestricted   uint16 = 0x0002 // no embedding, unless less restrictive bits are set
	fsTypePreviewPrint uint16 = 0x0004
	fsTypeEditable     uint16 = 0x0008
	fsTypeNoSubsetting uint16 = 0x0100
)

// permissions derives embedding and subsetting permissions from the fsType
// bits of an sfnt font. If multiple bits are set, the least restrictive
// license is granted (Adobe Technical Note #5641).
//
// Subsetting additionally requires a format 4 sub-table for Unicode BMP, the
// only character map format the subsetter supports.
func permissions(fsType uint16, charmaps []engine.Charmap) (canEmbed, canSubset bool) {
	canEmbed = fsType&fsTypeEditable != 0 || fsType&fsTypePreviewPrint != 0 ||
		fsType&fsTypeRestricted == 0
	if fsType&fsTypeNoSubsetting != 0 {
		return canEmbed, false
	}
	for _, cm := range charmaps {
		if (cm.PlatformID == 3 && cm.EncodingID == 1) || cm.PlatformID == 0 {
			if cm.Format == 4 {
				return canEmbed, true
			}
		}
	}
	return canEmbed, false
}
