package typeface

// FaceType is the structural family of a font.
type FaceType int

// Face types. Uninitialized is never observable for a constructed Typeface.
const (
	Uninitialized FaceType = iota
	TrueType               // sfnt with glyf outlines
	OpenTypeCFF            // sfnt with CFF outlines
	Type1                  // PostScript Type 1
)

func (ft FaceType) String() string {
	switch ft {
	case TrueType:
		return "TrueType"
	case OpenTypeCFF:
		return "OpenType/CFF"
	case Type1:
		return "Type 1"
	}
	return "uninitialized"
}

// IsSFNT reports whether fonts of type ft are sfnt fonts.
func (ft FaceType) IsSFNT() bool {
	return ft == TrueType || ft == OpenTypeCFF
}
