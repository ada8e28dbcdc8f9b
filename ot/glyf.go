package ot

import "fmt"

// --- Glyf table ------------------------------------------------------------

// Flags of composite glyph components.
const (
	compArg1And2AreWords   uint16 = 0x0001
	compWeHaveAScale       uint16 = 0x0008
	compMoreComponents     uint16 = 0x0020
	compWeHaveAnXAndYScale uint16 = 0x0040
	compWeHaveATwoByTwo    uint16 = 0x0080
)

// numberOfContours and bounding box
const glyphHeaderSize = 10

// GlyphData returns the outline data of glyph gid from table 'glyf'.
// Glyphs without outlines (e.g., a space) return an empty slice.
// For fonts without table 'glyf' (CFF fonts) false is returned.
func (otf *Font) GlyphData(gid GlyphIndex) ([]byte, bool) {
	glyf, lo := otf.Table(T("glyf")), otf.Table(T("loca"))
	if glyf == nil || lo == nil {
		return nil, false
	}
	from, to, ok := lo.Self().AsLoca().GlyphExtent(gid)
	if !ok || int(to) > len(glyf.Binary()) {
		return nil, false
	}
	return glyf.Binary()[from:to], true
}

// GlyphBounds returns the bounding box of glyph gid as stated in the glyph's
// header in table 'glyf'. Empty glyphs have a zero bounding box.
func (otf *Font) GlyphBounds(gid GlyphIndex) (xmin, ymin, xmax, ymax int16, ok bool) {
	data, ok := otf.GlyphData(gid)
	if !ok {
		return
	}
	if len(data) < glyphHeaderSize {
		return 0, 0, 0, 0, true
	}
	b := fontData(data)
	xmin, _ = b.i16(2)
	ymin, _ = b.i16(4)
	xmax, _ = b.i16(6)
	ymax, _ = b.i16(8)
	return xmin, ymin, xmax, ymax, true
}

// IsCompositeGlyph reports whether glyph data describes a composite glyph,
// i.e. has a negative number of contours.
func IsCompositeGlyph(data []byte) bool {
	return len(data) >= glyphHeaderSize && int16(u16(data)) < 0
}

// GlyphComponents returns the glyph indices a composite glyph is assembled from.
// It does not recurse into components which are composites themselves.
// For simple glyphs nil is returned.
//
// TrueType fonts can contain composite glyphs. For example the 'ö' could be
// combined from glyphs 'o' and '¨'.
func GlyphComponents(data []byte) ([]GlyphIndex, error) {
	if !IsCompositeGlyph(data) {
		return nil, nil
	}
	b := fontData(data)
	var components []GlyphIndex
	for at := glyphHeaderSize; ; {
		flags, err := b.u16(at)
		if err != nil {
			return components, fmt.Errorf("composite glyph truncated: %w", err)
		}
		gid, err := b.u16(at + 2)
		if err != nil {
			return components, fmt.Errorf("composite glyph truncated: %w", err)
		}
		components = append(components, GlyphIndex(gid))
		at += 4
		if flags&compArg1And2AreWords != 0 {
			at += 4
		} else {
			at += 2
		}
		switch {
		case flags&compWeHaveAScale != 0:
			at += 2
		case flags&compWeHaveAnXAndYScale != 0:
			at += 4
		case flags&compWeHaveATwoByTwo != 0:
			at += 8
		}
		if flags&compMoreComponents == 0 {
			break
		}
	}
	return components, nil
}
