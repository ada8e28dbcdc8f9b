package otquery

import (
	"github.com/npillmayer/typeface/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontType returns "TrueType" for fonts with glyf outlines, "OpenType" for
// fonts with CFF outlines, and an empty string for anything else.
func FontType(otf *ot.Font) string {
	switch {
	case otf == nil:
		return ""
	case otf.Table(ot.T("glyf")) != nil:
		return "TrueType"
	case otf.IsCFF():
		return "OpenType"
	}
	return ""
}

// FontMetrics retrieves selected metrics of a font.
//
// Ascent, descent and line height are taken from table 'hhea'. Some fonts
// leave these zero; we then fall back to the typographic metrics of table
// 'OS/2', or, if these are zero as well, to the Windows metrics.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{NumGlyphs: otf.NumGlyphs()}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	metrics.Height = metrics.Ascent - metrics.Descent + metrics.LineGap
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2, ok := OS2Info(otf); ok {
			if os2.TypoAscender != 0 || os2.TypoDescender != 0 {
				tracer().Debugf("hhea metrics empty, using OS/2 typo metrics")
				metrics.Ascent = sfnt.Units(os2.TypoAscender)
				metrics.Descent = sfnt.Units(os2.TypoDescender)
				metrics.LineGap = sfnt.Units(os2.TypoLineGap)
				metrics.Height = metrics.Ascent - metrics.Descent + metrics.LineGap
			} else {
				tracer().Debugf("hhea metrics empty, using OS/2 Windows metrics")
				metrics.Ascent = sfnt.Units(os2.WinAscent)
				metrics.Descent = -sfnt.Units(os2.WinDescent)
				metrics.LineGap = 0
				metrics.Height = metrics.Ascent - metrics.Descent
			}
		}
	}
	if head := otf.Table(ot.T("head")); head != nil { // head is a required table
		h := head.Self().AsHead()
		metrics.UnitsPerEm = sfnt.Units(h.UnitsPerEm)
		metrics.BBox = boxOf(h.XMin, h.YMin, h.XMax, h.YMax)
	}
	if post, ok := PostInfo(otf); ok {
		metrics.FixedPitch = post.IsFixedPitch != 0
	}
	return metrics
}

// StyleFlags reports whether a font is bold and/or italic. Bits of field
// fsSelection in table 'OS/2' take precedence over field macStyle of table
// 'head'. Oblique fonts count as italic.
func StyleFlags(otf *ot.Font) (bold, italic bool) {
	if os2, ok := OS2Info(otf); ok {
		bold = os2.FsSelection&FsSelectionBold != 0
		italic = os2.FsSelection&(FsSelectionItalic|FsSelectionOblique) != 0
		return
	}
	if head, ok := HeadInfo(otf); ok {
		bold = head.MacStyle&0x1 != 0
		italic = head.MacStyle&0x2 != 0
	}
	return
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	return otf.CMap.Lookup(codepoint)
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: All code-points contained in the font's CMap
// are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 || !otf.CMap.HasUnicodeMap() {
		return 0
	}
	return otf.CMap.GlyphIndexMap.ReverseLookup(gid)
}

// GlyphMetrics retrieves metrics for a given glyph. Bounding boxes are
// available for fonts with TrueType outlines only.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table HMtx: advance width and left side bearing
	if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
		metrics.Advance = sfnt.Units(aw)
		metrics.LSB = sfnt.Units(lsb)
	}
	//
	// table glyf: bounding box
	if xmin, ymin, xmax, ymax, ok := otf.GlyphBounds(gid); ok {
		metrics.BBox = boxOf(xmin, ymin, xmax, ymax)
	}
	// rsb = aw - (lsb + xMax - xMin); undefined for glyphs without contours
	if !metrics.BBox.IsZero() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Width())
	}
	return metrics
}

// Kerning returns the horizontal kerning value of table 'kern' for a pair
// of glyphs, in font units. Fonts without table 'kern' return 0.
func Kerning(otf *ot.Font, left, right ot.GlyphIndex) sfnt.Units {
	kern := otf.Table(ot.T("kern"))
	if kern == nil {
		return 0
	}
	return sfnt.Units(kern.Self().AsKern().Kern(left, right))
}
