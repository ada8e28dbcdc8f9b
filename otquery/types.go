package otquery

import "golang.org/x/image/font/sfnt"

// FontMetricsInfo holds the font-wide metrics of a font. All values are in
// font units.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units
	Ascent, Descent sfnt.Units // Descent is negative for descenders below the baseline
	LineGap         sfnt.Units
	Height          sfnt.Units // Ascent - Descent + LineGap
	MaxAdvance      sfnt.Units // from hhea.advanceWidthMax
	BBox            Box        // from table 'head'
	FixedPitch      bool
	NumGlyphs       int
}

// GlyphMetricsInfo holds the horizontal metrics and the outline bounds of a glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units
	LSB, RSB sfnt.Units // left and right side bearing
	BBox     Box
}

// Box is a rectangle in font units, y pointing upwards.
type Box struct {
	XMin, YMin, XMax, YMax sfnt.Units
}

func boxOf(xmin, ymin, xmax, ymax int16) Box {
	return Box{sfnt.Units(xmin), sfnt.Units(ymin), sfnt.Units(xmax), sfnt.Units(ymax)}
}

// IsZero reports whether the box encloses no area, as for glyphs without outlines.
func (b Box) IsZero() bool {
	return b.Width() == 0 || b.Height() == 0
}

func (b Box) Width() sfnt.Units  { return b.XMax - b.XMin }
func (b Box) Height() sfnt.Units { return b.YMax - b.YMin }
