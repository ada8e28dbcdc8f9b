package engine

import (
	"fmt"
	"math"

	"github.com/npillmayer/typeface/fontstream"
	"github.com/npillmayer/typeface/ot"
	"github.com/npillmayer/typeface/type1"
	"seehuhn.de/go/geom/rect"
)

// type1Face is a face for Type 1 fonts. The character map is synthesized
// from glyph names.
type type1Face struct {
	font    *type1.Font
	cmap    map[rune]int
	unicode bool
	closed  bool
}

var _ Face = (*type1Face)(nil)

func openType1(data []byte) (*type1Face, error) {
	f, err := type1.Parse(data)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("opened Type 1 face %s", f.FontName)
	return &type1Face{font: f, cmap: f.UnicodeMap()}, nil
}

func round(x float64) int {
	return int(math.Round(x))
}

func (face *type1Face) IsSFNT() bool   { return false }
func (face *type1Face) Format() string { return FormatType1 }

func (face *type1Face) Table(ot.Tag) ot.Option[[]byte] {
	return ot.None[[]byte]()
}

// Summary derives line metrics the way common font engines do for Type 1
// fonts: the line height is 1.2 em, but at least ascender minus descender.
func (face *type1Face) Summary() FaceSummary {
	f := face.font
	s := FaceSummary{
		UnitsPerEm: f.UnitsPerEm(),
		BBox:       boxOf(f.BBox()),
		Ascender:   round(f.Ascender()),
		Descender:  round(f.Descender()),
		MaxAdvance: round(f.MaxAdvance()),
		FixedWidth: f.IsFixedPitch,
		Bold:       f.IsBold(),
		Italic:     f.IsItalic(),
		FamilyName: f.FamilyName,
		StyleName:  f.StyleName(),
		NumGlyphs:  f.NumGlyphs(),
	}
	s.Height = max(s.UnitsPerEm*12/10, s.Ascender-s.Descender)
	return s
}

func boxOf(r rect.Rect) Box {
	return Box{
		XMin: round(r.LLx), YMin: round(r.LLy),
		XMax: round(r.URx), YMax: round(r.URy),
	}
}

// LoadGlyph returns the advance width and the bounds of the outline of a
// glyph.
func (face *type1Face) LoadGlyph(gid ot.GlyphIndex) (GlyphMetrics, error) {
	if face.closed {
		return GlyphMetrics{}, ErrFaceClosed
	}
	if int(gid) >= face.font.NumGlyphs() {
		return GlyphMetrics{}, fmt.Errorf("%w: %d", ErrInvalidGlyph, gid)
	}
	return GlyphMetrics{
		Advance: round(face.font.Advance(int(gid))),
		Bounds:  boxOf(face.font.GlyphBounds(int(gid))),
	}, nil
}

func (face *type1Face) LoadChar(r rune) (GlyphMetrics, error) {
	return face.LoadGlyph(face.CharIndex(r))
}

func (face *type1Face) CharIndex(r rune) ot.GlyphIndex {
	if !face.unicode {
		return 0
	}
	return ot.GlyphIndex(face.cmap[r])
}

func (face *type1Face) Kerning(left, right ot.GlyphIndex) (int, error) {
	if face.closed {
		return 0, ErrFaceClosed
	}
	return round(face.font.Kerning(int(left), int(right))), nil
}

func (face *type1Face) SelectUnicodeCharmap() error {
	if len(face.cmap) == 0 {
		return ErrNoCharmap
	}
	face.unicode = true
	return nil
}

// Charmaps reports a synthesized Unicode charmap (platform 3, encoding 1),
// if any glyph name maps to a code-point.
func (face *type1Face) Charmaps() []Charmap {
	if len(face.cmap) == 0 {
		return nil
	}
	return []Charmap{{PlatformID: 3, EncodingID: 1, Format: -1}}
}

func (face *type1Face) PostScriptName() string {
	return face.font.FontName
}

// Attach reads AFM font metrics.
func (face *type1Face) Attach(src fontstream.Source) error {
	if face.closed {
		return ErrFaceClosed
	}
	data, err := fontstream.ReadAll(src)
	if err != nil {
		return err
	}
	return face.font.Attach(data)
}

func (face *type1Face) Close() error {
	face.closed = true
	return nil
}
