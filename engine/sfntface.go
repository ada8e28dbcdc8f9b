package engine

import (
	"fmt"

	"github.com/npillmayer/typeface/fontstream"
	"github.com/npillmayer/typeface/ot"
	"github.com/npillmayer/typeface/otquery"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sfntFace is a face for TrueType and OpenType fonts.
//
// Tables, metrics and character mapping are served by package ot. For fonts
// with CFF outlines, glyph bounds need an outline interpreter, which is left
// to package golang.org/x/image/font/sfnt.
type sfntFace struct {
	lib     *Library
	otf     *ot.Font
	cff     *sfnt.Font   // CFF fonts only
	buf     *sfnt.Buffer // pooled by lib
	upem    fixed.Int26_6
	unicode bool // Unicode charmap selected
	closed  bool
}

var _ Face = (*sfntFace)(nil)

func openSFNT(lib *Library, data []byte) (*sfntFace, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, err
	}
	for _, w := range otf.Warnings() {
		tracer().Debugf("font: %s", w)
	}
	for _, e := range otf.Errors() {
		tracer().Infof("font: %v", e)
	}
	face := &sfntFace{lib: lib, otf: otf}
	if otf.IsCFF() {
		if face.cff, err = sfnt.Parse(data); err != nil {
			return nil, fmt.Errorf("cannot read CFF outlines: %w", err)
		}
		face.buf = lib.buffer()
	}
	if head, ok := otquery.HeadInfo(otf); ok {
		face.upem = fixed.Int26_6(head.UnitsPerEm)
	}
	tracer().Debugf("opened sfnt face with %d tables, %d glyphs", len(otf.TableTags()), otf.NumGlyphs())
	return face, nil
}

func (face *sfntFace) IsSFNT() bool { return true }

func (face *sfntFace) Format() string {
	if face.otf.IsCFF() {
		return FormatCFF
	}
	return FormatTrueType
}

func (face *sfntFace) Table(tag ot.Tag) ot.Option[[]byte] {
	if face.closed {
		return ot.None[[]byte]()
	}
	return face.otf.TableBytes(tag)
}

func (face *sfntFace) Summary() FaceSummary {
	m := otquery.FontMetrics(face.otf)
	s := FaceSummary{
		UnitsPerEm: int(m.UnitsPerEm),
		BBox: Box{
			XMin: int(m.BBox.XMin), YMin: int(m.BBox.YMin),
			XMax: int(m.BBox.XMax), YMax: int(m.BBox.YMax),
		},
		Ascender:   int(m.Ascent),
		Descender:  int(m.Descent),
		Height:     int(m.Height),
		MaxAdvance: int(m.MaxAdvance),
		FixedWidth: m.FixedPitch,
		NumGlyphs:  m.NumGlyphs,
	}
	s.Bold, s.Italic = otquery.StyleFlags(face.otf)
	if names, ok := face.otf.TableBytes(ot.T("name")).Unwrap(); ok {
		s.FamilyName = otquery.FamilyName(names)
		s.StyleName = otquery.StyleName(names)
	}
	if s.StyleName == "" {
		s.StyleName = "Regular"
	}
	return s
}

func (face *sfntFace) LoadGlyph(gid ot.GlyphIndex) (GlyphMetrics, error) {
	if face.closed {
		return GlyphMetrics{}, ErrFaceClosed
	}
	if int(gid) >= face.otf.NumGlyphs() {
		return GlyphMetrics{}, fmt.Errorf("%w: %d", ErrInvalidGlyph, gid)
	}
	gm := otquery.GlyphMetrics(face.otf, gid)
	metrics := GlyphMetrics{
		Advance: int(gm.Advance),
		Bounds: Box{
			XMin: int(gm.BBox.XMin), YMin: int(gm.BBox.YMin),
			XMax: int(gm.BBox.XMax), YMax: int(gm.BBox.YMax),
		},
	}
	if face.cff != nil {
		// with ppem = units per em, values are unscaled font units
		bounds, _, err := face.cff.GlyphBounds(face.buf, sfnt.GlyphIndex(gid), face.upem, font.HintingNone)
		if err != nil {
			return GlyphMetrics{}, fmt.Errorf("loading glyph %d: %w", gid, err)
		}
		// y grows downwards in x/image/font
		metrics.Bounds = Box{
			XMin: int(bounds.Min.X), YMin: int(-bounds.Max.Y),
			XMax: int(bounds.Max.X), YMax: int(-bounds.Min.Y),
		}
	}
	return metrics, nil
}

func (face *sfntFace) LoadChar(r rune) (GlyphMetrics, error) {
	return face.LoadGlyph(face.CharIndex(r))
}

func (face *sfntFace) CharIndex(r rune) ot.GlyphIndex {
	if !face.unicode || face.closed {
		return 0
	}
	return otquery.GlyphIndex(face.otf, r)
}

func (face *sfntFace) Kerning(left, right ot.GlyphIndex) (int, error) {
	if face.closed {
		return 0, ErrFaceClosed
	}
	n := face.otf.NumGlyphs()
	if int(left) >= n || int(right) >= n {
		return 0, fmt.Errorf("%w: kern pair (%d,%d)", ErrInvalidGlyph, left, right)
	}
	return int(otquery.Kerning(face.otf, left, right)), nil
}

func (face *sfntFace) SelectUnicodeCharmap() error {
	if !face.otf.CMap.HasUnicodeMap() {
		return ErrNoCharmap
	}
	face.unicode = true
	return nil
}

func (face *sfntFace) Charmaps() []Charmap {
	if face.otf.CMap == nil {
		return nil
	}
	cmaps := make([]Charmap, len(face.otf.CMap.Encodings))
	for i, enc := range face.otf.CMap.Encodings {
		cmaps[i] = Charmap{PlatformID: enc.PlatformID, EncodingID: enc.EncodingID, Format: int(enc.Format)}
	}
	return cmaps
}

func (face *sfntFace) PostScriptName() string {
	if names, ok := face.otf.TableBytes(ot.T("name")).Unwrap(); ok {
		if name, ok := otquery.EnglishName(names, sfnt.NameIDPostScript); ok {
			return name
		}
	}
	return ""
}

// Attach is not supported for sfnt fonts, which carry their metrics.
func (face *sfntFace) Attach(src fontstream.Source) error {
	return fmt.Errorf("attaching data to sfnt font: %w", ErrNotSupported)
}

func (face *sfntFace) Close() error {
	if face.closed {
		return nil
	}
	face.closed = true
	face.lib.putBuffer(face.buf)
	face.buf, face.cff = nil, nil
	return nil
}
