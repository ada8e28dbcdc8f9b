package type1

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/afm"
	pst1 "seehuhn.de/go/postscript/type1"
	"seehuhn.de/go/postscript/type1/names"
)

var (
	// ErrNotType1 is returned for data which is neither a PFA nor a PFB font.
	ErrNotType1 = errors.New("type1: not a Type 1 font")
	// ErrNotAFM is returned for metric data without an AFM header.
	ErrNotAFM = errors.New("type1: AFM data does not start with StartFontMetrics")
)

// Font is a parsed Type 1 font.
type Font struct {
	*pst1.Font
	Metrics *afm.Metrics // attached font metrics, if any
	glyphs  []string     // glyph names by glyph index
	byName  map[string]int
	kern    map[kernPair]float64
}

type kernPair struct {
	left, right string
}

// IsPFB tests for the segment header of binary Type 1 fonts.
func IsPFB(b []byte) bool {
	return len(b) >= 6 && b[0] == 0x80 && b[1] == 0x01
}

// IsPFA tests for the header comment of hex encoded Type 1 fonts.
func IsPFA(b []byte) bool {
	return bytes.HasPrefix(b, []byte("%!PS-AdobeFont")) || bytes.HasPrefix(b, []byte("%!FontType1"))
}

// Parse reads a Type 1 font from PFA or PFB data.
func Parse(data []byte) (*Font, error) {
	if !IsPFB(data) && !IsPFA(data) {
		return nil, ErrNotType1
	}
	t1, err := pst1.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("type1: %w", err)
	}
	f := &Font{
		Font:   t1,
		glyphs: t1.GlyphList(),
	}
	f.byName = make(map[string]int, len(f.glyphs))
	for gid, name := range f.glyphs {
		f.byName[name] = gid
	}
	tracer().Debugf("type1 font %s has %d glyphs", f.FontName, len(f.glyphs))
	return f, nil
}

// --- Queries ---------------------------------------------------------------

// NumGlyphs returns the number of glyphs in the font, including '.notdef'.
func (f *Font) NumGlyphs() int {
	return len(f.glyphs)
}

// GlyphName returns the name of glyph gid, or "" for glyphs outside the font.
func (f *Font) GlyphName(gid int) string {
	if gid < 0 || gid >= len(f.glyphs) {
		return ""
	}
	return f.glyphs[gid]
}

// GlyphIndex returns the index of a glyph by name.
func (f *Font) GlyphIndex(name string) (int, bool) {
	gid, ok := f.byName[name]
	return gid, ok
}

// UnitsPerEm derives the size of the design grid from the font matrix.
func (f *Font) UnitsPerEm() int {
	if s := math.Abs(f.FontMatrix[3]); s > 0 {
		return int(math.Round(1 / s))
	}
	return 1000
}

// BBox returns the union of all glyph bounding boxes in font units.
func (f *Font) BBox() rect.Rect {
	return f.fromPDF(f.FontBBoxPDF())
}

// GlyphBounds returns the bounding box of glyph gid in font units. Blank glyphs
// have a zero bounding box.
func (f *Font) GlyphBounds(gid int) rect.Rect {
	return f.fromPDF(f.GlyphBBoxPDF(f.GlyphName(gid)))
}

// Advance returns the advance width of glyph gid in font units, as set by
// its charstring.
func (f *Font) Advance(gid int) float64 {
	if g, ok := f.Glyphs[f.GlyphName(gid)]; ok {
		return g.WidthX
	}
	return 0
}

// fromPDF scales from PDF glyph space (1/1000 em) to font units.
func (f *Font) fromPDF(r rect.Rect) rect.Rect {
	s := float64(f.UnitsPerEm()) / 1000
	if s == 1 {
		return r
	}
	return rect.Rect{LLx: r.LLx * s, LLy: r.LLy * s, URx: r.URx * s, URy: r.URy * s}
}

func (f *Font) hasLineMetrics() bool {
	return f.Metrics != nil && f.Metrics.Ascent > f.Metrics.Descent
}

// Ascender returns the ascender of the font: from the attached metrics, if
// present, else the top of the font bounding box.
func (f *Font) Ascender() float64 {
	if f.hasLineMetrics() {
		return f.Metrics.Ascent
	}
	return f.BBox().URy
}

// Descender returns the descender of the font, analogous to Ascender.
func (f *Font) Descender() float64 {
	if f.hasLineMetrics() {
		return f.Metrics.Descent
	}
	return f.BBox().LLy
}

// MaxAdvance returns the largest advance width of all glyphs, or the right
// border of the font bounding box for fonts without widths.
func (f *Font) MaxAdvance() float64 {
	adv := 0.0
	for _, g := range f.Glyphs {
		adv = max(adv, g.WidthX)
	}
	if adv == 0 {
		return f.BBox().URx
	}
	return adv
}

// IsBold reports a bold weight.
func (f *Font) IsBold() bool {
	return f.Weight == "Bold" || f.Weight == "Black"
}

// IsItalic reports a slanted font.
func (f *Font) IsItalic() bool {
	return f.ItalicAngle != 0
}

// StyleName derives a style name from the full name and the family name,
// falling back to the weight.
func (f *Font) StyleName() string {
	if f.FamilyName != "" && strings.HasPrefix(f.FullName, f.FamilyName) {
		if style := strings.Trim(f.FullName[len(f.FamilyName):], " -"); style != "" {
			return style
		}
	}
	if f.Weight != "" {
		return f.Weight
	}
	return "Regular"
}

// Kerning returns the kerning value for a pair of glyphs from the attached
// font metrics.
func (f *Font) Kerning(left, right int) float64 {
	if f.kern == nil {
		return 0
	}
	l, r := f.GlyphName(left), f.GlyphName(right)
	if l == "" || r == "" {
		return 0
	}
	return f.kern[kernPair{l, r}]
}

// Attach parses AFM data and attaches the metrics to the font. Advance
// widths stay those of the font program.
func (f *Font) Attach(data []byte) error {
	if !bytes.HasPrefix(data, []byte("StartFontMetrics")) {
		return ErrNotAFM
	}
	m, err := afm.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("type1: %w", err)
	}
	if m.FontName != "" && m.FontName != f.FontName {
		tracer().Infof("metrics for %s attached to font %s", m.FontName, f.FontName)
	}
	f.Metrics = m
	f.kern = make(map[kernPair]float64, len(m.Kern))
	for _, k := range m.Kern {
		f.kern[kernPair{k.Left, k.Right}] = float64(k.Adjust)
	}
	return nil
}

// UnicodeMap maps code-points to glyph indices, derived from glyph names
// following the Adobe Glyph List rules. Names of ligatures and names without
// a code-point are skipped. For several glyphs mapping to the same
// code-point, the one with the lowest index wins.
func (f *Font) UnicodeMap() map[rune]int {
	m := make(map[rune]int, len(f.glyphs))
	for gid, name := range f.glyphs {
		u := names.ToUnicode(name, f.FontName)
		if utf8.RuneCountInString(u) != 1 {
			continue
		}
		r, _ := utf8.DecodeRuneInString(u)
		if _, dup := m[r]; !dup {
			m[r] = gid
		}
	}
	return m
}
