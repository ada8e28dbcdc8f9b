package fonttest

import (
	"bytes"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/postscript/afm"
	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/postscript/psenc"
	pst1 "seehuhn.de/go/postscript/type1"
)

// Type1Glyph describes a glyph of a synthetic Type 1 font. Glyphs with a
// zero box are blank, others are drawn as a rectangle filling the box.
type Type1Glyph struct {
	Name  string
	Width int
	Box   [4]int // llx lly urx ury
}

// Type1Font describes a synthetic Type 1 font.
type Type1Font struct {
	FontName    string
	FamilyName  string
	FullName    string
	Weight      string
	ItalicAngle float64
	FixedPitch  bool
	Glyphs      []Type1Glyph
}

// AFMKern is a kern pair of an AFM file.
type AFMKern struct {
	Left, Right string
	Value       int
}

// Type1 returns a small Type 1 font with glyphs .notdef, space, A, H, V, x.
// The union of the glyph boxes is (-50,-210)–(1010,890).
func Type1() Type1Font {
	return Type1Font{
		FontName:   "TestTypeOne-Regular",
		FamilyName: "Test Type One",
		FullName:   "Test Type One Regular",
		Weight:     "Regular",
		Glyphs: []Type1Glyph{
			{Name: ".notdef", Width: 500, Box: [4]int{50, 0, 450, 700}},
			{Name: "space", Width: 250},
			{Name: "A", Width: 720, Box: [4]int{-50, 0, 710, 890}},
			{Name: "H", Width: 740, Box: [4]int{80, 0, 660, 700}},
			{Name: "V", Width: 700, Box: [4]int{5, -210, 695, 700}},
			{Name: "x", Width: 1200, Box: [4]int{20, 0, 1010, 480}},
		},
	}
}

// Font creates the font program, using StandardEncoding.
func (t1 Type1Font) Font() *pst1.Font {
	f := &pst1.Font{
		FontInfo: &pst1.FontInfo{
			FontName:           t1.FontName,
			Version:            "001.000",
			FullName:           t1.FullName,
			FamilyName:         t1.FamilyName,
			Weight:             t1.Weight,
			ItalicAngle:        t1.ItalicAngle,
			IsFixedPitch:       t1.FixedPitch,
			UnderlinePosition:  -100,
			UnderlineThickness: 50,
			FontMatrix:         matrix.Matrix{0.001, 0, 0, 0.001, 0, 0},
		},
		Outlines: &pst1.Outlines{
			Private: &pst1.PrivateDict{
				BlueValues: []funit.Int16{-10, 0, 700, 710},
				BlueScale:  0.039625,
				BlueShift:  7,
				BlueFuzz:   1,
			},
			Glyphs:   map[string]*pst1.Glyph{},
			Encoding: slices.Clone(psenc.StandardEncoding[:]),
		},
	}
	for _, g := range t1.Glyphs {
		glyph := f.NewGlyph(g.Name, float64(g.Width))
		if g.Box == [4]int{} {
			continue
		}
		llx, lly, urx, ury := float64(g.Box[0]), float64(g.Box[1]), float64(g.Box[2]), float64(g.Box[3])
		glyph.MoveTo(llx, lly)
		glyph.LineTo(urx, lly)
		glyph.LineTo(urx, ury)
		glyph.LineTo(llx, ury)
		glyph.ClosePath()
	}
	return f
}

func (t1 Type1Font) write(format pst1.FileFormat) []byte {
	var b bytes.Buffer
	if err := t1.Font().Write(&b, &pst1.WriterOptions{Format: format}); err != nil {
		panic(err) // writing to memory
	}
	return b.Bytes()
}

// PFA encodes the font as hex encoded Type 1 font.
func (t1 Type1Font) PFA() []byte {
	return t1.write(pst1.FormatPFA)
}

// PFB encodes the font as binary Type 1 font with PFB segments.
func (t1 Type1Font) PFB() []byte {
	return t1.write(pst1.FormatPFB)
}

// AFM creates font metrics for the font.
func (t1 Type1Font) AFM(ascender, descender int, kern []AFMKern) []byte {
	m := &afm.Metrics{
		Glyphs:    make(map[string]*afm.GlyphInfo, len(t1.Glyphs)),
		Encoding:  slices.Clone(psenc.StandardEncoding[:]),
		FontName:  t1.FontName,
		FullName:  t1.FullName,
		Ascent:    float64(ascender),
		Descent:   float64(descender),
		CapHeight: 700,
		XHeight:   480,
	}
	for _, g := range t1.Glyphs {
		m.Glyphs[g.Name] = &afm.GlyphInfo{
			WidthX: float64(g.Width),
			BBox: rect.Rect{
				LLx: float64(g.Box[0]), LLy: float64(g.Box[1]),
				URx: float64(g.Box[2]), URy: float64(g.Box[3]),
			},
		}
	}
	for _, k := range kern {
		m.Kern = append(m.Kern, &afm.KernPair{Left: k.Left, Right: k.Right, Adjust: funit.Int16(k.Value)})
	}
	var b bytes.Buffer
	if err := m.Write(&b); err != nil {
		panic(err)
	}
	return b.Bytes()
}
