package type1_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeface/internal/fonttest"
	"github.com/npillmayer/typeface/type1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/rect"
)

func TestParsePFA(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	t1 := fonttest.Type1()
	data := t1.PFA()
	require.True(t, type1.IsPFA(data))
	require.False(t, type1.IsPFB(data))
	f, err := type1.Parse(data)
	require.NoError(t, err)
	checkTestFont(t, f)
}

func TestParsePFB(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := fonttest.Type1().PFB()
	require.True(t, type1.IsPFB(data))
	f, err := type1.Parse(data)
	require.NoError(t, err)
	checkTestFont(t, f)
}

func checkTestFont(t *testing.T, f *type1.Font) {
	t.Helper()
	assert.Equal(t, "TestTypeOne-Regular", f.FontName)
	assert.Equal(t, "Test Type One", f.FamilyName)
	assert.Equal(t, "Regular", f.StyleName())
	assert.Equal(t, 1000, f.UnitsPerEm())
	assert.Equal(t, rect.Rect{LLx: -50, LLy: -210, URx: 1010, URy: 890}, f.BBox())
	assert.Equal(t, -100.0, float64(f.UnderlinePosition))
	require.Equal(t, 6, f.NumGlyphs())
	// .notdef, then encoding order
	for gid, name := range []string{".notdef", "space", "A", "H", "V", "x"} {
		assert.Equal(t, name, f.GlyphName(gid), "glyph %d", gid)
	}
	assert.Empty(t, f.GlyphName(6))
	gid, ok := f.GlyphIndex("A")
	require.True(t, ok)
	assert.Equal(t, 720.0, f.Advance(gid))
	assert.Equal(t, rect.Rect{LLx: -50, LLy: 0, URx: 710, URy: 890}, f.GlyphBounds(gid))
	gid, ok = f.GlyphIndex("space")
	require.True(t, ok)
	assert.Equal(t, 250.0, f.Advance(gid))
	assert.True(t, f.GlyphBounds(gid).IsZero())
	assert.Equal(t, 1200.0, f.MaxAdvance())
	assert.Equal(t, 890.0, f.Ascender())
	assert.Equal(t, -210.0, f.Descender())
	assert.False(t, f.IsBold())
	assert.False(t, f.IsItalic())
	u := f.UnicodeMap()
	assert.Equal(t, gid, u[' '])
	assert.Len(t, u, 5)
}

func TestStyle(t *testing.T) {
	t1 := fonttest.Type1()
	t1.FullName = "Test Type One Bold Italic"
	t1.Weight = "Bold"
	t1.ItalicAngle = -11
	f, err := type1.Parse(t1.PFA())
	require.NoError(t, err)
	assert.True(t, f.IsBold())
	assert.True(t, f.IsItalic())
	assert.Equal(t, "Bold Italic", f.StyleName())
	t1.FullName = t1.FamilyName
	f, err = type1.Parse(t1.PFA())
	require.NoError(t, err)
	assert.Equal(t, "Bold", f.StyleName())
}

func TestMissingNotdef(t *testing.T) {
	t1 := fonttest.Type1()
	t1.Glyphs = t1.Glyphs[1:]
	f, err := type1.Parse(t1.PFB())
	require.NoError(t, err)
	assert.Equal(t, 6, f.NumGlyphs())
	assert.Equal(t, ".notdef", f.GlyphName(0))
	assert.Equal(t, 250.0, f.Advance(0), ".notdef gets the width of the space")
}

func TestNotType1(t *testing.T) {
	_, err := type1.Parse([]byte("hello world, this is not a font"))
	assert.ErrorIs(t, err, type1.ErrNotType1)
	_, err = type1.Parse([]byte("%!PS-AdobeFont-1.0: Broken\n/FontName /Broken def\n"))
	assert.Error(t, err)
	pfb := fonttest.Type1().PFB()
	_, err = type1.Parse(pfb[:100])
	assert.Error(t, err)
}

func TestAttachAFM(t *testing.T) {
	t1 := fonttest.Type1()
	f, err := type1.Parse(t1.PFB())
	require.NoError(t, err)
	assert.ErrorIs(t, f.Attach([]byte("not metrics")), type1.ErrNotAFM)
	assert.Nil(t, f.Metrics)
	a, _ := f.GlyphIndex("A")
	v, _ := f.GlyphIndex("V")
	assert.Zero(t, f.Kerning(a, v))
	afm := t1.AFM(750, -220, []fonttest.AFMKern{{Left: "A", Right: "V", Value: -80}})
	require.NoError(t, f.Attach(afm))
	assert.Equal(t, 750.0, f.Ascender())
	assert.Equal(t, -220.0, f.Descender())
	assert.Equal(t, -80.0, f.Kerning(a, v))
	assert.Zero(t, f.Kerning(v, a))
	assert.Zero(t, f.Kerning(a, 100))
	assert.Equal(t, 700.0, f.Metrics.CapHeight)
	assert.Equal(t, 720.0, f.Metrics.Glyphs["A"].WidthX)
}

func TestAFMWithoutLineMetrics(t *testing.T) {
	t1 := fonttest.Type1()
	f, err := type1.Parse(t1.PFA())
	require.NoError(t, err)
	require.NoError(t, f.Attach(t1.AFM(0, 0, nil)))
	assert.Equal(t, 890.0, f.Ascender(), "falls back to the bounding box")
	assert.Equal(t, -210.0, f.Descender())
}
