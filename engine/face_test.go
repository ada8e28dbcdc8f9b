package engine

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeface/internal/fonttest"
	"github.com/npillmayer/typeface/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func openFace(t *testing.T, data []byte) (*Library, Face) {
	t.Helper()
	lib, err := Acquire()
	require.NoError(t, err)
	face, err := Open(lib, bytes.NewReader(data))
	if err != nil {
		lib.Release()
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		face.Close()
		lib.Release()
	})
	return lib, face
}

func TestOpenTrueType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, face := openFace(t, goregular.TTF)
	assert.True(t, face.IsSFNT())
	assert.Equal(t, FormatTrueType, face.Format())
	assert.True(t, face.Table(ot.T("glyf")).IsSome())
	assert.False(t, face.Table(ot.T("CFF ")).IsSome())
	s := face.Summary()
	assert.Equal(t, 2048, s.UnitsPerEm)
	assert.Equal(t, "Go", s.FamilyName)
	assert.Equal(t, "Regular", s.StyleName)
	assert.False(t, s.Bold)
	assert.False(t, s.Italic)
	assert.False(t, s.FixedWidth)
	assert.Greater(t, s.Ascender, 0)
	assert.Less(t, s.Descender, 0)
	assert.GreaterOrEqual(t, s.Height, s.Ascender-s.Descender)
	assert.Greater(t, s.NumGlyphs, 100)
	assert.NotEmpty(t, face.Charmaps())
	assert.Equal(t, ot.GlyphIndex(0), face.CharIndex('A'), "no charmap selected yet")
	require.NoError(t, face.SelectUnicodeCharmap())
	//
	xf, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(xf.UnitsPerEm())
	for _, r := range "AHxg" {
		gid := face.CharIndex(r)
		xgid, err := xf.GlyphIndex(&buf, r)
		require.NoError(t, err)
		assert.Equal(t, int(xgid), int(gid), "glyph index of %q", r)
		m, err := face.LoadChar(r)
		require.NoError(t, err)
		bounds, adv, err := xf.GlyphBounds(&buf, xgid, ppem, font.HintingNone)
		require.NoError(t, err)
		assert.Equal(t, int(adv), m.Advance, "advance of %q", r)
		assert.Equal(t, int(-bounds.Min.Y), m.Bounds.YMax, "bounds of %q", r)
		assert.Equal(t, int(bounds.Max.X), m.Bounds.XMax, "bounds of %q", r)
	}
	name, err := xf.Name(&buf, sfnt.NameIDPostScript)
	require.NoError(t, err)
	assert.Equal(t, name, face.PostScriptName())
}

func TestTrueTypeKerning(t *testing.T) {
	_, face := openFace(t, goregular.TTF)
	require.NoError(t, face.SelectUnicodeCharmap())
	xf, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(xf.UnitsPerEm())
	for _, pair := range []string{"AV", "To", "LT", "xx"} {
		l, r := face.CharIndex(rune(pair[0])), face.CharIndex(rune(pair[1]))
		k, err := face.Kerning(l, r)
		require.NoError(t, err)
		xk, xerr := xf.Kern(&buf, sfnt.GlyphIndex(l), sfnt.GlyphIndex(r), ppem, font.HintingNone)
		if xerr == nil {
			assert.Equal(t, int(xk), k, "kerning of %s", pair)
		} else {
			assert.Zero(t, k, "kerning of %s", pair)
		}
	}
	_, err = face.Kerning(0, 0xffff)
	assert.ErrorIs(t, err, ErrInvalidGlyph)
}

func TestTrueTypeFaceErrors(t *testing.T) {
	_, face := openFace(t, goregular.TTF)
	err := face.Attach(bytes.NewReader([]byte("StartFontMetrics 2.0\n")))
	assert.ErrorIs(t, err, ErrNotSupported)
	_, err = face.LoadGlyph(0xffff)
	assert.ErrorIs(t, err, ErrInvalidGlyph)
	require.NoError(t, face.Close())
	require.NoError(t, face.Close())
	_, err = face.LoadGlyph(0)
	assert.ErrorIs(t, err, ErrFaceClosed)
	assert.False(t, face.Table(ot.T("head")).IsSome())
}

func TestOpenErrors(t *testing.T) {
	lib, err := Acquire()
	require.NoError(t, err)
	_, err = Open(lib, bytes.NewReader([]byte("this is no font at all")))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Open(lib, bytes.NewReader(goregular.TTF[:500]))
	assert.Error(t, err)
	// CFF table without valid CFF data
	_, err = Open(lib, bytes.NewReader(fonttest.RenameTable(goregular.TTF, "glyf", "CFF ")))
	assert.Error(t, err)
	lib.Release()
	_, err = Open(lib, bytes.NewReader(goregular.TTF))
	assert.ErrorIs(t, err, ErrLibraryReleased)
	_, err = Open(nil, bytes.NewReader(goregular.TTF))
	assert.ErrorIs(t, err, ErrLibraryReleased)
}

func TestOpenType1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	t1 := fonttest.Type1()
	_, face := openFace(t, t1.PFB())
	assert.False(t, face.IsSFNT())
	assert.Equal(t, FormatType1, face.Format())
	assert.False(t, face.Table(ot.T("head")).IsSome())
	assert.Equal(t, "TestTypeOne-Regular", face.PostScriptName())
	s := face.Summary()
	assert.Equal(t, 1000, s.UnitsPerEm)
	assert.Equal(t, Box{XMin: -50, YMin: -210, XMax: 1010, YMax: 890}, s.BBox)
	assert.Equal(t, 890, s.Ascender)
	assert.Equal(t, -210, s.Descender)
	assert.Equal(t, 1200, s.Height)
	assert.Equal(t, 1200, s.MaxAdvance)
	assert.Equal(t, "Test Type One", s.FamilyName)
	assert.Equal(t, "Regular", s.StyleName)
	assert.Equal(t, 6, s.NumGlyphs)
	m, err := face.LoadGlyph(0)
	require.NoError(t, err)
	assert.Equal(t, 500, m.Advance)
	require.NoError(t, face.SelectUnicodeCharmap())
	assert.Len(t, face.Charmaps(), 1)
	m, err = face.LoadChar('A')
	require.NoError(t, err)
	assert.Equal(t, 720, m.Advance)
	assert.Equal(t, Box{XMin: -50, YMin: 0, XMax: 710, YMax: 890}, m.Bounds)
	m, err = face.LoadChar(' ')
	require.NoError(t, err)
	assert.Equal(t, Box{}, m.Bounds)
	assert.Equal(t, ot.GlyphIndex(0), face.CharIndex('Z'))
	_, err = face.LoadGlyph(6)
	assert.ErrorIs(t, err, ErrInvalidGlyph)
	//
	a, v := face.CharIndex('A'), face.CharIndex('V')
	k, err := face.Kerning(a, v)
	require.NoError(t, err)
	assert.Zero(t, k)
	afm := t1.AFM(750, -220, []fonttest.AFMKern{{Left: "A", Right: "V", Value: -80}})
	require.NoError(t, face.Attach(bytes.NewReader(afm)))
	k, err = face.Kerning(a, v)
	require.NoError(t, err)
	assert.Equal(t, -80, k)
	s = face.Summary()
	assert.Equal(t, 750, s.Ascender)
	assert.Equal(t, 1200, s.Height)
	assert.Error(t, face.Attach(bytes.NewReader([]byte("garbage"))))
}
