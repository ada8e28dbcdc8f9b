package ot

import (
	"encoding/binary"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	assert.Equal(t, "cmap", Tag(0x636d6170).String())
	assert.Equal(t, Tag(0x636d6170), T("cmap"))
	assert.Equal(t, "CFF ", T("CFF").String(), "short tags are padded")
	assert.Equal(t, "glyf", T("glyfx").String(), "long tags are cut")
	tb := tableBase{name: T("kern")}
	assert.Equal(t, T("kern"), tb.Self().NameTag())
	assert.Nil(t, tb.Self().AsKern(), "tables without self reference have no type")
}

func TestOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	v, ok := Some(3).Unwrap()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.False(t, None[int]().IsSome())
	assert.False(t, Maybe(3, false).IsSome())
	half := func(x int) (int, bool) { return x / 2, x%2 == 0 }
	v, ok = FlatMap(Some(4), half).Unwrap()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.False(t, FlatMap(Some(3), half).IsSome())
	assert.False(t, FlatMap(None[int](), half).IsSome())
}

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if otf.Header.FontType != FontTypeTrueType {
		t.Fatalf("expected Go Regular to be 0x00010000, is %x", otf.Header.FontType)
	}
	if otf.IsCFF() {
		t.Errorf("Go Regular does not contain CFF outlines")
	}
	tags := otf.TableTags()
	for _, req := range append(RequiredTables, "glyf", "loca", "OS/2", "post", "name") {
		if !slices.Contains(tags, T(req)) {
			t.Errorf("expected Go Regular to contain table %s", req)
		}
	}
	if !slices.IsSorted(tags) {
		t.Errorf("expected table tags to be sorted")
	}
	if otf.HasCriticalErrors() {
		t.Errorf("expected no critical errors, have %v", otf.CriticalErrors())
	}
	head := otf.Table(T("head")).Self().AsHead()
	if head.UnitsPerEm != 2048 {
		t.Errorf("expected Go Regular to have 2048 units per em, has %d", head.UnitsPerEm)
	}
	if otf.Table(T("OS/2")).Self().AsHead() != nil {
		t.Errorf("expected OS/2 to be a generic table")
	}
	if b, ok := otf.TableBytes(T("OS/2")).Unwrap(); !ok || len(b) < 78 {
		t.Errorf("expected binary OS/2 table of at least 78 bytes")
	}
	if otf.TableBytes(T("CFF ")).IsSome() {
		t.Errorf("did not expect a CFF table")
	}
}

func TestCMapGlyphIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if !otf.CMap.HasUnicodeMap() {
		t.Fatalf("expected a Unicode cmap sub-table")
	}
	hasUnicode := false
	for _, enc := range otf.CMap.Encodings {
		t.Logf("encoding %s", enc)
		hasUnicode = hasUnicode || enc.IsUnicode()
	}
	if !hasUnicode {
		t.Errorf("expected a Unicode encoding record")
	}
	a := otf.CMap.Lookup('A')
	if a == 0 {
		t.Fatalf("expected glyph position for 'A', got 0")
	}
	if r := otf.CMap.GlyphIndexMap.ReverseLookup(a); r != 'A' {
		t.Errorf("expected reverse lookup of %d to be 'A', is %q", a, r)
	}
	if otf.CMap.Lookup(0x10ffff) != 0 {
		t.Errorf("expected unmapped code-point to map to glyph 0")
	}
	n := 0
	for r, g := range otf.CMap.GlyphIndexMap.Mappings() {
		if otf.CMap.Lookup(r) != g {
			t.Fatalf("mapping %q -> %d inconsistent with lookup", r, g)
		}
		n++
	}
	if n < 100 {
		t.Errorf("expected Go Regular to map more than 100 code-points, maps %d", n)
	}
}

func TestHMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(gomono.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if otf.HMtx.GlyphCount() != otf.NumGlyphs() {
		t.Errorf("expected hmtx to cover %d glyphs, covers %d", otf.NumGlyphs(), otf.HMtx.GlyphCount())
	}
	advA, _, ok := otf.HMtx.HMetrics(otf.CMap.Lookup('A'))
	if !ok || advA == 0 {
		t.Fatalf("expected advance width for 'A'")
	}
	advI, _, _ := otf.HMtx.HMetrics(otf.CMap.Lookup('i'))
	if advA != advI {
		t.Errorf("expected Go Mono to have equal advances for 'A' and 'i', have %d and %d", advA, advI)
	}
	last := GlyphIndex(otf.NumGlyphs() - 1)
	if _, _, ok := otf.HMtx.HMetrics(last); !ok {
		t.Errorf("expected metrics for last glyph %d", last)
	}
	if _, _, ok := otf.HMtx.HMetrics(last + 1); ok {
		t.Errorf("expected no metrics beyond glyph count")
	}
}

func TestGlyphOutlines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	head := otf.Table(T("head")).Self().AsHead()
	xmin, ymin, xmax, ymax, ok := otf.GlyphBounds(otf.CMap.Lookup('H'))
	if !ok {
		t.Fatalf("expected bounds for glyph 'H'")
	}
	if xmin >= xmax || ymin >= ymax || ymax <= 0 {
		t.Errorf("unexpected bounds for 'H': (%d,%d)-(%d,%d)", xmin, ymin, xmax, ymax)
	}
	if ymax > head.YMax || xmin < head.XMin {
		t.Errorf("glyph bounds exceed font bounds")
	}
	space, ok := otf.GlyphData(otf.CMap.Lookup(' '))
	if !ok || len(space) != 0 {
		t.Errorf("expected space to have no outline, has %d bytes", len(space))
	}
	for gid := range otf.NumGlyphs() {
		data, _ := otf.GlyphData(GlyphIndex(gid))
		if !IsCompositeGlyph(data) {
			continue
		}
		comps, err := GlyphComponents(data)
		if err != nil {
			t.Fatalf("glyph %d: %v", gid, err)
		}
		if len(comps) == 0 {
			t.Errorf("composite glyph %d has no components", gid)
		}
		for _, c := range comps {
			if int(c) >= otf.NumGlyphs() {
				t.Errorf("composite glyph %d references glyph %d out of range", gid, c)
			}
		}
	}
}

func TestComposite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// two components: byte args with scale, then word args
	var g []byte
	g = be16(g, 0xffff, 0, 0, 100, 100) // numberOfContours = -1, bbox
	g = be16(g, compWeHaveAScale|compMoreComponents, 7)
	g = append(g, 1, 2) // byte args
	g = be16(g, 0x4000) // scale
	g = be16(g, compArg1And2AreWords, 9, 10, 20)
	comps, err := GlyphComponents(g)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(comps, []GlyphIndex{7, 9}) {
		t.Errorf("expected components [7 9], have %v", comps)
	}
	if _, err := GlyphComponents(g[:len(g)-10]); err == nil {
		t.Errorf("expected truncated composite glyph to fail")
	}
	simple := be16(nil, 1, 0, 0, 10, 10)
	if IsCompositeGlyph(simple) {
		t.Errorf("expected glyph with one contour to be simple")
	}
}

// ---------------------------------------------------------------------------

func be16(b []byte, values ...uint16) []byte {
	for _, v := range values {
		b = binary.BigEndian.AppendUint16(b, v)
	}
	return b
}

func be32(b []byte, values ...uint32) []byte {
	for _, v := range values {
		b = binary.BigEndian.AppendUint32(b, v)
	}
	return b
}
