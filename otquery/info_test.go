package otquery

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeface/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf    *ot.Font
	italic *ot.Font
	mono   *ot.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelError)
	env.otf = parseFont(env.T(), goregular.TTF)
	env.italic = parseFont(env.T(), goitalic.TTF)
	env.mono = parseFont(env.T(), gomono.TTF)
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.otf)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
	env.Equal("", FontType(nil))
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	names := map[sfnt.NameID]string{}
	for id, value := range NamesRange(env.otf) {
		if _, ok := names[id]; !ok {
			names[id] = value
		}
	}
	env.T().Logf("names = %v", names)
	fam, ok := names[sfnt.NameIDFamily]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Equal(sfntName(env.T(), goregular.TTF, sfnt.NameIDFamily), fam)
}

func (env *InfoTestEnviron) TestFamilyName() {
	b, ok := env.otf.TableBytes(ot.T("name")).Unwrap()
	env.Require().True(ok, "expected Go Regular to have a name table")
	env.Equal(sfntName(env.T(), goregular.TTF, sfnt.NameIDFamily), FamilyName(b))
	env.NotEmpty(StyleName(b))
	b, _ = env.italic.TableBytes(ot.T("name")).Unwrap()
	env.Equal(sfntName(env.T(), goitalic.TTF, sfnt.NameIDSubfamily), StyleName(b))
	ps, ok := EnglishName(b, sfnt.NameIDPostScript)
	env.True(ok)
	env.Equal(sfntName(env.T(), goitalic.TTF, sfnt.NameIDPostScript), ps)
	_, ok = EnglishName(b, sfnt.NameID(999))
	env.False(ok, "did not expect name ID 999 to be present")
	env.Equal("", FamilyName(nil))
}

func (env *InfoTestEnviron) TestEnglishNamePreference() {
	names := makeNameTable([]NameRecord{
		{Platform: PlatformIDMacintosh, Encoding: EncodingIDMacRoman, Language: 0, Name: 1, Value: "Mac"},
		{Platform: PlatformIDWindows, Encoding: EncodingIDWindowsBMP, Language: 0x0407, Name: 1, Value: "Deutsch"},
		{Platform: PlatformIDUnicode, Encoding: 3, Language: 0, Name: 1, Value: "Uni"},
		{Platform: PlatformIDWindows, Encoding: EncodingIDWindowsBMP, Language: 0x0809, Name: 1, Value: "English"},
		{Platform: PlatformIDMacintosh, Encoding: EncodingIDMacRoman, Language: 0, Name: 2, Value: "Café"},
	})
	name, ok := EnglishName(names, 1)
	env.True(ok)
	env.Equal("English", name, "expected English Windows record to be preferred")
	style, _ := EnglishName(names, 2)
	env.Equal("Café", style, "expected Mac Roman record to decode")
	names = makeNameTable([]NameRecord{
		{Platform: PlatformIDMacintosh, Encoding: EncodingIDMacRoman, Language: 0, Name: 1, Value: "Mac"},
		{Platform: PlatformIDUnicode, Encoding: 3, Language: 0, Name: 1, Value: "Uni"},
	})
	name, _ = EnglishName(names, 1)
	env.Equal("Uni", name, "expected Unicode record to be preferred over Macintosh")
	env.Equal("Uni", FamilyName(names))
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'head'")

	headTable := env.otf.Table(ot.T("head")).Self().AsHead()
	env.Require().NotNil(headTable, "expected parsed HeadTable")

	env.Equal(headTable.Flags, h.Flags, "expected matching Flags")
	env.Equal(headTable.UnitsPerEm, h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(headTable.IndexToLocFormat), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.Equal(uint32(HeadMagicNumber), h.MagicNumber, "expected OpenType head magic number")
	_, ok = DecodeHead(make([]byte, 20))
	env.False(ok, "expected short head table to be rejected")
	b := make([]byte, 54)
	binary.BigEndian.PutUint64(b[20:], 86400)
	h, ok = DecodeHead(b)
	env.Require().True(ok)
	env.Equal(time.Date(1904, time.January, 2, 0, 0, 0, 0, time.UTC), h.CreatedAt())
	env.Equal(1904, h.ModifiedAt().Year())
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.otf)
	env.Require().True(ok, "expected to decode table 'maxp'")

	maxpTable := env.otf.Table(ot.T("maxp")).Self().AsMaxP()
	env.Require().NotNil(maxpTable, "expected parsed MaxPTable")

	env.Equal(uint16(maxpTable.NumGlyphs), m.NumGlyphs, "expected matching numGlyphs")
	env.Equal(uint32(0x00010000), m.VersionFixed, "expected maxp version 1.0 for TrueType font")
	env.True(m.HasExtendedProfile)
	env.NotZero(m.MaxPoints)
}

func (env *InfoTestEnviron) TestOS2Info() {
	os2, ok := OS2Info(env.otf)
	env.Require().True(ok, "expected to decode table 'OS/2'")
	b, _ := env.otf.TableBytes(ot.T("OS/2")).Unwrap()
	env.Equal(binary.BigEndian.Uint16(b[8:]), os2.FsType)
	env.Equal(int16(binary.BigEndian.Uint16(b[2:])), os2.XAvgCharWidth)
	env.Equal(int16(binary.BigEndian.Uint16(b[68:])), os2.TypoAscender)
	env.Equal(uint16(400), os2.WeightClass, "expected Go Regular to have weight 400")
	env.Equal(uint16(5), os2.WidthClass, "expected Go Regular to have normal width")
	if os2.HasHeightFields() {
		env.Greater(os2.CapHeight, os2.XHeight)
	}
	//
	raw := make([]byte, 96)
	binary.BigEndian.PutUint16(raw[0:], 2)
	binary.BigEndian.PutUint16(raw[8:], 0x0104)
	binary.BigEndian.PutUint16(raw[86:], 500)
	binary.BigEndian.PutUint16(raw[88:], 700)
	raw[32] = 2
	copy(raw[58:], "TEST")
	info, ok := DecodeOS2(raw)
	env.Require().True(ok)
	env.Equal(uint16(0x0104), info.FsType)
	env.Equal(int16(500), info.XHeight)
	env.Equal(int16(700), info.CapHeight)
	env.Equal(byte(2), info.Panose[0])
	env.Equal("TEST", info.VendorID)
	env.True(info.HasHeightFields())
	info, ok = DecodeOS2(raw[:78])
	env.Require().True(ok)
	env.Zero(info.CapHeight, "expected truncated table to have no cap height")
	env.False(info.HasHeightFields(), "version 2 table truncated before the height fields")
	info, ok = DecodeOS2(raw[:95])
	env.Require().True(ok)
	env.Equal(uint16(2), info.Version)
	env.False(info.HasHeightFields())
	_, ok = DecodeOS2(raw[:60])
	env.False(ok)
}

func (env *InfoTestEnviron) TestPostInfo() {
	post, ok := PostInfo(env.italic)
	env.Require().True(ok, "expected to decode table 'post'")
	env.Less(post.ItalicAngleDegrees(), 0.0, "expected Go Italic to slant to the right")
	post, _ = PostInfo(env.otf)
	env.Equal(0.0, post.ItalicAngleDegrees())
	env.Zero(post.IsFixedPitch)
	post, _ = PostInfo(env.mono)
	env.NotZero(post.IsFixedPitch, "expected Go Mono to be fixed pitch")
	b := make([]byte, 32)
	binary.BigEndian.PutUint32(b[4:], uint32(0xfff48000)) // -11.5
	post, _ = DecodePost(b)
	env.Equal(-11.5, post.ItalicAngleDegrees())
}

func (env *InfoTestEnviron) TestPCLTInfo() {
	_, ok := PCLTInfo(env.otf)
	env.False(ok, "did not expect Go Regular to have table PCLT")
	b := make([]byte, pcltTableSize)
	binary.BigEndian.PutUint16(b[10:], 1100)
	binary.BigEndian.PutUint16(b[16:], 1400)
	copy(b[20:], "Courier")
	pclt, ok := DecodePCLT(b)
	env.Require().True(ok)
	env.Equal(uint16(1100), pclt.XHeight)
	env.Equal(uint16(1400), pclt.CapHeight)
	env.Equal("Courier", pclt.Typeface)
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm)
	env.Greater(m.Ascent, sfnt.Units(0))
	env.Less(m.Descent, sfnt.Units(0))
	env.Equal(m.Ascent-m.Descent+m.LineGap, m.Height)
	env.False(m.FixedPitch)
	env.True(FontMetrics(env.mono).FixedPitch)
	env.Equal(env.otf.NumGlyphs(), m.NumGlyphs)
	//
	f, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(f.UnitsPerEm())
	bounds, err := f.Bounds(&buf, ppem, 0)
	env.Require().NoError(err)
	env.Equal(sfnt.Units(bounds.Min.X), m.BBox.XMin)
	env.Equal(sfnt.Units(-bounds.Max.Y), m.BBox.YMin)
	env.Equal(sfnt.Units(bounds.Max.X), m.BBox.XMax)
	env.Equal(sfnt.Units(-bounds.Min.Y), m.BBox.YMax)
}

func (env *InfoTestEnviron) TestStyleFlags() {
	bold, italic := StyleFlags(env.otf)
	env.False(bold)
	env.False(italic)
	_, italic = StyleFlags(env.italic)
	env.True(italic, "expected Go Italic to be italic")
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	f, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(f.UnitsPerEm())
	for _, r := range "AHxg ." {
		gid := GlyphIndex(env.otf, r)
		x, err := f.GlyphIndex(&buf, r)
		env.Require().NoError(err)
		env.Equal(uint16(x), uint16(gid), "glyph index of %q differs", r)
		adv, err := f.GlyphAdvance(&buf, x, ppem, 0)
		env.Require().NoError(err)
		m := GlyphMetrics(env.otf, gid)
		env.Equal(sfnt.Units(adv), m.Advance, "advance of %q differs", r)
	}
	h := GlyphMetrics(env.otf, GlyphIndex(env.otf, 'H'))
	env.False(h.BBox.IsZero())
	env.Equal(h.Advance, h.LSB+h.BBox.Width()+h.RSB)
	space := GlyphMetrics(env.otf, GlyphIndex(env.otf, ' '))
	env.True(space.BBox.IsZero())
	env.Zero(space.RSB)
}

func (env *InfoTestEnviron) TestReverseLookup() {
	gid := GlyphIndex(env.otf, 'A')
	r := CodePointForGlyph(env.otf, gid)
	env.Equal('A', r, "expected code-point to be %#U, is %#U", 'A', r)
	env.Equal(rune(0), CodePointForGlyph(env.otf, 0))
}

func (env *InfoTestEnviron) TestKerning() {
	kern := env.otf.Table(ot.T("kern"))
	if kern == nil {
		env.Equal(sfnt.Units(0), Kerning(env.otf, 1, 2))
		return
	}
	subs := kern.Self().AsKern().SubTables()
	env.Require().NotEmpty(subs)
	l, r, v := subs[0].Pair(0)
	if len(subs) == 1 && subs[0].Horizontal() {
		env.Equal(sfnt.Units(v), Kerning(env.otf, l, r))
	}
}

// --- Helpers ----------------------------------------------------------

func parseFont(t *testing.T, data []byte) *ot.Font {
	otf, err := ot.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	return otf
}

func sfntName(t *testing.T, data []byte, id sfnt.NameID) string {
	f, err := sfnt.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	name, err := f.Name(nil, id)
	if err != nil {
		t.Fatal(err)
	}
	return name
}

// makeNameTable creates a format 0 'name' table. Records have to be sorted by
// the caller if sorting matters.
func makeNameTable(records []NameRecord) []byte {
	var header, storage bytes.Buffer
	be := binary.BigEndian
	header.Write(be.AppendUint16(nil, 0))
	header.Write(be.AppendUint16(nil, uint16(len(records))))
	header.Write(be.AppendUint16(nil, uint16(nameHeaderSize+nameRecordSize*len(records))))
	for _, rec := range records {
		var value []byte
		if rec.Platform == PlatformIDMacintosh {
			value, _ = charmap.Macintosh.NewEncoder().Bytes([]byte(rec.Value))
		} else {
			for _, u := range rec.Value {
				value = be.AppendUint16(value, uint16(u))
			}
		}
		for _, v := range []uint16{uint16(rec.Platform), uint16(rec.Encoding), rec.Language,
			uint16(rec.Name), uint16(len(value)), uint16(storage.Len())} {
			header.Write(be.AppendUint16(nil, v))
		}
		storage.Write(value)
	}
	header.Write(storage.Bytes())
	return header.Bytes()
}
