package ot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestSeverity(t *testing.T) {
	assert.Equal(t, "critical", SeverityCritical.String())
	assert.Equal(t, "minor", SeverityMinor.String())
	assert.Equal(t, "severity(7)", ErrorSeverity(7).String())
}

func TestFontErrorMessages(t *testing.T) {
	e := FontError{Table: T("cmap"), Section: "Subtable", Issue: "buffer too small",
		Severity: SeverityMajor, Offset: 1234}
	assert.Equal(t, "cmap/Subtable@1234: buffer too small (major)", e.Error())
	e = FontError{Section: "Header", Issue: "font type not supported"}
	assert.Equal(t, "header/Header: font type not supported (critical)", e.Error())
	w := FontWarning{Table: T("kern"), Issue: "sub-table size mismatch", Offset: 80}
	assert.Equal(t, "kern@80: sub-table size mismatch", w.String())
}

func TestErrorCollector(t *testing.T) {
	ec := &errorCollector{}
	assert.False(t, ec.hasErrors())
	ec.addError(T("cmap"), "Format", "no Unicode map", SeverityMajor, 100)
	ec.addWarning(T("kern"), "size mismatch", 200)
	assert.True(t, ec.hasErrors())
	assert.False(t, ec.hasCriticalErrors())
	err := ec.fail(T("hhea"), "Size", 64, "table too small: %d bytes", 12)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontFormat))
	assert.Equal(t, "malformed sfnt font: hhea/Size@64: table too small: 12 bytes (critical)", err.Error())
	assert.True(t, ec.hasCriticalErrors())
	otf := &Font{parseErrors: ec.errors, parseWarnings: ec.warnings}
	assert.Len(t, otf.Errors(), 2)
	assert.Len(t, otf.Warnings(), 1)
	assert.Len(t, otf.CriticalErrors(), 1)
	assert.True(t, otf.HasCriticalErrors())
	empty := &Font{}
	assert.Empty(t, empty.Errors())
	assert.False(t, empty.HasCriticalErrors())
}

func TestParseErrorsWrapFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	_, err := Parse(goregular.TTF[:8])
	assert.ErrorIs(t, err, ErrFontFormat)
	broken := bytes.Clone(goregular.TTF)
	broken[4], broken[5] = 0xff, 0xff // table count
	_, err = Parse(broken)
	assert.ErrorIs(t, err, ErrFontFormat)
}

func TestLocaFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	short := be16(nil, 0, 5, 5, 20) // three glyphs, glyph 1 empty
	t0, _ := parseLoca(T("loca"), short, 0, uint32(len(short)), &errorCollector{})
	loca := t0.Self().AsLoca()
	require.NoError(t, loca.setFormat(0, 3, &errorCollector{}))
	assert.False(t, loca.IsLong())
	from, to, ok := loca.GlyphExtent(1)
	assert.True(t, ok)
	assert.Equal(t, [2]uint32{10, 10}, [2]uint32{from, to})
	from, to, _ = loca.GlyphExtent(2)
	assert.Equal(t, [2]uint32{10, 40}, [2]uint32{from, to})
	_, _, ok = loca.GlyphExtent(3)
	assert.False(t, ok)
	long := be32(nil, 0, 12, 8)
	t1, _ := parseLoca(T("loca"), long, 0, uint32(len(long)), &errorCollector{})
	loca = t1.Self().AsLoca()
	require.NoError(t, loca.setFormat(1, 2, &errorCollector{}))
	assert.True(t, loca.IsLong())
	_, _, ok = loca.GlyphExtent(1)
	assert.False(t, ok, "decreasing offsets are invalid")
	assert.Error(t, loca.setFormat(1, 3, &errorCollector{}), "table too small")
	assert.Error(t, loca.setFormat(2, 2, &errorCollector{}), "bad format")
}
