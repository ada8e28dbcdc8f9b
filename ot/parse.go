package ot

import (
	"fmt"
	"math"
)

// Font types in the sfnt header.
const (
	FontTypeTrueType uint32 = 0x00010000
	FontTypeOTTO     uint32 = 0x4f54544f // 'OTTO'
	FontTypeApple    uint32 = 0x74727565 // 'true'
)

// IsSFNT reports whether b starts with a supported sfnt font type.
func IsSFNT(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	switch u32(b) {
	case FontTypeTrueType, FontTypeOTTO, FontTypeApple:
		return true
	}
	return false
}

// RequiredTables lists the tables Parse insists on. OS/2, post and name are
// mandatory for OpenType as well, but character mapping and glyph metrics work
// without them. Clients check for them as needed.
var RequiredTables = []string{
	"cmap", "head", "hhea", "hmtx", "maxp",
}

const (
	offsetTableSize = 12
	tableRecordSize = 16
)

// Parse parses an sfnt font. The returned Font references font, which must
// not be changed afterwards.
//
// Recoverable problems are recorded with the font and may be inspected with
// Errors() and Warnings(). All other problems are reported as an error
// wrapping ErrFontFormat.
func Parse(font []byte) (*Font, error) {
	ec := &errorCollector{}
	src := fontData(font)
	if len(src) < offsetTableSize {
		return nil, ec.fail(0, "Header", 0, "font data too short: %d bytes", len(src))
	}
	h := FontHeader{FontType: u32(src), TableCount: u16(src[4:])}
	tracer().Debugf("font type %x (%s), %d tables", h.FontType, Tag(h.FontType), h.TableCount)
	if !IsSFNT(font) {
		return nil, ec.fail(0, "Header", 0, "font type not supported: %x", h.FontType)
	}
	n, err := checkedMulInt(tableRecordSize, int(h.TableCount))
	if err != nil {
		return nil, ec.fail(0, "TableRecords", offsetTableSize, "%v", err)
	}
	dir, err := src.view(offsetTableSize, n)
	if err != nil {
		return nil, ec.fail(0, "TableRecords", offsetTableSize, "table directory exceeds font data")
	}
	otf := &Font{Header: &h, binary: src, tables: make(map[Tag]Table, h.TableCount)}
	var prev Tag
	for rec := dir; len(rec) > 0; rec = rec[tableRecordSize:] {
		tag, off, size := tagOf(rec), u32(rec[8:]), u32(rec[12:])
		if tag < prev {
			// the directory is not searched, so we can live with this
			ec.addWarning(tag, "table directory not sorted", offsetTableSize)
		}
		prev = tag
		if off&3 != 0 {
			return nil, ec.fail(tag, "Offset", off, "table not aligned to 4 bytes")
		}
		end, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, ec.fail(tag, "Size", off, "%v", err)
		}
		if end > uint32(len(src)) {
			return nil, ec.fail(tag, "Bounds", off, "table [%d:%d] exceeds font size %d",
				off, end, len(src))
		}
		t, err := parseTable(tag, src[off:end], off, size, ec)
		if err != nil {
			return nil, err
		}
		if t != nil {
			otf.tables[tag] = t
		}
	}
	if err := linkTables(otf, ec); err != nil {
		return nil, err
	}
	otf.parseErrors, otf.parseWarnings = ec.errors, ec.warnings
	return otf, nil
}

// linkTables checks for the required tables and resolves dependencies between
// tables: hmtx and loca cannot be decoded without the glyph count from maxp,
// hmtx needs hhea and loca needs the offset format from head.
func linkTables(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		if otf.tables[T(tag)] == nil {
			return ec.fail(T(tag), "Missing", 0, "missing required table")
		}
	}
	numGlyphs := otf.NumGlyphs()
	otf.CMap = otf.tables[T("cmap")].Self().AsCMap()
	otf.CMap.setNumGlyphs(numGlyphs)
	otf.HHea = otf.tables[T("hhea")].Self().AsHHea()
	otf.HMtx = otf.tables[T("hmtx")].Self().AsHMtx()
	if err := otf.HMtx.decode(numGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
		return ec.fail(T("hmtx"), "Size", otf.HMtx.offset, "%v", err)
	}
	loca := otf.Table(T("loca"))
	if loca == nil {
		if otf.Table(T("glyf")) != nil {
			return ec.fail(T("loca"), "Missing", 0, "glyf table without loca table")
		}
		return nil
	}
	head := otf.tables[T("head")].Self().AsHead()
	return loca.Self().AsLoca().setFormat(head.IndexToLocFormat, numGlyphs, ec)
}

// parseTable decodes the tables needed for introspection. glyf, 'CFF ', name,
// OS/2, post, PCLT and all other tables are kept as generic tables.
func parseTable(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	switch tag {
	case T("cmap"):
		return parseCMap(tag, b, offset, size, ec)
	case T("head"):
		return parseHead(tag, b, offset, size, ec)
	case T("hhea"):
		return parseHHea(tag, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(tag, b, offset, size, ec)
	case T("kern"):
		return parseKern(tag, b, offset, size, ec)
	case T("loca"):
		return parseLoca(tag, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(tag, b, offset, size, ec)
	}
	tracer().Debugf("table %s kept as binary data", tag)
	return newTable(tag, b, offset, size), nil
}

func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}
