package ot

import "slices"

// Font is a parsed sfnt font, TrueType or OpenType. It holds a directory of
// the font's tables and typed shortcuts to the tables every query needs.
//
// A Font references the byte slice it was parsed from. The slice must not be
// modified as long as the Font is in use.
type Font struct {
	Header        *FontHeader
	binary        fontData
	tables        map[Tag]Table
	CMap          *CMapTable // character mapping, always present
	HHea          *HHeaTable // horizontal header, always present
	HMtx          *HMtxTable // horizontal metrics, always present
	parseErrors   []FontError
	parseWarnings []FontWarning
}

// FontHeader is the offset table at the start of an sfnt binary.
//
// FontType is 0x00010000 for TrueType outlines and 'OTTO' for CFF outlines.
// Old Apple fonts may use 'true'.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Table returns the table for tag, or nil if the font does not contain it.
// Every table of the font is accessible, tables without a decoder as generic
// tables. Typed access is available through Self():
//
//	loca := otf.Table(ot.T("loca")).Self().AsLoca()
//
// Tags are case-sensitive.
func (otf *Font) Table(tag Tag) Table {
	if otf == nil {
		return nil
	}
	return otf.tables[tag]
}

// TableBytes returns the binary data of a table, if present.
func (otf *Font) TableBytes(tag Tag) Option[[]byte] {
	if t := otf.Table(tag); t != nil {
		return Some(t.Binary())
	}
	return None[[]byte]()
}

// TableTags returns the tags of all tables in the font, sorted.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Binary returns the data the font has been parsed from. It is read-only.
func (otf *Font) Binary() []byte {
	return otf.binary
}

// IsCFF reports whether the font contains PostScript outlines.
func (otf *Font) IsCFF() bool {
	return otf.Table(T("CFF ")) != nil
}

// NumGlyphs returns the number of glyphs stated in table 'maxp'.
func (otf *Font) NumGlyphs() int {
	if t := otf.Table(T("maxp")); t != nil {
		return t.Self().AsMaxP().NumGlyphs
	}
	return 0
}

// Errors returns the recoverable errors found while parsing.
func (otf *Font) Errors() []FontError {
	return slices.Clone(otf.parseErrors)
}

// Warnings returns the warnings issued while parsing.
func (otf *Font) Warnings() []FontWarning {
	return slices.Clone(otf.parseWarnings)
}

// CriticalErrors returns all parse errors of severity SeverityCritical.
func (otf *Font) CriticalErrors() []FontError {
	var critical []FontError
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			critical = append(critical, err)
		}
	}
	return critical
}

// HasCriticalErrors is a shortcut for len(otf.CriticalErrors()) > 0.
func (otf *Font) HasCriticalErrors() bool {
	return slices.ContainsFunc(otf.parseErrors, func(e FontError) bool {
		return e.Severity == SeverityCritical
	})
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is a four byte identifier of a table, stored as a big-endian uint32.
type Tag uint32

// T makes a tag from a string. Short strings are padded with spaces, long
// ones are cut to four bytes.
func T(t string) Tag {
	return tagOf([]byte((t + "    ")[:4]))
}

func tagOf(b []byte) Tag {
	return Tag(u32(b))
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// --- Table -----------------------------------------------------------------

// Table is a single table of a font. The tables needed for introspection are
// cmap, head, hhea, hmtx and maxp, with glyf/loca or 'CFF ' for outlines.
// OS/2, post, name and PCLT are kept as generic tables and decoded on demand
// by package otquery.
type Table interface {
	Extent() (uint32, uint32) // offset and size within the font binary
	Binary() []byte           // the table's bytes, read-only
	Self() TableSelf          // typed access
}

type genericTable struct {
	tableBase
}

func newTable(tag Tag, b fontData, offset, size uint32) *genericTable {
	t := &genericTable{newTableBase(tag, b, offset, size)}
	t.self = t
	return t
}

// tableBase is embedded by every table type. self points to the embedding
// table and has to be set by the table's constructor.
type tableBase struct {
	data   fontData
	name   Tag
	offset uint32
	length uint32
	self   any
}

func newTableBase(tag Tag, b fontData, offset, size uint32) tableBase {
	return tableBase{data: b, name: tag, offset: offset, length: size}
}

// Extent returns offset and size of the table within the font binary.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the table's bytes. They are a view into the font binary and
// must not be modified.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf converts a table to its concrete type. The As… methods return
// nil if the table is of a different type.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the tag of the table.
func (tself TableSelf) NameTag() Tag {
	return tself.tableBase.name
}

func as[X any](tself TableSelf) X {
	var zero X
	if tself.tableBase == nil {
		return zero
	}
	if t, ok := tself.tableBase.self.(X); ok {
		return t
	}
	return zero
}

// AsCMap returns the table as a cmap table.
func (tself TableSelf) AsCMap() *CMapTable { return as[*CMapTable](tself) }

// AsKern returns the table as a kern table.
func (tself TableSelf) AsKern() *KernTable { return as[*KernTable](tself) }

// AsLoca returns the table as a loca table.
func (tself TableSelf) AsLoca() *LocaTable { return as[*LocaTable](tself) }

// AsMaxP returns the table as a maxp table.
func (tself TableSelf) AsMaxP() *MaxPTable { return as[*MaxPTable](tself) }

// AsHead returns the table as a head table.
func (tself TableSelf) AsHead() *HeadTable { return as[*HeadTable](tself) }

// AsHHea returns the table as a hhea table.
func (tself TableSelf) AsHHea() *HHeaTable { return as[*HHeaTable](tself) }

// AsHMtx returns the table as a hmtx table.
func (tself TableSelf) AsHMtx() *HMtxTable { return as[*HMtxTable](tself) }
