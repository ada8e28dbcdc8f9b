package ot

import (
	"fmt"
	"iter"
	"sort"
)

// --- CMap table ------------------------------------------------------------

// CMapTable defines the mapping of character codes to a default glyph index.
// Different subtables may be defined that each contain mappings for different
// character encoding schemes. The table header indicates the character encodings
// for which subtables are present.
//
// CMapTable holds a list of all encoding records of the font, together with the
// format of the sub-table they link to, and a glyph index map for the selected
// Unicode sub-table.
//
// The OpenType cmap documentation says: “If a font includes Unicode subtables for both 16-bit encoding
// (typically, format 4) and also 32-bit encoding (formats 10 or 12), then the
// characters supported by the subtable for 32-bit encoding should be a superset
// of the characters supported by the subtable for 16-bit encoding, and the 32-bit
// encoding should be used by applications.”
type CMapTable struct {
	tableBase
	Encodings     []EncodingRecord // all encoding records, in font order
	GlyphIndexMap GlyphIndexMap    // map of the preferred Unicode sub-table, if any
	NumGlyphs     int              // glyph IDs beyond this count are mapped to 0
}

func newCMapTable(tag Tag, b fontData, offset, size uint32) *CMapTable {
	t := &CMapTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	return t
}

// EncodingRecord is an entry of the cmap header, linking a platform/encoding
// combination to a sub-table.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Format     uint16 // format of the linked sub-table
	offset     uint32 // of the sub-table, relative to the cmap table
}

// IsUnicode reports whether an encoding record denotes a Unicode encoding.
// Format 14 sub-tables (Unicode variation sequences) are not character maps
// of their own and are excluded.
func (rec EncodingRecord) IsUnicode() bool {
	if rec.Format == 14 {
		return false
	}
	switch rec.PlatformID {
	case 0:
		return true
	case 3:
		return rec.EncodingID == 1 || rec.EncodingID == 10
	}
	return false
}

func (rec EncodingRecord) String() string {
	return fmt.Sprintf("cmap(%d,%d) format %d", rec.PlatformID, rec.EncodingID, rec.Format)
}

// Unicode platform/encoding combinations with 32-bit coverage.
func isFullUnicode(rec EncodingRecord) bool {
	return (rec.PlatformID == 0 && (rec.EncodingID == 4 || rec.EncodingID == 6)) ||
		(rec.PlatformID == 3 && rec.EncodingID == 10)
}

func supportedCmapFormat(format uint16) bool {
	switch format {
	case 0, 4, 6, 12:
		return true
	}
	return false
}

// HasUnicodeMap reports whether a Unicode sub-table has been selected.
func (t *CMapTable) HasUnicodeMap() bool {
	return t != nil && t.GlyphIndexMap != nil
}

// Lookup returns the glyph index for a code-point, using the selected Unicode
// sub-table. Unmapped code-points return 0.
func (t *CMapTable) Lookup(r rune) GlyphIndex {
	if !t.HasUnicodeMap() {
		return 0
	}
	g := t.GlyphIndexMap.Lookup(r)
	if t.NumGlyphs > 0 && int(g) >= t.NumGlyphs {
		return 0
	}
	return g
}

func (t *CMapTable) setNumGlyphs(n int) {
	if t != nil {
		t.NumGlyphs = n
	}
}

// parseCMap reads all encoding records and selects a Unicode sub-table for
// the glyph index map. We support the following sub-table formats:
//
//	0   byte encoding table (Macintosh)
//	4   segment mapping to delta values (Unicode BMP)
//	6   trimmed table mapping
//	12  segmented coverage (Unicode full)
//
// Fonts where no Unicode sub-table can be found are not rejected, as symbol
// fonts and Apple legacy fonts will not have one.
func parseCMap(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	const headerSize, entrySize = 4, 8
	if size < headerSize {
		return nil, ec.fail(tag, "Header", offset, "size of cmap table")
	}
	n := int(b.U16(2)) // number of sub-tables
	tracer().Debugf("font cmap has %d sub-tables in %d|%d bytes", n, len(b), size)
	if headerSize+entrySize*n > int(size) {
		return nil, ec.fail(tag, "Header", offset, "table size %d < required %d", size, headerSize+entrySize*n)
	}
	t := newCMapTable(tag, b, offset, size)
	best, bestWidth := -1, 0
	for i := range n {
		rec, _ := b.view(headerSize+entrySize*i, entrySize)
		enc := EncodingRecord{
			PlatformID: u16(rec),
			EncodingID: u16(rec[2:]),
			offset:     u32(rec[4:]),
		}
		if enc.offset+2 > size {
			ec.addWarning(tag, fmt.Sprintf("sub-table %d (platform=%d, encoding=%d) out of bounds",
				i, enc.PlatformID, enc.EncodingID), offset)
			continue
		}
		enc.Format = b.U16(int(enc.offset))
		tracer().Debugf("cmap table contains %s", enc)
		t.Encodings = append(t.Encodings, enc)
		if !enc.IsUnicode() || !supportedCmapFormat(enc.Format) {
			continue
		}
		width := 2
		if isFullUnicode(enc) || enc.Format == 12 {
			width = 4
		}
		if width > bestWidth {
			best, bestWidth = len(t.Encodings)-1, width
		}
	}
	if best < 0 {
		ec.addError(tag, "Format", "no supported Unicode cmap sub-table found", SeverityMajor, offset)
		return t, nil
	}
	enc := t.Encodings[best]
	gim, err := makeGlyphIndex(b[enc.offset:], enc.Format)
	if err != nil {
		ec.addError(tag, "Subtable", err.Error(), SeverityMajor, offset+enc.offset)
		return t, nil
	}
	t.GlyphIndexMap = gim
	return t, nil
}

// Format returns the sub-table format of the first encoding record for a given
// platform and encoding, or -1.
func (t *CMapTable) Format(platform, encoding uint16) int {
	for _, enc := range t.Encodings {
		if enc.PlatformID == platform && enc.EncodingID == encoding {
			return int(enc.Format)
		}
	}
	return -1
}

// --- Glyph index maps ------------------------------------------------------

// GlyphIndexMap maps code-points to glyph indices.
type GlyphIndexMap interface {
	Lookup(rune) GlyphIndex                 // unmapped code-points return 0
	ReverseLookup(GlyphIndex) rune          // glyphs without code-point return 0
	Mappings() iter.Seq2[rune, GlyphIndex] // all mappings in ascending code-point order
}

func makeGlyphIndex(b fontData, format uint16) (GlyphIndexMap, error) {
	switch format {
	case 0:
		return makeGlyphIndexFormat0(b)
	case 4:
		return makeGlyphIndexFormat4(b)
	case 6:
		return makeGlyphIndexFormat6(b)
	case 12:
		return makeGlyphIndexFormat12(b)
	}
	return nil, fmt.Errorf("unsupported cmap sub-table format %d", format)
}

func reverseLookup(m GlyphIndexMap, gid GlyphIndex) rune {
	for r, g := range m.Mappings() {
		if g == gid {
			return r
		}
	}
	return 0
}

// --- Format 0 ---

type format0GlyphIndex struct {
	glyphs fontData // 256 glyph IDs of one byte
}

func makeGlyphIndexFormat0(b fontData) (GlyphIndexMap, error) {
	glyphs, err := b.view(6, 256)
	if err != nil {
		return nil, fmt.Errorf("cmap format 0: %w", err)
	}
	return format0GlyphIndex{glyphs: glyphs}, nil
}

func (f format0GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 255 {
		return 0
	}
	return GlyphIndex(f.glyphs[r])
}

func (f format0GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	return reverseLookup(f, gid)
}

func (f format0GlyphIndex) Mappings() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for c, g := range f.glyphs {
			if g != 0 && !yield(rune(c), GlyphIndex(g)) {
				return
			}
		}
	}
}

// --- Format 4 ---

type cmapEntry16 struct {
	end, start, delta, offset uint16
}

// format4GlyphIndex holds the segments of a format 4 sub-table. Segments
// with an idRangeOffset reference into the glyph ID array, which we keep as
// a view of the font data.
type format4GlyphIndex struct {
	entries []cmapEntry16
	data    fontData // the sub-table
	offsets int        // start of the idRangeOffset array within data
}

func makeGlyphIndexFormat4(b fontData) (GlyphIndexMap, error) {
	const headerSize = 14
	if len(b) < headerSize {
		return nil, fmt.Errorf("cmap format 4: header too short")
	}
	length := int(b.U16(2))
	if length < headerSize || length > len(b) {
		// some fonts have a wrong length; the sub-table may extend to the
		// end of the cmap table
		length = len(b)
	}
	b = b[:length]
	segCount := int(b.U16(6))
	if segCount&1 != 0 {
		return nil, fmt.Errorf("cmap format 4: odd segCountX2")
	}
	segCount /= 2
	eLength := 8*segCount + 2 // 2 bytes reserved padding
	if headerSize+eLength > len(b) {
		return nil, fmt.Errorf("cmap format 4: segments exceed sub-table")
	}
	entries := make([]cmapEntry16, segCount)
	for i := range segCount {
		entries[i] = cmapEntry16{
			end:    b.U16(headerSize + 0*segCount + 0 + 2*i),
			start:  b.U16(headerSize + 2*segCount + 2 + 2*i),
			delta:  b.U16(headerSize + 4*segCount + 2 + 2*i),
			offset: b.U16(headerSize + 6*segCount + 2 + 2*i),
		}
	}
	return format4GlyphIndex{
		entries: entries,
		data:    b,
		offsets: headerSize + 6*segCount + 2,
	}, nil
}

func (f format4GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xffff {
		return 0
	}
	c := uint16(r)
	i := sort.Search(len(f.entries), func(i int) bool {
		return f.entries[i].end >= c
	})
	if i == len(f.entries) || c < f.entries[i].start {
		return 0
	}
	return f.glyph(i, c)
}

func (f format4GlyphIndex) glyph(i int, c uint16) GlyphIndex {
	e := f.entries[i]
	if e.offset == 0 {
		return GlyphIndex(c + e.delta)
	}
	// idRangeOffset is relative to its own position in the idRangeOffset array
	addr := f.offsets + 2*i + int(e.offset) + 2*int(c-e.start)
	g, err := f.data.u16(addr)
	if err != nil || g == 0 {
		return 0
	}
	return GlyphIndex(g + e.delta)
}

func (f format4GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	return reverseLookup(f, gid)
}

func (f format4GlyphIndex) Mappings() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for i, e := range f.entries {
			if e.start > e.end {
				continue
			}
			for c := uint32(e.start); c <= uint32(e.end); c++ {
				if c == 0xffff {
					break
				}
				if g := f.glyph(i, uint16(c)); g != 0 {
					if !yield(rune(c), g) {
						return
					}
				}
			}
		}
	}
}

// --- Format 6 ---

type format6GlyphIndex struct {
	first  uint16
	glyphs fontData
}

func makeGlyphIndexFormat6(b fontData) (GlyphIndexMap, error) {
	if len(b) < 10 {
		return nil, fmt.Errorf("cmap format 6: header too short")
	}
	first, count := b.U16(6), int(b.U16(8))
	glyphs, err := b.view(10, 2*count)
	if count > 0 && err != nil {
		return nil, fmt.Errorf("cmap format 6: %w", err)
	}
	return format6GlyphIndex{first: first, glyphs: glyphs}, nil
}

func (f format6GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < rune(f.first) || int(r-rune(f.first)) >= len(f.glyphs)/2 {
		return 0
	}
	return GlyphIndex(f.glyphs.U16(2 * int(r-rune(f.first))))
}

func (f format6GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	return reverseLookup(f, gid)
}

func (f format6GlyphIndex) Mappings() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for i := 0; i < len(f.glyphs)/2; i++ {
			if g := GlyphIndex(f.glyphs.U16(2 * i)); g != 0 {
				if !yield(rune(f.first)+rune(i), g) {
					return
				}
			}
		}
	}
}

// --- Format 12 ---

type cmapEntry32 struct {
	start, end, glyph uint32
}

type format12GlyphIndex struct {
	entries []cmapEntry32
}

func makeGlyphIndexFormat12(b fontData) (GlyphIndexMap, error) {
	const headerSize, groupSize = 16, 12
	if len(b) < headerSize {
		return nil, fmt.Errorf("cmap format 12: header too short")
	}
	n := int(b.U32(12))
	if n < 0 || headerSize+groupSize*n > len(b) {
		return nil, fmt.Errorf("cmap format 12: groups exceed sub-table")
	}
	entries := make([]cmapEntry32, n)
	for i := range n {
		at := headerSize + groupSize*i
		entries[i] = cmapEntry32{
			start: b.U32(at),
			end:   b.U32(at + 4),
			glyph: b.U32(at + 8),
		}
	}
	return format12GlyphIndex{entries: entries}, nil
}

func (f format12GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 {
		return 0
	}
	c := uint32(r)
	i := sort.Search(len(f.entries), func(i int) bool {
		return f.entries[i].end >= c
	})
	if i == len(f.entries) || c < f.entries[i].start {
		return 0
	}
	e := f.entries[i]
	return GlyphIndex(e.glyph + (c - e.start))
}

func (f format12GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	for _, e := range f.entries {
		if uint32(gid) >= e.glyph && uint32(gid)-e.glyph <= e.end-e.start {
			return rune(e.start + (uint32(gid) - e.glyph))
		}
	}
	return 0
}

func (f format12GlyphIndex) Mappings() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for _, e := range f.entries {
			for c := e.start; c <= e.end && c <= 0x10ffff; c++ {
				if !yield(rune(c), GlyphIndex(e.glyph+(c-e.start))) {
					return
				}
			}
		}
	}
}
