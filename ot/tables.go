package ot

import "fmt"

// Decoders for the tables every font needs for metrics and glyph access.
// Field offsets follow the OpenType specification 1.8.4,
// https://docs.microsoft.com/en-us/typography/opentype/spec/.

// --- head ------------------------------------------------------------------

// HeadTable holds the fields of table 'head' needed for metrics and for
// interpreting table 'loca'. otquery.HeadInfo decodes the complete table.
type HeadTable struct {
	tableBase
	Flags                  uint16
	UnitsPerEm             uint16 // 16 … 16384
	XMin, YMin, XMax, YMax int16  // union of all glyph bounding boxes
	MacStyle               uint16 // bit 0 bold, bit 1 italic
	IndexToLocFormat       uint16 // 0 for short, 1 for long loca offsets
}

func parseHead(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		return nil, ec.fail(tag, "Size", offset, "head table too small: %d bytes (need 54)", size)
	}
	t := &HeadTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	t.Flags = b.U16(16)
	t.UnitsPerEm = b.U16(18)
	t.XMin, _ = b.i16(36)
	t.YMin, _ = b.i16(38)
	t.XMax, _ = b.i16(40)
	t.YMax, _ = b.i16(42)
	t.MacStyle = b.U16(44)
	t.IndexToLocFormat = b.U16(50)
	if t.UnitsPerEm < 16 || t.UnitsPerEm > 16384 {
		ec.addWarning(tag, fmt.Sprintf("unitsPerEm %d out of range", t.UnitsPerEm), offset+18)
	}
	return t, nil
}

// --- maxp ------------------------------------------------------------------

// MaxPTable holds the glyph count of a font. CFF fonts use version 0.5 of
// table 'maxp', which has no other fields.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func parseMaxP(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		return nil, ec.fail(tag, "Size", offset, "maxp table too small: %d bytes", size)
	}
	t := &MaxPTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	t.NumGlyphs = int(b.U16(4))
	return t, nil
}

// --- hhea ------------------------------------------------------------------

// HHeaTable holds the font-wide values for horizontal layout.
type HHeaTable struct {
	tableBase
	Ascender         int16
	Descender        int16
	LineGap          int16
	AdvanceWidthMax  uint16
	NumberOfHMetrics int
}

func parseHHea(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 36 {
		return nil, ec.fail(tag, "Size", offset, "hhea table too small: %d bytes (need 36)", size)
	}
	t := &HHeaTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	t.Ascender, _ = b.i16(4)
	t.Descender, _ = b.i16(6)
	t.LineGap, _ = b.i16(8)
	t.AdvanceWidthMax = b.U16(10)
	t.NumberOfHMetrics = int(b.U16(34))
	return t, nil
}

// --- hmtx ------------------------------------------------------------------

// HMtxTable holds advance width and left side bearing of every glyph.
// Only the first NumberOfHMetrics glyphs carry an advance width, the
// remaining glyphs repeat the last one and store a side bearing only.
// A monospaced font may therefore have a single long metric.
type HMtxTable struct {
	tableBase
	NumberOfHMetrics int
	numGlyphs        int
	longMetrics      []HMetricRecord
	leftSideBearings []int16
}

// HMetricRecord is a long horizontal metric of table 'hmtx'.
type HMetricRecord struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Decoding of hmtx needs values from hhea and maxp and is done in linkTables.
func parseHMtx(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	t := &HMtxTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	return t, nil
}

func (t *HMtxTable) decode(numGlyphs, numberOfHMetrics int) error {
	if numGlyphs < 0 {
		return fmt.Errorf("invalid glyph count %d", numGlyphs)
	}
	if numberOfHMetrics <= 0 || numberOfHMetrics > numGlyphs {
		return fmt.Errorf("invalid numberOfHMetrics %d (numGlyphs=%d)", numberOfHMetrics, numGlyphs)
	}
	lsbCount := numGlyphs - numberOfHMetrics
	if need := numberOfHMetrics*4 + lsbCount*2; need > len(t.data) {
		return fmt.Errorf("hmtx table too small: need %d bytes, have %d", need, len(t.data))
	}
	t.longMetrics = make([]HMetricRecord, numberOfHMetrics)
	for i := range t.longMetrics {
		t.longMetrics[i].AdvanceWidth = t.data.U16(i * 4)
		t.longMetrics[i].LeftSideBearing = int16(t.data.U16(i*4 + 2))
	}
	t.leftSideBearings = make([]int16, lsbCount)
	for i, at := 0, numberOfHMetrics*4; i < lsbCount; i, at = i+1, at+2 {
		t.leftSideBearings[i] = int16(t.data.U16(at))
	}
	t.NumberOfHMetrics = numberOfHMetrics
	t.numGlyphs = numGlyphs
	return nil
}

// GlyphCount returns the number of glyphs the table has been decoded for.
func (t *HMtxTable) GlyphCount() int {
	if t == nil {
		return 0
	}
	return t.numGlyphs
}

// HMetrics returns advance width and left side bearing of glyph g.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil || int(g) >= t.numGlyphs || len(t.longMetrics) == 0 {
		return 0, 0, false
	}
	if n := len(t.longMetrics); int(g) >= n {
		return t.longMetrics[n-1].AdvanceWidth, t.leftSideBearings[int(g)-n], true
	}
	m := t.longMetrics[g]
	return m.AdvanceWidth, m.LeftSideBearing, true
}

// --- loca ------------------------------------------------------------------

// LocaTable maps glyph indices to the glyph's data in table 'glyf'. It has
// numGlyphs+1 entries, the last one marking the end of the final glyph.
// Entry size depends on head.IndexToLocFormat.
type LocaTable struct {
	tableBase
	entries int
	long    bool
}

func parseLoca(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	t := &LocaTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	return t, nil
}

// location returns the offset of entry i. Short offsets are stored divided by two.
func (t *LocaTable) location(i int) (uint32, bool) {
	if i >= t.entries {
		return 0, false
	}
	if t.long {
		loc, err := t.data.u32(i * 4)
		return loc, err == nil
	}
	loc, err := t.data.u16(i * 2)
	return uint32(loc) * 2, err == nil
}

// GlyphExtent returns start and end offset of the data for glyph gid within
// table 'glyf'. Glyphs without outlines have start == end.
func (t *LocaTable) GlyphExtent(gid GlyphIndex) (uint32, uint32, bool) {
	from, ok1 := t.location(int(gid))
	to, ok2 := t.location(int(gid) + 1)
	if !ok1 || !ok2 || to < from {
		return 0, 0, false
	}
	return from, to, true
}

// IsLong reports whether the table uses 32-bit offsets.
func (t *LocaTable) IsLong() bool {
	return t.long
}

// setFormat checks the table size against the glyph count and the offset
// format given in table 'head'.
func (t *LocaTable) setFormat(indexToLocFormat uint16, numGlyphs int, ec *errorCollector) error {
	entrySize := 2
	switch indexToLocFormat {
	case 0:
	case 1:
		t.long, entrySize = true, 4
	default:
		return ec.fail(T("head"), "IndexToLocFormat", 0,
			"invalid value: %d (must be 0 or 1)", indexToLocFormat)
	}
	need, err := checkedMulInt(numGlyphs+1, entrySize)
	if err != nil {
		return ec.fail(t.name, "Size", t.offset, "size calculation overflow: %v", err)
	}
	if int(t.length) < need {
		return ec.fail(t.name, "Size", t.offset,
			"table size (%d) insufficient for %d glyphs (need %d)", t.length, numGlyphs, need)
	}
	t.entries = numGlyphs + 1
	return nil
}
