package ot

import (
	"fmt"
	"sort"
)

// --- Kern table ------------------------------------------------------------

// KernTable gives access to the format 0 sub-tables of a font's kern table.
//
// TrueType and OpenType slightly differ on formats of kern tables:
// see https://developer.apple.com/fonts/TrueType-Reference-Manual/RM06/Chap6kern.html
// and https://docs.microsoft.com/en-us/typography/opentype/spec/kern
type KernTable struct {
	tableBase
	apple     bool
	subTables []KernSubTable
}

func newKernTable(tag Tag, b fontData, offset, size uint32) *KernTable {
	t := &KernTable{tableBase: newTableBase(tag, b, offset, size)}
	t.self = t
	return t
}

// KernSubTable is a format 0 kern sub-table, i.e. an ordered list of kern pairs.
type KernSubTable struct {
	Coverage uint16
	apple    bool
	pairs    fontData // kern pairs of 6 bytes: left, right, value
}

// Horizontal reports whether this sub-table contains horizontal kerning data,
// excluding cross-stream kerning.
func (st KernSubTable) Horizontal() bool {
	if st.apple {
		return st.Coverage&0x8000 == 0 && st.Coverage&0x4000 == 0
	}
	return st.Coverage&0x1 != 0 && st.Coverage&0x4 == 0 && st.Coverage&0x2 == 0
}

// Override reports whether values of this sub-table replace the values
// accumulated so far (MS format only).
func (st KernSubTable) Override() bool {
	return !st.apple && st.Coverage&0x8 != 0
}

// Len returns the number of kern pairs.
func (st KernSubTable) Len() int {
	return len(st.pairs) / 6
}

// Pair returns the kern pair at index i.
func (st KernSubTable) Pair(i int) (GlyphIndex, GlyphIndex, int16) {
	at := 6 * i
	return GlyphIndex(st.pairs.U16(at)), GlyphIndex(st.pairs.U16(at + 2)), int16(st.pairs.U16(at + 4))
}

// Lookup searches the kern value for a pair of glyphs.
// Pairs are sorted by combined left/right key.
func (st KernSubTable) Lookup(left, right GlyphIndex) (int16, bool) {
	key := uint32(left)<<16 | uint32(right)
	n := st.Len()
	i := sort.Search(n, func(i int) bool {
		return st.pairs.U32(6*i) >= key
	})
	if i < n && st.pairs.U32(6*i) == key {
		return int16(st.pairs.U16(6*i + 4)), true
	}
	return 0, false
}

// SubTables returns all format 0 sub-tables.
func (t *KernTable) SubTables() []KernSubTable {
	if t == nil {
		return nil
	}
	return t.subTables
}

// Kern returns the accumulated horizontal kerning value for a glyph pair,
// in font units.
func (t *KernTable) Kern(left, right GlyphIndex) int {
	value := 0
	for _, st := range t.SubTables() {
		if !st.Horizontal() {
			continue
		}
		if v, ok := st.Lookup(left, right); ok {
			if st.Override() {
				value = int(v)
			} else {
				value += int(v)
			}
		}
	}
	return value
}

// parseKern parses the kern table. There is significant confusion with this table
// concerning format differences between OpenType, TrueType, and fonts in the wild.
// We only support kern table format 0, which should be supported on any
// platform. In the real world, fonts usually have just one kern sub-table, and
// older Windows versions cannot handle more than one.
func parseKern(tag Tag, b fontData, offset, size uint32, ec *errorCollector) (Table, error) {
	if size <= 4 {
		return nil, nil
	}
	t := newKernTable(tag, b, offset, size)
	var N, suboffset, subheaderlen int
	if version := u32(b); version == 0x00010000 {
		tracer().Debugf("font has Apple TTF kern table format")
		N, suboffset, subheaderlen = int(b.U32(4)), 8, 16
		t.apple = true
	} else {
		tracer().Debugf("font has OTF (MS) kern table format")
		N, suboffset, subheaderlen = int(b.U16(2)), 4, 14
	}
	tracer().Debugf("kern table has %d sub-tables", N)
	for i := 0; i < N; i++ {
		if suboffset+subheaderlen > int(size) {
			ec.addError(tag, "Format", fmt.Sprintf("sub-table %d header exceeds table size", i),
				SeverityMajor, offset+uint32(suboffset))
			break
		}
		var coverage uint16
		var length int
		if t.apple {
			length = int(b.U32(suboffset))
			coverage = b.U16(suboffset + 4)
		} else {
			length = int(b.U16(suboffset + 2))
			coverage = b.U16(suboffset + 4)
		}
		format := coverage >> 8
		if t.apple {
			format = coverage & 0xff
		}
		kerncnt := int(b.U16(suboffset + subheaderlen - 8))
		sz := kerncnt * 6
		if format == 0 {
			// For some fonts, size calculation of kern sub-tables is off; see
			// https://github.com/fonttools/fonttools/issues/314#issuecomment-118116527
			// Testable with the Calibri font.
			if sz+subheaderlen != length {
				tracer().Infof("kern sub-table size should be 0x%x, but given as 0x%x; fixing",
					sz+subheaderlen, length)
				ec.addWarning(tag, fmt.Sprintf("kern sub-table size mismatch: expected 0x%x, got 0x%x",
					sz+subheaderlen, length), offset+uint32(suboffset))
				length = sz + subheaderlen
			}
			pairs, err := b.view(suboffset+subheaderlen, sz)
			if kerncnt > 0 && err != nil {
				ec.addError(tag, "Bounds", fmt.Sprintf("sub-table %d exceeds table bounds", i),
					SeverityMajor, offset+uint32(suboffset))
				break
			}
			t.subTables = append(t.subTables, KernSubTable{
				Coverage: coverage,
				apple:    t.apple,
				pairs:    pairs,
			})
		} else {
			tracer().Infof("kern sub-table format %d not supported, ignoring sub-table", format)
		}
		if length <= 0 {
			break
		}
		suboffset += length
	}
	tracer().Debugf("table kern has %d sub-table(s)", len(t.subTables))
	return t, nil
}
