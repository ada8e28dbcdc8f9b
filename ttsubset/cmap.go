package ttsubset

import (
	"github.com/npillmayer/typeface/ot"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// unicodeCMap creates a format 4 sub-table, mapping all code-points of the
// BMP which have a glyph in otf to their glyphs in the subset.
func unicodeCMap(otf *ot.Font, codepoints []rune, newGid map[ot.GlyphIndex]glyph.ID) cmap.Format4 {
	m := make(cmap.Format4, len(codepoints))
	for _, r := range codepoints {
		if r < 0 || r >= 0xffff {
			continue
		}
		if gid := otf.CMap.Lookup(r); gid != 0 {
			if g, ok := newGid[gid]; ok {
				m[uint16(r)] = g
			}
		}
	}
	return m
}
