package ttsubset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/typeface/ot"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

// ErrNotTrueType is returned for fonts without TrueType outlines.
var ErrNotTrueType = errors.New("font has no TrueType outlines")

// size of a version 3 'post' table
const postHeaderSize = 32

// Make creates a subset of a TrueType font, restricted to the glyphs for
// a set of code-points. With includeCMap set, the subset will contain a
// Unicode BMP character map (platforms 0 and 3) for these code-points.
func Make(font []byte, codepoints []rune, includeCMap bool) ([]byte, error) {
	otf, err := ot.Parse(font)
	if err != nil {
		return nil, fmt.Errorf("subsetting font: %w", err)
	}
	if otf.Table(ot.T("glyf")) == nil || otf.Table(ot.T("loca")) == nil {
		return nil, ErrNotTrueType
	}
	glyphs, err := Glyphs(otf, codepoints)
	if err != nil {
		return nil, err
	}
	ttf, err := sfnt.Read(bytes.NewReader(font))
	if err != nil {
		return nil, fmt.Errorf("subsetting font: %w", err)
	}
	if _, ok := ttf.Outlines.(*glyf.Outlines); !ok {
		return nil, ErrNotTrueType
	}
	// Layout tables would add ligature glyphs to the subset. The character
	// map is rebuilt from the code-points.
	ttf.Gsub, ttf.Gpos, ttf.Gdef = nil, nil, nil
	ttf.CMapTable = nil
	gids := make([]glyph.ID, len(glyphs))
	newGid := make(map[ot.GlyphIndex]glyph.ID, len(glyphs))
	for i, gid := range glyphs {
		gids[i] = glyph.ID(gid)
		newGid[gid] = glyph.ID(i)
	}
	subset := ttf.Subset(gids)
	if subset.NumGlyphs() != len(glyphs) {
		return nil, fmt.Errorf("subsetting font: expected %d glyphs, have %d", len(glyphs), subset.NumGlyphs())
	}
	if includeCMap {
		subset.InstallCMap(unicodeCMap(otf, codepoints, newGid))
	}
	var buf bytes.Buffer
	if _, err := subset.WriteTrueTypePDF(&buf, carriedTables(otf)...); err != nil {
		return nil, fmt.Errorf("writing subset: %w", err)
	}
	tracer().Debugf("subset has %d of %d glyphs", len(glyphs), otf.NumGlyphs())
	return buf.Bytes(), nil
}

// Glyphs returns the glyphs needed to display a set of code-points, in
// ascending order. The result always contains glyph 0 ('.notdef') and the
// components of composite glyphs.
func Glyphs(otf *ot.Font, codepoints []rune) ([]ot.GlyphIndex, error) {
	set := treeset.NewWith(utils.IntComparator)
	var queue []ot.GlyphIndex
	add := func(gid ot.GlyphIndex) {
		if !set.Contains(int(gid)) {
			set.Add(int(gid))
			queue = append(queue, gid)
		}
	}
	add(0)
	for _, r := range codepoints {
		add(otf.CMap.Lookup(r))
	}
	n := otf.NumGlyphs()
	for len(queue) > 0 {
		gid := queue[0]
		queue = queue[1:]
		data, ok := otf.GlyphData(gid)
		if !ok {
			continue
		}
		components, err := ot.GlyphComponents(data)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", gid, err)
		}
		for _, c := range components {
			if int(c) >= n {
				return nil, fmt.Errorf("glyph %d: component %d exceeds number of glyphs", gid, c)
			}
			add(c)
		}
	}
	glyphs := make([]ot.GlyphIndex, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		glyphs = append(glyphs, ot.GlyphIndex(it.Value().(int)))
	}
	return glyphs, nil
}

// carriedTables lists the tables taken over from the original font, as
// pairs of tag and data. Table 'post' is reduced to a version 3 header, as
// glyph names refer to the original glyph numbering.
func carriedTables(otf *ot.Font) []any {
	var tables []any
	for _, tag := range []string{"OS/2", "name"} {
		if b, ok := otf.TableBytes(ot.T(tag)).Unwrap(); ok {
			tables = append(tables, tag, b)
		}
	}
	post := make([]byte, postHeaderSize)
	if b, ok := otf.TableBytes(ot.T("post")).Unwrap(); ok {
		copy(post, b)
	}
	binary.BigEndian.PutUint32(post, 0x00030000)
	return append(tables, "post", post)
}
