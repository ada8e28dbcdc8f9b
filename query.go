package typeface

import (
	"fmt"

	"github.com/npillmayer/typeface/ot"
)

// CodepointToGlyph maps a code-point to a glyph by the Unicode charmap of the
// font. Unmapped code-points return glyph 0. Available for sfnt fonts only.
func (tf *Typeface) CodepointToGlyph(r rune) (ot.GlyphIndex, error) {
	const op = "code-point to glyph"
	if !tf.ftype.IsSFNT() {
		return 0, newError(NotImplemented, op, fmt.Errorf("for %s fonts", tf.ftype))
	}
	if err := tf.checked(op); err != nil {
		return 0, err
	}
	defer tf.mu.Unlock()
	return tf.face.CharIndex(r), nil
}

// GlyphAdvance returns the advance width of a glyph in font units.
func (tf *Typeface) GlyphAdvance(gid ot.GlyphIndex) (int, error) {
	const op = "glyph advance"
	if err := tf.checked(op); err != nil {
		return 0, err
	}
	defer tf.mu.Unlock()
	g, err := tf.face.LoadGlyph(gid)
	if err != nil {
		return 0, newError(EngineFailure, op, err)
	}
	return g.Advance, nil
}

// CodepointAdvance returns the advance width of the glyph for a code-point.
func (tf *Typeface) CodepointAdvance(r rune) (int, error) {
	gid, err := tf.CodepointToGlyph(r)
	if err != nil {
		return 0, err
	}
	return tf.GlyphAdvance(gid)
}

// Kerning returns the horizontal kerning between two glyphs in font units.
// Fonts without kerning information return 0.
func (tf *Typeface) Kerning(left, right ot.GlyphIndex) (int, error) {
	const op = "kerning"
	if err := tf.checked(op); err != nil {
		return 0, err
	}
	defer tf.mu.Unlock()
	k, err := tf.face.Kerning(left, right)
	if err != nil {
		return 0, newError(EngineFailure, op, err)
	}
	return k, nil
}
