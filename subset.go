package typeface

import (
	"fmt"

	"github.com/npillmayer/typeface/fontstream"
	"github.com/npillmayer/typeface/ttsubset"
)

// SubsetOption controls subsetting.
type SubsetOption uint

const (
	// DontIncludeCMap creates subsets without a character map, for
	// embedding as CIDFontType2 fonts.
	DontIncludeCMap SubsetOption = 1 << iota
)

// MakeSubset creates a font program restricted to the glyphs of a set of
// code-points. Only typefaces with CanSubset set may be subsetted.
func (tf *Typeface) MakeSubset(codepoints []rune, opts SubsetOption) (*fontstream.Stream, error) {
	const op = "subset"
	if !tf.canSubset {
		return nil, newError(Precondition, op, ErrCannotSubset)
	}
	switch tf.ftype {
	case TrueType:
		font, err := tf.streams.ReadAll(0)
		if err != nil {
			return nil, newError(InvalidInput, op, fmt.Errorf("%w: %w", ErrShortRead, err))
		}
		subset, err := ttsubset.Make(font, codepoints, opts&DontIncludeCMap == 0)
		if err != nil {
			return nil, newError(EngineFailure, op, err)
		}
		tracer().Debugf("subset of %s: %d bytes for %d code-points", tf.FullName(), len(subset), len(codepoints))
		return fontstream.FromBytes(subset), nil
	}
	return nil, newError(NotImplemented, op, fmt.Errorf("subsetting %s fonts", tf.ftype))
}
