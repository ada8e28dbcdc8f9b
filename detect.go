package typeface

import (
	"errors"
	"fmt"

	"github.com/npillmayer/typeface/engine"
	"github.com/npillmayer/typeface/ot"
)

// detectFormat determines the structural family of a face. sfnt fonts with
// outlines in table 'glyf' are TrueType fonts, those with table 'CFF ' are
// OpenType/CFF fonts. For both, the Unicode charmap of the face is selected.
func detectFormat(face engine.Face) (FaceType, error) {
	const op = "detect format"
	ftype := Uninitialized
	switch {
	case face.IsSFNT():
		switch {
		case face.Table(ot.T("glyf")).IsSome():
			ftype = TrueType
		case face.Table(ot.T("CFF ")).IsSome():
			ftype = OpenTypeCFF
		default:
			return Uninitialized, newError(Internal, op,
				errors.New("weird sfnt: neither glyf nor CFF outlines"))
		}
		if err := face.SelectUnicodeCharmap(); err != nil {
			tracer().Errorf("cannot select Unicode charmap: %v", err)
			return Uninitialized, newError(EngineFailure, op, err)
		}
	case face.Format() == engine.FormatType1:
		ftype = Type1
	}
	if ftype == Uninitialized {
		return Uninitialized, newError(InvalidInput, op,
			fmt.Errorf("%w: engine format %q", ErrUnknownFormat, face.Format()))
	}
	tracer().Debugf("font format is %s", ftype)
	return ftype, nil
}
