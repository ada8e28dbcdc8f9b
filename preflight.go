package typeface

import (
	"fmt"

	"github.com/npillmayer/typeface/engine"
	"github.com/npillmayer/typeface/ot"
	"github.com/npillmayer/typeface/otquery"
)

// tableInfo decodes a table of an sfnt face. A missing table is an engine
// failure, as are tables too short to decode.
func tableInfo[T any](face engine.Face, tag string, decode func([]byte) (T, bool)) (T, error) {
	var info T
	b, ok := face.Table(ot.T(tag)).Unwrap()
	if !ok {
		return info, newError(EngineFailure, "preflight", fmt.Errorf("font has no table %q", tag))
	}
	if info, ok = decode(b); !ok {
		return info, newError(EngineFailure, "preflight", fmt.Errorf("cannot decode table %q", tag))
	}
	return info, nil
}

// preflight extracts metrics and style information and decides about
// permissions. All fields of tf.metrics are set, fields not applicable to
// the font format being zero.
func (tf *Typeface) preflight() error {
	face := tf.face
	tf.summary = face.Summary()
	s := tf.summary
	tf.metrics = Metrics{
		UnitsPerEm:       s.UnitsPerEm,
		BBox:             BBox{XMin: s.BBox.XMin, YMin: s.BBox.YMin, XMax: s.BBox.XMax, YMax: s.BBox.YMax},
		Ascent:           s.Ascender,
		Descent:          s.Descender,
		MaxWidth:         s.MaxAdvance,
		BaselineDistance: s.Height,
		FixedWidth:       s.FixedWidth,
	}
	// glyph 0 is the 'missing character'
	notdef, err := face.LoadGlyph(0)
	if err != nil {
		tracer().Errorf("cannot load glyph 0: %v", err)
		return newError(EngineFailure, "preflight", err)
	}
	tf.metrics.MissingWidth = notdef.Advance
	switch tf.ftype {
	case TrueType, OpenTypeCFF:
		if err := tf.preflightSFNT(); err != nil {
			return err
		}
	}
	switch tf.ftype {
	case OpenTypeCFF:
		tf.canSubset = false // no CFF subsetting
	case Type1:
		tf.canEmbed, tf.canSubset = false, false
	}
	// Fonts might define a family name in another language, but not in English.
	// We treat these as faulty.
	if s.FamilyName == "" {
		return newError(InvalidInput, "preflight", ErrNoFamilyName)
	}
	return nil
}

func (tf *Typeface) preflightSFNT() error {
	os2, err := tableInfo(tf.face, "OS/2", otquery.DecodeOS2)
	if err != nil {
		return err
	}
	post, err := tableInfo(tf.face, "post", otquery.DecodePost)
	if err != nil {
		return err
	}
	tf.canEmbed, tf.canSubset = permissions(os2.FsType, tf.face.Charmaps())
	tf.metrics.AvgWidth = int(os2.XAvgCharWidth)
	switch {
	case os2.HasHeightFields():
		tf.metrics.CapHeight = int(os2.CapHeight)
		tf.metrics.XHeight = int(os2.XHeight)
	case tf.face.Table(ot.T("PCLT")).IsSome():
		pclt, err := tableInfo(tf.face, "PCLT", otquery.DecodePCLT)
		if err != nil {
			return err
		}
		tf.metrics.CapHeight = int(pclt.CapHeight)
		tf.metrics.XHeight = int(pclt.XHeight)
	default:
		tracer().Debugf("no height information in font, measuring glyphs 'H' and 'x'")
		tf.metrics.CapHeight = tf.metrics.Ascent
		if g, err := tf.face.LoadChar('H'); err == nil {
			tf.metrics.CapHeight = g.Bounds.Height()
		}
		if g, err := tf.face.LoadChar('x'); err == nil {
			tf.metrics.XHeight = g.Bounds.Height()
		}
	}
	tf.style = styleInfo{
		weightClass: os2.WeightClass,
		widthClass:  os2.WidthClass,
		italicAngle: post.ItalicAngleDegrees(),
		panose:      os2.Panose,
	}
	return nil
}
