/*
Package typeface is for introspection and subsetting of fonts for
embedding into documents.

A Typeface is built from one or two font streams: the font program itself
and, for Type 1 fonts, an optional metrics file (AFM). Construction detects
the format of the font, computes a content fingerprint, extracts metrics,
and decides from the licensing bits of the font whether it may be embedded
and subsetted:

	set, _ := fontstream.Bytes(goregular.TTF)
	tf, err := typeface.New(set)
	…
	defer tf.Close()
	if tf.CanSubset() {
		subset, err := tf.MakeSubset([]rune("Hello"), 0)
		…
	}

Supported formats are TrueType, OpenType with CFF outlines, and Type 1.
Only TrueType fonts may be subsetted.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a font in a given style, e.g. "Helvetica Bold". Its
metrics are stated in font units (unscaled).

▪︎ A "font program" is the binary data of a typeface, as it may be embedded
into a document.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package typeface

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}
