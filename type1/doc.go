/*
Package type1 reads Adobe Type 1 fonts, in PFA (hex) or PFB (binary) containers,
together with optional AFM metric files.

Font programs are interpreted by seehuhn.de/go/postscript/type1 and metric
files are read by seehuhn.de/go/postscript/afm. This package arranges the
glyphs of a font in a fixed order and answers the queries of a font
introspection layer: design grid, bounding box, line metrics, advance widths,
kerning and a Unicode mapping synthesized from glyph names.

Glyph 0 is always '.notdef', followed by the glyphs of the built-in encoding
in code order and the remaining glyphs sorted by name.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package type1

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
