/*
Package ttsubset creates subsets of TrueType fonts, suitable for embedding
into documents.

The glyphs needed to display a set of code-points, including the components
of composite glyphs, are collected from the Unicode character map of a font.
They are renumbered in ascending order of their original glyph index:
glyph i of a subset is glyph Glyphs(…)[i] of the original font, glyph 0
('.notdef') staying in place.

Outlines are rebuilt and the font program is written by
seehuhn.de/go/sfnt. A subset contains the tables 'head', 'hhea', 'maxp',
'hmtx', 'loca', 'glyf', the hinting tables 'cvt ', 'fpgm', 'prep' and 'gasp',
if present, the tables 'OS/2' and 'name' of the original font, a 'post' table
without glyph names and optionally a Unicode character map. Glyph
substitution and positioning tables are dropped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttsubset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
