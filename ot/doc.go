/*
Package ot provides access to the tables of sfnt fonts (TrueType and OpenType).

Intended audience for this package are higher level packages which need to
introspect a font: derive metrics, check licensing bits, map code-points to
glyphs, or copy out tables for embedding and subsetting.

Package `ot` will not interpret every table of a font, but rather expose the
tables to the client. Tables needed for glyph access are decoded into typed
structs (cmap, head, hhea, hmtx, kern, loca, maxp), all other tables are kept
as generic tables, giving access to their binary data.
For example, it is not possible to ask package `ot` for a font's cap-height.
Clients have to check for the availability of OS/2 or PCLT information and
consult the appropriate table(s) themselves. Package otquery offers functions
for such tasks.

Fonts in the wild often deviate from the OpenType specification, e.g. Calibri
has a 'kern' sub-table with a wrong length field. Such deviations should not
keep applications from using a font. Package `ot` works around known bugs and records them
as warnings. Malformed fonts which cannot be worked around make Parse fail
with an error wrapping ErrFontFormat.

# Status

No font collections nor variable fonts are supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
