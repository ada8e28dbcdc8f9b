/*
Package engine is the font-parsing engine behind package typeface.

An engine face gives uniform access to fonts of different containers: sfnt
fonts (TrueType and OpenType/CFF) are parsed with package ot, Type 1 fonts
(PFA and PFB) with package type1. Faces are opened within a Library, a
shared and reference-counted engine context:

	lib, err := engine.Acquire()
	…
	defer lib.Release()
	face, err := engine.Open(lib, src)
	…
	defer face.Close()

All metrics are unscaled, i.e. in font design units.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
