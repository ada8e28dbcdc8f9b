/*
Package otquery decodes information from OpenType tables which package ot keeps
as binary data only, and derives font-wide and glyph metrics the way common
font engines present them.

Decoders work on raw table bytes, so they may be used for tables held by an
ot.Font as well as for tables delivered by other font engines. Each decoder
comes in two flavours:

	info, ok := otquery.DecodeOS2(b)  // from raw bytes
	info, ok := otquery.OS2Info(otf)  // from a parsed font

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeface/ot"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// decodeTable runs a decoder on the data of table tag, if the font has one.
func decodeTable[T any](otf *ot.Font, tag string, decode func([]byte) (T, bool)) (T, bool) {
	if otf == nil {
		var zero T
		return zero, false
	}
	return ot.FlatMap(otf.TableBytes(ot.T(tag)), decode).Unwrap()
}
