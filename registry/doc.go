/*
Package registry manages a registry of loaded typefaces.

Typefaces are identified by their fingerprint. Storing a typeface with the
same content twice leaves a single instance in the registry, shared by all
clients. Additionally, typefaces may be found by a normalized name, derived
from family name, style and weight.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package registry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}
