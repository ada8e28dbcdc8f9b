package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeface"
	xfont "golang.org/x/image/font"
)

// Registry is a type for holding loaded typefaces.
type Registry struct {
	sync.Mutex
	typefaces map[typeface.Fingerprint]*typeface.Typeface
	names     map[string]typeface.Fingerprint
}

var globalRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded typefaces.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// NewRegistry creates an empty registry, independent of the global one.
func NewRegistry() *Registry {
	return &Registry{
		typefaces: make(map[typeface.Fingerprint]*typeface.Typeface),
		names:     make(map[string]typeface.Fingerprint),
	}
}

// Store pushes a typeface into the registry if it isn't contained yet and
// returns the registered instance.
//
// If a typeface with an identical fingerprint has already been stored, tf is
// closed and the earlier instance is returned. Callers must continue using
// the returned typeface.
func (r *Registry) Store(tf *typeface.Typeface) *typeface.Typeface {
	if tf == nil {
		tracer().Errorf("registry cannot store null typeface")
		return nil
	}
	fp := tf.Fingerprint()
	r.Lock()
	defer r.Unlock()
	if known, ok := r.typefaces[fp]; ok {
		if known != tf {
			tracer().Debugf("registry already contains %s [%s]", tf.FullName(), fp)
			tf.Close()
		}
		return known
	}
	name := NormalizeFontname(tf.FamilyName(), StyleOf(tf), WeightOf(tf))
	tracer().Debugf("registry stores typeface %s as %s", tf.FullName(), name)
	r.typefaces[fp] = tf
	if _, ok := r.names[name]; !ok {
		r.names[name] = fp
	}
	return tf
}

// Lookup finds a typeface by fingerprint.
func (r *Registry) Lookup(fp typeface.Fingerprint) (*typeface.Typeface, bool) {
	r.Lock()
	defer r.Unlock()
	tf, ok := r.typefaces[fp]
	return tf, ok
}

// Find searches a typeface by family name, style and weight. If more than
// one typeface matches, the first one stored wins.
func (r *Registry) Find(family string, style xfont.Style, weight xfont.Weight) (*typeface.Typeface, bool) {
	name := NormalizeFontname(family, style, weight)
	r.Lock()
	defer r.Unlock()
	fp, ok := r.names[name]
	if !ok {
		tracer().Infof("registry does not contain typeface %s", name)
		return nil, false
	}
	return r.typefaces[fp], true
}

// LookupName finds a typeface by its normalized name, as produced by
// NormalizeFontname.
func (r *Registry) LookupName(name string) (*typeface.Typeface, bool) {
	r.Lock()
	defer r.Unlock()
	fp, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return r.typefaces[fp], true
}

// Names returns the sorted normalized names of all typefaces.
func (r *Registry) Names() []string {
	r.Lock()
	defer r.Unlock()
	return r.sortedNames()
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of typefaces in the registry.
func (r *Registry) Len() int {
	r.Lock()
	defer r.Unlock()
	return len(r.typefaces)
}

// Close closes all typefaces of the registry and empties it.
func (r *Registry) Close() error {
	r.Lock()
	defer r.Unlock()
	var errs []error
	for _, tf := range r.typefaces {
		errs = append(errs, tf.Close())
	}
	clear(r.typefaces)
	clear(r.names)
	return errors.Join(errs...)
}

// LogTypefaces is a helper function to dump the list of known typefaces
// in a registry to the trace-file (log-level Info).
func (r *Registry) LogTypefaces() {
	r.Lock()
	defer r.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered typefaces ---")
	for _, name := range r.sortedNames() {
		tf := r.typefaces[r.names[name]]
		tracer().Infof("typeface [%s] = %s (%s)", name, tf.FullName(), tf.Type())
	}
	tracer().Infof("----------------------------")
	tracer().SetTraceLevel(level)
}

// --- Names -----------------------------------------------------------------

// NormalizeFontname creates a registry key from a family name.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightLight, xfont.WeightExtraLight, xfont.WeightThin:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold, xfont.WeightBlack:
		fname += "-bold"
	}
	return fname
}

// StyleOf returns the style of a typeface.
func StyleOf(tf *typeface.Typeface) xfont.Style {
	if tf.Italic() {
		return xfont.StyleItalic
	}
	return xfont.StyleNormal
}

// WeightOf maps the weight class of a typeface to a font weight.
// Typefaces without a weight class (Type 1) are either normal or bold.
//
// From https://pkg.go.dev/golang.org/x/image/font:
// WeightThin is CSS font-weight value 100, WeightNormal is 400, and
// WeightBlack is 900.
func WeightOf(tf *typeface.Typeface) xfont.Weight {
	wc := int(tf.WeightClass())
	if wc == 0 {
		if tf.Bold() {
			return xfont.WeightBold
		}
		return xfont.WeightNormal
	}
	w := (wc+50)/100 - 4
	return xfont.Weight(min(max(w, int(xfont.WeightThin)), int(xfont.WeightBlack)))
}
