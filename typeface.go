package typeface

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/typeface/engine"
	"github.com/npillmayer/typeface/fontstream"
)

// Typeface is a font opened for introspection and subsetting.
//
// A Typeface owns an engine face, which is released by Close. All methods
// are safe for concurrent use.
type Typeface struct {
	mu        sync.Mutex
	streams   *fontstream.Set
	lib       *engine.Library
	face      engine.Face
	ftype     FaceType
	summary   engine.FaceSummary
	fp        Fingerprint
	metrics   Metrics
	style     styleInfo
	canEmbed  bool
	canSubset bool
	closed    bool
}

// Metrics holds the font-wide metrics of a typeface, in font units.
type Metrics struct {
	UnitsPerEm       int
	BBox             BBox
	Ascent           int
	Descent          int
	MaxWidth         int
	BaselineDistance int // line height
	MissingWidth     int // advance width of glyph 0
	AvgWidth         int
	CapHeight        int
	XHeight          int
	FixedWidth       bool
}

// BBox is the union of all glyph bounding boxes.
type BBox struct {
	XMin, YMin, XMax, YMax int
}

// styleInfo holds the style attributes of sfnt fonts.
type styleInfo struct {
	weightClass uint16
	widthClass  uint16
	italicAngle float64
	panose      [10]byte
}

// Option configures the construction of a Typeface.
type Option func(*config)

type config struct {
	lib *engine.Library
}

// WithLibrary makes a Typeface use an engine library which has been
// acquired by the client, instead of the process-wide default one.
// The Typeface holds its own reference on lib.
func WithLibrary(lib *engine.Library) Option {
	return func(c *config) {
		c.lib = lib
	}
}

// openFace is the entry point into the font engine.
var openFace = engine.Open

// New creates a Typeface from a set of font streams. Stream 0 holds the font
// program, an optional stream 1 holds font metrics (Type 1 fonts only).
//
// Construction opens the font, attaches metrics, detects the font format,
// computes the fingerprint and extracts the metrics of the font, in this
// order. If any step fails, all resources are released and no Typeface is
// returned.
func New(streams *fontstream.Set, opts ...Option) (*Typeface, error) {
	const op = "create"
	if streams.Len() == 0 {
		return nil, newError(InvalidInput, op, fontstream.ErrSetSize)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	lib := cfg.lib
	if lib == nil {
		var err error
		if lib, err = engine.Acquire(); err != nil {
			return nil, newError(EngineFailure, op, err)
		}
	} else if err := lib.Retain(); err != nil {
		return nil, newError(EngineFailure, op, err)
	}
	src, _ := streams.Source(0)
	face, err := openFace(lib, src)
	if err != nil {
		lib.Release()
		return nil, openError(op, err)
	}
	tf := &Typeface{streams: streams, lib: lib, face: face}
	if err := tf.build(); err != nil {
		tf.release()
		return nil, err
	}
	tracer().Infof("created typeface %s (%s), embed=%v, subset=%v",
		tf.FullName(), tf.ftype, tf.canEmbed, tf.canSubset)
	return tf, nil
}

func openError(op string, err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownFormat):
		return newError(InvalidInput, op, fmt.Errorf("%w: %w", ErrUnknownFormat, err))
	case errors.Is(err, io.ErrUnexpectedEOF):
		return newError(InvalidInput, op, fmt.Errorf("%w: %w", ErrShortRead, err))
	}
	tracer().Errorf("font engine cannot open font: %v", err)
	return newError(EngineFailure, op, err)
}

func (tf *Typeface) build() error {
	if tf.streams.Len() == 2 {
		src, _ := tf.streams.Source(1)
		if err := tf.face.Attach(src); err != nil {
			tracer().Errorf("font engine cannot attach stream: %v", err)
			return newError(EngineFailure, "attach", err)
		}
	}
	var err error
	if tf.ftype, err = detectFormat(tf.face); err != nil {
		return err
	}
	if tf.fp, err = computeFingerprint(tf.streams); err != nil {
		return err
	}
	return tf.preflight()
}

func (tf *Typeface) release() error {
	err := tf.face.Close()
	tf.lib.Release()
	tf.face, tf.lib = nil, nil
	return err
}

// Close releases the engine face of tf, together with tf's reference on the
// engine library. Closing a closed typeface has no effect.
func (tf *Typeface) Close() error {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if tf.closed {
		return nil
	}
	tf.closed = true
	return tf.release()
}

// checked locks tf and fails for closed typefaces. Callers have to unlock tf
// if no error is returned.
func (tf *Typeface) checked(op string) error {
	tf.mu.Lock()
	if tf.closed {
		tf.mu.Unlock()
		return newError(Precondition, op, engine.ErrFaceClosed)
	}
	return nil
}

// --- Properties ------------------------------------------------------------

// Type returns the format of the font.
func (tf *Typeface) Type() FaceType { return tf.ftype }

// Metrics returns the font-wide metrics of tf.
func (tf *Typeface) Metrics() Metrics { return tf.metrics }

// Fingerprint returns the content fingerprint of tf.
func (tf *Typeface) Fingerprint() Fingerprint { return tf.fp }

// CanEmbed reports whether the licensing bits of the font permit embedding.
func (tf *Typeface) CanEmbed() bool { return tf.canEmbed }

// CanSubset reports whether tf may be subsetted. Only TrueType fonts may.
func (tf *Typeface) CanSubset() bool { return tf.canSubset }

// WeightClass returns the visual weight (100 … 900) of sfnt fonts.
func (tf *Typeface) WeightClass() uint16 { return tf.style.weightClass }

// WidthClass returns the relative width (1 … 9) of sfnt fonts.
func (tf *Typeface) WidthClass() uint16 { return tf.style.widthClass }

// ItalicAngle returns the italic angle of sfnt fonts in degrees,
// counter-clockwise from the vertical.
func (tf *Typeface) ItalicAngle() float64 { return tf.style.italicAngle }

// Panose returns the PANOSE classification of sfnt fonts.
func (tf *Typeface) Panose() [10]byte { return tf.style.panose }

// Bold reports a bold style.
func (tf *Typeface) Bold() bool { return tf.summary.Bold }

// Italic reports an italic or oblique style.
func (tf *Typeface) Italic() bool { return tf.summary.Italic }

// FamilyName returns the English family name of the font.
func (tf *Typeface) FamilyName() string { return tf.summary.FamilyName }

// StyleName returns the English style name of the font, e.g. "Bold".
func (tf *Typeface) StyleName() string { return tf.summary.StyleName }

// FullName returns the family name, followed by the style name unless the
// style is "Regular".
func (tf *Typeface) FullName() string {
	name := tf.summary.FamilyName
	if style := tf.summary.StyleName; style != "" && !strings.EqualFold(style, "regular") {
		name += " " + style
	}
	return name
}

// PostScriptName returns the PostScript name of the font.
func (tf *Typeface) PostScriptName() string {
	if err := tf.checked("postscript name"); err != nil {
		return ""
	}
	defer tf.mu.Unlock()
	return tf.face.PostScriptName()
}

// NumStreams returns the number of font streams tf has been created from.
func (tf *Typeface) NumStreams() int {
	return tf.streams.Len()
}

// DataSize returns the declared size of font stream index.
func (tf *Typeface) DataSize(index int) (int64, error) {
	size, err := tf.streams.Size(index)
	if err != nil {
		return 0, newError(Precondition, "data size", fmt.Errorf("%w: %w", ErrBadStreamIndex, err))
	}
	return size, nil
}
