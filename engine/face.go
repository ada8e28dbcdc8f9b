package engine

import (
	"errors"
	"fmt"

	"github.com/npillmayer/typeface/fontstream"
	"github.com/npillmayer/typeface/ot"
	"github.com/npillmayer/typeface/type1"
)

// Font formats as reported by Face.Format.
const (
	FormatTrueType = "TrueType"
	FormatCFF      = "CFF"
	FormatType1    = "Type 1"
)

var (
	// ErrUnknownFormat is returned by Open for data of an unsupported container.
	ErrUnknownFormat = errors.New("unknown font file format")
	// ErrNotSupported is returned for operations a face cannot perform.
	ErrNotSupported = errors.New("operation not supported by font face")
	// ErrInvalidGlyph is returned for glyph indices outside of a font.
	ErrInvalidGlyph = errors.New("invalid glyph index")
	// ErrNoCharmap is returned if a face has no Unicode character map.
	ErrNoCharmap = errors.New("font has no Unicode character map")
	// ErrFaceClosed is returned for operations on a closed face.
	ErrFaceClosed = errors.New("font face is closed")
)

// Face is a font opened by the engine.
type Face interface {
	// IsSFNT reports an sfnt container (TrueType or OpenType).
	IsSFNT() bool
	// Format returns one of the Format… constants.
	Format() string
	// Table returns the binary data of a table. Non-sfnt faces do not have tables.
	Table(tag ot.Tag) ot.Option[[]byte]
	// Summary returns font-wide properties.
	Summary() FaceSummary
	LoadGlyph(gid ot.GlyphIndex) (GlyphMetrics, error)
	// LoadChar loads the glyph mapped to r by the selected charmap.
	LoadChar(r rune) (GlyphMetrics, error)
	// CharIndex maps r by the selected charmap. Unmapped code-points return 0.
	CharIndex(r rune) ot.GlyphIndex
	// Kerning returns the horizontal kerning for a pair of glyphs. Fonts
	// without kerning data return 0.
	Kerning(left, right ot.GlyphIndex) (int, error)
	SelectUnicodeCharmap() error
	Charmaps() []Charmap
	PostScriptName() string
	// Attach attaches additional data to a face, e.g. font metrics.
	Attach(src fontstream.Source) error
	Close() error
}

// FaceSummary holds font-wide properties of a face, in font units.
type FaceSummary struct {
	UnitsPerEm int
	BBox       Box
	Ascender   int
	Descender  int // negative for descenders below the baseline
	Height     int // baseline-to-baseline distance
	MaxAdvance int
	FixedWidth bool
	Bold       bool
	Italic     bool
	FamilyName string
	StyleName  string
	NumGlyphs  int
}

// Box is a bounding box in font units, with y growing upwards.
type Box struct {
	XMin, YMin, XMax, YMax int
}

// Width returns the horizontal extent of b.
func (b Box) Width() int { return b.XMax - b.XMin }

// Height returns the vertical extent of b.
func (b Box) Height() int { return b.YMax - b.YMin }

// GlyphMetrics are the metrics of a loaded glyph, in font units.
type GlyphMetrics struct {
	Advance int
	Bounds  Box // zero for glyphs without outlines
}

// Charmap describes a character map of a face.
type Charmap struct {
	PlatformID uint16
	EncodingID uint16
	Format     int // format of the sub-table, -1 if unknown
}

func (cm Charmap) String() string {
	return fmt.Sprintf("charmap(%d,%d) format %d", cm.PlatformID, cm.EncodingID, cm.Format)
}

// Open reads font data from src and opens a face for it. The container is
// detected from the leading bytes of the data.
func Open(lib *Library, src fontstream.Source) (Face, error) {
	if lib == nil || !lib.alive() {
		return nil, ErrLibraryReleased
	}
	data, err := fontstream.ReadAll(src)
	if err != nil {
		return nil, err
	}
	switch {
	case ot.IsSFNT(data):
		return openSFNT(lib, data)
	case type1.IsPFB(data) || type1.IsPFA(data):
		return openType1(data)
	}
	tracer().Infof("cannot identify font data of %d bytes", len(data))
	return nil, ErrUnknownFormat
}
