package otquery

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/npillmayer/typeface/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// PlatformID is a platform identifier of table 'name' and 'cmap'.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is a platform specific encoding identifier.
type EncodingID uint16

const (
	EncodingIDMacRoman      EncodingID = 0 // platform Macintosh
	EncodingIDWindowsSymbol EncodingID = 0 // platform Windows
	EncodingIDWindowsBMP    EncodingID = 1
	EncodingIDWindowsFull   EncodingID = 10
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

// NameRecord is a decoded entry of table 'name'.
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID
	Value    string
}

// IsEnglish reports whether a name record is in English, following the
// conventions of the Windows and Macintosh platforms. Records of the
// Unicode platform have no language.
func (rec NameRecord) IsEnglish() bool {
	switch rec.Platform {
	case PlatformIDWindows:
		return rec.Language&0x3ff == 0x009 // primary language English
	case PlatformIDMacintosh:
		return rec.Language == 0
	}
	return false
}

// DecodeNames yields the records of a 'name' table in table order.
//
// Records with encodings we cannot decode (everything besides UTF-16 of the
// Unicode and Windows platforms, and Mac Roman), as well as malformed or
// out-of-bounds records, are skipped.
func DecodeNames(b []byte) iter.Seq[NameRecord] {
	return func(yield func(NameRecord) bool) {
		if !checkNameTableSafe(b) {
			return
		}
		be := binary.BigEndian
		count := int(be.Uint16(b[2:]))
		storage := int(be.Uint16(b[4:]))
		for i := range count {
			rec := b[nameHeaderSize+i*nameRecordSize:]
			key := nameKey{
				Platform: PlatformID(be.Uint16(rec[0:])),
				Encoding: EncodingID(be.Uint16(rec[2:])),
				Language: be.Uint16(rec[4:]),
				Name:     sfnt.NameID(be.Uint16(rec[6:])),
			}
			length := int(be.Uint16(rec[8:]))
			start := storage + int(be.Uint16(rec[10:]))
			if start+length > len(b) {
				continue
			}
			value, err := decodeName(key, b[start:start+length])
			if err != nil || value == "" {
				continue
			}
			if !yield(NameRecord{
				Platform: key.Platform,
				Encoding: key.Encoding,
				Language: key.Language,
				Name:     key.Name,
				Value:    value,
			}) {
				return
			}
		}
	}
}

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	var b []byte
	if otf != nil {
		b, _ = otf.TableBytes(ot.T("name")).Unwrap()
	}
	return func(yield func(sfnt.NameID, string) bool) {
		for rec := range DecodeNames(b) {
			if !yield(rec.Name, rec.Value) {
				return
			}
		}
	}
}

// EnglishName finds a name entry, preferring English Windows records over
// records of the Unicode platform, and those over English Macintosh records.
func EnglishName(b []byte, id sfnt.NameID) (string, bool) {
	var unicodeName, macName string
	for rec := range DecodeNames(b) {
		if rec.Name != id {
			continue
		}
		switch {
		case rec.Platform == PlatformIDWindows && rec.IsEnglish():
			return rec.Value, true
		case rec.Platform == PlatformIDUnicode && unicodeName == "":
			unicodeName = rec.Value
		case rec.Platform == PlatformIDMacintosh && rec.IsEnglish() && macName == "":
			macName = rec.Value
		}
	}
	if unicodeName != "" {
		return unicodeName, true
	}
	return macName, macName != ""
}

// FamilyName returns the English typographic family name of a font, falling
// back to the legacy family name.
func FamilyName(b []byte) string {
	if name, ok := EnglishName(b, sfnt.NameIDTypographicFamily); ok {
		return name
	}
	name, _ := EnglishName(b, sfnt.NameIDFamily)
	return name
}

// StyleName returns the English typographic sub-family name of a font, falling
// back to the legacy sub-family name.
func StyleName(b []byte) string {
	if name, ok := EnglishName(b, sfnt.NameIDTypographicSubfamily); ok {
		return name
	}
	name, _ := EnglishName(b, sfnt.NameIDSubfamily)
	return name
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access,
// no empty tables, etc.
func checkNameTableSafe(b []byte) bool {
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return false
	}
	count := int(binary.BigEndian.Uint16(b[2:]))
	strOff := int(binary.BigEndian.Uint16(b[4:]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return false
	}
	if nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return false
	}
	return true
}

func decodeName(key nameKey, str []byte) (string, error) {
	switch {
	case key.Platform == PlatformIDUnicode,
		key.Platform == PlatformIDWindows && (key.Encoding == EncodingIDWindowsSymbol ||
			key.Encoding == EncodingIDWindowsBMP || key.Encoding == EncodingIDWindowsFull):
		return decodeNameUTF16(str)
	case key.Platform == PlatformIDMacintosh && key.Encoding == EncodingIDMacRoman:
		s, err := charmap.Macintosh.NewDecoder().Bytes(str)
		if err != nil {
			return "", fmt.Errorf("decoding Mac Roman error: %v", err)
		}
		return string(s), nil
	}
	return "", fmt.Errorf("unsupported name encoding %d/%d", key.Platform, key.Encoding)
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}
