package fontstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxStreams is the maximum number of streams of a set: the font program and
// an optional metrics stream.
const MaxStreams = 2

// ErrSetSize is returned when a set is created with no sources or with more
// than MaxStreams sources.
var ErrSetSize = errors.New("font stream set must have 1 or 2 streams")

// ErrIndex is returned for stream indices outside of a set.
var ErrIndex = errors.New("font stream index out of range")

// Source is a random access font data stream with a declared size.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Set is an ordered, immutable sequence of 1 or 2 sources.
// Index 0 always holds the font program.
type Set struct {
	sources []Source
}

// NewSet creates a set from sources. Nil sources are not allowed.
func NewSet(sources ...Source) (*Set, error) {
	if len(sources) == 0 || len(sources) > MaxStreams {
		return nil, fmt.Errorf("%w: have %d", ErrSetSize, len(sources))
	}
	for i, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("font stream %d is nil", i)
		}
	}
	return &Set{sources: append([]Source(nil), sources...)}, nil
}

// Bytes is a shortcut for sets built from in-memory data.
func Bytes(data ...[]byte) (*Set, error) {
	sources := make([]Source, len(data))
	for i, b := range data {
		sources[i] = bytes.NewReader(b)
	}
	return NewSet(sources...)
}

// Len returns the number of streams in s.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sources)
}

// Source returns the source at index i.
func (s *Set) Source(i int) (Source, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndex, i, s.Len())
	}
	return s.sources[i], nil
}

// Size returns the declared size of the source at index i.
func (s *Set) Size(i int) (int64, error) {
	src, err := s.Source(i)
	if err != nil {
		return 0, err
	}
	return src.Size(), nil
}

// ReadAll reads the complete source at index i into memory.
func (s *Set) ReadAll(i int) ([]byte, error) {
	src, err := s.Source(i)
	if err != nil {
		return nil, err
	}
	return ReadAll(src)
}

// ReadAll reads a complete source into memory. A source delivering fewer
// bytes than its declared size results in io.ErrUnexpectedEOF.
func ReadAll(src Source) ([]byte, error) {
	buf := make([]byte, src.Size())
	n, err := src.ReadAt(buf, 0)
	if n == len(buf) {
		return buf, nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return nil, fmt.Errorf("reading font stream: %d of %d bytes: %w", n, len(buf), err)
}

// --- Streams ---------------------------------------------------------------

// Stream is a readable and seekable font data stream, as returned for font
// programs and subsets. Streams created by FromBytes own their buffer.
type Stream struct {
	*io.SectionReader
	data []byte // nil for streams on a source
}

// FromBytes creates a stream which takes ownership of data.
// Clients must not modify data afterwards.
func FromBytes(data []byte) *Stream {
	return &Stream{
		SectionReader: io.NewSectionReader(bytes.NewReader(data), 0, int64(len(data))),
		data:          data,
	}
}

// FromSource creates a stream reading from a source.
func FromSource(src Source) *Stream {
	return &Stream{SectionReader: io.NewSectionReader(src, 0, src.Size())}
}

// Bytes returns the complete data of the stream.
// For owned streams, no copy is made.
func (s *Stream) Bytes() ([]byte, error) {
	if s.data != nil {
		return s.data, nil
	}
	return ReadAll(s.SectionReader)
}

// Owned reports whether the stream owns an in-memory buffer.
func (s *Stream) Owned() bool {
	return s.data != nil
}

// --- Files -----------------------------------------------------------------

// File is a source backed by an open file.
type File struct {
	*os.File
	size int64
}

// OpenFile opens a file as a font data source.
// Clients have to close the file after use.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &File{File: f, size: info.Size()}, nil
}

// Size returns the size of the file at the time it has been opened.
func (f *File) Size() int64 {
	return f.size
}
