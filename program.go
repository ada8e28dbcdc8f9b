package typeface

import (
	"errors"
	"fmt"

	"github.com/npillmayer/typeface/fontstream"
	"github.com/npillmayer/typeface/ot"
)

// ProgramOption controls the extraction of font programs.
type ProgramOption uint

const (
	// ExtractCFF extracts the bare CFF font program from an OpenType/CFF font,
	// as required for embedding as FontFile3.
	ExtractCFF ProgramOption = 1 << iota
)

// FontProgram returns font stream index as a stream. With option ExtractCFF,
// the contents of table 'CFF ' are returned instead, in a buffer owned by
// the returned stream.
func (tf *Typeface) FontProgram(index int, opts ProgramOption) (*fontstream.Stream, error) {
	const op = "font program"
	src, err := tf.streams.Source(index)
	if err != nil {
		return nil, newError(Precondition, op, fmt.Errorf("%w: %w", ErrBadStreamIndex, err))
	}
	if opts&ExtractCFF == 0 {
		return fontstream.FromSource(src), nil
	}
	if tf.ftype != OpenTypeCFF {
		return nil, newError(Internal, op, fmt.Errorf("cannot extract CFF from %s font", tf.ftype))
	}
	if err := tf.checked(op); err != nil {
		return nil, err
	}
	defer tf.mu.Unlock()
	cff, ok := tf.face.Table(ot.T("CFF ")).Unwrap()
	if !ok {
		tracer().Errorf("font engine cannot load table CFF")
		return nil, newError(EngineFailure, op, errors.New("cannot load table 'CFF '"))
	}
	program := make([]byte, len(cff))
	copy(program, cff)
	return fontstream.FromBytes(program), nil
}
