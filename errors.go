package typeface

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors of typeface operations.
type ErrorKind int

// Kinds of errors.
const (
	InvalidInput   ErrorKind = iota + 1 // unusable font data
	EngineFailure                       // the font engine failed to read data
	Precondition                        // operation called in an illegal state
	NotImplemented                      // operation not available for font format
	Internal                            // inconsistency of font or library
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case EngineFailure:
		return "engine failure"
	case Precondition:
		return "precondition violated"
	case NotImplemented:
		return "not implemented"
	case Internal:
		return "internal error"
	}
	return "unknown error"
}

// Error is the error type of all typeface operations.
type Error struct {
	Kind ErrorKind
	Op   string // operation, e.g. "subset"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("typeface %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("typeface %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Sentinel errors, wrapped by Error.
var (
	ErrUnknownFormat  = errors.New("unknown font format")
	ErrNoFamilyName   = errors.New("font family name not present")
	ErrShortRead      = errors.New("cannot read typeface")
	ErrBadStreamIndex = errors.New("font stream index out of range")
	ErrCannotSubset   = errors.New("typeface cannot be subsetted")
)

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsKind reports whether err is an Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
