package errs

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so callers can pick an exit behaviour.
type Kind int

const (
	KindUnknown Kind = iota
	KindInput
	KindTranscription
	KindSummarization
	KindVideoGeneration
	KindIndex
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input error"
	case KindTranscription:
		return "transcription error"
	case KindSummarization:
		return "summarization error"
	case KindVideoGeneration:
		return "video generation error"
	case KindIndex:
		return "index error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is a classified error. Op names the failing operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a kind. A nil err yields nil.
func New(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds a classified error from a format string.
func Newf(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the outermost kind found in the chain of err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether any classified error in the chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}
