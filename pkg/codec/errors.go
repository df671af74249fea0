// Package codec provides the shared pieces of the streaming record
// pipeline: the error taxonomy, the iteration policies, and the
// writer-side separator state.
package codec

import (
	"errors"
	"fmt"
)

// Kind classifies a codec failure.
type Kind uint8

// Failure kinds surfaced by lexers, parsers, and writers.
const (
	KindInvalidEnumeration Kind = iota + 1 // integer to enum out of range
	KindInvalidRecord                      // strict writer refused an invalid record
	KindInvalidInput                       // syntax did not match the format
	KindInvalidFastaType                   // header matched neither sp| nor tr|
	KindUnexpectedEOF                      // stream ended mid-record
	KindIO                                 // underlying byte source failed
	KindUTF8                               // bytes were not valid UTF-8
	KindParseInt                           // numeric conversion failed
	KindXML                                // malformed or mismatched XML
)

func (k Kind) String() string {
	switch k {
	case KindInvalidEnumeration:
		return "invalid enumeration"
	case KindInvalidRecord:
		return "invalid record"
	case KindInvalidInput:
		return "invalid input"
	case KindInvalidFastaType:
		return "invalid FASTA type"
	case KindUnexpectedEOF:
		return "unexpected EOF"
	case KindIO:
		return "I/O error"
	case KindUTF8:
		return "invalid UTF-8"
	case KindParseInt:
		return "integer parse error"
	case KindXML:
		return "XML error"
	default:
		return "unknown error"
	}
}

// Error is a codec failure tagged with its Kind. The underlying cause,
// if any, is preserved and visible to errors.Is/errors.As.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a tagged error with a formatted message.
func Errorf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error without losing it. Returns nil when
// err is nil.
func Wrap(k Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Err: err}
}

// Wrapf is Wrap with a context message.
func Wrapf(k Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsKind reports whether any error in err's chain is a codec Error of
// the given kind.
func IsKind(err error, k Kind) bool {
	var ce *Error
	for errors.As(err, &ce) {
		if ce.Kind == k {
			return true
		}
		err = ce.Err
		if err == nil {
			return false
		}
	}
	return false
}
