package codec

import (
	"errors"
	"io"
)

// Policy selects how an iterator or writer treats invalid records and
// upstream errors.
type Policy uint8

const (
	// Default passes every upstream event through, Ok or Err.
	Default Policy = iota
	// Strict turns an invalid-but-well-formed record into an
	// invalid-record error; upstream errors pass through.
	Strict
	// Lenient silently drops invalid records and upstream errors.
	Lenient
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return "default"
	}
}

// ParsePolicy maps the textual policy names to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "default":
		return Default, nil
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	}
	return Default, Errorf(KindInvalidEnumeration, "unknown policy %q", s)
}

// Record is the contract every record model satisfies.
type Record interface {
	IsValid() bool
}

// Iter produces records one at a time. Next returns io.EOF after the
// final record; any other error reports the event at the record
// boundary where it occurred, and iteration may continue past it.
type Iter[R Record] interface {
	Next() (R, error)
}

// StrictIter replaces each well-formed but invalid record with an
// invalid-record error. Everything else passes through.
type StrictIter[R Record] struct {
	it Iter[R]
}

// NewStrict wraps it with the strict policy.
func NewStrict[R Record](it Iter[R]) *StrictIter[R] {
	return &StrictIter[R]{it: it}
}

func (s *StrictIter[R]) Next() (R, error) {
	rec, err := s.it.Next()
	if err != nil {
		return rec, err
	}
	if !rec.IsValid() {
		var zero R
		return zero, Errorf(KindInvalidRecord, "record failed validation")
	}
	return rec, nil
}

// LenientIter drops invalid records and upstream errors. It never
// returns an error other than io.EOF.
type LenientIter[R Record] struct {
	it Iter[R]
}

// NewLenient wraps it with the lenient policy.
func NewLenient[R Record](it Iter[R]) *LenientIter[R] {
	return &LenientIter[R]{it: it}
}

func (l *LenientIter[R]) Next() (R, error) {
	for {
		rec, err := l.it.Next()
		if errors.Is(err, io.EOF) {
			var zero R
			return zero, io.EOF
		}
		if err != nil {
			continue
		}
		if !rec.IsValid() {
			continue
		}
		return rec, nil
	}
}

// Collect drains it into a slice, applying the iterator contract:
// io.EOF ends iteration cleanly, any other error aborts.
func Collect[R Record](it Iter[R]) ([]R, error) {
	var out []R
	for {
		rec, err := it.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// CollectPolicy drains it under the given policy.
func CollectPolicy[R Record](it Iter[R], p Policy) ([]R, error) {
	switch p {
	case Strict:
		return Collect[R](NewStrict(it))
	case Lenient:
		return Collect[R](NewLenient(it))
	default:
		return Collect(it)
	}
}

// TextWriterState interleaves record writes with a single-byte
// separator. The separator precedes every successful write after the
// first; a failed write does not arm the separator for the next one.
type TextWriterState struct {
	w     io.Writer
	sep   byte
	wrote bool
}

// NewTextWriterState wraps w with the given inter-record separator.
func NewTextWriterState(w io.Writer, sep byte) *TextWriterState {
	return &TextWriterState{w: w, sep: sep}
}

// WriteRecord emits one record through write, prefixing the separator
// when a previous record was successfully written. write must emit the
// record without a trailing separator.
func (s *TextWriterState) WriteRecord(write func(io.Writer) error) error {
	if s.wrote {
		if _, err := s.w.Write([]byte{s.sep}); err != nil {
			s.wrote = false
			return Wrap(KindIO, err)
		}
	}
	if err := write(s.w); err != nil {
		s.wrote = false
		return err
	}
	s.wrote = true
	return nil
}
