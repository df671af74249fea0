// Package lexer segments a byte stream into one record's worth of
// text at a time. A lexer knows nothing about field syntax; it only
// frames records, leaving validation to the parsers.
//
// Line and record buffers are owned by the lexer, reused across
// records, and grow monotonically to the largest record seen, so
// steady-state lexing allocates nothing. The slice returned by Next
// is valid only until the following call.
package lexer

import (
	"bufio"
	"bytes"
	"io"

	"github.com/tlunder/biotext/pkg/codec"
)

// Lexer frames records of one textual format.
type Lexer struct {
	r    *bufio.Reader
	line []byte // reusable line buffer
	rec  []byte // reusable record buffer
	held []byte // start line carried over to the next record

	start      []byte   // start-of-record line prefix; nil when unused
	terminator []byte   // exact line that ends a record; nil when unused
	ignore     [][]byte // line prefixes dropped silently
	blankEnds  bool     // blank line ends the record (vs. dropped)
	lineCount  int      // fixed lines per record; 0 when unused

	pending bool // rec currently begins with a held-over start line
	done    bool
}

const readerSize = 1 << 20

// NewFasta frames FASTA records: a '>' line starts a record, a blank
// line ends one.
func NewFasta(r io.Reader) *Lexer {
	return &Lexer{
		r:         bufio.NewReaderSize(r, readerSize),
		line:      make([]byte, 0, 512),
		start:     []byte(">"),
		blankEnds: true,
	}
}

// NewMgf frames BEGIN IONS / END IONS blocks. MASS= lines and blank
// lines between blocks are dropped.
func NewMgf(r io.Reader) *Lexer {
	return &Lexer{
		r:          bufio.NewReaderSize(r, readerSize),
		line:       make([]byte, 0, 512),
		start:      []byte("BEGIN IONS"),
		terminator: []byte("END IONS"),
		ignore:     [][]byte{[]byte("MASS=")},
	}
}

// NewMgfFlat frames the flat MGF variant: a "Scan#: " line starts a
// record and a blank line ends one; there is no terminator line.
func NewMgfFlat(r io.Reader) *Lexer {
	return &Lexer{
		r:         bufio.NewReaderSize(r, readerSize),
		line:      make([]byte, 0, 512),
		start:     []byte("Scan#: "),
		blankEnds: true,
	}
}

// NewFastq frames FASTQ records as fixed four-line groups. FASTQ has
// no reliable start marker ('@' is a legal quality byte), so framing
// is positional.
func NewFastq(r io.Reader) *Lexer {
	return &Lexer{
		r:         bufio.NewReaderSize(r, readerSize),
		line:      make([]byte, 0, 512),
		lineCount: 4,
	}
}

// Next returns the text of the next record, without a trailing
// newline and with inner lines separated by '\n'. It returns io.EOF
// after the final record. The returned slice aliases the lexer's
// record buffer and is only valid until the next call.
func (l *Lexer) Next() ([]byte, error) {
	if l.done {
		return nil, io.EOF
	}
	l.rec = l.rec[:0]
	lines := 0
	if l.pending {
		l.rec = append(l.rec, l.held...)
		l.pending = false
		lines = 1
	}

	for {
		line, err := l.readLine()
		if err == io.EOF {
			l.done = true
			if len(l.rec) > 0 {
				return l.rec, nil
			}
			return nil, io.EOF
		}
		if err != nil {
			// A broken source is not retried; the error is reported
			// once and iteration ends.
			l.done = true
			return nil, codec.Wrap(codec.KindIO, err)
		}

		if len(line) == 0 {
			if !l.blankEnds || len(l.rec) == 0 {
				continue
			}
			return l.rec, nil
		}
		if l.isIgnored(line) {
			continue
		}
		if l.start != nil && bytes.HasPrefix(line, l.start) && len(l.rec) > 0 {
			// Held over as the first line of the next record.
			l.held = append(l.held[:0], line...)
			l.pending = true
			return l.rec, nil
		}

		l.appendLine(line)
		lines++

		if l.terminator != nil && bytes.Equal(line, l.terminator) {
			return l.rec, nil
		}
		if l.lineCount > 0 && lines == l.lineCount {
			return l.rec, nil
		}
	}
}

func (l *Lexer) isIgnored(line []byte) bool {
	for _, p := range l.ignore {
		if bytes.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func (l *Lexer) appendLine(line []byte) {
	if len(l.rec) > 0 {
		l.rec = append(l.rec, '\n')
	}
	l.rec = append(l.rec, line...)
}

// readLine reads one line, stripping the newline and any trailing CR.
// The internal buffer is reused across calls.
func (l *Lexer) readLine() ([]byte, error) {
	l.line = l.line[:0]

	for {
		segment, isPrefix, err := l.r.ReadLine()
		if err != nil {
			return nil, err
		}

		l.line = append(l.line, segment...)

		if !isPrefix {
			break
		}
	}

	l.line = bytes.TrimSuffix(l.line, []byte{'\r'})

	return l.line, nil
}
