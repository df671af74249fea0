// Package fastq reads and writes SRA short reads as FASTQ text.
package fastq

import (
	"bytes"
	"io"
	"strings"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/fileio"
	"github.com/tlunder/biotext/pkg/lexer"
	"github.com/tlunder/biotext/pkg/record"
)

// Reader decodes SRA reads from a FASTQ stream.
type Reader struct {
	lx *lexer.Lexer
}

// NewReader returns a Reader framing four-line records out of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{lx: lexer.NewFastq(r)}
}

// Next returns the next read, or io.EOF after the last one.
func (r *Reader) Next() (*record.Sra, error) {
	chunk, err := r.lx.Next()
	if err != nil {
		return nil, err
	}
	return Parse(chunk)
}

// Parse decodes one four-line FASTQ record.
func Parse(chunk []byte) (*record.Sra, error) {
	var lines [4][]byte
	rest := chunk
	for i := 0; i < 4; i++ {
		if rest == nil {
			return nil, codec.Errorf(codec.KindUnexpectedEOF, "FASTQ record truncated after %d lines", i)
		}
		if j := bytes.IndexByte(rest, '\n'); j >= 0 {
			lines[i], rest = rest[:j], rest[j+1:]
		} else {
			lines[i], rest = rest, nil
		}
	}

	header, seq, plus, qual := lines[0], lines[1], lines[2], lines[3]
	if len(header) == 0 || header[0] != '@' {
		return nil, codec.Errorf(codec.KindInvalidInput, "FASTQ header must start with @, found %q", header)
	}
	if len(plus) == 0 || plus[0] != '+' {
		return nil, codec.Errorf(codec.KindInvalidInput, "FASTQ separator must start with +, found %q", plus)
	}
	if len(seq) != len(qual) {
		return nil, codec.Errorf(codec.KindInvalidInput, "sequence and quality lengths differ (%d vs %d)", len(seq), len(qual))
	}

	rec := &record.Sra{
		Sequence: append([]byte(nil), seq...),
		Quality:  append([]byte(nil), qual...),
		Length:   uint32(len(seq)),
	}
	id := header[1:]
	if i := bytes.IndexByte(id, ' '); i >= 0 {
		rec.SeqID = string(id[:i])
		rec.Description = string(id[i+1:])
	} else {
		rec.SeqID = string(id)
	}
	return rec, nil
}

// Append serializes one read, without a trailing newline.
func Append(dst []byte, r *record.Sra) []byte {
	dst = append(dst, '@')
	dst = append(dst, r.SeqID...)
	if r.Description != "" {
		dst = append(dst, ' ')
		dst = append(dst, r.Description...)
	}
	dst = append(dst, '\n')
	dst = append(dst, r.Sequence...)
	dst = append(dst, "\n+\n"...)
	dst = append(dst, r.Quality...)
	return dst
}

// Writer encodes SRA reads to a FASTQ stream.
type Writer struct {
	st     *codec.TextWriterState
	policy codec.Policy
	buf    []byte
}

// NewWriter returns a Writer on w with the given policy.
func NewWriter(w io.Writer, policy codec.Policy) *Writer {
	return &Writer{st: codec.NewTextWriterState(w, '\n'), policy: policy}
}

// Write emits one read.
func (w *Writer) Write(r *record.Sra) error {
	if w.policy != codec.Default && !r.IsValid() {
		if w.policy == codec.Lenient {
			return nil
		}
		return codec.Errorf(codec.KindInvalidRecord, "refusing to serialize invalid read %q", r.SeqID)
	}
	return w.st.WriteRecord(func(sink io.Writer) error {
		w.buf = Append(w.buf[:0], r)
		_, err := sink.Write(w.buf)
		return codec.Wrap(codec.KindIO, err)
	})
}

// Codec is the FASTQ facade for SRA reads.
type Codec struct {
	Policy codec.Policy
}

// ToStream writes recs to w.
func (c Codec) ToStream(w io.Writer, recs []*record.Sra) error {
	fw := NewWriter(w, c.Policy)
	for _, r := range recs {
		if err := fw.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// ToBytes serializes recs into a fresh buffer.
func (c Codec) ToBytes(recs []*record.Sra) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.ToStream(&buf, recs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToString serializes recs into a string.
func (c Codec) ToString(recs []*record.Sra) (string, error) {
	b, err := c.ToBytes(recs)
	return string(b), err
}

// ToFile serializes recs to path, compressing by suffix.
func (c Codec) ToFile(path string, recs []*record.Sra) error {
	f, err := fileio.Create(path)
	if err != nil {
		return codec.Wrap(codec.KindIO, err)
	}
	if err := c.ToStream(f, recs); err != nil {
		_ = f.Close()
		return err
	}
	return codec.Wrap(codec.KindIO, f.Close())
}

// FromStream reads records from r under the codec's policy.
func (c Codec) FromStream(r io.Reader) ([]*record.Sra, error) {
	return codec.CollectPolicy[*record.Sra](NewReader(r), c.Policy)
}

// FromBytes reads records from b.
func (c Codec) FromBytes(b []byte) ([]*record.Sra, error) {
	return c.FromStream(bytes.NewReader(b))
}

// FromString reads records from s.
func (c Codec) FromString(s string) ([]*record.Sra, error) {
	return c.FromStream(strings.NewReader(s))
}

// FromFile reads records from path, decompressing by suffix or magic.
func (c Codec) FromFile(path string) ([]*record.Sra, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	defer f.Close()
	return c.FromStream(f)
}
