// Package fasta reads and writes UniProt entries as FASTA text with
// sp|/tr| headers.
package fasta

import (
	"bytes"
	"io"
	"strings"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/fileio"
	"github.com/tlunder/biotext/pkg/lexer"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/rx"
)

// WrapColumn is the sequence line width on output. Readers accept any
// wrapping, including none.
const WrapColumn = 60

// Reader decodes UniProt records from a FASTA stream.
type Reader struct {
	lx *lexer.Lexer
}

// NewReader returns a Reader framing records out of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{lx: lexer.NewFasta(r)}
}

// Next returns the next record, or io.EOF after the last one. A
// malformed record yields an error without poisoning the ones after
// it; the lexer has already re-synchronized at the next '>' line.
func (r *Reader) Next() (*record.UniProt, error) {
	chunk, err := r.lx.Next()
	if err != nil {
		return nil, err
	}
	return Parse(chunk)
}

// Parse decodes one record's worth of FASTA text: a header line and
// any number of sequence lines.
func Parse(chunk []byte) (*record.UniProt, error) {
	header := chunk
	body := []byte(nil)
	if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
		header, body = chunk[:i], chunk[i+1:]
	}

	rec := &record.UniProt{}
	groups := rx.SwissProtHeader.Extract(header)
	if groups != nil {
		rec.Section = record.SwissProt
	} else if groups = rx.TrEMBLHeader.Extract(header); groups != nil {
		rec.Section = record.TrEMBL
	} else {
		if !bytes.HasPrefix(header, []byte(">sp|")) && !bytes.HasPrefix(header, []byte(">tr|")) {
			return nil, codec.Errorf(codec.KindInvalidFastaType, "header %q is neither sp| nor tr|", header)
		}
		return nil, codec.Errorf(codec.KindInvalidInput, "malformed FASTA header %q", header)
	}

	rec.ID = string(groups[1])
	rec.Mnemonic = string(groups[2])
	rec.Name = string(groups[3])
	rec.Organism = string(groups[4])
	rec.Taxonomy = string(groups[5])
	rec.Gene = string(groups[6])

	pe, err := num.ParseUint(groups[7])
	if err != nil {
		return nil, err
	}
	rec.Evidence, err = record.EvidenceFromInt(pe)
	if err != nil {
		return nil, err
	}
	sv, err := num.ParseUint(groups[8])
	if err != nil {
		return nil, err
	}
	rec.SequenceVersion = uint8(sv)

	var seq strings.Builder
	for len(body) > 0 {
		line := body
		if i := bytes.IndexByte(body, '\n'); i >= 0 {
			line, body = body[:i], body[i+1:]
		} else {
			body = nil
		}
		if len(line) == 0 {
			continue
		}
		if bytes.ContainsAny(line, " \t") {
			return nil, codec.Errorf(codec.KindInvalidInput, "whitespace inside sequence line %q", line)
		}
		seq.Write(line)
	}

	rec.Sequence = seq.String()
	rec.Length = uint32(len(rec.Sequence))
	rec.Mass = record.SequenceMass(rec.Sequence)
	return rec, nil
}

// Append serializes one record, without a trailing newline. The
// caller is responsible for validity checks and separators.
func Append(dst []byte, r *record.UniProt) []byte {
	dst = append(dst, '>')
	dst = append(dst, r.Section.String()...)
	dst = append(dst, '|')
	dst = append(dst, r.ID...)
	dst = append(dst, '|')
	dst = append(dst, r.Mnemonic...)
	dst = append(dst, ' ')
	dst = append(dst, r.Name...)
	dst = append(dst, " OS="...)
	dst = append(dst, r.Organism...)
	if r.Gene != "" {
		dst = append(dst, " GN="...)
		dst = append(dst, r.Gene...)
	}
	dst = append(dst, " PE="...)
	dst = num.AppendUint(dst, uint64(r.Evidence))
	dst = append(dst, " SV="...)
	dst = num.AppendUint(dst, uint64(r.SequenceVersion))

	for i := 0; i < len(r.Sequence); i += WrapColumn {
		end := i + WrapColumn
		if end > len(r.Sequence) {
			end = len(r.Sequence)
		}
		dst = append(dst, '\n')
		dst = append(dst, r.Sequence[i:end]...)
	}
	return dst
}

// Writer encodes UniProt records to a FASTA stream, separating
// consecutive records with a single newline. Behavior for invalid
// records follows the policy: Strict refuses before emitting a byte,
// Lenient skips silently, Default writes what it is given.
type Writer struct {
	st     *codec.TextWriterState
	policy codec.Policy
	buf    []byte
}

// NewWriter returns a Writer on w with the given policy.
func NewWriter(w io.Writer, policy codec.Policy) *Writer {
	return &Writer{st: codec.NewTextWriterState(w, '\n'), policy: policy}
}

// Write emits one record.
func (w *Writer) Write(r *record.UniProt) error {
	if w.policy != codec.Default && !r.IsValid() {
		if w.policy == codec.Lenient {
			return nil
		}
		return codec.Errorf(codec.KindInvalidRecord, "refusing to serialize invalid record %q", r.ID)
	}
	return w.st.WriteRecord(func(sink io.Writer) error {
		w.buf = Append(w.buf[:0], r)
		_, err := sink.Write(w.buf)
		return codec.Wrap(codec.KindIO, err)
	})
}

// Codec is the FASTA facade for UniProt records. The zero value uses
// the default policy.
type Codec struct {
	Policy codec.Policy
}

// ToStream writes recs to w.
func (c Codec) ToStream(w io.Writer, recs []*record.UniProt) error {
	fw := NewWriter(w, c.Policy)
	for _, r := range recs {
		if err := fw.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// ToBytes serializes recs into a fresh buffer.
func (c Codec) ToBytes(recs []*record.UniProt) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.ToStream(&buf, recs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToString serializes recs into a string.
func (c Codec) ToString(recs []*record.UniProt) (string, error) {
	b, err := c.ToBytes(recs)
	return string(b), err
}

// ToFile serializes recs to path, compressing by suffix.
func (c Codec) ToFile(path string, recs []*record.UniProt) error {
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
func (c Codec) FromStream(r io.Reader) ([]*record.UniProt, error) {
	return codec.CollectPolicy[*record.UniProt](NewReader(r), c.Policy)
}

// FromBytes reads records from b.
func (c Codec) FromBytes(b []byte) ([]*record.UniProt, error) {
	return c.FromStream(bytes.NewReader(b))
}

// FromString reads records from s.
func (c Codec) FromString(s string) ([]*record.UniProt, error) {
	return c.FromStream(strings.NewReader(s))
}

// FromFile reads records from path, decompressing by suffix or magic.
func (c Codec) FromFile(path string) ([]*record.UniProt, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	defer f.Close()
	return c.FromStream(f)
}
