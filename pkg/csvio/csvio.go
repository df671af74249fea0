// Package csvio reads and writes UniProt entries as delimited text
// with the UniProt tab-export column vocabulary. The delimiter is
// configurable; '\t' gives the classic tab export, ',' RFC-4180 CSV.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/fileio"
	"github.com/tlunder/biotext/pkg/num"
	"github.com/tlunder/biotext/pkg/record"
	"github.com/tlunder/biotext/pkg/rx"
)

// Column names, bit-for-bit. The doubled space and the space before
// the closing parenthesis in the gene column are part of the format.
const (
	ColSequenceVersion  = "Sequence version"
	ColProteinExistence = "Protein existence"
	ColMass             = "Mass"
	ColLength           = "Length"
	ColGeneNames        = "Gene names  (primary )"
	ColEntry            = "Entry"
	ColEntryName        = "Entry name"
	ColProteinNames     = "Protein names"
	ColOrganism         = "Organism"
	ColProteomes        = "Proteomes"
	ColSequence         = "Sequence"
	ColOrganismID       = "Organism ID"
)

// Header is the column order on write. Reads are order-independent.
var Header = []string{
	ColSequenceVersion,
	ColProteinExistence,
	ColMass,
	ColLength,
	ColGeneNames,
	ColEntry,
	ColEntryName,
	ColProteinNames,
	ColOrganism,
	ColProteomes,
	ColSequence,
	ColOrganismID,
}

// Reader decodes UniProt records from delimited text. The first row
// is the header; unknown columns are ignored and duplicate recognized
// columns take the last-seen index.
type Reader struct {
	cr   *csv.Reader
	cols map[string]int
	done bool
}

// NewReader returns a Reader on r using delim as field separator.
func NewReader(r io.Reader, delim byte) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = rune(delim)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return &Reader{cr: cr}
}

// readRow reads one raw row. A syntax error in the row is reported
// without ending iteration; an error from the underlying source is
// what encoding/csv would re-return forever, so it latches the reader
// and every later call returns io.EOF.
func (r *Reader) readRow() ([]string, error) {
	row, err := r.cr.Read()
	if err == nil {
		return row, nil
	}
	if errors.Is(err, io.EOF) {
		r.done = true
		return nil, io.EOF
	}
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return nil, codec.Wrap(codec.KindInvalidInput, err)
	}
	r.done = true
	return nil, codec.Wrap(codec.KindIO, err)
}

func (r *Reader) readHeader() error {
	row, err := r.readRow()
	if err != nil {
		return err
	}
	r.cols = make(map[string]int, len(row))
	for i, name := range row {
		r.cols[name] = i
	}
	return nil
}

// Next returns the next record, or io.EOF after the last row. A row
// that fails to parse yields its error and does not affect the rows
// after it.
func (r *Reader) Next() (*record.UniProt, error) {
	if r.done {
		return nil, io.EOF
	}
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}
	row, err := r.readRow()
	if err != nil {
		return nil, err
	}
	return r.fromRow(row)
}

func (r *Reader) cell(row []string, name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (r *Reader) fromRow(row []string) (*record.UniProt, error) {
	rec := &record.UniProt{
		Gene:     r.cell(row, ColGeneNames),
		ID:       r.cell(row, ColEntry),
		Mnemonic: r.cell(row, ColEntryName),
		Name:     r.cell(row, ColProteinNames),
		Organism: r.cell(row, ColOrganism),
		Sequence: r.cell(row, ColSequence),
		Taxonomy: r.cell(row, ColOrganismID),
	}
	rec.Evidence = record.EvidenceFromString(r.cell(row, ColProteinExistence))

	if p := r.cell(row, ColProteomes); p != "" {
		groups := rx.Proteome.ExtractString(p)
		if groups == nil {
			return nil, codec.Errorf(codec.KindInvalidInput, "malformed proteome %q", p)
		}
		rec.Proteome = groups[1]
	}

	sv, err := num.ParseNonzeroUint([]byte(r.cell(row, ColSequenceVersion)))
	if err != nil {
		return nil, codec.Wrapf(codec.KindInvalidInput, err, "column %q", ColSequenceVersion)
	}
	rec.SequenceVersion = uint8(sv)

	if cell := r.cell(row, ColMass); cell != "" {
		mass, err := num.ParseUintThousands([]byte(cell), ',')
		if err != nil {
			return nil, codec.Wrapf(codec.KindInvalidInput, err, "column %q", ColMass)
		}
		rec.Mass = mass
	} else if rec.Sequence != "" {
		rec.Mass = record.SequenceMass(rec.Sequence)
	}

	if cell := r.cell(row, ColLength); cell != "" {
		length, err := num.ParseUint([]byte(cell))
		if err != nil {
			return nil, codec.Wrapf(codec.KindInvalidInput, err, "column %q", ColLength)
		}
		rec.Length = uint32(length)
	} else if rec.Sequence != "" {
		rec.Length = uint32(len(rec.Sequence))
	}

	return rec, nil
}

// Writer encodes UniProt records as delimited rows. The header row is
// emitted before the first record.
type Writer struct {
	cw        *csv.Writer
	policy    codec.Policy
	thousands bool
	headered  bool
	buf       []byte
}

// NewWriter returns a Writer on w. thousands selects the separator
// style for the mass column.
func NewWriter(w io.Writer, delim byte, thousands bool, policy codec.Policy) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = rune(delim)
	return &Writer{cw: cw, policy: policy, thousands: thousands}
}

func (w *Writer) numCell(v uint64) string {
	if w.thousands {
		w.buf = num.AppendNonzeroUintThousands(w.buf[:0], v, ',')
		return string(w.buf)
	}
	w.buf = num.AppendNonzeroUint(w.buf[:0], v)
	return string(w.buf)
}

// Write emits one record as a row, applying the writer policy first.
func (w *Writer) Write(r *record.UniProt) error {
	if w.policy != codec.Default && !r.IsValid() {
		if w.policy == codec.Lenient {
			return nil
		}
		return codec.Errorf(codec.KindInvalidRecord, "refusing to serialize invalid record %q", r.ID)
	}
	if !w.headered {
		if err := w.cw.Write(Header); err != nil {
			return codec.Wrap(codec.KindIO, err)
		}
		w.headered = true
	}

	w.buf = num.AppendNonzeroUint(w.buf[:0], uint64(r.SequenceVersion))
	sv := string(w.buf)
	w.buf = num.AppendNonzeroUint(w.buf[:0], uint64(r.Length))
	length := string(w.buf)

	row := []string{
		sv,
		r.Evidence.String(),
		w.numCell(r.Mass),
		length,
		r.Gene,
		r.ID,
		r.Mnemonic,
		r.Name,
		r.Organism,
		r.Proteome,
		r.Sequence,
		r.Taxonomy,
	}
	if err := w.cw.Write(row); err != nil {
		return codec.Wrap(codec.KindIO, err)
	}
	w.cw.Flush()
	return codec.Wrap(codec.KindIO, w.cw.Error())
}

// Flush forces buffered rows down to the sink.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return codec.Wrap(codec.KindIO, w.cw.Error())
}

// Codec is the delimited-text facade for UniProt records. The zero
// value writes tab-separated plain numbers under the default policy.
type Codec struct {
	Delim     byte // field separator; 0 means '\t'
	Thousands bool // group mass digits with commas
	Policy    codec.Policy
}

func (c Codec) delim() byte {
	if c.Delim == 0 {
		return '\t'
	}
	return c.Delim
}

// ToStream writes recs to w, header row first.
func (c Codec) ToStream(w io.Writer, recs []*record.UniProt) error {
	cw := NewWriter(w, c.delim(), c.Thousands, c.Policy)
	for _, r := range recs {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	return cw.Flush()
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
	return codec.CollectPolicy[*record.UniProt](NewReader(r, c.delim()), c.Policy)
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
