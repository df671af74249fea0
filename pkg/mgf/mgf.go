// Package mgf reads and writes mass spectra as Mascot Generic Format
// text. Four dialects are supported; the caller always names the
// dialect, nothing is auto-detected.
//
// MsConvert and Pwiz follow their tools' output byte-for-byte. The
// Pava dialect was never fully pinned down by its producer; the
// writer follows the known header shape and the parser accepts
// exactly what the writer emits. FullMs is Pava's flat survey-scan
// variant without BEGIN IONS framing.
package mgf

import (
	"bytes"
	"io"
	"strings"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/fileio"
	"github.com/tlunder/biotext/pkg/lexer"
	"github.com/tlunder/biotext/pkg/record"
)

// Kind selects the MGF dialect.
type Kind uint8

const (
	MsConvert Kind = iota // msconvert (ProteoWizard CLI) output
	Pava                  // PAVA MS2 scans
	Pwiz                  // ProteoWizard library output
	FullMs                // PAVA flat MS1 variant
)

func (k Kind) String() string {
	switch k {
	case Pava:
		return "pava"
	case Pwiz:
		return "pwiz"
	case FullMs:
		return "fullms"
	default:
		return "msconvert"
	}
}

// ParseKind maps a dialect name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "msconvert":
		return MsConvert, nil
	case "pava":
		return Pava, nil
	case "pwiz":
		return Pwiz, nil
	case "fullms":
		return FullMs, nil
	}
	return MsConvert, codec.Errorf(codec.KindInvalidEnumeration, "unknown MGF dialect %q", s)
}

// Reader decodes spectra from an MGF stream of one dialect.
type Reader struct {
	lx   *lexer.Lexer
	kind Kind
}

// NewReader returns a Reader framing and parsing r as the given
// dialect.
func NewReader(r io.Reader, kind Kind) *Reader {
	lx := lexer.NewMgf(r)
	if kind == FullMs {
		lx = lexer.NewMgfFlat(r)
	}
	return &Reader{lx: lx, kind: kind}
}

// Next returns the next spectrum, or io.EOF after the last one.
func (r *Reader) Next() (*record.Spectrum, error) {
	chunk, err := r.lx.Next()
	if err != nil {
		return nil, err
	}
	return Parse(chunk, r.kind)
}

// Parse decodes one record's worth of MGF text.
func Parse(chunk []byte, kind Kind) (*record.Spectrum, error) {
	switch kind {
	case Pava:
		return parsePava(chunk)
	case Pwiz:
		return parsePwiz(chunk)
	case FullMs:
		return parseFullMs(chunk)
	default:
		return parseMsConvert(chunk)
	}
}

// Append serializes one spectrum in the given dialect, appending to
// dst. Every dialect but FullMs ends without a trailing newline;
// FullMs ends with one so that the separator forms the blank line the
// flat framing needs.
func Append(dst []byte, s *record.Spectrum, kind Kind) []byte {
	switch kind {
	case Pava:
		return appendPava(dst, s)
	case Pwiz:
		return appendPwiz(dst, s)
	case FullMs:
		return appendFullMs(dst, s)
	default:
		return appendMsConvert(dst, s)
	}
}

// Writer encodes spectra to an MGF stream, separating records with a
// single newline.
type Writer struct {
	st     *codec.TextWriterState
	kind   Kind
	policy codec.Policy
	buf    []byte
}

// NewWriter returns a Writer on w for the given dialect and policy.
func NewWriter(w io.Writer, kind Kind, policy codec.Policy) *Writer {
	return &Writer{st: codec.NewTextWriterState(w, '\n'), kind: kind, policy: policy}
}

// Write emits one spectrum.
func (w *Writer) Write(s *record.Spectrum) error {
	if w.policy != codec.Default && !s.IsValid() {
		if w.policy == codec.Lenient {
			return nil
		}
		return codec.Errorf(codec.KindInvalidRecord, "refusing to serialize invalid scan %d", s.Num)
	}
	return w.st.WriteRecord(func(sink io.Writer) error {
		w.buf = Append(w.buf[:0], s, w.kind)
		_, err := sink.Write(w.buf)
		return codec.Wrap(codec.KindIO, err)
	})
}

// Codec is the MGF facade for spectra. The zero value is the
// MsConvert dialect under the default policy.
type Codec struct {
	Kind   Kind
	Policy codec.Policy
}

// ToStream writes spectra to w.
func (c Codec) ToStream(w io.Writer, specs []*record.Spectrum) error {
	mw := NewWriter(w, c.Kind, c.Policy)
	for _, s := range specs {
		if err := mw.Write(s); err != nil {
			return err
		}
	}
	return nil
}

// ToBytes serializes specs into a fresh buffer.
func (c Codec) ToBytes(specs []*record.Spectrum) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.ToStream(&buf, specs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToString serializes specs into a string.
func (c Codec) ToString(specs []*record.Spectrum) (string, error) {
	b, err := c.ToBytes(specs)
	return string(b), err
}

// ToFile serializes specs to path, compressing by suffix.
func (c Codec) ToFile(path string, specs []*record.Spectrum) error {
	f, err := fileio.Create(path)
	if err != nil {
		return codec.Wrap(codec.KindIO, err)
	}
	if err := c.ToStream(f, specs); err != nil {
		_ = f.Close()
		return err
	}
	return codec.Wrap(codec.KindIO, f.Close())
}

// FromStream reads spectra from r under the codec's policy.
func (c Codec) FromStream(r io.Reader) ([]*record.Spectrum, error) {
	return codec.CollectPolicy[*record.Spectrum](NewReader(r, c.Kind), c.Policy)
}

// FromBytes reads spectra from b.
func (c Codec) FromBytes(b []byte) ([]*record.Spectrum, error) {
	return c.FromStream(bytes.NewReader(b))
}

// FromString reads spectra from s.
func (c Codec) FromString(s string) ([]*record.Spectrum, error) {
	return c.FromStream(strings.NewReader(s))
}

// FromFile reads spectra from path, decompressing by suffix or magic.
func (c Codec) FromFile(path string) ([]*record.Spectrum, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	defer f.Close()
	return c.FromStream(f)
}

// lineScanner walks the newline-separated lines of a lexer chunk.
type lineScanner struct {
	rest []byte
	done bool
}

func newLineScanner(chunk []byte) *lineScanner {
	return &lineScanner{rest: chunk}
}

// next returns the following line; ok is false past the end.
func (l *lineScanner) next() (line []byte, ok bool) {
	if l.done {
		return nil, false
	}
	if i := bytes.IndexByte(l.rest, '\n'); i >= 0 {
		line, l.rest = l.rest[:i], l.rest[i+1:]
		return line, true
	}
	l.done = true
	return l.rest, true
}
