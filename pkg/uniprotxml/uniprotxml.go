package uniprotxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/tlunder/biotext/pkg/codec"
	"github.com/tlunder/biotext/pkg/fileio"
	"github.com/tlunder/biotext/pkg/record"
)

// Reader decodes the identifier fields of each <entry> element.
type Reader struct {
	xr   *XMLReader
	done bool
}

// NewReader returns a Reader over the UniProt-XML document in r.
func NewReader(r io.Reader) *Reader {
	return &Reader{xr: NewXMLReader(r)}
}

// Next returns the next entry, or io.EOF after the last one. A decode
// error ends iteration: the decoder would re-return it forever.
func (r *Reader) Next() (*record.UniProt, error) {
	if r.done {
		return nil, io.EOF
	}
	rec, err := r.next()
	if err != nil {
		r.done = true
	}
	return rec, err
}

func (r *Reader) next() (*record.UniProt, error) {
	entry, entryDepth, err := r.xr.SeekStartName("entry", -1)
	if err != nil {
		return nil, err
	}

	rec := &record.UniProt{}
	if ds, ok := Attr(entry, "dataset"); ok && ds == "TrEMBL" {
		rec.Section = record.TrEMBL
	}

	// Walk the entry, harvesting identifier fields by element path.
	// The walk is bounded by the entry's end element, so an absent
	// optional field (a gene, say) cannot bleed into the next entry.
	var stack []string
	for {
		ev, err := r.xr.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, codec.Errorf(codec.KindUnexpectedEOF, "document ended inside <entry>")
			}
			return nil, err
		}
		switch t := ev.Token.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			harvested, err := r.harvest(rec, stack, t)
			if err != nil {
				return nil, err
			}
			if harvested {
				// ReadText consumed the end element.
				stack = stack[:len(stack)-1]
			}
		case xml.EndElement:
			if ev.Depth == entryDepth && t.Name.Local == "entry" {
				return rec, nil
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// harvest fills rec from one start element when its path within the
// entry is one the partial reader knows. It reports whether the
// element's text (and therefore its end element) was consumed.
func (r *Reader) harvest(rec *record.UniProt, stack []string, se xml.StartElement) (bool, error) {
	var dst *string
	switch strings.Join(stack, "/") {
	case "accession":
		if rec.ID == "" {
			dst = &rec.ID
		}
	case "name":
		if rec.Mnemonic == "" {
			dst = &rec.Mnemonic
		}
	case "protein/recommendedName/fullName":
		if rec.Name == "" {
			dst = &rec.Name
		}
	case "gene/name":
		if v, ok := Attr(se, "type"); ok && v == "primary" && rec.Gene == "" {
			dst = &rec.Gene
		}
	case "organism/name":
		if v, ok := Attr(se, "type"); ok && v == "scientific" && rec.Organism == "" {
			dst = &rec.Organism
		}
	case "organism/dbReference":
		if v, ok := Attr(se, "type"); ok && v == "NCBI Taxonomy" && rec.Taxonomy == "" {
			if id, ok := Attr(se, "id"); ok {
				rec.Taxonomy = id
			}
		}
		return false, nil
	}
	if dst == nil {
		return false, nil
	}
	s, err := r.xr.ReadText(se.Name.Local)
	if err != nil {
		return false, err
	}
	*dst = s
	return true, nil
}

// Serialization skeleton, the inverse of what the reader extracts.
type xmlEntry struct {
	XMLName   xml.Name `xml:"entry"`
	Dataset   string   `xml:"dataset,attr"`
	Accession string   `xml:"accession"`
	Name      string   `xml:"name"`
	Protein   struct {
		RecommendedName struct {
			FullName string `xml:"fullName"`
		} `xml:"recommendedName"`
	} `xml:"protein"`
	Gene *struct {
		Name typedName `xml:"name"`
	} `xml:"gene"`
	Organism struct {
		Name        typedName `xml:"name"`
		DbReference struct {
			Type string `xml:"type,attr"`
			ID   string `xml:"id,attr"`
		} `xml:"dbReference"`
	} `xml:"organism"`
}

type typedName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

func entryFromRecord(r *record.UniProt) *xmlEntry {
	e := &xmlEntry{Accession: r.ID, Name: r.Mnemonic}
	e.Dataset = "Swiss-Prot"
	if r.Section == record.TrEMBL {
		e.Dataset = "TrEMBL"
	}
	e.Protein.RecommendedName.FullName = r.Name
	if r.Gene != "" {
		e.Gene = &struct {
			Name typedName `xml:"name"`
		}{Name: typedName{Type: "primary", Value: r.Gene}}
	}
	e.Organism.Name = typedName{Type: "scientific", Value: r.Organism}
	e.Organism.DbReference.Type = "NCBI Taxonomy"
	e.Organism.DbReference.ID = r.Taxonomy
	return e
}

// Writer encodes entry skeletons inside a <uniprot> root element.
type Writer struct {
	enc    *xml.Encoder
	policy codec.Policy
	opened bool
}

// NewWriter returns a Writer on w with the given policy.
func NewWriter(w io.Writer, policy codec.Policy) *Writer {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return &Writer{enc: enc, policy: policy}
}

var uniprotRoot = xml.StartElement{Name: xml.Name{Local: "uniprot"}}

// Write emits one entry skeleton.
func (w *Writer) Write(r *record.UniProt) error {
	if w.policy != codec.Default && !r.IsValid() {
		if w.policy == codec.Lenient {
			return nil
		}
		return codec.Errorf(codec.KindInvalidRecord, "refusing to serialize invalid record %q", r.ID)
	}
	if !w.opened {
		if err := w.enc.EncodeToken(uniprotRoot); err != nil {
			return codec.Wrap(codec.KindXML, err)
		}
		w.opened = true
	}
	return codec.Wrap(codec.KindXML, w.enc.Encode(entryFromRecord(r)))
}

// Close ends the root element and flushes the encoder.
func (w *Writer) Close() error {
	if w.opened {
		if err := w.enc.EncodeToken(uniprotRoot.End()); err != nil {
			return codec.Wrap(codec.KindXML, err)
		}
	}
	return codec.Wrap(codec.KindXML, w.enc.Flush())
}

// Codec is the partial UniProt-XML facade. Round-trips preserve the
// identifier fields only.
type Codec struct {
	Policy codec.Policy
}

// ToStream writes recs to w as a <uniprot> document.
func (c Codec) ToStream(w io.Writer, recs []*record.UniProt) error {
	xw := NewWriter(w, c.Policy)
	for _, r := range recs {
		if err := xw.Write(r); err != nil {
			return err
		}
	}
	return xw.Close()
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

// FromStream reads entries from r under the codec's policy. Parsed
// records carry no sequence and are never valid in the strict sense;
// Strict and Lenient are therefore only useful on the writer side.
func (c Codec) FromStream(r io.Reader) ([]*record.UniProt, error) {
	return codec.CollectPolicy[*record.UniProt](NewReader(r), c.Policy)
}

// FromBytes reads entries from b.
func (c Codec) FromBytes(b []byte) ([]*record.UniProt, error) {
	return c.FromStream(bytes.NewReader(b))
}

// FromString reads entries from s.
func (c Codec) FromString(s string) ([]*record.UniProt, error) {
	return c.FromStream(strings.NewReader(s))
}

// FromFile reads entries from path, decompressing by suffix or magic.
func (c Codec) FromFile(path string) ([]*record.UniProt, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, codec.Wrap(codec.KindIO, err)
	}
	defer f.Close()
	return c.FromStream(f)
}
