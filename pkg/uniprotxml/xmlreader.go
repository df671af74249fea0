// Package uniprotxml reads and writes UniProt entries as UniProt-XML.
// The pathway is partial: the reader extracts the identifier fields
// only (accession, entry name, recommended full name, primary gene,
// scientific organism name, NCBI taxonomy id) and the writer emits
// the inverse skeleton. Sequence, mass, length, evidence, version and
// proteome are not represented.
package uniprotxml

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/tlunder/biotext/pkg/codec"
)

// Event is one XML token together with the synthetic element depth.
// Depth is symmetric: a start element and its end element report the
// same depth. Go's decoder already expands empty elements into a
// start/end pair, so self-closing tags need no special casing.
type Event struct {
	Token xml.Token
	Depth int
}

// XMLReader is a depth-tracking pull reader over an XML stream.
type XMLReader struct {
	d     *xml.Decoder
	depth int
}

// NewXMLReader wraps r, honoring the document's declared charset.
func NewXMLReader(r io.Reader) *XMLReader {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return &XMLReader{d: d}
}

// ReadEvent returns the next token and its depth; io.EOF ends the
// document. A document that breaks off mid-element is reported as
// unexpected EOF, not as a generic XML error.
func (r *XMLReader) ReadEvent() (Event, error) {
	t, err := r.d.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		if isTruncation(err) {
			return Event{}, codec.Wrap(codec.KindUnexpectedEOF, err)
		}
		return Event{}, codec.Wrap(codec.KindXML, err)
	}
	switch t.(type) {
	case xml.StartElement:
		r.depth++
		return Event{Token: xml.CopyToken(t), Depth: r.depth}, nil
	case xml.EndElement:
		ev := Event{Token: xml.CopyToken(t), Depth: r.depth}
		r.depth--
		return ev, nil
	default:
		return Event{Token: xml.CopyToken(t), Depth: r.depth}, nil
	}
}

// isTruncation reports whether err is the decoder's way of saying the
// document ended mid-element.
func isTruncation(err error) bool {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var se *xml.SyntaxError
	return errors.As(err, &se) && strings.Contains(se.Msg, "unexpected EOF")
}

// SeekStart advances to the next start element at the given depth;
// depth < 0 matches any depth.
func (r *XMLReader) SeekStart(depth int) (xml.StartElement, int, error) {
	return r.SeekStartFunc("", depth, nil)
}

// SeekStartName advances to the next start element with the given
// local name; name "" matches any element, depth < 0 any depth.
func (r *XMLReader) SeekStartName(name string, depth int) (xml.StartElement, int, error) {
	return r.SeekStartFunc(name, depth, nil)
}

// SeekStartFunc keeps seeking until accept approves a start element
// that matches name and depth. A nil accept approves everything.
func (r *XMLReader) SeekStartFunc(name string, depth int, accept func(xml.StartElement) bool) (xml.StartElement, int, error) {
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return xml.StartElement{}, 0, err
		}
		se, ok := ev.Token.(xml.StartElement)
		if !ok {
			continue
		}
		if name != "" && se.Name.Local != name {
			continue
		}
		if depth >= 0 && ev.Depth != depth {
			continue
		}
		if accept != nil && !accept(se) {
			continue
		}
		return se, ev.Depth, nil
	}
}

// SeekEndName advances past the next end element with the given local
// name; name "" matches any element, depth < 0 any depth.
func (r *XMLReader) SeekEndName(name string, depth int) error {
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return err
		}
		ee, ok := ev.Token.(xml.EndElement)
		if !ok {
			continue
		}
		if name != "" && ee.Name.Local != name {
			continue
		}
		if depth >= 0 && ev.Depth != depth {
			continue
		}
		return nil
	}
}

// ReadToEnd consumes everything up to and including the end element
// closing the current element named name.
func (r *XMLReader) ReadToEnd(name string) error {
	depth := r.depth
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return codec.Errorf(codec.KindUnexpectedEOF, "document ended inside <%s>", name)
			}
			return err
		}
		if ee, ok := ev.Token.(xml.EndElement); ok && ev.Depth == depth && ee.Name.Local == name {
			return nil
		}
	}
}

// ReadText returns the character data inside the current element
// named name and consumes its end element.
func (r *XMLReader) ReadText(name string) (string, error) {
	var sb strings.Builder
	depth := r.depth
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", codec.Errorf(codec.KindUnexpectedEOF, "document ended inside <%s>", name)
			}
			return "", err
		}
		switch t := ev.Token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if ev.Depth == depth && t.Name.Local == name {
				return sb.String(), nil
			}
		case xml.StartElement:
			return "", codec.Errorf(codec.KindXML, "unexpected <%s> inside <%s>", t.Name.Local, name)
		}
	}
}

// Attr returns the value of the named attribute, if present.
func Attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}
