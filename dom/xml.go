package dom

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/l5x/debug"
)

// CDATA is the name of the placeholder element standing in for a CDATA
// section.  Its text is the section payload, written back verbatim.
const CDATA = "_CDATA_"

var (
	ErrParse = errors.New("parse error")

	cdataOpen  = []byte("<![CDATA[")
	cdataClose = []byte("]]>")
)

// Parse reads an XML document into a new arena.
func Parse(r io.Reader) (*Document, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d, err = liftCDATA(d)
	if err != nil {
		return nil, err
	}
	doc := &Document{root: NoHandle, Header: DefaultHeader}
	dec := xml.NewDecoder(bytes.NewReader(d))
	var (
		stack []Element
		texts []*strings.Builder
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		switch x := tok.(type) {
		case xml.ProcInst:
			if x.Target == "xml" {
				doc.Header = "<?xml " + string(x.Inst) + "?>"
			}
		case xml.StartElement:
			attrs := make([]Attr, len(x.Attr))
			for i, a := range x.Attr {
				attrs[i] = Attr{Name: qualName(a.Name), Value: a.Value}
			}
			el := doc.NewElement(qualName(x.Name), attrs...)
			if len(stack) == 0 {
				if doc.root != NoHandle {
					return nil, fmt.Errorf("%w: multiple root elements", ErrParse)
				}
				doc.root = el.h
			} else {
				top := stack[len(stack)-1]
				top.InsertElement(top.ChildCount(), el)
			}
			stack = append(stack, el)
			texts = append(texts, &strings.Builder{})
		case xml.CharData:
			if len(texts) != 0 {
				texts[len(texts)-1].Write(x)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unexpected end element %s", ErrParse, qualName(x.Name))
			}
			el := stack[len(stack)-1]
			if el.Name() != qualName(x.Name) {
				return nil, fmt.Errorf("%w: element %s closed by %s", ErrParse, el.Name(), qualName(x.Name))
			}
			text := texts[len(texts)-1].String()
			if el.Name() == CDATA || el.ChildCount() == 0 || strings.TrimSpace(text) != "" {
				el.SetText(text)
			}
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		case xml.Comment:
			if debug.DOM() {
				debug.Logf("dropping comment %q\n", string(x))
			}
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element %s", ErrParse, stack[len(stack)-1].Name())
	}
	if doc.root == NoHandle {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return doc, nil
}

func qualName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// liftCDATA rewrites each CDATA section as a placeholder element holding the
// escaped payload.  Directly adjacent sections form one payload.
func liftCDATA(d []byte) ([]byte, error) {
	if !bytes.Contains(d, cdataOpen) {
		return d, nil
	}
	out := bytes.NewBuffer(make([]byte, 0, len(d)+len(d)/8))
	for {
		i := bytes.Index(d, cdataOpen)
		if i == -1 {
			out.Write(d)
			return out.Bytes(), nil
		}
		out.Write(d[:i])
		d = d[i+len(cdataOpen):]
		var payload []byte
		for {
			j := bytes.Index(d, cdataClose)
			if j == -1 {
				return nil, fmt.Errorf("%w: unterminated CDATA section", ErrParse)
			}
			payload = append(payload, d[:j]...)
			d = d[j+len(cdataClose):]
			// adjacent sections carry one payload split around a terminator
			if !bytes.HasPrefix(d, cdataOpen) {
				break
			}
			d = d[len(cdataOpen):]
		}
		out.WriteString("<" + CDATA + ">")
		if err := xml.EscapeText(out, payload); err != nil {
			return nil, err
		}
		out.WriteString("</" + CDATA + ">")
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;")
)

// Encode writes the document as XML.  Placeholder CDATA elements become
// CDATA sections.
func (d *Document) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	header := d.Header
	if header == "" {
		header = DefaultHeader
	}
	bw.WriteString(header)
	bw.WriteByte('\n')
	encodeElement(bw, d.Root())
	bw.WriteByte('\n')
	return bw.Flush()
}

func encodeElement(w *bufio.Writer, e Element) {
	n := e.n()
	if n.name == CDATA {
		w.WriteString(string(cdataOpen))
		// a payload containing the terminator is split across sections
		w.WriteString(strings.ReplaceAll(n.text, "]]>", "]]]]><![CDATA[>"))
		w.WriteString(string(cdataClose))
		return
	}
	w.WriteByte('<')
	w.WriteString(n.name)
	for _, a := range n.attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		attrEscaper.WriteString(w, a.Value)
		w.WriteByte('"')
	}
	if len(n.children) == 0 && n.text == "" {
		w.WriteString("/>")
		return
	}
	w.WriteByte('>')
	if len(n.children) == 0 {
		textEscaper.WriteString(w, n.text)
	} else {
		w.WriteByte('\n')
		for _, h := range n.children {
			encodeElement(w, Element{doc: e.doc, h: h})
			w.WriteByte('\n')
		}
	}
	w.WriteString("</")
	w.WriteString(n.name)
	w.WriteByte('>')
}
