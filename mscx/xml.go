package mscx

import (
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"
)

type tokenKind int

const (
	tokNone tokenKind = iota
	tokStart
	tokEnd
	tokChars
	tokComment
	tokEOF
)

// readNext advances to the next start, end, text or comment token.
// Tokenizer errors end the stream and are kept in r.err.
func (r *Reader) readNext() tokenKind {
	if r.kind == tokEOF {
		return tokEOF
	}
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if err != io.EOF {
				r.err = fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			r.kind = tokEOF
			return tokEOF
		}
		r.line, r.col = r.dec.InputPos()
		switch t := tok.(type) {
		case xml.StartElement:
			r.kind, r.name, r.attrs, r.text = tokStart, t.Name.Local, t.Copy().Attr, ""
		case xml.EndElement:
			r.kind, r.name, r.attrs, r.text = tokEnd, t.Name.Local, nil, ""
		case xml.CharData:
			r.kind, r.text = tokChars, string(t)
		case xml.Comment:
			r.kind, r.text = tokComment, string(t)
		default:
			continue
		}
		return r.kind
	}
}

// Name of the current element.
func (r *Reader) Name() string {
	return r.name
}

// Err returns the tokenizer error that ended the stream, if any.
func (r *Reader) Err() error {
	return r.err
}

// ReadNextStartElement moves to the next child element of the current
// one. It returns false, having consumed the end tag, when there are no
// more children.
func (r *Reader) ReadNextStartElement() bool {
	for {
		switch r.readNext() {
		case tokStart:
			return true
		case tokEnd, tokEOF:
			return false
		}
	}
}

// SkipCurrentElement discards everything up to and including the end
// tag of the current element.
func (r *Reader) SkipCurrentElement() {
	depth := 1
	for depth > 0 {
		switch r.readNext() {
		case tokStart:
			depth++
		case tokEnd:
			depth--
		case tokEOF:
			return
		}
	}
}

// ReadElementText returns the text directly inside the current element
// and consumes its end tag. Child elements are skipped.
func (r *Reader) ReadElementText() string {
	var sb strings.Builder
	for {
		switch r.readNext() {
		case tokChars:
			sb.WriteString(r.text)
		case tokStart:
			r.SkipCurrentElement()
		case tokEnd, tokEOF:
			return sb.String()
		}
	}
}

// ReadXML returns the content of the current element as markup: child
// elements are reproduced with their attributes and text is escaped.
func (r *Reader) ReadXML() string {
	var sb strings.Builder
	for {
		switch r.readNext() {
		case tokStart:
			r.writeElement(&sb)
		case tokChars:
			sb.WriteString(html.EscapeString(r.text))
		case tokEnd, tokEOF:
			return sb.String()
		}
	}
}

func (r *Reader) writeElement(sb *strings.Builder) {
	sb.WriteString("<" + r.name)
	for _, a := range r.attrs {
		fmt.Fprintf(sb, " %s=\"%s\"", a.Name.Local, html.EscapeString(a.Value))
	}
	sb.WriteString(">")
	for {
		switch r.readNext() {
		case tokStart:
			r.writeElement(sb)
		case tokChars:
			sb.WriteString(html.EscapeString(r.text))
		case tokEnd:
			sb.WriteString("</" + r.name + ">")
			return
		case tokEOF:
			return
		}
	}
}
