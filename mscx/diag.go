package mscx

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrLocationMismatch reports a location whose measure index does not
	// match the measure being read.
	ErrLocationMismatch = errors.New("location does not match current measure")

	// ErrMalformed wraps tokenizer failures; the element nesting can no
	// longer be trusted.
	ErrMalformed = errors.New("malformed document")
)

type DiagKind int

const (
	DiagUnknownElement DiagKind = iota
	DiagMissingAttribute
	DiagDuplicateID
	DiagUnresolvedReference
	DiagEmptyTuplet
	DiagLocationMismatch
	DiagReconnected
	DiagAbandoned
	DiagTextStyleOverflow
)

var diagNames = []string{
	DiagUnknownElement:      "unknown-element",
	DiagMissingAttribute:    "missing-attribute",
	DiagDuplicateID:         "duplicate-id",
	DiagUnresolvedReference: "unresolved-reference",
	DiagEmptyTuplet:         "empty-tuplet",
	DiagLocationMismatch:    "location-mismatch",
	DiagReconnected:         "reconnected",
	DiagAbandoned:           "abandoned",
	DiagTextStyleOverflow:   "text-style-overflow",
}

func (k DiagKind) String() string {
	if int(k) < len(diagNames) {
		return diagNames[k]
	}
	return fmt.Sprintf("diag(%d)", int(k))
}

// Diagnostic is one recovered problem in a document.
type Diagnostic struct {
	Kind    DiagKind
	Doc     string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	if d.Doc != "" {
		return fmt.Sprintf("tag in <%s> line %d col %d: %s", d.Doc, d.Line, d.Column, d.Message)
	}
	return fmt.Sprintf("line %d col %d: %s", d.Line, d.Column, d.Message)
}

func (r *Reader) diag(kind DiagKind, format string, args ...interface{}) {
	d := Diagnostic{
		Kind:    kind,
		Doc:     r.opts.DocName,
		Line:    r.Line(),
		Column:  r.Column(),
		Message: fmt.Sprintf(format, args...),
	}
	r.diags = append(r.diags, d)

	fields := []zap.Field{
		zap.Stringer("kind", kind),
		zap.String("doc", d.Doc),
		zap.Int("line", d.Line),
		zap.Int("column", d.Column),
	}
	if kind == DiagReconnected {
		r.log.Info(d.Message, fields...)
		return
	}
	r.log.Warn(d.Message, fields...)
}

// Diagnostics returns everything recovered from so far.
func (r *Reader) Diagnostics() []Diagnostic {
	return r.diags
}

// CountDiagnostics counts diagnostics of one kind.
func (r *Reader) CountDiagnostics(kind DiagKind) int {
	n := 0
	for _, d := range r.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// unknown logs the current element and skips it with all its content.
func (r *Reader) unknown() {
	r.diag(DiagUnknownElement, "unknown element <%s>", r.name)
	r.SkipCurrentElement()
}

// missing logs an element lacking a required attribute and skips it.
func (r *Reader) missing(attr string) {
	r.diag(DiagMissingAttribute, "<%s>: %s attribute missing", r.name, attr)
	r.SkipCurrentElement()
}

// integrity records a structural inconsistency. Only strict mode
// returns it.
func (r *Reader) integrity(err error) error {
	r.diag(DiagLocationMismatch, "%v", err)
	if r.opts.Strict {
		return err
	}
	return nil
}
