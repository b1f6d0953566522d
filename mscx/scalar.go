package mscx

import (
	"strconv"
	"strings"

	"go-mscx/fraction"
	"go-mscx/score"
)

func (r *Reader) HasAttribute(name string) bool {
	_, ok := r.attr(name)
	return ok
}

func (r *Reader) attr(name string) (string, bool) {
	for _, a := range r.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (r *Reader) Attribute(name, def string) string {
	if v, ok := r.attr(name); ok {
		return v
	}
	return def
}

// IntAttribute returns def when the attribute is absent and 0 when it
// does not parse.
func (r *Reader) IntAttribute(name string, def int) int {
	v, ok := r.attr(name)
	if !ok {
		return def
	}
	return atoi(v)
}

func (r *Reader) DoubleAttribute(name string, def float64) float64 {
	v, ok := r.attr(name)
	if !ok {
		return def
	}
	return atof(v)
}

func (r *Reader) ReadInt() int {
	return atoi(r.ReadElementText())
}

// ReadDouble reads the element text clamped to [min, max].
func (r *Reader) ReadDouble(min, max float64) float64 {
	v := atof(r.ReadElementText())
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ReadBool reads a flag; an empty element is true.
func (r *Reader) ReadBool() bool {
	for {
		switch r.readNext() {
		case tokChars:
			v := atoi(r.text) != 0
			r.ReadElementText()
			return v
		case tokStart:
			r.SkipCurrentElement()
		case tokEnd, tokEOF:
			return true
		}
	}
}

// ReadFraction reads either <e z="2" n="4"/> or <e>2/4</e>. Text, when
// present, wins over the attributes; text without a slash is ticks.
func (r *Reader) ReadFraction() fraction.Fraction {
	z := r.IntAttribute("z", 0)
	n := r.IntAttribute("n", 1)
	s := strings.TrimSpace(r.ReadElementText())
	if s != "" {
		i := strings.IndexByte(s, '/')
		if i < 0 {
			return fraction.FromTicks(atoi(s))
		}
		z = atoi(s[:i])
		n = atoi(s[i+1:])
	}
	return fraction.New(z, n)
}

// requireAttrs records attributes missing from the current element in
// strict mode. Callers substitute defaults either way.
func (r *Reader) requireAttrs(names ...string) {
	if !r.opts.Strict {
		return
	}
	for _, n := range names {
		if !r.HasAttribute(n) {
			r.diag(DiagMissingAttribute, "<%s>: %s attribute missing", r.name, n)
		}
	}
}

func (r *Reader) ReadPoint() score.Point {
	r.requireAttrs("x", "y")
	p := score.Point{
		X: r.DoubleAttribute("x", 0),
		Y: r.DoubleAttribute("y", 0),
	}
	r.SkipCurrentElement()
	return p
}

func (r *Reader) ReadSize() score.Size {
	s := score.Size{
		W: r.DoubleAttribute("w", 0),
		H: r.DoubleAttribute("h", 0),
	}
	r.SkipCurrentElement()
	return s
}

func (r *Reader) ReadScale() score.Scale {
	s := score.Scale{
		W: r.DoubleAttribute("w", 0),
		H: r.DoubleAttribute("h", 0),
	}
	r.SkipCurrentElement()
	return s
}

func (r *Reader) ReadRect() score.Rect {
	rc := score.Rect{
		X: r.DoubleAttribute("x", 0),
		Y: r.DoubleAttribute("y", 0),
		W: r.DoubleAttribute("w", 0),
		H: r.DoubleAttribute("h", 0),
	}
	r.SkipCurrentElement()
	return rc
}

func (r *Reader) ReadColor() score.Color {
	c := score.Color{
		R: uint8(r.IntAttribute("r", 0)),
		G: uint8(r.IntAttribute("g", 0)),
		B: uint8(r.IntAttribute("b", 0)),
		A: uint8(r.IntAttribute("a", 255)),
	}
	r.SkipCurrentElement()
	return c
}

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
