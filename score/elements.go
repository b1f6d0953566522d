package score

import (
	"go-mscx/fraction"
)

type Element interface {
	GetTick() fraction.Fraction
	GetTrack() int
	GetStaff() int
	Voice() int
	GetTypeName() string
}

// DurationElement is an element that occupies time and may belong to a
// tuplet.
type DurationElement interface {
	Element
	ActualTicks() fraction.Fraction
	GetTuplet() *Tuplet
	setTuplet(t *Tuplet)
}

type ElemBase struct {
	// Absolute.
	Tick  fraction.Fraction
	Track int
}

func (e *ElemBase) GetTick() fraction.Fraction {
	return e.Tick
}

func (e *ElemBase) GetTrack() int {
	return e.Track
}

func (e *ElemBase) GetStaff() int {
	return e.Track / VOICES
}

func (e *ElemBase) Voice() int {
	return e.Track % VOICES
}

type Chord struct {
	ElemBase
	Duration Duration

	// Actual length, after tuplet scaling.
	Ticks fraction.Fraction

	Notes  []*Note
	Beam   *Beam
	Tuplet *Tuplet

	// Grace chords take no time.
	Grace bool

	Articulations []string
	Lyrics        []string
	Offset        Point
	Color         Color
}

func (c *Chord) GetTypeName() string {
	return "Chord"
}

func (c *Chord) ActualTicks() fraction.Fraction {
	if c.Grace {
		return fraction.Zero
	}
	return c.Ticks
}

func (c *Chord) GetTuplet() *Tuplet {
	return c.Tuplet
}

func (c *Chord) setTuplet(t *Tuplet) {
	c.Tuplet = t
}

type Note struct {
	Chord *Chord

	// 60 = middle C.
	Pitch int
	// Tonal pitch class; 14 = C, stepping by fifths.
	Tpc int

	TieFor  *Spanner
	TieBack *Spanner

	Offset Point
	Color  Color
}

func (n *Note) GetTick() fraction.Fraction {
	return n.Chord.Tick
}

func (n *Note) GetTrack() int {
	return n.Chord.Track
}

func (n *Note) GetStaff() int {
	return n.Chord.GetStaff()
}

func (n *Note) Voice() int {
	return n.Chord.Voice()
}

func (n *Note) GetTypeName() string {
	return "Note"
}

type Rest struct {
	ElemBase
	Duration Duration

	// Written length when Duration cannot express it.
	Len    fraction.Fraction
	Ticks  fraction.Fraction
	Tuplet *Tuplet

	// Inserted by tuplet gap filling rather than read.
	Generated bool
	Offset    Point
}

func (r *Rest) GetTypeName() string {
	return "Rest"
}

func (r *Rest) ActualTicks() fraction.Fraction {
	return r.Ticks
}

func (r *Rest) GetTuplet() *Tuplet {
	return r.Tuplet
}

func (r *Rest) setTuplet(t *Tuplet) {
	r.Tuplet = t
}

// Annotation covers elements attached to a time position that do not
// take time themselves: clefs, key and time signatures, dynamics, texts.
type Annotation struct {
	ElemBase
	Kind    string
	Subtype string
	Text    string
	Style   TextStyleType
	Offset  Point
	Color   Color
	Size    Size
	Scale   Scale
	Bbox    Rect
	Props   map[string]string
}

func (a *Annotation) GetTypeName() string {
	return a.Kind
}

type Beam struct {
	Id    int
	Track int
	Props map[string]string
	Elems []*Chord
}

func (b *Beam) Add(c *Chord) {
	b.Elems = append(b.Elems, c)
	c.Beam = b
}
