package lily

import (
	"fmt"
	"strings"
)

type Elem interface {
	String() string
}

type Duration struct {
	DurationLog int
	Dots        int

	// Scale factor for lengths no written value expresses; zero means
	// unscaled.
	FactorNum int
	FactorDen int
}

func (d *Duration) String() string {
	names := map[int]string{
		-1: "\\breve",
		-2: "\\longa",
		-3: "\\maxima",
	}
	n := names[d.DurationLog]
	if n == "" {
		i := uint(1)
		i <<= uint(d.DurationLog)
		n = fmt.Sprintf("%d", i)
	}

	for i := 0; i < d.Dots; i++ {
		n += "."
	}
	if d.FactorNum > 0 && d.FactorDen > 0 && d.FactorNum != d.FactorDen {
		n += fmt.Sprintf("*%d/%d", d.FactorNum, d.FactorDen)
	}
	return n
}

type Pitch struct {
	// 0 is the octave of middle C.
	Octave     int
	Notename   int
	Alteration int
}

// PitchFromTpc spells a MIDI pitch with the given tonal pitch class,
// where 14 is C and each step is a fifth.
func PitchFromTpc(tpc, midi int) Pitch {
	fifths := tpc - 14
	p := Pitch{
		Notename:   ((fifths*4)%7 + 7) % 7,
		Alteration: floorDiv(tpc+1, 7) - 2,
	}
	scale := []int{0, 2, 4, 5, 7, 9, 11}
	p.Octave = floorDiv(midi-60-scale[p.Notename]-p.Alteration, 12)
	return p
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (p *Pitch) SemitonePitch() int {
	p.Normalize()
	scale := []int{0, 2, 4, 5, 7, 9, 11}
	return p.Octave*12 + scale[p.Notename] + p.Alteration
}

func (p *Pitch) Normalize() {
	for p.Notename < 0 {
		p.Notename += 7
		p.Octave--
	}
	for p.Notename >= 7 {
		p.Notename -= 7
		p.Octave++
	}
}

func (p *Pitch) String() string {
	names := []string{"c", "d", "e", "f", "g", "a", "b"}
	altsuffix := []string{"eses", "es", "", "is", "isis"}

	n := names[p.Notename]
	if a := p.Alteration + 2; a >= 0 && a < len(altsuffix) {
		n += altsuffix[a]
	}
	if p.Octave < 0 {
		for i := -1; i > p.Octave; i-- {
			n += ","
		}
	} else {
		for i := 0; i <= p.Octave; i++ {
			n += "'"
		}
	}
	return n
}

type Note struct {
	Pitch
	Duration
}

func (n *Note) String() string {
	return n.Pitch.String() + n.Duration.String()
}

type Chord struct {
	Pitch []Pitch
	Duration

	// Ties, slurs and articulations, printed after the duration.
	PostEvents []string
}

func (p *Chord) String() string {
	d := &p.Duration
	pstr := "s"
	if len(p.Pitch) == 1 {
		pstr = p.Pitch[0].String()
	} else if len(p.Pitch) > 1 {
		pitches := []string{}
		for i := range p.Pitch {
			pitches = append(pitches, p.Pitch[i].String())
		}
		pstr = "<" + strings.Join(pitches, " ") + ">"
	}

	return pstr + d.String() + strings.Join(p.PostEvents, "")
}

type Rest struct {
	Duration
}

func (r *Rest) String() string {
	return "r" + r.Duration.String()
}

type BarCheck struct{}

func (b *BarCheck) String() string {
	return "|"
}

type TimeSignature struct {
	Num int
	Den int
}

func (t *TimeSignature) String() string {
	return fmt.Sprintf("\\time %d/%d", t.Num, t.Den)
}

type Compound struct {
	Elems []Elem
}

func (s *Compound) String() string {
	elts := []string{}
	for _, e := range s.Elems {
		elts = append(elts, e.String())
	}
	return strings.Join(elts, " ")
}

type Seq struct {
	Compound
}

func (s *Seq) String() string {
	return fmt.Sprintf("{ %s }", s.Compound.String())
}

type Par struct {
	Compound
}

func (s *Par) String() string {
	return fmt.Sprintf("<< %s >>", s.Compound.String())
}
