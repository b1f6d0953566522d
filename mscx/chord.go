package mscx

import (
	"strings"

	"go-mscx/fraction"
	"go-mscx/score"
)

// readDuration handles the duration children shared by chords and
// rests. It reports whether the current element was one of them.
func (r *Reader) readDuration(d *score.Duration, written **fraction.Fraction) bool {
	switch r.name {
	case "durationType":
		s := strings.TrimSpace(r.ReadElementText())
		v, ok := score.ParseDurationType(s)
		if !ok {
			r.diag(DiagUnresolvedReference, "unknown duration type %q", s)
		}
		d.Log, d.Measure = v.Log, v.Measure
	case "dots":
		d.Dots = min(max(r.ReadInt(), 0), score.MaxDots)
	case "duration":
		f := r.ReadFraction()
		*written = &f
	default:
		return false
	}
	return true
}

// actualTicks is the time an element takes. An explicit duration is
// taken as is; a written value is scaled by the enclosing tuplets.
func (r *Reader) actualTicks(d score.Duration, written *fraction.Fraction, t *score.Tuplet) fraction.Fraction {
	if written != nil {
		return *written
	}
	if d.Measure {
		if m := r.measureFor(r.Tick()); m != nil {
			return m.Len
		}
		return fraction.New(r.timeSigNum, r.timeSigDen)
	}
	f := d.Fraction()
	if t != nil {
		f = f.Mul(t.Scale())
	}
	return f
}

func (r *Reader) refTuplet(e score.DurationElement) {
	id := r.ReadInt()
	t := r.FindTuplet(id)
	if t == nil {
		r.diag(DiagUnresolvedReference, "tuplet id %d not found", id)
		return
	}
	t.Add(e)
}

func (r *Reader) refBeam(c *score.Chord) {
	id := r.ReadInt()
	b := r.FindBeam(id)
	if b == nil {
		r.diag(DiagUnresolvedReference, "beam id %d not found", id)
		return
	}
	b.Add(c)
}

var graceNames = map[string]bool{
	"acciaccatura": true,
	"appoggiatura": true,
	"grace4":       true,
	"grace8":       true,
	"grace16":      true,
	"grace32":      true,
	"grace8after":  true,
	"grace16after": true,
	"grace32after": true,
}

func (r *Reader) readChord() {
	c := &score.Chord{
		ElemBase: score.ElemBase{Tick: r.Tick(), Track: r.Track()},
		Duration: score.Duration{Log: 2},
	}
	var written *fraction.Fraction
	for r.ReadNextStartElement() {
		if r.readDuration(&c.Duration, &written) {
			continue
		}
		switch {
		case r.name == "Note":
			r.readNote(c)
		case r.name == "Beam":
			r.refBeam(c)
		case r.name == "Tuplet":
			r.refTuplet(c)
		case graceNames[r.name]:
			c.Grace = true
			r.SkipCurrentElement()
		case r.name == "Articulation":
			c.Articulations = append(c.Articulations, r.readSubtype())
		case r.name == "Lyrics":
			c.Lyrics = append(c.Lyrics, r.readLyrics())
		case r.name == "offset":
			c.Offset = r.ReadPoint()
		case r.name == "color":
			c.Color = r.ReadColor()
		case r.name == "Spanner":
			r.readSpanner(c, -1)
		case r.name == "endSpanner":
			r.readEndSpanner(c)
		case r.name == "Slur":
			r.readSlurRef(c)
		case r.name == "Stem", r.name == "StemDirection", r.name == "Hook", r.name == "visible",
			r.name == "small", r.name == "noStem", r.name == "track", r.name == "staffMove",
			r.name == "BeamMode", r.name == "Arpeggio", r.name == "Tremolo", r.name == "StemSlash":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
	c.Ticks = r.actualTicks(c.Duration, written, c.Tuplet)
	r.placeElement(c)
	if !c.Grace {
		r.IncTick(c.Ticks)
	}
}

func (r *Reader) readRest() {
	rest := &score.Rest{
		ElemBase: score.ElemBase{Tick: r.Tick(), Track: r.Track()},
		Duration: score.Duration{Log: 2},
	}
	var written *fraction.Fraction
	for r.ReadNextStartElement() {
		if r.readDuration(&rest.Duration, &written) {
			continue
		}
		switch r.name {
		case "Tuplet":
			r.refTuplet(rest)
		case "offset":
			rest.Offset = r.ReadPoint()
		case "visible", "small", "track", "staffMove", "BeamMode", "color":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
	rest.Ticks = r.actualTicks(rest.Duration, written, rest.Tuplet)
	if written != nil {
		rest.Len = *written
	} else {
		rest.Len = rest.Duration.Fraction()
	}
	r.placeElement(rest)
	r.IncTick(rest.Ticks)
}

func (r *Reader) readNote(c *score.Chord) {
	n := &score.Note{Chord: c, Pitch: 60, Tpc: 14}
	idx := len(c.Notes)
	c.Notes = append(c.Notes, n)
	for r.ReadNextStartElement() {
		switch r.name {
		case "pitch":
			n.Pitch = r.ReadInt()
		case "tpc":
			n.Tpc = r.ReadInt()
		case "Spanner":
			r.readSpanner(n, idx)
		case "endSpanner":
			r.readEndSpanner(n)
		case "Tie":
			r.readOldSpanner(score.KindTie, n)
		case "offset":
			n.Offset = r.ReadPoint()
		case "color":
			n.Color = r.ReadColor()
		case "tpc2", "velocity", "veloType", "visible", "small", "mirror", "head", "headGroup", "headType",
			"fret", "string", "Accidental", "Symbol", "Fingering", "Events", "play", "tuning", "fixed", "fixedLine":
			r.SkipCurrentElement()
		default:
			r.unknown()
		}
	}
}

// readSubtype returns the subtype child of the current element.
func (r *Reader) readSubtype() string {
	s := ""
	for r.ReadNextStartElement() {
		if r.name == "subtype" {
			s = strings.TrimSpace(r.ReadElementText())
			continue
		}
		r.SkipCurrentElement()
	}
	return s
}

func (r *Reader) readLyrics() string {
	s := ""
	for r.ReadNextStartElement() {
		if r.name == "text" {
			s = r.ReadXML()
			continue
		}
		r.SkipCurrentElement()
	}
	return s
}
