package mscx

import (
	"fmt"
	"math"

	"go-mscx/fraction"
	"go-mscx/score"
)

const unset = math.MinInt32

var unsetTime = fraction.New(unset, 1)

// Location addresses a point in the score: a track, a time and a
// measure index, plus optional grace and note indexes. An absolute
// location's Time is relative to its measure (or to the score start in
// paste mode); a relative location holds offsets from another location.
type Location struct {
	Track    int
	Time     fraction.Fraction
	Measure  int
	Grace    int
	Note     int
	Relative bool
}

// Absolute returns an absolute location with every field unset.
func Absolute() Location {
	return Location{
		Track:   unset,
		Time:    unsetTime,
		Measure: unset,
		Grace:   unset,
		Note:    unset,
	}
}

// Relative returns a zero offset.
func Relative() Location {
	return Location{
		Time:     fraction.Zero,
		Grace:    unset,
		Note:     unset,
		Relative: true,
	}
}

func (l Location) IsRelative() bool {
	return l.Relative
}

func (l Location) IsAbsolute() bool {
	return !l.Relative
}

func (l Location) TrackSet() bool {
	return l.Track != unset
}

func (l Location) TimeSet() bool {
	return !l.Time.Equal(unsetTime)
}

func (l Location) MeasureSet() bool {
	return l.Measure != unset
}

func (l Location) Staff() int {
	return l.Track / score.VOICES
}

func (l Location) Voice() int {
	return l.Track % score.VOICES
}

// ToAbsolute resolves a relative location against ref, which must be
// absolute. Absolute locations are returned unchanged.
func (l Location) ToAbsolute(ref Location) Location {
	if !l.Relative {
		return l
	}
	l.Track += ref.Track
	l.Time = ref.Time.Add(l.Time)
	l.Measure += ref.Measure
	l.Relative = false
	return l
}

// ToRelative expresses l as an offset from ref.
func (l Location) ToRelative(ref Location) Location {
	if l.Relative {
		return l
	}
	l.Track -= ref.Track
	l.Time = l.Time.Sub(ref.Time)
	l.Measure -= ref.Measure
	l.Relative = true
	return l
}

// Merge fills the fields of l that are still unset from src.
func (l Location) Merge(src Location) Location {
	if l.Track == unset {
		l.Track = src.Track
	}
	if l.Time.Equal(unsetTime) {
		l.Time = src.Time
	}
	if l.Measure == unset {
		l.Measure = src.Measure
	}
	if l.Grace == unset {
		l.Grace = src.Grace
	}
	if l.Note == unset {
		l.Note = src.Note
	}
	return l
}

func (l Location) String() string {
	mode := "abs"
	if l.Relative {
		mode = "rel"
	}
	f := func(v int) string {
		if v == unset {
			return "-"
		}
		return fmt.Sprint(v)
	}
	t := "-"
	if l.TimeSet() {
		t = l.Time.String()
	}
	return fmt.Sprintf("%s{track %s, time %s, measure %s}", mode, f(l.Track), t, f(l.Measure))
}

// ReadLocation reads a <location> element into a relative location.
func (r *Reader) ReadLocation() Location {
	l := Relative()
	staves, voices := 0, 0
	for r.ReadNextStartElement() {
		switch r.Name() {
		case "staves":
			staves = r.ReadInt()
		case "voices":
			voices = r.ReadInt()
		case "measures":
			l.Measure = r.ReadInt()
		case "fractions":
			l.Time = r.ReadFraction()
		case "grace":
			l.Grace = r.ReadInt()
		case "notes":
			l.Note = r.ReadInt()
		default:
			r.unknown()
		}
	}
	l.Track = staves*score.VOICES + voices
	return l
}
