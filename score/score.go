package score

import (
	"fmt"
	"sort"

	"go-mscx/fraction"
)

// VOICES is the number of voices per staff; a track is staff*VOICES+voice.
const VOICES = 4

type Score struct {
	Division int
	MetaTags map[string]string

	// Style properties, values kept as verbatim markup.
	Style map[string]string

	Parts    []*Part
	Staves   []*Staff
	Measures []*Measure
	Spanners []*Spanner

	// Tuplets that could not be placed in a measure.
	Orphans []*Tuplet
}

func New() *Score {
	return &Score{
		Division: fraction.Division,
		MetaTags: map[string]string{},
		Style:    map[string]string{},
	}
}

type Part struct {
	Id     int
	Name   string
	Staves []*Staff

	// Instrument definition as verbatim markup.
	Instrument string
}

type Staff struct {
	Idx  int
	Part *Part

	// Index of the staff this one is a linked copy of; -1 if none.
	LinkedTo int
}

type Measure struct {
	Idx  int
	Tick fraction.Fraction
	Len  fraction.Fraction

	// Length came from the len attribute instead of the time signature.
	Irregular bool

	TimeSigNum int
	TimeSigDen int

	Elems   []Element
	Tuplets []*Tuplet
	Beams   []*Beam
}

func (m *Measure) End() fraction.Fraction {
	return m.Tick.Add(m.Len)
}

func (m *Measure) TimeSignature() string {
	return fmt.Sprintf("%d/%d", m.TimeSigNum, m.TimeSigDen)
}

func (m *Measure) Add(e Element) {
	m.Elems = append(m.Elems, e)
}

func (m *Measure) AddTuplet(t *Tuplet) {
	for _, x := range m.Tuplets {
		if x == t {
			return
		}
	}
	m.Tuplets = append(m.Tuplets, t)
}

func (m *Measure) AddBeam(b *Beam) {
	m.Beams = append(m.Beams, b)
}

// ChordAt returns the first chord at the given tick and track.
func (m *Measure) ChordAt(tick fraction.Fraction, track int) *Chord {
	for _, e := range m.Elems {
		c, ok := e.(*Chord)
		if ok && c.Track == track && c.Tick.Equal(tick) {
			return c
		}
	}
	return nil
}

// SortElems orders measure content by tick, then track.
func (m *Measure) SortElems() {
	sort.SliceStable(m.Elems, func(i, j int) bool {
		a, b := m.Elems[i], m.Elems[j]
		if c := a.GetTick().Cmp(b.GetTick()); c != 0 {
			return c < 0
		}
		return a.GetTrack() < b.GetTrack()
	})
}

// AppendMeasure adds a measure after the last one.
func (s *Score) AppendMeasure(length fraction.Fraction) *Measure {
	tick := fraction.Zero
	if n := len(s.Measures); n > 0 {
		tick = s.Measures[n-1].End()
	}
	m := &Measure{
		Idx:  len(s.Measures),
		Tick: tick,
		Len:  length,
	}
	s.Measures = append(s.Measures, m)
	return m
}

func (s *Score) MeasureByIndex(idx int) *Measure {
	if idx < 0 || idx >= len(s.Measures) {
		return nil
	}
	return s.Measures[idx]
}

// MeasureStart returns the absolute start of measure idx.
func (s *Score) MeasureStart(idx int) (fraction.Fraction, bool) {
	m := s.MeasureByIndex(idx)
	if m == nil {
		return fraction.Zero, false
	}
	return m.Tick, true
}

// MeasureAt returns the measure containing tick.
func (s *Score) MeasureAt(tick fraction.Fraction) *Measure {
	i := sort.Search(len(s.Measures), func(i int) bool {
		return tick.Less(s.Measures[i].End())
	})
	if i == len(s.Measures) || tick.Less(s.Measures[i].Tick) {
		return nil
	}
	return s.Measures[i]
}

func (s *Score) LastTick() fraction.Fraction {
	if len(s.Measures) == 0 {
		return fraction.Zero
	}
	return s.Measures[len(s.Measures)-1].End()
}

// Staff returns staff idx, creating staves up to it.
func (s *Score) Staff(idx int) *Staff {
	for len(s.Staves) <= idx {
		s.Staves = append(s.Staves, &Staff{Idx: len(s.Staves), LinkedTo: -1})
	}
	return s.Staves[idx]
}

func (s *Score) ChordAt(tick fraction.Fraction, track int) *Chord {
	m := s.MeasureAt(tick)
	if m == nil {
		return nil
	}
	return m.ChordAt(tick, track)
}

// AddSpanner transfers ownership of sp to the score.
func (s *Score) AddSpanner(sp *Spanner) {
	s.Spanners = append(s.Spanners, sp)
	if sp.Kind != KindTie {
		return
	}
	if n, ok := sp.StartElem.(*Note); ok {
		n.TieFor = sp
	}
	if n, ok := sp.EndElem.(*Note); ok {
		n.TieBack = sp
	}
}

// ResolveSpanners attaches spanner ends given only by position to the
// chord found there.
func (s *Score) ResolveSpanners() {
	for _, sp := range s.Spanners {
		if sp.StartElem == nil {
			if c := s.ChordAt(sp.Tick, sp.Track); c != nil {
				sp.StartElem = c
			}
		}
		if sp.EndElem == nil {
			if c := s.ChordAt(sp.Tick2, sp.Track2); c != nil {
				sp.EndElem = c
			}
		}
	}
}

// AddTuplet places t in the measure containing its start. Adding a
// tuplet twice, or a discarded one, is a no-op.
func (s *Score) AddTuplet(t *Tuplet) {
	if t.discarded {
		return
	}
	if m := s.MeasureAt(t.Tick); m != nil {
		m.AddTuplet(t)
		return
	}
	for _, x := range s.Orphans {
		if x == t {
			return
		}
	}
	s.Orphans = append(s.Orphans, t)
}

func (s *Score) HasTuplet(t *Tuplet) bool {
	for _, m := range s.Measures {
		for _, x := range m.Tuplets {
			if x == t {
				return true
			}
		}
	}
	for _, x := range s.Orphans {
		if x == t {
			return true
		}
	}
	return false
}
