package main

import (
	"fmt"
	"io"
	"sort"

	"go-mscx/fraction"
	"go-mscx/lily"
	"go-mscx/score"
)

type ElemSequence []linkedElem

func (e ElemSequence) Len() int {
	return len(e)
}

func (e ElemSequence) Less(i, j int) bool {
	if c := e[i].GetTick().Cmp(e[j].GetTick()); c != 0 {
		return c < 0
	}
	return priority(e[i]) < priority(e[j])
}

func (e ElemSequence) Swap(i, j int) {
	e[i], e[j] = e[j], e[i]
}

// priority puts signatures before notes at the same tick.
func priority(e linkedElem) int {
	switch e.GetTypeName() {
	case "Clef", "KeySig", "TimeSig":
		return 0
	case "Chord", "Rest":
		return 20
	}
	return 10
}

type linkedElem struct {
	score.Element

	measure *score.Measure
}

// Convert writes one LilyPond variable per voice that has content.
func Convert(sc *score.Score, w io.Writer) error {
	voices := map[int][]linkedElem{}
	for _, m := range sc.Measures {
		measVoices := map[int][]linkedElem{}
		for _, e := range m.Elems {
			key := e.GetTrack()
			measVoices[key] = append(measVoices[key], linkedElem{Element: e, measure: m})
		}

		for k, v := range measVoices {
			sort.Stable(ElemSequence(v))
			voices[k] = append(voices[k], v...)
		}
	}

	tracks := make([]int, 0, len(voices))
	for k := range voices {
		tracks = append(tracks, k)
	}
	sort.Ints(tracks)

	events := spannerEvents(sc)
	for _, track := range tracks {
		seq := ConvertVoice(voices[track], events)
		staff := track / score.VOICES
		voice := track % score.VOICES
		if _, err := fmt.Fprintf(w, "staff%svoice%s = %v\n", Int2Letter(staff), Int2Letter(voice), seq); err != nil {
			return err
		}
	}
	return nil
}

func Int2Letter(a int) string {
	return string(rune(a + 'A'))
}

// spannerEvents collects the post-events slurs and hairpins put on the
// chords they start and end on.
func spannerEvents(sc *score.Score) map[*score.Chord][]string {
	events := map[*score.Chord][]string{}
	add := func(e score.Element, ev string) {
		var c *score.Chord
		switch t := e.(type) {
		case *score.Chord:
			c = t
		case *score.Note:
			c = t.Chord
		}
		if c != nil {
			events[c] = append(events[c], ev)
		}
	}
	for _, sp := range sc.Spanners {
		switch sp.Kind {
		case score.KindSlur:
			add(sp.StartElem, "(")
			add(sp.EndElem, ")")
		case score.KindHairPin:
			add(sp.StartElem, "\\<")
			add(sp.EndElem, "\\!")
		}
	}
	return events
}

// ConvertDuration spells an element's written value. Where the actual
// length differs, as in tuplets, it adds a scale factor.
func ConvertDuration(d score.Duration, actual fraction.Fraction) (dur lily.Duration) {
	written := d.Fraction()
	if d.Measure || written.IsZero() {
		if w, ok := score.DurationFromFraction(actual); ok {
			d, written = w, actual
		} else {
			d, written = score.Duration{Log: 0}, fraction.New(1, 1)
		}
	}
	dur.DurationLog = d.Log
	dur.Dots = d.Dots
	if !actual.IsZero() && !actual.Equal(written) {
		f := actual.Div(written)
		dur.FactorNum, dur.FactorDen = f.Num(), f.Den()
	}
	return dur
}

func ConvertChord(c *score.Chord, events map[*score.Chord][]string) *lily.Chord {
	ch := &lily.Chord{Duration: ConvertDuration(c.Duration, c.Ticks)}
	tied := false
	for _, n := range c.Notes {
		ch.Pitch = append(ch.Pitch, lily.PitchFromTpc(n.Tpc, n.Pitch))
		if n.TieFor != nil {
			tied = true
		}
	}
	if tied {
		ch.PostEvents = append(ch.PostEvents, "~")
	}
	ch.PostEvents = append(ch.PostEvents, events[c]...)
	return ch
}

func ConvertVoice(elems []linkedElem, events map[*score.Chord][]string) lily.Elem {
	seq := lily.Seq{}
	var lastMeasure *score.Measure
	lastSig := ""
	for _, e := range elems {
		if e.measure != lastMeasure {
			if lastMeasure != nil {
				seq.Elems = append(seq.Elems, &lily.BarCheck{})
			}
			if sig := e.measure.TimeSignature(); sig != lastSig {
				seq.Elems = append(seq.Elems, &lily.TimeSignature{
					Num: e.measure.TimeSigNum,
					Den: e.measure.TimeSigDen,
				})
				lastSig = sig
			}
			lastMeasure = e.measure
		}

		switch t := e.Element.(type) {
		case *score.Chord:
			if t.Grace {
				continue
			}
			seq.Elems = append(seq.Elems, ConvertChord(t, events))
		case *score.Rest:
			seq.Elems = append(seq.Elems, &lily.Rest{Duration: ConvertDuration(t.Duration, t.Ticks)})
		default:
			continue
		}
	}
	return &seq
}
