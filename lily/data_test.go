package lily

import (
	"testing"
)

func TestDuration(t *testing.T) {
	d := Duration{DurationLog: 2, Dots: 1}
	got := d.String()
	want := "4."
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}

	d = Duration{DurationLog: 3, FactorNum: 2, FactorDen: 3}
	if got, want := d.String(), "8*2/3"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestNote(t *testing.T) {
	n := Note{
		Pitch{Octave: 2, Notename: 3, Alteration: -1},
		Duration{DurationLog: 2, Dots: 1},
	}
	got := n.String()
	want := "fes'''4."
	if got != want {
		t.Errorf("got %s want %s", got, want)
	}
}

func TestPitchFromTpc(t *testing.T) {
	tests := []struct {
		tpc, midi int
		want      string
	}{
		{14, 60, "c'"},
		{20, 66, "fis'"},
		{12, 58, "bes"},
		{26, 60, "bis"},
		{16, 38, "d,"},
		{9, 73, "des''"},
	}
	for _, tt := range tests {
		p := PitchFromTpc(tt.tpc, tt.midi)
		if got := p.String(); got != tt.want {
			t.Errorf("PitchFromTpc(%d, %d) = %s want %s", tt.tpc, tt.midi, got, tt.want)
		}
		if got := p.SemitonePitch() + 60; got != tt.midi {
			t.Errorf("PitchFromTpc(%d, %d) sounds %d", tt.tpc, tt.midi, got)
		}
	}
}

func TestChord(t *testing.T) {
	c := Chord{
		Pitch:      []Pitch{{Notename: 0}, {Notename: 2}},
		Duration:   Duration{DurationLog: 1},
		PostEvents: []string{"~", "("},
	}
	if got, want := c.String(), "<c' e'>2~("; got != want {
		t.Errorf("got %s want %s", got, want)
	}

	s := Seq{Compound{[]Elem{&TimeSignature{3, 4}, &c, &BarCheck{}, &Rest{Duration{DurationLog: 0}}}}}
	if got, want := s.String(), "{ \\time 3/4 <c' e'>2~( | r1 }"; got != want {
		t.Errorf("got %s want %s", got, want)
	}
}
