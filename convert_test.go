package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mscx/fraction"
	"go-mscx/mscx"
	"go-mscx/score"
)

const slurDoc = `<?xml version="1.0" encoding="UTF-8"?>
<museScore version="3.01">
  <Score>
    <Part id="1"><Staff id="1"/></Part>
    <Staff id="1">
      <Measure><voice>
        <Spanner type="Slur" id="2"><Slur/><next><location><fractions>1/4</fractions></location></next></Spanner>
        <Chord><durationType>quarter</durationType><Note><pitch>60</pitch><tpc>14</tpc></Note></Chord>
        <Spanner type="Slur" id="2"><prev><location><fractions>-1/4</fractions></location></prev></Spanner>
        <Chord><durationType>quarter</durationType><Note><pitch>62</pitch><tpc>16</tpc></Note></Chord>
        <Rest><durationType>half</durationType></Rest>
      </voice></Measure>
      <Measure><voice>
        <Rest><durationType>measure</durationType></Rest>
      </voice></Measure>
    </Staff>
  </Score>
</museScore>
`

func TestConvert(t *testing.T) {
	sc, diags, err := mscx.ReadData([]byte(slurDoc), mscx.Options{DocName: t.Name()})
	require.NoError(t, err)
	require.Empty(t, diags)

	var out bytes.Buffer
	require.NoError(t, Convert(sc, &out))
	assert.Equal(t, "staffAvoiceA = { \\time 4/4 c'4( d'4) r2 | r1 }\n", out.String())
}

func TestConvertDuration(t *testing.T) {
	tests := []struct {
		d      score.Duration
		actual fraction.Fraction
		want   string
	}{
		{score.Duration{Log: 2}, fraction.New(1, 4), "4"},
		{score.Duration{Log: 3, Dots: 1}, fraction.New(3, 16), "8."},
		{score.Duration{Log: 3}, fraction.New(1, 12), "8*2/3"},
		{score.Duration{Measure: true}, fraction.New(3, 4), "2."},
		{score.Duration{Measure: true}, fraction.New(5, 8), "1*5/8"},
	}
	for _, tt := range tests {
		got := ConvertDuration(tt.d, tt.actual)
		assert.Equal(t, tt.want, got.String(), "%+v %v", tt.d, tt.actual)
	}
}

func TestConvertTie(t *testing.T) {
	c := &score.Chord{Duration: score.Duration{Log: 1}, Ticks: fraction.New(1, 2)}
	c.Notes = []*score.Note{
		{Chord: c, Pitch: 60, Tpc: 14},
		{Chord: c, Pitch: 64, Tpc: 18, TieFor: score.NewSpanner(score.KindTie)},
	}
	got := ConvertChord(c, nil)
	assert.Equal(t, "<c' e'>2~", got.String())
}

func TestInt2Letter(t *testing.T) {
	assert.Equal(t, "A", Int2Letter(0))
	assert.Equal(t, "D", Int2Letter(3))
}
