package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mscx/fraction"
)

func triplet() *Tuplet {
	t := NewTuplet()
	t.Id = 1
	t.Actual, t.Normal = 3, 2
	t.Ticks = t.NominalTicks()
	return t
}

func chordAt(tick, ticks fraction.Fraction) *Chord {
	return &Chord{ElemBase: ElemBase{Tick: tick}, Ticks: ticks}
}

func TestTupletScale(t *testing.T) {
	outer := triplet()
	outer.BaseLen = Duration{Log: 2}
	inner := triplet()
	outer.Add(inner)

	assert.Equal(t, "2/3", outer.Scale().String())
	assert.Equal(t, "4/9", inner.Scale().String())
	assert.Equal(t, "1/6", inner.NominalTicks().String())
	assert.Same(t, outer, inner.GetTuplet())
}

func TestTupletSortAndSanitize(t *testing.T) {
	tu := triplet()
	third := fraction.New(1, 12)
	a := chordAt(fraction.New(1, 6), third)
	b := chordAt(fraction.Zero, third)
	tu.Add(a)
	tu.Add(b)
	tu.SortElements()
	assert.Same(t, b, tu.Elements[0])

	assert.False(t, tu.Sanitize())
	tu.Add(chordAt(fraction.New(1, 12), fraction.New(1, 4)))
	assert.True(t, tu.Sanitize())
	assert.Equal(t, "5/12", tu.Ticks.String())
	assert.Len(t, tu.Elements, 3)

	bad := NewTuplet()
	bad.Actual = 0
	assert.True(t, bad.Sanitize())
	assert.Equal(t, "1/1", bad.Ratio().String())
}

func TestTupletAddMissingElements(t *testing.T) {
	tu := triplet()
	tu.Tick = fraction.New(1, 2)
	third := fraction.New(1, 12)
	tu.Add(chordAt(fraction.New(7, 12), third))

	rests := tu.AddMissingElements()
	require.Len(t, rests, 2)
	assert.Equal(t, "1/2", rests[0].Tick.String())
	assert.Equal(t, "2/3", rests[1].Tick.String())
	assert.Equal(t, "1/12", rests[1].Ticks.String())
	assert.Equal(t, Duration{Log: 3}, rests[0].Duration)
	require.Len(t, tu.Elements, 3)
	assert.Same(t, rests[0], tu.Elements[0])
	assert.Same(t, tu, rests[1].Tuplet)

	assert.Empty(t, tu.AddMissingElements())
}

func TestTupletDiscard(t *testing.T) {
	s := New()
	s.AppendMeasure(fraction.New(1, 1))
	outer := triplet()
	inner := triplet()
	outer.Add(inner)

	inner.Discard()
	assert.Empty(t, outer.Elements)
	assert.True(t, inner.Discarded())
	s.AddTuplet(inner)
	assert.False(t, s.HasTuplet(inner))

	s.AddTuplet(outer)
	s.AddTuplet(outer)
	assert.Len(t, s.Measures[0].Tuplets, 1)

	late := triplet()
	late.Tick = fraction.New(2, 1)
	s.AddTuplet(late)
	assert.Equal(t, []*Tuplet{late}, s.Orphans)
}
