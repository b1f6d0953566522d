package mscx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-mscx/fraction"
)

func TestToAbsolute(t *testing.T) {
	ref := at(5, 3, fraction.New(3, 8))
	offsets := []Location{
		*rel(0, fraction.Zero),
		*rel(2, fraction.New(1, 4)),
		*rel(-5, fraction.New(-3, 8)),
		{Track: 1, Time: fraction.New(1, 16), Measure: -2, Grace: unset, Note: unset, Relative: true},
	}
	for _, off := range offsets {
		got := off.ToAbsolute(ref)
		assert.True(t, got.IsAbsolute(), "%v", off)
		assert.Equal(t, ref.Track+off.Track, got.Track, "%v", off)
		assert.Equal(t, ref.Measure+off.Measure, got.Measure, "%v", off)
		assert.True(t, got.Time.Equal(ref.Time.Add(off.Time)), "%v", off)

		back := got.ToRelative(ref)
		assert.Equal(t, off.Track, back.Track)
		assert.Equal(t, off.Measure, back.Measure)
		assert.True(t, back.Time.Equal(off.Time))

		assert.Equal(t, got, got.ToAbsolute(ref), "absolute locations are unchanged")
	}
}

func TestMergeKeepsSetFields(t *testing.T) {
	src := at(4, 2, fraction.New(1, 2))
	src.Note = 1

	l := Absolute()
	l.Track = 7
	got := l.Merge(src)
	assert.Equal(t, 7, got.Track)
	assert.Equal(t, 2, got.Measure)
	assert.Equal(t, 1, got.Note)
	assert.True(t, got.Time.Equal(fraction.New(1, 2)))
	assert.Equal(t, unset, got.Grace)

	full := at(1, 1, fraction.New(1, 4))
	full.Grace, full.Note = 0, 0
	assert.Equal(t, full, full.Merge(src))
}

func TestLocationParts(t *testing.T) {
	l := at(9, 0, fraction.Zero)
	assert.Equal(t, 2, l.Staff())
	assert.Equal(t, 1, l.Voice())
	assert.True(t, l.TrackSet())
	assert.False(t, Absolute().TimeSet())
	assert.False(t, Absolute().MeasureSet())
	assert.True(t, Relative().TimeSet())
	assert.Equal(t, "abs{track -, time -, measure -}", Absolute().String())
}

func TestReadLocation(t *testing.T) {
	r := readerAt(t, `<location><staves>1</staves><voices>2</voices><measures>-1</measures><fractions>3/8</fractions><notes>1</notes><bogus/></location>`, testOptions(t))
	l := r.ReadLocation()
	assert.True(t, l.IsRelative())
	assert.Equal(t, 6, l.Track)
	assert.Equal(t, -1, l.Measure)
	assert.Equal(t, 1, l.Note)
	assert.True(t, l.Time.Equal(fraction.New(3, 8)))
	assert.Equal(t, 1, r.CountDiagnostics(DiagUnknownElement))
}
