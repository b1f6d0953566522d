package mscx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-mscx/fraction"
)

func TestRelativeLocationChangesTrackOnly(t *testing.T) {
	r := newTestReader(t, "", 2)
	r.setMeasure(r.Score().MeasureByIndex(1))
	r.IncTick(q(1))

	require.NoError(t, r.SetLocation(*rel(1, fraction.Zero)))
	assert.Equal(t, 1, r.Track())
	assert.True(t, r.Tick().Equal(q(5)))
	assert.True(t, r.RTick().Equal(q(1)))
	assert.Equal(t, 2400, r.IntTick())
}

func TestRelativeLocationMovesTime(t *testing.T) {
	r := newTestReader(t, "", 2)
	r.setMeasure(r.Score().MeasureByIndex(1))
	r.SetTrack(4)

	require.NoError(t, r.SetLocation(*rel(-1, fraction.New(3, 8))))
	assert.Equal(t, 3, r.Track())
	assert.True(t, r.Tick().Equal(fraction.New(11, 8)))
	assert.Empty(t, r.Diagnostics())
}

func TestLocationMismatch(t *testing.T) {
	for _, strict := range []bool{false, true} {
		opts := testOptions(t)
		opts.Strict = strict
		r := NewReader(strings.NewReader(""), nil, opts)
		r.Score().AppendMeasure(fraction.New(1, 1))
		r.Score().AppendMeasure(fraction.New(1, 1))
		r.setMeasure(r.Score().MeasureByIndex(0))

		err := r.SetLocation(at(0, 1, q(1)))
		assert.Equal(t, 1, r.CountDiagnostics(DiagLocationMismatch))
		if strict {
			assert.True(t, errors.Is(err, ErrLocationMismatch))
		} else {
			assert.NoError(t, err)
		}
		assert.True(t, r.Tick().Equal(q(1)), "time is taken relative to the current measure")
	}
}

func TestFillLocation(t *testing.T) {
	r := newTestReader(t, "", 2)
	r.setMeasure(r.Score().MeasureByIndex(1))
	r.IncTick(fraction.New(1, 8))
	r.SetTrack(2)

	l := r.Location(false)
	assert.Equal(t, 1, l.Measure)
	assert.Equal(t, 2, l.Track)
	assert.True(t, l.Time.Equal(fraction.New(1, 8)))

	abs := r.Location(true)
	assert.Equal(t, 0, abs.Measure)
	assert.True(t, abs.Time.Equal(fraction.New(9, 8)))

	partial := Absolute()
	partial.Track = 6
	r.FillLocation(&partial, false)
	assert.Equal(t, 6, partial.Track)
	assert.Equal(t, 1, partial.Measure)
}

func TestPasteOffsets(t *testing.T) {
	r := newTestReader(t, "", 4)
	r.SetPasteMode(true)
	r.SetTickOffset(fraction.New(2, 1))
	r.SetTrackOffset(4)
	r.SetTick(q(1))
	r.SetTrack(1)

	assert.True(t, r.Tick().Equal(q(9)))
	assert.Equal(t, 5, r.Track())
	l := r.Location(false)
	assert.Equal(t, 0, l.Measure)
	assert.True(t, l.Time.Equal(q(9)))

	require.NoError(t, r.SetLocation(at(6, 0, q(10))))
	assert.True(t, r.Tick().Equal(q(10)))
	assert.Equal(t, 6, r.Track())
	assert.Empty(t, r.Diagnostics())
}
