package fraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReduces(t *testing.T) {
	tests := []struct {
		num, den int
		want     string
	}{
		{2, 4, "1/2"},
		{-3, -6, "1/2"},
		{3, -6, "-1/2"},
		{0, 7, "0/1"},
		{5, 0, "0/1"},
		{6, 3, "2/1"},
	}
	for _, tt := range tests {
		got := New(tt.num, tt.den)
		assert.Equal(t, tt.want, got.String(), "New(%d, %d)", tt.num, tt.den)
		assert.Greater(t, got.Den(), 0)
		assert.Equal(t, got, got.Reduced())
	}
}

func TestZeroValue(t *testing.T) {
	var f Fraction
	assert.True(t, f.Equal(Zero))
	assert.Equal(t, 1, f.Den())
	assert.Equal(t, "1/4", f.Add(New(1, 4)).String())
}

func TestArithmetic(t *testing.T) {
	a := New(1, 4)
	b := New(1, 6)
	assert.Equal(t, "5/12", a.Add(b).String())
	assert.Equal(t, "1/12", a.Sub(b).String())
	assert.Equal(t, "1/24", a.Mul(b).String())
	assert.Equal(t, "3/2", a.Div(b).String())
	assert.Equal(t, "0/1", a.Div(Zero).String())
	assert.Equal(t, "1/4", a.Neg().Abs().String())
}

func TestOrdering(t *testing.T) {
	a := New(1, 3)
	b := New(2, 5)
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(New(2, 6)))
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.Equal(t, b, Max(a, b))
	assert.Equal(t, -1, New(-1, 8).Sign())
}

func TestTicks(t *testing.T) {
	assert.Equal(t, 480, New(1, 4).Ticks())
	assert.Equal(t, 1920, New(1, 1).Ticks())
	assert.Equal(t, 160, New(1, 12).Ticks())
	assert.Equal(t, -240, New(-1, 8).Ticks())
	// 1920/7 = 274.28...
	assert.Equal(t, 274, New(1, 7).Ticks())
	assert.Equal(t, "1/4", FromTicks(480).String())
	assert.Equal(t, "3/8", FromTicks(720).String())
}

func TestParse(t *testing.T) {
	f, err := Parse("3/4")
	require.NoError(t, err)
	assert.Equal(t, "3/4", f.String())

	f, err = Parse(" 960 ")
	require.NoError(t, err)
	assert.Equal(t, "1/2", f.String())

	f, err = Parse("-2/8")
	require.NoError(t, err)
	assert.Equal(t, "-1/4", f.String())

	_, err = Parse("x/4")
	assert.Error(t, err)
	_, err = Parse("")
	assert.Error(t, err)
}
