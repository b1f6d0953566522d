package mscx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-mscx/fraction"
	"go-mscx/score"
)

func TestReadFraction(t *testing.T) {
	tests := []struct {
		doc  string
		want fraction.Fraction
	}{
		{`<f z="3" n="8"/>`, fraction.New(3, 8)},
		{`<f z="2"/>`, fraction.New(2, 1)},
		{`<f>2/4</f>`, fraction.New(1, 2)},
		{`<f>240</f>`, fraction.New(1, 8)},
		{`<f z="1" n="4">3/4</f>`, fraction.New(3, 4)},
		{`<f/>`, fraction.Zero},
		{`<f>1/0</f>`, fraction.Zero},
	}
	for _, tt := range tests {
		r := readerAt(t, tt.doc, testOptions(t))
		got := r.ReadFraction()
		assert.True(t, got.Equal(tt.want), "%s: got %v want %v", tt.doc, got, tt.want)
	}
}

func TestReadPoint(t *testing.T) {
	r := readerAt(t, `<offset x="1.5" y="-2"/>`, testOptions(t))
	assert.Equal(t, score.Point{X: 1.5, Y: -2}, r.ReadPoint())
	assert.Empty(t, r.Diagnostics())

	r = readerAt(t, `<offset x="3"/>`, testOptions(t))
	assert.Equal(t, score.Point{X: 3}, r.ReadPoint())
	assert.Empty(t, r.Diagnostics())

	opts := testOptions(t)
	opts.Strict = true
	r = readerAt(t, `<offset x="3"/>`, opts)
	assert.Equal(t, score.Point{X: 3}, r.ReadPoint())
	assert.Equal(t, 1, r.CountDiagnostics(DiagMissingAttribute))
}

func TestReadGeometry(t *testing.T) {
	r := readerAt(t, `<size w="10" h="4.5"/>`, testOptions(t))
	assert.Equal(t, score.Size{W: 10, H: 4.5}, r.ReadSize())

	r = readerAt(t, `<scale w="0.5" h="2"/>`, testOptions(t))
	assert.Equal(t, score.Scale{W: 0.5, H: 2}, r.ReadScale())

	r = readerAt(t, `<bbox x="1" y="2" w="3" h="4"/>`, testOptions(t))
	assert.Equal(t, score.Rect{X: 1, Y: 2, W: 3, H: 4}, r.ReadRect())

	r = readerAt(t, `<color r="255" g="0" b="16"/>`, testOptions(t))
	assert.Equal(t, score.Color{R: 255, B: 16, A: 255}, r.ReadColor())

	r = readerAt(t, `<color r="1" g="2" b="3" a="4"/>`, testOptions(t))
	assert.Equal(t, score.Color{R: 1, G: 2, B: 3, A: 4}, r.ReadColor())
}

func TestReadScalars(t *testing.T) {
	r := readerAt(t, `<a n="7" d="x" v="2.5"><b/><c>0</c><d> 12 </d><e>9.5</e><f>oops</f></a>`, testOptions(t))
	assert.True(t, r.HasAttribute("n"))
	assert.False(t, r.HasAttribute("m"))
	assert.Equal(t, 7, r.IntAttribute("n", 1))
	assert.Equal(t, 0, r.IntAttribute("d", 1))
	assert.Equal(t, 1, r.IntAttribute("m", 1))
	assert.Equal(t, 2.5, r.DoubleAttribute("v", 0))
	assert.Equal(t, "none", r.Attribute("m", "none"))

	assert.True(t, r.ReadNextStartElement())
	assert.True(t, r.ReadBool())
	assert.True(t, r.ReadNextStartElement())
	assert.False(t, r.ReadBool())
	assert.True(t, r.ReadNextStartElement())
	assert.Equal(t, 12, r.ReadInt())
	assert.True(t, r.ReadNextStartElement())
	assert.Equal(t, 5.0, r.ReadDouble(0, 5))
	assert.True(t, r.ReadNextStartElement())
	assert.Equal(t, 0, r.ReadInt())
	assert.False(t, r.ReadNextStartElement())
}

func TestReadXML(t *testing.T) {
	r := readerAt(t, `<text>a <b class="x">bold</b> &amp; c<br/></text>`, testOptions(t))
	assert.Equal(t, `a <b class="x">bold</b> &amp; c<br></br>`, r.ReadXML())
}

func TestReadElementTextSkipsChildren(t *testing.T) {
	r := readerAt(t, `<name>Pi<sym>x</sym>ano</name>`, testOptions(t))
	assert.Equal(t, "Piano", r.ReadElementText())
}

func TestSkipCurrentElement(t *testing.T) {
	r := readerAt(t, `<a><b><c><d>1</d></c></b><e/></a>`, testOptions(t))
	assert.True(t, r.ReadNextStartElement())
	assert.Equal(t, "b", r.Name())
	r.SkipCurrentElement()
	assert.True(t, r.ReadNextStartElement())
	assert.Equal(t, "e", r.Name())
}
