package mscx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"go-mscx/fraction"
	"go-mscx/score"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testOptions(t *testing.T) Options {
	return Options{DocName: t.Name(), Logger: zaptest.NewLogger(t)}
}

// newTestReader returns a reader over doc whose score already has the
// given number of 4/4 measures.
func newTestReader(t *testing.T, doc string, measures int) *Reader {
	sc := score.New()
	for i := 0; i < measures; i++ {
		sc.AppendMeasure(fraction.New(1, 1))
	}
	return NewReader(strings.NewReader(doc), sc, testOptions(t))
}

// readerAt returns a reader positioned on the root element of doc.
func readerAt(t *testing.T, doc string, opts Options) *Reader {
	r := NewReader(strings.NewReader(doc), nil, opts)
	require.True(t, r.ReadNextStartElement())
	return r
}

func at(track, measure int, time fraction.Fraction) Location {
	l := Absolute()
	l.Track, l.Measure, l.Time = track, measure, time
	return l
}

func rel(track int, time fraction.Fraction) *Location {
	l := Relative()
	l.Track, l.Time = track, time
	return &l
}

func q(n int) fraction.Fraction {
	return fraction.New(n, 4)
}
