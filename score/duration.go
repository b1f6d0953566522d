package score

import (
	"go-mscx/fraction"
)

// Duration is a written note value: Log 0 = whole, 2 = quarter, -1 =
// breve.
type Duration struct {
	Log  int
	Dots int

	// Whole-measure rest; length comes from the measure.
	Measure bool
}

// MaxDots is the most dots a written value may carry.
const MaxDots = 4

var durationNames = map[string]int{
	"longa":   -2,
	"breve":   -1,
	"whole":   0,
	"half":    1,
	"quarter": 2,
	"eighth":  3,
	"16th":    4,
	"32nd":    5,
	"64th":    6,
	"128th":   7,
	"256th":   8,
}

func ParseDurationType(s string) (Duration, bool) {
	if s == "measure" {
		return Duration{Measure: true}, true
	}
	l, ok := durationNames[s]
	if !ok {
		return Duration{Log: 2}, false
	}
	return Duration{Log: l}, true
}

func (d Duration) Name() string {
	if d.Measure {
		return "measure"
	}
	for n, l := range durationNames {
		if l == d.Log {
			return n
		}
	}
	return ""
}

// Fraction is the written length, dots included. A measure duration has
// no intrinsic length and returns zero.
func (d Duration) Fraction() fraction.Fraction {
	if d.Measure {
		return fraction.Zero
	}
	var f fraction.Fraction
	if d.Log >= 0 {
		f = fraction.New(1, 1<<uint(d.Log))
	} else {
		f = fraction.New(1<<uint(-d.Log), 1)
	}
	add := f
	for i := 0; i < min(d.Dots, MaxDots); i++ {
		add = add.Mul(fraction.New(1, 2))
		f = f.Add(add)
	}
	return f
}

// DurationFromFraction finds a written value of exactly length f, with
// at most two dots.
func DurationFromFraction(f fraction.Fraction) (Duration, bool) {
	for l := -2; l <= 8; l++ {
		for dots := 0; dots <= 2; dots++ {
			d := Duration{Log: l, Dots: dots}
			if d.Fraction().Equal(f) {
				return d, true
			}
		}
	}
	return Duration{}, false
}
