package fraction

import (
	"fmt"
	"strconv"
	"strings"
)

// Division is the number of ticks per quarter note.
const Division = 480

// ticks per whole note.
const wholeTicks = 4 * Division

// Fraction is a time value in whole notes, always kept reduced with a
// positive denominator. The zero value is 0/1.
type Fraction struct {
	num int
	den int
}

var Zero = Fraction{0, 1}

func New(num, den int) Fraction {
	if den == 0 {
		return Zero
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	return Fraction{num / g, den / g}
}

// FromTicks converts a flat tick count to a fraction of a whole note.
func FromTicks(ticks int) Fraction {
	return New(ticks, wholeTicks)
}

func (f Fraction) Num() int {
	return f.num
}

func (f Fraction) Den() int {
	if f.den == 0 {
		return 1
	}
	return f.den
}

// Ticks returns the tick count, rounded half away from zero.
func (f Fraction) Ticks() int {
	d := f.Den()
	if f.num < 0 {
		return -((-f.num*wholeTicks + d/2) / d)
	}
	return (f.num*wholeTicks + d/2) / d
}

// Reduced is the identity: fractions are reduced on construction.
func (f Fraction) Reduced() Fraction {
	return New(f.num, f.Den())
}

func (f Fraction) Add(o Fraction) Fraction {
	return New(f.num*o.Den()+o.num*f.Den(), f.Den()*o.Den())
}

func (f Fraction) Sub(o Fraction) Fraction {
	return f.Add(o.Neg())
}

func (f Fraction) Mul(o Fraction) Fraction {
	return New(f.num*o.num, f.Den()*o.Den())
}

// Div returns f/o; division by zero yields zero.
func (f Fraction) Div(o Fraction) Fraction {
	return New(f.num*o.Den(), f.Den()*o.num)
}

func (f Fraction) Neg() Fraction {
	return Fraction{-f.num, f.Den()}
}

func (f Fraction) Abs() Fraction {
	if f.num < 0 {
		return f.Neg()
	}
	return Fraction{f.num, f.Den()}
}

// Cmp returns -1, 0 or +1.
func (f Fraction) Cmp(o Fraction) int {
	l := f.num * o.Den()
	r := o.num * f.Den()
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func (f Fraction) Less(o Fraction) bool {
	return f.Cmp(o) < 0
}

func (f Fraction) Equal(o Fraction) bool {
	return f.num == o.num && f.Den() == o.Den()
}

func (f Fraction) IsZero() bool {
	return f.num == 0
}

func (f Fraction) Sign() int {
	switch {
	case f.num < 0:
		return -1
	case f.num > 0:
		return 1
	}
	return 0
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.num, f.Den())
}

// Parse accepts "n/d", or a bare integer which is read as ticks.
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexByte(s, '/')
	if i < 0 {
		t, err := strconv.Atoi(s)
		if err != nil {
			return Zero, fmt.Errorf("parse fraction %q: %w", s, err)
		}
		return FromTicks(t), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[:i]))
	if err != nil {
		return Zero, fmt.Errorf("parse fraction %q: %w", s, err)
	}
	d, err := strconv.Atoi(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return Zero, fmt.Errorf("parse fraction %q: %w", s, err)
	}
	return New(n, d), nil
}

// Max returns the later of two fractions.
func Max(a, b Fraction) Fraction {
	if a.Less(b) {
		return b
	}
	return a
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
