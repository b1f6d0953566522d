package score

import (
	"sort"

	"go-mscx/fraction"
)

// Tuplet is a ratio grouping: Actual notes in the time of Normal notes
// of BaseLen. Tuplets nest; Parent is the enclosing one.
type Tuplet struct {
	ElemBase
	Id      int
	Actual  int
	Normal  int
	BaseLen Duration

	// Actual length in score time.
	Ticks fraction.Fraction

	Elements []DurationElement
	Parent   *Tuplet
	Props    map[string]string

	// Far end, when the tuplet was read as a connector.
	Tick2  fraction.Fraction
	Track2 int

	discarded bool
}

func NewTuplet() *Tuplet {
	return &Tuplet{
		Id:      -1,
		Actual:  1,
		Normal:  1,
		BaseLen: Duration{Log: 3},
		Props:   map[string]string{},
	}
}

func (t *Tuplet) GetTypeName() string {
	return "Tuplet"
}

func (t *Tuplet) ActualTicks() fraction.Fraction {
	return t.Ticks
}

func (t *Tuplet) GetTuplet() *Tuplet {
	return t.Parent
}

func (t *Tuplet) setTuplet(p *Tuplet) {
	t.Parent = p
}

func (t *Tuplet) Ratio() fraction.Fraction {
	return fraction.New(t.Actual, t.Normal)
}

func (t *Tuplet) ratio() (actual, normal int) {
	if t.Actual <= 0 || t.Normal <= 0 {
		return 1, 1
	}
	return t.Actual, t.Normal
}

// Scale is the factor from written to actual length for direct members,
// accumulated over the nesting chain.
func (t *Tuplet) Scale() fraction.Fraction {
	a, n := t.ratio()
	s := fraction.New(n, a)
	if t.Parent != nil {
		s = s.Mul(t.Parent.Scale())
	}
	return s
}

// NominalTicks is the actual length implied by BaseLen and Normal.
func (t *Tuplet) NominalTicks() fraction.Fraction {
	_, n := t.ratio()
	f := t.BaseLen.Fraction().Mul(fraction.New(n, 1))
	if t.Parent != nil {
		f = f.Mul(t.Parent.Scale())
	}
	return f
}

func (t *Tuplet) Add(e DurationElement) {
	e.setTuplet(t)
	t.Elements = append(t.Elements, e)
}

func (t *Tuplet) Remove(e DurationElement) {
	for i, x := range t.Elements {
		if x == e {
			t.Elements = append(t.Elements[:i], t.Elements[i+1:]...)
			e.setTuplet(nil)
			return
		}
	}
}

// SortElements orders members by tick. Nested tuplets can be populated
// out of time order.
func (t *Tuplet) SortElements() {
	sort.SliceStable(t.Elements, func(i, j int) bool {
		return t.Elements[i].GetTick().Less(t.Elements[j].GetTick())
	})
}

// Sanitize repairs the ratio and the recorded length so they agree with
// the members. Members are never removed.
func (t *Tuplet) Sanitize() bool {
	changed := false
	if t.Actual <= 0 || t.Normal <= 0 {
		t.Actual, t.Normal = 1, 1
		changed = true
	}
	var sum fraction.Fraction
	for _, e := range t.Elements {
		sum = sum.Add(e.ActualTicks())
	}
	if t.Ticks.Less(sum) {
		t.Ticks = sum
		changed = true
	}
	return changed
}

// AddMissingElements fills gaps between members, and after the last one,
// with generated rests. It returns the rests it added.
func (t *Tuplet) AddMissingElements() []*Rest {
	scale := t.Scale()
	var added []*Rest
	fill := func(at, length fraction.Fraction) {
		r := &Rest{
			ElemBase:  ElemBase{Tick: at, Track: t.Track},
			Ticks:     length,
			Len:       length.Div(scale),
			Generated: true,
		}
		r.Duration, _ = DurationFromFraction(r.Len)
		added = append(added, r)
	}

	pos := t.Tick
	for _, e := range t.Elements {
		if pos.Less(e.GetTick()) {
			fill(pos, e.GetTick().Sub(pos))
		}
		pos = fraction.Max(pos, e.GetTick().Add(e.ActualTicks()))
	}
	if end := t.Tick.Add(t.Ticks); pos.Less(end) {
		fill(pos, end.Sub(pos))
	}

	for _, r := range added {
		t.Add(r)
	}
	if len(added) > 0 {
		t.SortElements()
	}
	return added
}

// Discard detaches an unusable tuplet from its parent; the score will
// not accept it afterwards.
func (t *Tuplet) Discard() {
	if t.Parent != nil {
		t.Parent.Remove(t)
	}
	t.discarded = true
}

func (t *Tuplet) Discarded() bool {
	return t.discarded
}

func (t *Tuplet) ConnectorKind() string {
	return "Tuplet"
}

func (t *Tuplet) KeepsUnfinished() bool {
	return true
}

func (t *Tuplet) Attach(s *Score, start, end Anchor) {
	if t.discarded {
		return
	}
	t.Tick2, t.Track2 = end.Tick, end.Track
	s.AddTuplet(t)
}
