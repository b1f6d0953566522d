package score

import (
	"go-mscx/fraction"
)

// Anchor is one resolved end of a connector.
type Anchor struct {
	Tick  fraction.Fraction
	Track int

	// Element the end is attached to; may be nil.
	Elem Element
}

// Connector is an object assembled from connector fragments. Attach
// hands it to the score once both ends are known.
type Connector interface {
	ConnectorKind() string

	// Whether the score takes the object even when its chain never
	// completes.
	KeepsUnfinished() bool

	Attach(s *Score, start, end Anchor)
}

type SpannerKind int

const (
	KindTie SpannerKind = iota
	KindSlur
	KindHairPin
	KindOttava
	KindPedal
	KindTextLine
	KindTrill
	KindVolta
	KindLetRing
	KindVibrato
	KindPalmMute
	KindGlissando
)

var spannerNames = []string{
	KindTie:       "Tie",
	KindSlur:      "Slur",
	KindHairPin:   "HairPin",
	KindOttava:    "Ottava",
	KindPedal:     "Pedal",
	KindTextLine:  "TextLine",
	KindTrill:     "Trill",
	KindVolta:     "Volta",
	KindLetRing:   "LetRing",
	KindVibrato:   "Vibrato",
	KindPalmMute:  "PalmMute",
	KindGlissando: "Glissando",
}

func (k SpannerKind) String() string {
	if int(k) < len(spannerNames) {
		return spannerNames[k]
	}
	return "Spanner"
}

func ParseSpannerKind(s string) (SpannerKind, bool) {
	for i, n := range spannerNames {
		if n == s {
			return SpannerKind(i), true
		}
	}
	return 0, false
}

type Spanner struct {
	Kind SpannerKind
	Id   int

	Tick   fraction.Fraction
	Tick2  fraction.Fraction
	Track  int
	Track2 int

	StartElem Element
	EndElem   Element

	// Properties as verbatim markup.
	Props map[string]string
}

func NewSpanner(k SpannerKind) *Spanner {
	return &Spanner{
		Kind:  k,
		Id:    -1,
		Props: map[string]string{},
	}
}

func (sp *Spanner) GetTypeName() string {
	return sp.Kind.String()
}

func (sp *Spanner) Len() fraction.Fraction {
	return sp.Tick2.Sub(sp.Tick)
}

func (sp *Spanner) ConnectorKind() string {
	return sp.Kind.String()
}

func (sp *Spanner) KeepsUnfinished() bool {
	return false
}

// Attach sets both ends and adds the spanner to the score. Ends without
// an element are resolved later by Score.ResolveSpanners.
func (sp *Spanner) Attach(s *Score, start, end Anchor) {
	sp.Tick, sp.Track = start.Tick, start.Track
	sp.Tick2, sp.Track2 = end.Tick, end.Track
	sp.StartElem = start.Elem
	sp.EndElem = end.Elem
	s.AddSpanner(sp)
}
