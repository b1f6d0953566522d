package mscx

import (
	"go-mscx/score"
)

// readSpanner reads one fragment of a connector written as
// <Spanner type="..." id="...">. The start fragment carries the object
// body; each fragment may declare where its neighbours are. noteIdx is
// the index of the carrying note within its chord, or -1.
func (r *Reader) readSpanner(elem score.Element, noteIdx int) {
	typ, ok := r.attr("type")
	if !ok {
		r.missing("type")
		return
	}
	kind, isSpanner := score.ParseSpannerKind(typ)
	if !isSpanner && typ != "Tuplet" {
		r.unknown()
		return
	}
	f := Fragment{
		ID:     r.IntAttribute("id", -1),
		Kind:   typ,
		Anchor: r.Location(false),
		Elem:   elem,
	}
	if noteIdx >= 0 {
		f.Anchor.Note = noteIdx
	}
	for r.ReadNextStartElement() {
		switch r.name {
		case typ:
			if isSpanner {
				sp := score.NewSpanner(kind)
				sp.Id = f.ID
				r.readProps(sp.Props)
				f.Object = sp
			} else {
				f.Object = r.readTupletBody()
			}
		case "next":
			l := r.readConnectorEnd()
			f.Next = &l
		case "prev":
			l := r.readConnectorEnd()
			f.Prev = &l
		default:
			r.unknown()
		}
	}
	r.AddConnectorInfo(f)
}

// readConnectorEnd reads a <next> or <prev> element. A missing location
// means the neighbour sits at the same place.
func (r *Reader) readConnectorEnd() Location {
	l := Relative()
	for r.ReadNextStartElement() {
		if r.name == "location" {
			l = r.ReadLocation()
			continue
		}
		r.unknown()
	}
	return l
}

// readOldSpanner reads a spanner definition that is ended later by an
// <endSpanner id="..."/> reference.
func (r *Reader) readOldSpanner(kind score.SpannerKind, elem score.Element) {
	if !r.HasAttribute("id") {
		r.missing("id")
		return
	}
	sp := score.NewSpanner(kind)
	sp.Id = r.IntAttribute("id", -1)
	sp.Tick, sp.Track = r.Tick(), r.Track()
	sp.StartElem = elem
	r.readProps(sp.Props)
	r.AddSpanner(sp.Id, sp)
	if v := r.SpannerValues(sp.Id); v != nil {
		end := score.Anchor{Tick: v.Tick2, Track: v.Track2, Elem: v.Elem}
		r.removeSpannerValues(sp.Id)
		r.finishSpanner(sp, end)
	}
}

func (r *Reader) readEndSpanner(elem score.Element) {
	id := r.IntAttribute("id", -1)
	r.SkipCurrentElement()
	sp := r.FindSpanner(id)
	if sp == nil {
		r.AddSpannerValues(SpannerValues{ID: id, Tick2: r.Tick(), Track2: r.Track(), Elem: elem})
		return
	}
	r.finishSpanner(sp, score.Anchor{Tick: r.Tick(), Track: r.Track(), Elem: elem})
}

// readSlurRef reads <Slur type="start|stop" id="..."/> inside a chord.
func (r *Reader) readSlurRef(c *score.Chord) {
	id := r.IntAttribute("id", -1)
	typ := r.Attribute("type", "")
	r.SkipCurrentElement()
	sp := r.FindSpanner(id)
	if sp == nil {
		r.diag(DiagUnresolvedReference, "slur id %d not found", id)
		return
	}
	switch typ {
	case "start":
		sp.Tick, sp.Track = c.Tick, c.Track
		sp.StartElem = c
	case "stop":
		r.finishSpanner(sp, score.Anchor{Tick: c.Tick, Track: c.Track, Elem: c})
	default:
		r.diag(DiagMissingAttribute, "<Slur>: bad type %q", typ)
	}
}

func (r *Reader) finishSpanner(sp *score.Spanner, end score.Anchor) {
	r.RemoveSpanner(sp)
	start := score.Anchor{Tick: sp.Tick, Track: sp.Track, Elem: sp.StartElem}
	sp.Attach(r.score, start, end)
}
