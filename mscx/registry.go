package mscx

import (
	"go-mscx/fraction"
	"go-mscx/score"
)

// spannerEntry associates a document id with an open spanner. Ids may
// repeat across independent parts of a document, so the association is
// an ordered list rather than a map.
type spannerEntry struct {
	id int
	sp *score.Spanner
}

// SpannerValues is the end of a spanner whose <endSpanner> was read
// before the spanner itself.
type SpannerValues struct {
	ID     int
	Tick2  fraction.Fraction
	Track2 int
	Elem   score.Element
}

type userTextStyle struct {
	name string
	ss   score.TextStyleType
}

const maxUserTextStyles = int(score.StyleUser12-score.StyleUser1) + 1

func (r *Reader) AddBeam(b *score.Beam) {
	if _, ok := r.beams[b.Id]; ok {
		r.diag(DiagDuplicateID, "duplicate beam id %d", b.Id)
	}
	r.beams[b.Id] = b
}

func (r *Reader) FindBeam(id int) *score.Beam {
	return r.beams[id]
}

// AddTuplet registers t under its id. A duplicate id is reported; the
// earlier tuplet is still finalized with the measure.
func (r *Reader) AddTuplet(t *score.Tuplet) {
	if _, ok := r.tuplets[t.Id]; ok {
		r.diag(DiagDuplicateID, "duplicate tuplet id %d", t.Id)
	}
	r.tuplets[t.Id] = t
	r.tupletOrder = append(r.tupletOrder, t)
}

func (r *Reader) FindTuplet(id int) *score.Tuplet {
	return r.tuplets[id]
}

// Tuplets returns the tuplets of the current measure in reading order.
func (r *Reader) Tuplets() []*score.Tuplet {
	return r.tupletOrder
}

// clearMeasureRegistries drops beam and tuplet ids; they are only valid
// within one measure.
func (r *Reader) clearMeasureRegistries() {
	r.beams = map[int]*score.Beam{}
	r.tuplets = map[int]*score.Tuplet{}
	r.tupletOrder = nil
}

func (r *Reader) AddSpanner(id int, sp *score.Spanner) {
	r.spanners = append(r.spanners, spannerEntry{id, sp})
}

// FindSpanner returns the first open spanner registered under id.
func (r *Reader) FindSpanner(id int) *score.Spanner {
	for _, e := range r.spanners {
		if e.id == id {
			return e.sp
		}
	}
	return nil
}

// SpannerID returns the id sp was registered under, or -1.
func (r *Reader) SpannerID(sp *score.Spanner) int {
	for _, e := range r.spanners {
		if e.sp == sp {
			return e.id
		}
	}
	r.log.Debug("spanner id not found")
	return -1
}

// RemoveSpanner removes sp by identity.
func (r *Reader) RemoveSpanner(sp *score.Spanner) {
	for i, e := range r.spanners {
		if e.sp == sp {
			r.spanners = append(r.spanners[:i], r.spanners[i+1:]...)
			return
		}
	}
}

func (r *Reader) AddSpannerValues(v SpannerValues) {
	r.spannerValues = append(r.spannerValues, v)
}

// SpannerValues returns the first recorded end for id, or nil.
func (r *Reader) SpannerValues(id int) *SpannerValues {
	for i := range r.spannerValues {
		if r.spannerValues[i].ID == id {
			return &r.spannerValues[i]
		}
	}
	return nil
}

func (r *Reader) removeSpannerValues(id int) {
	for i, v := range r.spannerValues {
		if v.ID == id {
			r.spannerValues = append(r.spannerValues[:i], r.spannerValues[i+1:]...)
			return
		}
	}
}

// AddUserTextStyle maps name onto the next free user style slot. It
// returns StyleNone when all slots are taken.
func (r *Reader) AddUserTextStyle(name string) score.TextStyleType {
	if ss := r.LookupUserTextStyle(name); ss != score.StyleNone {
		return ss
	}
	if len(r.userTextStyles) >= maxUserTextStyles {
		r.diag(DiagTextStyleOverflow, "too many user defined text styles: %q", name)
		return score.StyleNone
	}
	ss := score.StyleUser1 + score.TextStyleType(len(r.userTextStyles))
	r.userTextStyles = append(r.userTextStyles, userTextStyle{name, ss})
	return ss
}

func (r *Reader) LookupUserTextStyle(name string) score.TextStyleType {
	for _, s := range r.userTextStyles {
		if s.name == name {
			return s.ss
		}
	}
	return score.StyleNone
}
