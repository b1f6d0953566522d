package mscx

import (
	"go-mscx/score"
)

// CheckTuplets finalizes the tuplets read since the last call. Empty
// tuplets are dropped as corrupt; the rest are sorted and sanitized.
// Gaps are filled only afterwards, once every tuplet of the group has
// its final members. Children are checked before their parents, so a
// parent whose only members were discarded is dropped too.
func (r *Reader) CheckTuplets() {
	for i := len(r.tupletOrder) - 1; i >= 0; i-- {
		r.checkTuplet(r.tupletOrder[i])
	}
	for _, t := range r.tupletOrder {
		if t.Discarded() {
			continue
		}
		for _, rest := range t.AddMissingElements() {
			r.placeElement(rest)
		}
		r.score.AddTuplet(t)
	}
	r.tuplets = map[int]*score.Tuplet{}
	r.tupletOrder = nil
}

func (r *Reader) checkTuplet(t *score.Tuplet) {
	if t.Discarded() {
		return
	}
	if len(t.Elements) == 0 {
		r.diag(DiagEmptyTuplet, "tuplet id %d is empty, input file corrupted?", t.Id)
		t.Discard()
		return
	}
	t.SortElements()
	t.Sanitize()
}

// placeElement adds e to the measure being read, or in paste mode to the
// measure containing it.
func (r *Reader) placeElement(e score.Element) bool {
	m := r.measure
	if r.pasteMode || m == nil {
		m = r.score.MeasureAt(e.GetTick())
	}
	if m == nil {
		r.diag(DiagUnresolvedReference, "no measure at %v for %s", e.GetTick(), e.GetTypeName())
		return false
	}
	m.Add(e)
	return true
}
