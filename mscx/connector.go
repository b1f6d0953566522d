package mscx

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"go-mscx/fraction"
	"go-mscx/score"
)

// Fragment is one occurrence of a connector element. A tie, slur or
// hairpin is written as a start fragment declaring where its next part
// is, and an end fragment declaring where its previous part is.
type Fragment struct {
	// Declared id; -1 when the document gave none.
	ID   int
	Kind string

	// Where the fragment sits; absolute.
	Anchor Location

	// Declared positions of the neighbouring fragments, relative to
	// Anchor. Nil when there is no neighbour on that side.
	Prev *Location
	Next *Location

	// Element carrying the fragment, e.g. the note a tie starts on.
	Elem score.Element

	// The object under construction. Usually only the first fragment of
	// a chain carries one.
	Object score.Connector
}

type fragHandle int

const noFrag fragHandle = -1

type fragNode struct {
	Fragment

	// Absolute time of Anchor.
	at       fraction.Fraction
	prev     fragHandle
	next     fragHandle
	released bool
}

// connectorGraph owns fragments until their chain is committed or
// abandoned. Fragments live in an arena and refer to each other by
// handle.
type connectorGraph struct {
	nodes   []fragNode
	live    []fragHandle
	pending []Fragment
}

func (g *connectorGraph) insert(f Fragment, at fraction.Fraction) fragHandle {
	h := fragHandle(len(g.nodes))
	g.nodes = append(g.nodes, fragNode{Fragment: f, at: at, prev: noFrag, next: noFrag})
	g.live = append(g.live, h)
	return h
}

func (g *connectorGraph) openNext(h fragHandle) bool {
	n := &g.nodes[h]
	return n.Next != nil && n.next == noFrag
}

func (g *connectorGraph) openPrev(h fragHandle) bool {
	n := &g.nodes[h]
	return n.Prev != nil && n.prev == noFrag
}

func (g *connectorGraph) link(first, second fragHandle) {
	g.nodes[first].next = second
	g.nodes[second].prev = first
}

func (g *connectorGraph) head(h fragHandle) fragHandle {
	for i := 0; g.nodes[h].prev != noFrag && i < len(g.nodes); i++ {
		h = g.nodes[h].prev
	}
	return h
}

func (g *connectorGraph) tail(h fragHandle) fragHandle {
	for i := 0; g.nodes[h].next != noFrag && i < len(g.nodes); i++ {
		h = g.nodes[h].next
	}
	return h
}

// finished reports whether the chain through h has both ends and no
// open slot.
func (g *connectorGraph) finished(h fragHandle) bool {
	h = g.head(h)
	if g.nodes[h].Prev != nil {
		return false
	}
	for i := 0; i < len(g.nodes); i++ {
		n := &g.nodes[h]
		if n.Next == nil {
			return true
		}
		if n.next == noFrag {
			return false
		}
		h = n.next
	}
	return false
}

// connect links newer to older when ids and kinds match and the slots
// facing each other are open. The open slots decide which one comes
// first, whatever their anchor times.
func (g *connectorGraph) connect(older, newer fragHandle) bool {
	if older == newer {
		return false
	}
	a, b := &g.nodes[older], &g.nodes[newer]
	if a.Kind != b.Kind || a.ID < 0 || a.ID != b.ID {
		return false
	}
	if g.head(older) == g.head(newer) {
		return false
	}
	forward := g.openNext(older) && g.openPrev(newer)
	backward := g.openPrev(older) && g.openNext(newer)
	if forward && backward {
		// Both are middle parts; anchor time decides the order.
		forward = !b.at.Less(a.at)
	}
	switch {
	case forward:
		g.link(older, newer)
	case backward:
		g.link(newer, older)
	default:
		return false
	}
	return true
}

func (g *connectorGraph) release(h fragHandle) {
	if g.nodes[h].released {
		return
	}
	g.nodes[h].released = true
	for i, x := range g.live {
		if x == h {
			g.live = append(g.live[:i], g.live[i+1:]...)
			break
		}
	}
}

// removeChain drops every fragment of the chain through h.
func (g *connectorGraph) removeChain(h fragHandle) {
	h = g.head(h)
	for i := 0; h != noFrag && i < len(g.nodes); i++ {
		next := g.nodes[h].next
		g.release(h)
		h = next
	}
}

// AddConnectorInfo registers a fragment and links it to the first live
// fragment it continues. A chain that becomes complete is handed to the
// score at once.
func (r *Reader) AddConnectorInfo(f Fragment) {
	g := &r.graph
	h := g.insert(f, r.absTime(f.Anchor))
	if g.finished(h) {
		r.commit(h)
		g.removeChain(h)
		return
	}
	for _, other := range g.live {
		if !g.connect(other, h) {
			continue
		}
		if g.finished(other) {
			head := g.head(other)
			r.commit(head)
			g.removeChain(head)
		}
		break
	}
}

// AddPendingConnectorInfo defers registration until CheckConnectors.
func (r *Reader) AddPendingConnectorInfo(f Fragment) {
	r.graph.pending = append(r.graph.pending, f)
}

// CheckConnectors registers all deferred fragments.
func (r *Reader) CheckConnectors() {
	pending := r.graph.pending
	r.graph.pending = nil
	for _, f := range pending {
		r.AddConnectorInfo(f)
	}
}

// LiveConnectors counts fragments not yet committed or abandoned.
func (r *Reader) LiveConnectors() int {
	return len(r.graph.live)
}

// absTime converts a location to score time.
func (r *Reader) absTime(l Location) fraction.Fraction {
	if r.pasteMode || !l.MeasureSet() {
		return l.Time
	}
	if start, ok := r.score.MeasureStart(l.Measure); ok {
		return start.Add(l.Time)
	}
	return r.score.LastTick().Add(l.Time)
}

func (r *Reader) anchor(h fragHandle) score.Anchor {
	n := &r.graph.nodes[h]
	return score.Anchor{
		Tick:  n.at,
		Track: n.Anchor.Track,
		Elem:  n.Elem,
	}
}

// chainObject returns the first object carried along the chain.
func (r *Reader) chainObject(head fragHandle) score.Connector {
	g := &r.graph
	for h, i := head, 0; h != noFrag && i < len(g.nodes); h, i = g.nodes[h].next, i+1 {
		if obj := g.nodes[h].Object; obj != nil {
			return obj
		}
	}
	return nil
}

// commit transfers the object of a complete chain to the score.
func (r *Reader) commit(head fragHandle) {
	obj := r.chainObject(head)
	if obj == nil {
		n := &r.graph.nodes[head]
		r.diag(DiagAbandoned, "%s connector %d has no element", n.Kind, n.ID)
		return
	}
	obj.Attach(r.score, r.anchor(head), r.anchor(r.graph.tail(head)))
}

// abandon drops an incomplete chain. Objects that survive unfinished
// still go to the score.
func (r *Reader) abandon(head fragHandle) {
	n := r.graph.nodes[head]
	r.diag(DiagAbandoned, "unpaired %s connector %d at %v", n.Kind, n.ID, n.at)
	if obj := r.chainObject(head); obj != nil && obj.KeepsUnfinished() {
		obj.Attach(r.score, r.anchor(head), r.anchor(r.graph.tail(head)))
	}
}

const noRelation = math.MaxInt

const (
	// Cost of one track of distance, in ticks.
	trackWeight = fraction.Division

	// Cost of an end sitting before its start.
	backwardPenalty = 1 << 24
)

// connectionDistance scores how plausibly a and b form adjacent parts of
// one connector. The magnitude is a proximity score; a negative value
// means b is the earlier part. noRelation marks pairs that cannot link.
// When either order is possible the closer one wins.
func (r *Reader) connectionDistance(a, b fragHandle) int {
	g := &r.graph
	if g.nodes[a].Kind != g.nodes[b].Kind {
		return noRelation
	}
	d := noRelation
	if g.openNext(a) && g.openPrev(b) {
		d = r.orderedDistance(a, b)
	}
	if g.openPrev(a) && g.openNext(b) {
		if o := r.orderedDistance(b, a); o < d {
			return -o
		}
	}
	return d
}

// orderedDistance compares where early expects its next part with where
// late is, and the other way round. The result is at least 1 so that
// the sign taken by connectionDistance is never lost.
func (r *Reader) orderedDistance(early, late fragHandle) int {
	e, l := &r.graph.nodes[early], &r.graph.nodes[late]
	want := e.Next.ToAbsolute(e.Anchor)
	d := absInt(l.at.Sub(r.absTime(want)).Ticks())
	d += trackWeight * absInt(l.Anchor.Track-want.Track)
	if l.Prev != nil {
		back := l.Prev.ToAbsolute(l.Anchor)
		d += absInt(e.at.Sub(r.absTime(back)).Ticks())
		d += trackWeight * absInt(e.Anchor.Track-back.Track)
	}
	if l.at.Less(e.at) {
		d += backwardPenalty
	}
	return d + 1
}

type brokenPair struct {
	dist   int
	first  fragHandle
	second fragHandle
}

// ReconnectBrokenConnectors links leftover fragments by proximity: all
// pairs are ranked by distance and linked greedily, closest first, where
// both slots are still free. Chains completed this way are committed.
func (r *Reader) ReconnectBrokenConnectors() {
	g := &r.graph
	if len(g.live) == 0 {
		return
	}
	r.log.Debug("reconnecting broken connectors", zap.Int("nodes", len(g.live)))

	var pairs []brokenPair
	for i := 1; i < len(g.live); i++ {
		for j := 0; j < i; j++ {
			c1, c2 := g.live[i], g.live[j]
			d := r.connectionDistance(c1, c2)
			if d >= 0 {
				pairs = append(pairs, brokenPair{d, c1, c2})
			} else {
				pairs = append(pairs, brokenPair{-d, c2, c1})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].dist < pairs[j].dist
	})

	for _, p := range pairs {
		if p.dist == noRelation {
			continue
		}
		if g.nodes[p.first].next != noFrag || g.nodes[p.second].prev != noFrag {
			continue
		}
		if g.head(p.first) == g.head(p.second) {
			continue
		}
		g.link(p.first, p.second)
	}

	var heads []fragHandle
	seen := map[fragHandle]bool{}
	for _, h := range g.live {
		if !g.finished(h) {
			continue
		}
		if head := g.head(h); !seen[head] {
			seen[head] = true
			heads = append(heads, head)
		}
	}
	for _, h := range heads {
		n := g.nodes[h]
		r.diag(DiagReconnected, "reconnected broken %s connector %d at %v", n.Kind, n.ID, n.at)
		r.commit(h)
		g.removeChain(h)
	}
	r.log.Info("reconnected broken connectors", zap.Int("count", len(heads)))
}

// Close tears down the per-parse state. Fragments still live are
// abandoned, each exactly once; open old-style spanners are dropped.
func (r *Reader) Close() {
	g := &r.graph
	for _, f := range g.pending {
		g.insert(f, r.absTime(f.Anchor))
	}
	g.pending = nil
	if len(g.live) > 0 {
		r.log.Debug("unpaired connectors left", zap.Int("count", len(g.live)))
	}
	for len(g.live) > 0 {
		h := g.head(g.live[0])
		r.abandon(h)
		g.removeChain(h)
	}

	for _, v := range r.spannerValues {
		r.diag(DiagUnresolvedReference, "endSpanner: spanner id %d not found", v.ID)
	}
	r.spannerValues = nil
	for len(r.spanners) > 0 {
		sp := r.spanners[0].sp
		r.diag(DiagAbandoned, "%s spanner %d never ended", sp.Kind, r.SpannerID(sp))
		r.RemoveSpanner(sp)
	}
	r.clearMeasureRegistries()
	r.userTextStyles = nil
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
