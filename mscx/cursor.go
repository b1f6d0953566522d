package mscx

import (
	"fmt"

	"go-mscx/fraction"
	"go-mscx/score"
)

// Track is the current track, offset into the destination in paste
// mode.
func (r *Reader) Track() int {
	return r.track + r.trackOffset
}

// SetTrack sets the track in document coordinates.
func (r *Reader) SetTrack(t int) {
	r.track = t
}

// Tick is the absolute read position, offset into the destination in
// paste mode.
func (r *Reader) Tick() fraction.Fraction {
	return r.tick.Add(r.tickOffset)
}

// IntTick is the position as whole ticks, kept in step with Tick.
func (r *Reader) IntTick() int {
	return r.intTick
}

// RTick is the position relative to the current measure.
func (r *Reader) RTick() fraction.Fraction {
	if r.measure != nil {
		return r.Tick().Sub(r.measure.Tick)
	}
	return r.Tick()
}

// SetTick sets the position in document coordinates.
func (r *Reader) SetTick(f fraction.Fraction) {
	r.tick = f.Reduced()
	r.intTick = r.tick.Ticks()
}

func (r *Reader) IncTick(f fraction.Fraction) {
	r.tick = r.tick.Add(f)
	r.intTick += f.Ticks()
}

func (r *Reader) CurrentMeasure() *score.Measure {
	return r.measure
}

func (r *Reader) CurrentMeasureIndex() int {
	if r.measure == nil {
		return 0
	}
	return r.measure.Idx
}

// setMeasure enters a measure: its start becomes the relative origin.
func (r *Reader) setMeasure(m *score.Measure) {
	r.measure = m
	if m != nil {
		r.SetTick(m.Tick)
	}
}

func (r *Reader) PasteMode() bool {
	return r.pasteMode
}

func (r *Reader) SetPasteMode(v bool) {
	r.pasteMode = v
}

func (r *Reader) SetTrackOffset(v int) {
	r.trackOffset = v
}

func (r *Reader) SetTickOffset(f fraction.Fraction) {
	r.tickOffset = f
}

// Location returns the current position as an absolute location.
func (r *Reader) Location(forceAbsTime bool) Location {
	l := Absolute()
	r.FillLocation(&l, forceAbsTime)
	return l
}

// FillLocation fills unset fields of l from the current position. In
// paste mode, or when forceAbsTime is set, the time is absolute and the
// measure index is zero; otherwise the time is measure relative.
func (r *Reader) FillLocation(l *Location, forceAbsTime bool) {
	abs := r.pasteMode || forceAbsTime
	cur := Location{
		Track:   r.Track(),
		Time:    r.RTick(),
		Measure: r.CurrentMeasureIndex(),
		Grace:   unset,
		Note:    unset,
	}
	if abs {
		cur.Time = r.Tick()
		cur.Measure = 0
	}
	*l = l.Merge(cur)
}

// SetLocation moves the cursor. A relative location is resolved against
// the current position; when it does not move in time only the track
// changes. An absolute location must lie in the current measure unless
// in paste mode; a mismatch is an integrity problem, returned as an
// error only in strict mode.
func (r *Reader) SetLocation(l Location) error {
	if l.Relative {
		abs := l.ToAbsolute(r.Location(false))
		ticks := l.Time.Ticks()
		if r.tick.Equal(fraction.FromTicks(r.intTick + ticks)) {
			r.intTick += ticks
			r.SetTrack(abs.Track - r.trackOffset)
			return nil
		}
		return r.SetLocation(abs)
	}

	r.SetTrack(l.Track - r.trackOffset)
	r.SetTick(l.Time.Sub(r.tickOffset))
	if r.pasteMode {
		return nil
	}
	var err error
	if cur := r.CurrentMeasureIndex(); l.Measure != cur {
		err = r.integrity(fmt.Errorf("%w: location measure %d, reading measure %d", ErrLocationMismatch, l.Measure, cur))
	}
	if r.measure != nil {
		r.IncTick(r.measure.Tick)
	}
	return err
}
