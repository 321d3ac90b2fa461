package microfiche

import (
	"math"
	"time"
)

// GesturePhase is the state of a GestureTracker.
type GesturePhase uint8

const (
	GestureIdle     GesturePhase = iota // no touch sequence in progress
	GestureSampling                     // touching, direction not decided yet
	GestureDragging                     // committed horizontal drag
	GestureAborted                      // vertical scroll won; sequence ignored
)

// GestureState is the bookkeeping for a single touch sequence. Velocities are
// in pixels per millisecond.
type GestureState struct {
	Origin Vec2
	Then   time.Time
	DX, DY float64
	VX, VY float64
	IsDrag bool
}

// Release describes the end of a touch sequence.
type Release struct {
	IsDrag   bool
	DX       float64
	Velocity float64
}

// GestureTracker turns a stream of touch samples into drag deltas and a
// release velocity. It stores only the latest sample, so each call is O(1).
type GestureTracker struct {
	threshold float64
	phase     GesturePhase
	state     GestureState
}

// NewGestureTracker creates a tracker that commits to a direction once
// movement reaches dragThreshold pixels.
func NewGestureTracker(dragThreshold float64) *GestureTracker {
	return &GestureTracker{threshold: dragThreshold}
}

// Phase returns the current phase.
func (t *GestureTracker) Phase() GesturePhase {
	return t.phase
}

// State returns a copy of the active gesture state.
func (t *GestureTracker) State() GestureState {
	return t.state
}

// Active reports whether a touch sequence is being sampled or dragged.
func (t *GestureTracker) Active() bool {
	return t.phase == GestureSampling || t.phase == GestureDragging
}

// Begin starts a sequence at p. More than one contact is refused and leaves
// any active sequence untouched. A single contact while a sequence is active
// discards the stale one.
func (t *GestureTracker) Begin(p Vec2, at time.Time, contacts int) bool {
	if contacts != 1 {
		return false
	}
	t.state = GestureState{Origin: p, Then: at}
	t.phase = GestureSampling
	return true
}

// Move feeds one sample and returns the resulting phase. When the vertical
// threshold is crossed first the sequence is aborted and the caller should
// treat it as a release without a drag.
func (t *GestureTracker) Move(p Vec2, at time.Time) GesturePhase {
	if !t.Active() {
		return t.phase
	}
	dx := p.X - t.state.Origin.X
	dy := p.Y - t.state.Origin.Y

	if !t.state.IsDrag {
		if math.Abs(dy) >= t.threshold {
			t.phase = GestureAborted
			return t.phase
		}
		if math.Abs(dx) >= t.threshold {
			t.state.IsDrag = true
			t.phase = GestureDragging
		}
	}

	if t.state.IsDrag {
		if ms := float64(at.Sub(t.state.Then)) / float64(time.Millisecond); ms > 0 {
			t.state.VX = (dx - t.state.DX) / ms
			t.state.VY = (dy - t.state.DY) / ms
			t.state.Then = at
		}
		t.state.DX = dx
		t.state.DY = dy
	}
	return t.phase
}

// End finishes the sequence and returns its release. Aborted or idle
// sequences release with IsDrag false.
func (t *GestureTracker) End() Release {
	r := Release{}
	if t.phase == GestureDragging {
		r = Release{IsDrag: true, DX: t.state.DX, Velocity: t.state.VX}
	}
	t.Cancel()
	return r
}

// Cancel discards the sequence.
func (t *GestureTracker) Cancel() {
	t.state = GestureState{}
	t.phase = GestureIdle
}

// SwipePages maps a drag release to a page shift. A finger moving left by at
// least threshold*screen advances; moving right by as much goes back; anything
// shorter snaps back to the current page. Both comparisons are inclusive.
func SwipePages(dx, screen, threshold float64) int {
	switch {
	case dx <= -screen*threshold:
		return 1
	case dx >= screen*threshold:
		return -1
	default:
		return 0
	}
}
