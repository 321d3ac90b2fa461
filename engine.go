package microfiche

import (
	"math"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

// Engine tracks the film offset of one carousel and turns commands, drags
// and timer ticks into transitions.
//
// The engine is single-threaded: every method, including Update, must be
// called from the same goroutine (typically the game or UI loop). Numeric
// input is never rejected; it is rounded and clamped instead. An inert
// engine (see Geometry.Inert) ignores every operation.
type Engine struct {
	opts     Options
	geo      Geometry
	x        float64
	driver   Driver
	current  *Transition
	moveFrom float64
	tracker  *GestureTracker
	controls ControlState
	autoplay autoplay
	handlers handlerRegistry
	closed   bool

	debug bool
	log   *bslogger.Logger
}

// New creates an engine for the given geometry, with the driver selected by
// opts.Backend, and runs opts.Run.
func New(geo Geometry, opts Options) *Engine {
	return NewWithDriver(geo, opts, NewDriver(opts))
}

// NewWithDriver creates an engine that animates through d.
func NewWithDriver(geo Geometry, opts Options, d Driver) *Engine {
	e := &Engine{
		opts:    opts,
		geo:     geo,
		driver:  d,
		tracker: NewGestureTracker(opts.DragThreshold),
	}
	e.SetDebugMode(opts.Debug)
	e.driver.Jump(0)
	e.refreshControls()
	if opts.Autoplay > 0 {
		e.autoplay.set(opts.Autoplay)
	}
	if err := e.RunLines(opts.Run...); err != nil {
		e.warnf("run commands: %v", err)
	}
	return e
}

// Options returns the configuration the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// Geometry returns the current calibration.
func (e *Engine) Geometry() Geometry { return e.geo }

// X returns the target offset: where the film is, or is heading.
func (e *Engine) X() float64 { return e.x }

// Offset returns the presented offset reported by the driver.
func (e *Engine) Offset() float64 { return e.driver.Offset() }

// Controls returns the last projected control state.
func (e *Engine) Controls() ControlState { return e.controls }

// Page returns the selected page index.
func (e *Engine) Page() int { return e.controls.Page }

// Moving reports whether a transition is in flight.
func (e *Engine) Moving() bool { return e.current != nil && e.current.Pending() }

// Dragging reports whether a touch sequence is active.
func (e *Engine) Dragging() bool { return e.tracker.Active() }

// Inert reports whether the engine ignores operations.
func (e *Engine) Inert() bool { return e.closed || e.geo.Inert() }

// Calibrate applies new dimensions from the layout provider. The target is
// re-snapped to the page grid and presented immediately. A cyclic target
// past either end is wrapped first.
func (e *Engine) Calibrate(geo Geometry) {
	if e.closed {
		return
	}
	if !e.geo.Inert() {
		e.normalize()
	}
	e.geo = geo
	e.current = nil
	if geo.Inert() {
		e.tracker.Cancel()
		e.x = 0
	} else {
		e.x = geo.Snap(e.x)
	}
	e.driver.Jump(e.x)
	e.refreshControls()
	e.debugf("calibrate screen=%.0f film=%.0f x=%.0f", geo.Screen, geo.Film, e.x)
}

// Prev slides one screenful back.
func (e *Engine) Prev() { e.ShiftByPages(-1, 0) }

// Next slides one screenful forward.
func (e *Engine) Next() { e.ShiftByPages(1, 0) }

// ShiftByPages moves n screenfuls relative to the current page. A non-zero
// velocity (px/ms, typically from a flick) derives the duration from the
// distance, bounded by MinDuration and MaxDuration. In cyclic mode a shift
// that would be clamped to the current position moves past the edge instead.
func (e *Engine) ShiftByPages(n int, velocity float64) {
	if e.Inert() {
		return
	}
	e.normalize()

	ox := e.x
	w := e.geo.Screen
	e.x = e.geo.Constrain(e.geo.PageOffset(e.geo.PageAt(e.x) + n))
	if e.opts.Cyclic && e.x == ox {
		e.x += float64(n) * w
	}

	duration := e.opts.Duration
	if velocity != 0 && !math.IsNaN(velocity) {
		ms := math.Abs(e.x-ox) / math.Abs(velocity)
		duration = clampDuration(ms*float64(time.Millisecond), e.opts.MinDuration, e.opts.MaxDuration)
	}

	e.refreshControls()
	e.transition(duration, velocity)
}

// SlideToPage animates to page p, clamped to the film.
func (e *Engine) SlideToPage(p int) {
	if e.Inert() {
		return
	}
	e.normalize()
	e.x = e.geo.Constrain(e.geo.PageOffset(p))
	e.refreshControls()
	e.transition(e.opts.Duration, 0)
}

// JumpToPage moves to page p without animation.
func (e *Engine) JumpToPage(p int) {
	if e.Inert() {
		return
	}
	e.normalize()
	e.x = e.geo.Constrain(e.geo.PageOffset(p))
	e.refreshControls()
	e.jump()
}

// SlideToPoint animates to the page boundary nearest x.
func (e *Engine) SlideToPoint(x float64) {
	if e.Inert() {
		return
	}
	e.normalize()
	e.x = e.geo.RoundAndConstrain(x)
	e.refreshControls()
	e.transition(e.opts.Duration, 0)
}

// JumpToPoint moves to the page boundary nearest x without animation.
func (e *Engine) JumpToPoint(x float64) {
	if e.Inert() {
		return
	}
	e.normalize()
	e.x = e.geo.RoundAndConstrain(x)
	e.refreshControls()
	e.jump()
}

// Update advances the driver and the autoplay timer by dt. A completed
// transition is finalized here: cyclic overshoot is wrapped, then didMove
// fires once.
func (e *Engine) Update(dt time.Duration) {
	if e.closed {
		return
	}
	if tr := e.driver.Step(dt); tr != nil && tr == e.current {
		e.finish(tr)
	}
	if e.autoplay.step(dt, !e.Inert() && !e.Moving() && !e.Dragging()) {
		e.advance()
	}
}

// Close stops autoplay, discards any gesture and supersedes the in-flight
// transition. The engine is inert afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.autoplay.set(0)
	e.tracker.Cancel()
	e.driver.Jump(e.driver.Offset())
	e.current = nil
	e.closed = true
	e.debugf("closed")
}

// --- Touch ---

// TouchStart begins a touch sequence at p. It returns false when the start
// is refused (inert engine or more than one contact).
func (e *Engine) TouchStart(p Vec2, at time.Time, contacts int) bool {
	if e.Inert() {
		return false
	}
	if contacts == 1 {
		e.restoreDrag()
	}
	if !e.tracker.Begin(p, at, contacts) {
		return false
	}
	e.autoplay.reset()
	return true
}

// TouchMove feeds a touch sample. Once the sequence is a horizontal drag the
// film follows the finger; a vertical scroll ends the sequence without
// moving anything.
func (e *Engine) TouchMove(p Vec2, at time.Time) {
	if e.Inert() || !e.tracker.Active() {
		return
	}
	switch e.tracker.Move(p, at) {
	case GestureAborted:
		e.TouchEnd()
	case GestureDragging:
		cx := e.DragOffset(e.tracker.State().DX)
		e.current = nil
		e.driver.Jump(cx)
		e.controls = Project(cx, e.geo, e.opts.Cyclic)
	}
}

// TouchEnd releases the touch sequence. A confirmed drag becomes a page
// shift carrying the release velocity; a short drag snaps back.
func (e *Engine) TouchEnd() {
	r := e.tracker.End()
	if !r.IsDrag || e.Inert() {
		return
	}
	switch n := SwipePages(r.DX, e.geo.Screen, e.opts.SwipeThreshold); n {
	case 0:
		e.ShiftByPages(0, 0)
	default:
		e.ShiftByPages(n, r.Velocity)
	}
}

// TouchCancel discards the touch sequence. A film dragged away from the
// target is put back without any move events.
func (e *Engine) TouchCancel() {
	e.restoreDrag()
	e.tracker.Cancel()
}

// restoreDrag presents the target again if a drag moved the film away from
// it.
func (e *Engine) restoreDrag() {
	if e.closed || e.tracker.Phase() != GestureDragging {
		return
	}
	e.normalize()
	e.driver.Jump(e.x)
	e.refreshControls()
}

// DragOffset returns the offset the film shows for a drag of dx from the
// current target. In bounded mode movement past either bound is damped by
// Elasticity.
func (e *Engine) DragOffset(dx float64) float64 {
	cx := e.x - dx
	if e.opts.Cyclic {
		return cx
	}
	if lo := e.geo.Min(); cx < lo {
		cx = lo - (lo-cx)*e.opts.Elasticity
	}
	if hi := e.geo.Max(); cx > hi {
		cx = hi + (cx-hi)*e.opts.Elasticity
	}
	return cx
}

// --- Internals ---

// normalize brings an overshooting cyclic target back into range before a
// new target is computed. The presented offset moves by one period, which is
// invisible as long as duplicate content is drawn there; any drag or
// in-flight delta is preserved.
func (e *Engine) normalize() {
	if !e.opts.Cyclic || e.geo.WithinBounds(e.x) {
		return
	}
	shift := e.wrapShift(e.x)
	e.debugf("wrap x=%.0f offset=%.0f shift=%.0f", e.x, e.driver.Offset(), shift)
	e.driver.Jump(e.driver.Offset() + shift)
	e.current = nil
	e.x = e.geo.RoundAndConstrain(e.x + shift)
	e.refreshControls()
}

func (e *Engine) wrapShift(x float64) float64 {
	if x > e.geo.Max() {
		return -e.geo.Period()
	}
	return e.geo.Period()
}

func (e *Engine) refreshControls() {
	e.controls = Project(e.x, e.geo, e.opts.Cyclic)
}

func (e *Engine) transition(d time.Duration, velocity float64) {
	from := e.driver.Offset()
	e.moveFrom = from
	e.fireWillMove(MoveEvent{From: from, To: e.x, Page: e.controls.Page, Duration: d})
	e.debugf("move %.0f -> %.0f over %v", from, e.x, d)
	e.current = e.driver.Animate(TransitionRequest{From: from, To: e.x, Duration: d, Velocity: velocity})
}

// jump presents x at once. It is a transition of zero duration that
// completes immediately.
func (e *Engine) jump() {
	from := e.driver.Offset()
	ev := MoveEvent{From: from, To: e.x, Page: e.controls.Page}
	e.fireWillMove(ev)
	e.current = nil
	e.driver.Jump(e.x)
	e.autoplay.reset()
	e.debugf("jump %.0f -> %.0f", from, e.x)
	e.fireDidMove(ev)
}

func (e *Engine) finish(tr *Transition) {
	e.current = nil
	if e.opts.Cyclic && !e.geo.WithinBounds(e.x) {
		e.x = e.geo.RoundAndConstrain(e.x + e.wrapShift(e.x))
		e.driver.Jump(e.x)
		e.refreshControls()
	}
	e.autoplay.reset()
	e.fireDidMove(MoveEvent{From: e.moveFrom, To: e.x, Page: e.controls.Page, Duration: tr.Request().Duration})
}

// clampDuration clamps in float space so a near-zero velocity cannot
// overflow time.Duration.
func clampDuration(ns float64, lo, hi time.Duration) time.Duration {
	return time.Duration(math.Max(float64(lo), math.Min(ns, float64(hi))))
}
