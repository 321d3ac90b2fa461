package microfiche

import (
	"sort"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TransitionRequest asks a Driver to move the film from From to To over
// Duration. Velocity is informational: it was already used to derive
// Duration.
type TransitionRequest struct {
	From     float64
	To       float64
	Duration time.Duration
	Velocity float64
}

type transitionOutcome uint8

const (
	outcomePending transitionOutcome = iota
	outcomeCompleted
	outcomeSuperseded
)

// Transition is the handle for one animation request. It resolves exactly
// once: either completed, or superseded by a later Animate or Jump. Done is
// closed on resolution either way.
type Transition struct {
	req     TransitionRequest
	done    chan struct{}
	outcome transitionOutcome
}

func newTransition(req TransitionRequest) *Transition {
	return &Transition{req: req, done: make(chan struct{})}
}

// Request returns the request this transition was created for.
func (tr *Transition) Request() TransitionRequest { return tr.req }

// Target returns the offset the transition moves to.
func (tr *Transition) Target() float64 { return tr.req.To }

// Done returns a channel closed when the transition resolves.
func (tr *Transition) Done() <-chan struct{} { return tr.done }

// Pending reports whether the transition is still in flight.
func (tr *Transition) Pending() bool { return tr.outcome == outcomePending }

// Completed reports whether the transition reached its target.
func (tr *Transition) Completed() bool { return tr.outcome == outcomeCompleted }

// Superseded reports whether a later request replaced this one.
func (tr *Transition) Superseded() bool { return tr.outcome == outcomeSuperseded }

func (tr *Transition) resolve(o transitionOutcome) {
	if tr == nil || tr.outcome != outcomePending {
		return
	}
	tr.outcome = o
	close(tr.done)
}

// Driver moves the presented film offset. At most one transition is in
// flight; Animate and Jump supersede it without completing it.
type Driver interface {
	// Animate starts a transition from the presented offset to req.To.
	// req.From is overwritten with the presented offset.
	Animate(req TransitionRequest) *Transition
	// Jump moves the presented offset immediately.
	Jump(offset float64)
	// Offset returns the presented offset.
	Offset() float64
	// Step advances time by dt and returns the transition that completed
	// during this step, if any.
	Step(dt time.Duration) *Transition
}

// easings maps Options.Easing names to curves. "swing" matches the classic
// in-out sine slideshow curve.
var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"swing":       ease.InOutSine,
	"in-out-sine": ease.InOutSine,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"out-cubic":   ease.OutCubic,
	"out-expo":    ease.OutExpo,
	"out-back":    ease.OutBack,
}

// EasingNames returns the accepted Options.Easing values, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDriver returns the backend selected by opts.Backend. Unknown names fall
// back to the tween backend with the swing curve.
func NewDriver(opts Options) Driver {
	if opts.Backend == BackendInstant {
		return &InstantDriver{}
	}
	fn, ok := easings[opts.Easing]
	if !ok {
		fn = ease.InOutSine
	}
	return NewTweenDriver(fn)
}

// --- Tween backend ---

// TweenDriver animates with a gween tween, advanced by Step.
type TweenDriver struct {
	easeFn  ease.TweenFunc
	offset  float64
	current *Transition
	tween   *gween.Tween
}

// NewTweenDriver creates a driver using the given easing function.
func NewTweenDriver(fn ease.TweenFunc) *TweenDriver {
	if fn == nil {
		fn = ease.InOutSine
	}
	return &TweenDriver{easeFn: fn}
}

// Animate implements Driver. Zero durations and zero distances complete on
// the next Step without motion.
func (d *TweenDriver) Animate(req TransitionRequest) *Transition {
	d.current.resolve(outcomeSuperseded)
	req.From = d.offset
	d.current = newTransition(req)
	d.tween = nil
	if req.Duration > 0 && req.From != req.To {
		d.tween = gween.New(float32(req.From), float32(req.To), float32(req.Duration.Seconds()), d.easeFn)
	}
	return d.current
}

// Jump implements Driver.
func (d *TweenDriver) Jump(offset float64) {
	d.current.resolve(outcomeSuperseded)
	d.current = nil
	d.tween = nil
	d.offset = offset
}

// Offset implements Driver.
func (d *TweenDriver) Offset() float64 {
	return d.offset
}

// Step implements Driver.
func (d *TweenDriver) Step(dt time.Duration) *Transition {
	tr := d.current
	if tr == nil {
		return nil
	}
	if d.tween != nil {
		val, finished := d.tween.Update(float32(dt.Seconds()))
		d.offset = float64(val)
		if !finished {
			return nil
		}
	}
	// Land exactly on the target rather than the float32 tween value.
	d.offset = tr.req.To
	d.current = nil
	d.tween = nil
	tr.resolve(outcomeCompleted)
	return tr
}

// --- Instant backend ---

// InstantDriver completes every transition on the next Step. It suits
// reduced-motion settings and deterministic tests.
type InstantDriver struct {
	offset  float64
	current *Transition
}

// Animate implements Driver.
func (d *InstantDriver) Animate(req TransitionRequest) *Transition {
	d.current.resolve(outcomeSuperseded)
	req.From = d.offset
	d.current = newTransition(req)
	return d.current
}

// Jump implements Driver.
func (d *InstantDriver) Jump(offset float64) {
	d.current.resolve(outcomeSuperseded)
	d.current = nil
	d.offset = offset
}

// Offset implements Driver.
func (d *InstantDriver) Offset() float64 {
	return d.offset
}

// Step implements Driver.
func (d *InstantDriver) Step(time.Duration) *Transition {
	tr := d.current
	if tr == nil {
		return nil
	}
	d.offset = tr.req.To
	d.current = nil
	tr.resolve(outcomeCompleted)
	return tr
}
