package microfiche

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func testOptions(cyclic bool) Options {
	opts := DefaultOptions()
	opts.Backend = BackendInstant
	opts.Cyclic = cyclic
	return opts
}

// fourPages is the 300/1200 film used throughout: max offset 900.
var fourPages = Geometry{Screen: 300, Film: 1200}

func newTestEngine(cyclic bool) *Engine {
	return New(fourPages, testOptions(cyclic))
}

// settle runs frames until no transition is in flight.
func settle(e *Engine) {
	for i := 0; i < 1000 && e.Moving(); i++ {
		e.Update(frame)
	}
}

type moveLog struct {
	will []MoveEvent
	did  []MoveEvent
}

func record(e *Engine) *moveLog {
	l := &moveLog{}
	e.OnWillMove(func(ev MoveEvent) { l.will = append(l.will, ev) })
	e.OnDidMove(func(ev MoveEvent) { l.did = append(l.did, ev) })
	return l
}

// recordingDriver presents whatever offset the test sets and records jumps.
type recordingDriver struct {
	offset   float64
	jumps    []float64
	animates []TransitionRequest
	current  *Transition
}

func (d *recordingDriver) Animate(req TransitionRequest) *Transition {
	d.current.resolve(outcomeSuperseded)
	req.From = d.offset
	d.animates = append(d.animates, req)
	d.current = newTransition(req)
	return d.current
}

func (d *recordingDriver) Jump(offset float64) {
	d.current.resolve(outcomeSuperseded)
	d.current = nil
	d.offset = offset
	d.jumps = append(d.jumps, offset)
}

func (d *recordingDriver) Offset() float64 { return d.offset }

func (d *recordingDriver) Step(time.Duration) *Transition {
	tr := d.current
	if tr == nil {
		return nil
	}
	d.offset = tr.req.To
	d.current = nil
	tr.resolve(outcomeCompleted)
	return tr
}

func TestEngineBoundedScenario(t *testing.T) {
	e := newTestEngine(false)
	require.Equal(t, 0.0, e.X())

	e.ShiftByPages(1, 0)
	assert.Equal(t, 300.0, e.X())

	for i := 0; i < 3; i++ {
		e.ShiftByPages(1, 0)
		settle(e)
	}
	assert.Equal(t, 900.0, e.X())

	e.ShiftByPages(1, 0)
	settle(e)
	assert.Equal(t, 900.0, e.X())
	assert.False(t, e.Controls().NextEnabled)
	assert.True(t, e.Controls().PrevEnabled)
	assert.Equal(t, 3, e.Page())
}

func TestEngineBoundedInvariant(t *testing.T) {
	e := newTestEngine(false)
	g := e.Geometry()
	ops := []func(){
		func() { e.ShiftByPages(3, 0) },
		func() { e.ShiftByPages(-7, 0) },
		func() { e.SlideToPage(12) },
		func() { e.SlideToPage(-4) },
		func() { e.JumpToPage(2) },
		func() { e.SlideToPoint(5000) },
		func() { e.JumpToPoint(-5000) },
		func() { e.JumpToPoint(451) },
		func() { e.Next() },
		func() { e.Prev() },
		func() { e.ShiftByPages(1, 0.01) },
	}
	for i, op := range ops {
		op()
		if !g.WithinBounds(e.X()) {
			t.Fatalf("op %d: x = %v outside [%v, %v]", i, e.X(), g.Min(), g.Max())
		}
		settle(e)
		if !g.WithinBounds(e.Offset()) {
			t.Fatalf("op %d: settled offset = %v outside bounds", i, e.Offset())
		}
	}
}

func TestEngineShiftRoundTrip(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(1)

	e.ShiftByPages(2, 0)
	settle(e)
	assert.Equal(t, 900.0, e.X())

	e.ShiftByPages(-2, 0)
	settle(e)
	assert.Equal(t, 300.0, e.X())
}

func TestEngineSlideAndJumpToPage(t *testing.T) {
	e := newTestEngine(false)
	log := record(e)

	e.SlideToPage(2)
	assert.Equal(t, 600.0, e.X())
	assert.True(t, e.Moving())
	require.Len(t, log.will, 1)
	assert.Equal(t, DefaultOptions().Duration, log.will[0].Duration)
	assert.Empty(t, log.did, "slide completes asynchronously")

	settle(e)
	require.Len(t, log.did, 1)
	assert.Equal(t, 600.0, log.did[0].To)
	assert.Equal(t, 2, log.did[0].Page)

	e.JumpToPage(9)
	assert.Equal(t, 900.0, e.X())
	assert.Equal(t, 900.0, e.Offset(), "jump presents at once")
	assert.False(t, e.Moving())
	assert.Len(t, log.did, 2)
}

func TestEngineSlideToPointRounds(t *testing.T) {
	e := newTestEngine(false)
	e.SlideToPoint(640)
	assert.Equal(t, 600.0, e.X())
	e.JumpToPoint(-10)
	assert.Equal(t, 0.0, e.X())
}

func TestEngineVelocityDuration(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		want     time.Duration
	}{
		{"within range", 1, 300 * time.Millisecond},
		{"negative flick", -1, 300 * time.Millisecond},
		{"slow clamps to max", 0.1, 500 * time.Millisecond},
		{"fast clamps to min", 10, 250 * time.Millisecond},
		{"tiny velocity", 1e-300, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(false)
			log := record(e)
			e.ShiftByPages(1, tt.velocity)
			require.Len(t, log.will, 1)
			assert.Equal(t, tt.want, log.will[0].Duration)
		})
	}
}

func TestEngineIdempotentSlide(t *testing.T) {
	e := newTestEngine(false)
	e.SlideToPage(1)
	settle(e)
	log := record(e)

	e.SlideToPage(1)
	settle(e)
	e.SlideToPage(1)
	settle(e)
	assert.Equal(t, 300.0, e.X())
	assert.Equal(t, 300.0, e.Offset())
	for _, ev := range log.did {
		assert.Equal(t, ev.From, ev.To, "repeated slide must not move")
	}
}

func TestEngineCyclicAdvancesFromLastPage(t *testing.T) {
	e := newTestEngine(true)
	e.JumpToPage(3)
	before := e.X()
	log := record(e)

	e.ShiftByPages(1, 0)
	assert.NotEqual(t, before, e.X(), "cyclic shift never stays put")
	assert.Equal(t, 1200.0, e.X(), "animates onto the leading duplicate")

	settle(e)
	assert.Equal(t, 0.0, e.X())
	assert.Equal(t, 0.0, e.Offset())
	assert.Equal(t, 0, e.Page())
	require.Len(t, log.did, 1)
	assert.Equal(t, 0.0, log.did[0].To)
}

func TestEngineCyclicWrapsBackward(t *testing.T) {
	e := newTestEngine(true)
	e.Prev()
	assert.Equal(t, -300.0, e.X())
	assert.Equal(t, 3, e.Page(), "overshoot selects the page its duplicate shows")
	settle(e)
	assert.Equal(t, 900.0, e.X())
	assert.True(t, e.Controls().PrevEnabled)
	assert.True(t, e.Controls().NextEnabled)
}

func TestEngineCyclicOvershootCorrection(t *testing.T) {
	d := &recordingDriver{}
	e := NewWithDriver(fourPages, testOptions(true), d)
	e.JumpToPage(3)
	log := record(e)

	e.Next() // heading for the duplicate at 1200
	d.offset = 950
	d.jumps = nil

	e.ShiftByPages(0, 0)
	require.Len(t, d.jumps, 1)
	assert.Equal(t, -250.0, d.jumps[0], "min - screen + 50px of in-flight progress")
	assert.Equal(t, 0.0, e.X())

	e.Update(frame)
	assert.Equal(t, 0.0, e.X())
	assert.Equal(t, 0.0, e.Offset())
	require.Len(t, log.did, 1, "superseded overshoot never reports")
	assert.Equal(t, -250.0, log.did[0].From)
}

func TestEngineSupersededTransitionSuppressed(t *testing.T) {
	opts := testOptions(false)
	opts.Backend = BackendTween
	e := New(fourPages, opts)
	log := record(e)

	e.Next()
	e.Update(100 * time.Millisecond)
	require.True(t, e.Moving())
	mid := e.Offset()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 300.0)

	e.Next()
	settle(e)
	assert.Equal(t, 600.0, e.X())
	assert.Equal(t, 600.0, e.Offset())
	assert.Len(t, log.will, 2)
	require.Len(t, log.did, 1)
	assert.Equal(t, mid, log.did[0].From)
}

func TestEngineDragRubberBand(t *testing.T) {
	e := newTestEngine(false)
	require.True(t, e.TouchStart(Vec2{200, 100}, t0, 1))

	e.TouchMove(Vec2{230, 100}, ms(10))
	assert.True(t, e.Dragging())
	assert.Equal(t, -15.0, e.Offset(), "30px past min damped by elasticity 0.5")
	assert.Equal(t, 0.0, e.X(), "drag does not move the target")

	e.TouchEnd()
	assert.Equal(t, 0.0, e.X(), "short drag snaps back")
	settle(e)
	assert.Equal(t, 0.0, e.Offset())
}

func TestEngineDragPastMaxRubberBand(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(3)
	e.TouchStart(Vec2{200, 0}, t0, 1)
	e.TouchMove(Vec2{100, 0}, ms(10))
	assert.Equal(t, 950.0, e.Offset())
}

func TestEngineDragThresholdScenario(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(1)
	log := record(e)

	e.TouchStart(Vec2{100, 100}, t0, 1)
	e.TouchMove(Vec2{110, 130}, ms(10))
	assert.False(t, e.Dragging(), "vertical scroll aborts")
	e.TouchMove(Vec2{200, 130}, ms(20))
	e.TouchEnd()
	assert.Equal(t, 300.0, e.X())
	assert.Equal(t, 300.0, e.Offset())
	assert.Empty(t, log.will)

	e.TouchStart(Vec2{100, 100}, ms(100), 1)
	e.TouchMove(Vec2{130, 105}, ms(110))
	assert.True(t, e.Dragging(), "horizontal drag commits")
	assert.Equal(t, 270.0, e.Offset())
}

func TestEngineFlickAdvances(t *testing.T) {
	e := newTestEngine(false)
	log := record(e)

	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{250, 0}, ms(10))
	e.TouchEnd()

	assert.Equal(t, 300.0, e.X())
	require.Len(t, log.will, 1)
	assert.Equal(t, 250*time.Millisecond, log.will[0].Duration, "fast flick clamps to min duration")
	assert.Equal(t, 50.0, log.will[0].From)
}

func TestEngineDragBackward(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(2)
	e.TouchStart(Vec2{0, 0}, t0, 1)
	e.TouchMove(Vec2{100, 0}, ms(200))
	e.TouchEnd()
	assert.Equal(t, 300.0, e.X())
}

func TestEngineCyclicDragPastEnd(t *testing.T) {
	e := newTestEngine(true)
	e.JumpToPage(3)
	log := record(e)

	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{100, 0}, ms(100))
	assert.Equal(t, 1100.0, e.Offset(), "cyclic drags are not damped")

	e.TouchEnd()
	settle(e)
	assert.Equal(t, 0.0, e.X())
	require.Len(t, log.did, 1)
}

func TestEngineTouchCancel(t *testing.T) {
	e := newTestEngine(false)
	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{200, 0}, ms(10))
	e.TouchCancel()
	e.TouchEnd()
	assert.Equal(t, 0.0, e.X())
	assert.False(t, e.Moving())
}

func TestEngineInert(t *testing.T) {
	for _, g := range []Geometry{{Screen: 300, Film: 300}, {Screen: 0, Film: 900}, {Screen: 300, Film: 100}} {
		e := New(g, testOptions(false))
		log := record(e)
		e.Next()
		e.SlideToPage(2)
		e.JumpToPoint(500)
		assert.False(t, e.TouchStart(Vec2{}, t0, 1))
		settle(e)
		assert.Equal(t, 0.0, e.X())
		assert.Empty(t, log.will)
		c := e.Controls()
		assert.False(t, c.PrevEnabled)
		assert.False(t, c.NextEnabled)
		assert.Equal(t, 1, c.Pages)
	}
}

func TestEngineCalibrate(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(3)

	e.Calibrate(Geometry{Screen: 300, Film: 600})
	assert.Equal(t, 300.0, e.X())
	assert.Equal(t, 300.0, e.Offset())
	assert.Equal(t, 2, e.Controls().Pages)

	e.Calibrate(Geometry{Screen: 300, Film: 200})
	assert.True(t, e.Inert())
	assert.Equal(t, 0.0, e.X())

	e.Calibrate(fourPages)
	e.Next()
	assert.Equal(t, 300.0, e.X())
}

func TestEngineClose(t *testing.T) {
	opts := testOptions(false)
	opts.Autoplay = time.Second
	e := New(fourPages, opts)
	log := record(e)

	e.Next()
	e.Close()
	e.Update(2 * time.Second)
	e.Next()
	assert.True(t, e.Inert())
	assert.Empty(t, log.did, "closing suppresses the in-flight completion")
	assert.Zero(t, e.AutoplayInterval())
}

func TestEngineRemoveCallback(t *testing.T) {
	e := newTestEngine(false)
	count := 0
	h := e.OnDidMove(func(MoveEvent) { count++ })
	e.JumpToPage(1)
	h.Remove()
	e.JumpToPage(2)
	assert.Equal(t, 1, count)
}

func TestEngineAutoplay(t *testing.T) {
	e := newTestEngine(false)
	e.Autoplay(time.Second)

	e.Update(500 * time.Millisecond)
	assert.Equal(t, 0.0, e.X())
	e.Update(500 * time.Millisecond)
	assert.Equal(t, 300.0, e.X())

	e.Update(frame) // completion restarts the timer
	e.Update(900 * time.Millisecond)
	assert.Equal(t, 300.0, e.X())
	e.Update(100 * time.Millisecond)
	assert.Equal(t, 600.0, e.X())
}

func TestEngineAutoplayPausesWhileDragging(t *testing.T) {
	e := newTestEngine(false)
	e.Autoplay(time.Second)
	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{290, 0}, ms(10))

	e.Update(3 * time.Second)
	assert.Equal(t, 0.0, e.X())
}

func TestEngineAutoplayRewindsBounded(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(3)
	e.Autoplay(time.Second)
	e.Update(time.Second)
	assert.Equal(t, 0.0, e.X())
}

func TestEngineRunOptions(t *testing.T) {
	opts := testOptions(false)
	opts.Run = []string{"jumpToPage 2", "bogus", "autoplay 3"}
	e := New(fourPages, opts)
	assert.Equal(t, 600.0, e.X())
	assert.Equal(t, 3*time.Second, e.AutoplayInterval())
}

// halfPage is a film three and a half screens long: four pages, max 750.
var halfPage = Geometry{Screen: 300, Film: 1050}

func TestEnginePartialLastPage(t *testing.T) {
	e := New(halfPage, testOptions(false))
	e.JumpToPage(3)
	require.Equal(t, 750.0, e.X())
	require.Equal(t, 3, e.Page())

	e.Prev()
	settle(e)
	assert.Equal(t, 600.0, e.X(), "one page back from the last page")
	assert.Equal(t, 2, e.Page())

	e.Next()
	settle(e)
	assert.Equal(t, 750.0, e.X())
	assert.Equal(t, 3, e.Page())

	e.ShiftByPages(0, 0)
	settle(e)
	assert.Equal(t, 750.0, e.X(), "snap back stays on the last page")

	e.Calibrate(halfPage)
	assert.Equal(t, 750.0, e.X(), "recalibrating the same size keeps the page")
	assert.Equal(t, 750.0, e.Offset())
	assert.Equal(t, 3, e.Page())
}

func TestEnginePartialLastPageShortDrag(t *testing.T) {
	e := New(halfPage, testOptions(false))
	e.JumpToPage(3)

	require.True(t, e.TouchStart(Vec2{500, 0}, t0, 1))
	e.TouchMove(Vec2{470, 0}, ms(50))
	require.True(t, e.Dragging())
	e.TouchEnd()
	settle(e)
	assert.Equal(t, 750.0, e.X())
	assert.Equal(t, 3, e.Page())
}

func TestEnginePartialLastPageCyclic(t *testing.T) {
	e := New(halfPage, testOptions(true))
	log := record(e)
	e.JumpToPage(3)
	e.Next()
	settle(e)
	assert.Equal(t, 0.0, e.X())
	assert.Equal(t, 0, e.Page())
	assert.Len(t, log.did, 2)
}

func TestEngineTouchCancelRestoresDrag(t *testing.T) {
	e := newTestEngine(false)
	log := record(e)
	e.JumpToPage(1)

	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{200, 0}, ms(10))
	require.Equal(t, 400.0, e.Offset())

	e.TouchCancel()
	assert.Equal(t, 300.0, e.X())
	assert.Equal(t, 300.0, e.Offset())
	assert.Equal(t, 1, e.Page())
	for i := 0; i < 100; i++ {
		e.Update(frame)
	}
	assert.Equal(t, 300.0, e.Offset())
	assert.False(t, e.Moving())
	assert.Len(t, log.will, 1, "cancelling fires no move events")
	assert.Len(t, log.did, 1)
}

func TestEngineRestartDuringDrag(t *testing.T) {
	e := newTestEngine(false)
	e.JumpToPage(1)

	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{200, 0}, ms(10))
	require.Equal(t, 400.0, e.Offset())

	assert.False(t, e.TouchStart(Vec2{50, 0}, ms(20), 2), "a second finger is refused")
	assert.Equal(t, 400.0, e.Offset(), "and leaves the drag alone")

	require.True(t, e.TouchStart(Vec2{50, 0}, ms(30), 1))
	assert.Equal(t, 300.0, e.Offset())
	e.TouchEnd()
	settle(e)
	assert.Equal(t, 300.0, e.X())
	assert.Equal(t, 300.0, e.Offset())
}

func TestEngineCalibrateWrapsCyclicOvershoot(t *testing.T) {
	e := newTestEngine(true)
	log := record(e)
	e.JumpToPage(3)
	e.Next()
	require.Equal(t, 1200.0, e.X())

	e.Calibrate(fourPages)
	assert.Equal(t, 0.0, e.X())
	assert.Equal(t, 0.0, e.Offset())
	assert.Equal(t, 0, e.Page())
	settle(e)
	assert.Len(t, log.did, 1, "the interrupted move never completes")
}

func TestEngineTouchCancelWrapsCyclicTarget(t *testing.T) {
	e := newTestEngine(true)
	e.JumpToPage(3)
	e.Next()
	require.Equal(t, 1200.0, e.X())

	e.TouchStart(Vec2{300, 0}, t0, 1)
	e.TouchMove(Vec2{250, 0}, ms(10))
	require.True(t, e.Dragging())
	e.TouchCancel()
	assert.Equal(t, 0.0, e.X())
	assert.Equal(t, 0.0, e.Offset())
	assert.Equal(t, 0, e.Page())
}
