package microfiche

import "time"

// autoplay is a frame-driven timer. It only counts while the engine is idle,
// and every completed move restarts it.
type autoplay struct {
	interval time.Duration
	elapsed  time.Duration
}

func (a *autoplay) set(interval time.Duration) {
	a.interval = max(interval, 0)
	a.elapsed = 0
}

func (a *autoplay) reset() {
	a.elapsed = 0
}

func (a *autoplay) active() bool {
	return a.interval > 0
}

// step advances the timer and reports whether it fired.
func (a *autoplay) step(dt time.Duration, idle bool) bool {
	if !a.active() || !idle {
		return false
	}
	a.elapsed += dt
	if a.elapsed < a.interval {
		return false
	}
	a.elapsed = 0
	return true
}

// Autoplay advances one page every interval. Zero or a negative interval
// stops it. In bounded mode the last page rewinds to the first.
func (e *Engine) Autoplay(interval time.Duration) {
	if e.closed {
		return
	}
	e.autoplay.set(interval)
	e.debugf("autoplay %v", interval)
}

// AutoplayInterval returns the active autoplay interval, zero when stopped.
func (e *Engine) AutoplayInterval() time.Duration {
	return e.autoplay.interval
}

func (e *Engine) advance() {
	if !e.opts.Cyclic && e.x >= e.geo.Max() {
		e.SlideToPage(0)
		return
	}
	e.Next()
}
