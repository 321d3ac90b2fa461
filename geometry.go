package microfiche

import "math"

// Geometry holds the two lengths every position computation depends on:
// Screen is the viewport size along the motion axis, Film the total content
// size. Both are supplied by the layout provider on each calibration.
//
// All methods are pure. Callers must check Inert before relying on any
// division by Screen.
type Geometry struct {
	Screen float64
	Film   float64
}

// Inert reports whether there is nothing to slide: a missing viewport or
// content that fits inside it.
func (g Geometry) Inert() bool {
	return g.Screen <= 0 || g.Film <= g.Screen
}

// Min returns the lower offset bound.
func (g Geometry) Min() float64 {
	return 0
}

// Max returns the upper offset bound. Negative when the film is smaller than
// the screen.
func (g Geometry) Max() float64 {
	return g.Film - g.Screen
}

// Period is the distance between a point on the film and its duplicate in
// cyclic mode.
func (g Geometry) Period() float64 {
	return g.Film
}

// Constrain clamps x to [Min, Max].
func (g Geometry) Constrain(x float64) float64 {
	return g.ConstrainTo(x, g.Min(), g.Max())
}

// ConstrainTo clamps x to [lo, hi].
func (g Geometry) ConstrainTo(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(x, hi))
}

// Round snaps x to the nearest page boundary. Exact half pages round to the
// even page.
func (g Geometry) Round(x float64) float64 {
	return math.RoundToEven(x/g.Screen) * g.Screen
}

// RoundAndConstrain rounds x to a page boundary, then clamps it.
func (g Geometry) RoundAndConstrain(x float64) float64 {
	return g.Constrain(g.Round(x))
}

// WithinBounds reports whether Min <= x <= Max.
func (g Geometry) WithinBounds(x float64) bool {
	return g.Min() <= x && x <= g.Max()
}

// PageIndex returns the page nearest to offset x.
func (g Geometry) PageIndex(x float64) int {
	return int(math.RoundToEven(x / g.Screen))
}

// PageOffset returns the offset of page p, unclamped.
func (g Geometry) PageOffset(p int) float64 {
	return float64(p) * g.Screen
}

// Pages returns the number of screenfuls needed to show the whole film.
func (g Geometry) Pages() int {
	if g.Screen <= 0 {
		return 0
	}
	return int(math.Ceil(g.Film / g.Screen))
}

// PageAt returns the page selected at x. At the upper bound that is the last
// page, even when the film ends part way through a screen.
func (g Geometry) PageAt(x float64) int {
	if g.WithinBounds(x) && x >= g.Max() {
		return g.Pages() - 1
	}
	return g.PageIndex(x)
}

// Snap moves x to the start of the page selected at x, clamped.
func (g Geometry) Snap(x float64) float64 {
	return g.Constrain(g.PageOffset(g.PageAt(x)))
}
