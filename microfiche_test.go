package microfiche

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	assert.True(t, r.Contains(10, 10), "edges are inside")
	assert.True(t, r.Contains(30, 20))
	assert.False(t, r.Contains(31, 15))
}

func TestRectIntersects(t *testing.T) {
	r := Rect{Width: 300, Height: 200}
	assert.True(t, r.Intersects(Rect{X: 300, Width: 300, Height: 200}), "shared edge")
	assert.True(t, r.Intersects(Rect{X: -100, Width: 150, Height: 10}))
	assert.False(t, r.Intersects(Rect{X: 301, Width: 10, Height: 10}))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "willMove", EventWillMove.String())
	assert.Equal(t, "didMove", EventDidMove.String())
	assert.Equal(t, "unknown", EventType(9).String())
}

func TestDebugModeLogs(t *testing.T) {
	opts := testOptions(true)
	opts.Debug = true
	opts.Run = []string{"bogus"}
	e := New(fourPages, opts)
	assert.NotNil(t, e.log)

	assert.NotPanics(t, func() {
		e.Prev()
		settle(e)
		e.Calibrate(Geometry{Screen: 300, Film: 600})
		e.Autoplay(0)
		e.Close()
	})

	e.SetDebugMode(false)
	assert.NotPanics(t, func() { e.debugf("quiet %d", 1) })
}
