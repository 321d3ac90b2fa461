package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/microfiche"
)

// pointerState follows the single pointer the viewer reacts to: the mouse,
// or the first touch while any touch is down.
type pointerState struct {
	down         bool
	touch        bool
	target       hit
	lastX, lastY float64
	touchIDs     []ebiten.TouchID
}

// keyCommands maps navigation keys to engine commands.
var keyCommands = []struct {
	key ebiten.Key
	cmd func(c microfiche.ControlState) microfiche.Command
}{
	{ebiten.KeyArrowLeft, func(microfiche.ControlState) microfiche.Command { return microfiche.ShiftCommand(-1) }},
	{ebiten.KeyArrowRight, func(microfiche.ControlState) microfiche.Command { return microfiche.ShiftCommand(1) }},
	{ebiten.KeyPageUp, func(microfiche.ControlState) microfiche.Command { return microfiche.ShiftCommand(-1) }},
	{ebiten.KeyPageDown, func(microfiche.ControlState) microfiche.Command { return microfiche.ShiftCommand(1) }},
	{ebiten.KeyHome, func(microfiche.ControlState) microfiche.Command { return microfiche.SlideToPageCommand(0) }},
	{ebiten.KeyEnd, func(c microfiche.ControlState) microfiche.Command { return microfiche.SlideToPageCommand(c.Pages - 1) }},
}

// processInput reads real keyboard, mouse and touch state. Called from
// step when no injected event is pending.
func (v *Viewer) processInput() {
	for _, k := range keyCommands {
		if inpututil.IsKeyJustPressed(k.key) {
			v.key(k.cmd(v.engine.Controls()))
		}
	}

	p := &v.pointer
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 || p.touch {
		v.processTouch(p.touchIDs)
		return
	}
	mx, my := ebiten.CursorPosition()
	v.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), 1)
}

// key runs the command bound to a navigation key.
func (v *Viewer) key(c microfiche.Command) {
	if err := v.engine.Run(c); err != nil {
		v.log.Warningf("key %v: %v", c, err)
	}
}

// processTouch treats the first touch as the pointer. The number of touches
// is passed on so that a multi-finger start is refused by the engine.
func (v *Viewer) processTouch(ids []ebiten.TouchID) {
	if len(ids) == 0 {
		v.pointer.touch = false
		v.processPointer(v.pointer.lastX, v.pointer.lastY, false, 1)
		return
	}
	v.pointer.touch = true
	tx, ty := ebiten.TouchPosition(ids[0])
	v.processPointer(float64(tx), float64(ty), true, len(ids))
}

// processPointer runs the pointer state machine for one sample in screen
// coordinates. A press on a control is a click candidate; a press on the
// film is a touch sequence for the engine.
func (v *Viewer) processPointer(x, y float64, pressed bool, contacts int) {
	p := &v.pointer
	switch {
	case pressed && !p.down:
		p.down = true
		p.lastX, p.lastY = x, y
		p.target = v.controls.hitTest(x, y)
		if p.target.kind == hitFilm && !v.engine.TouchStart(microfiche.Vec2{X: x, Y: y}, v.clock, contacts) {
			p.target = hit{kind: hitNone}
		}

	case pressed && p.down:
		if x == p.lastX && y == p.lastY {
			return
		}
		p.lastX, p.lastY = x, y
		if p.target.kind == hitFilm {
			v.engine.TouchMove(microfiche.Vec2{X: x, Y: y}, v.clock)
		}

	case !pressed && p.down:
		p.down = false
		switch p.target.kind {
		case hitFilm:
			if x != p.lastX || y != p.lastY {
				v.engine.TouchMove(microfiche.Vec2{X: x, Y: y}, v.clock)
			}
			v.engine.TouchEnd()
		case hitNone:
		default:
			if v.controls.hitTest(x, y) == p.target {
				v.click(p.target)
			}
		}
	}
}

func (v *Viewer) click(h hit) {
	switch h.kind {
	case hitPrev:
		v.engine.Prev()
	case hitNext:
		v.engine.Next()
	case hitBullet:
		v.engine.SlideToPage(h.index)
	}
}
