package viewer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/microfiche"
)

const (
	buttonWidth   = 32.0
	buttonHeight  = 48.0
	buttonMargin  = 8.0
	bulletSize    = 10.0
	bulletSpacing = 8.0
	bulletMargin  = 16.0
)

var (
	colorButton         = color.RGBA{0, 0, 0, 160}
	colorButtonDisabled = color.RGBA{0, 0, 0, 60}
	colorBullet         = color.RGBA{255, 255, 255, 110}
	colorBulletSelected = color.RGBA{255, 255, 255, 255}
)

// controlKind identifies what a pointer press landed on.
type controlKind uint8

const (
	hitFilm   controlKind = iota // the film itself: starts a drag
	hitPrev                      // previous-page button
	hitNext                      // next-page button
	hitBullet                    // a page bullet; index carries the page
	hitNone                      // refused press; ignored until release
)

type hit struct {
	kind  controlKind
	index int
}

// controlLayout holds the screen rectangles of the controls.
type controlLayout struct {
	prev, next microfiche.Rect
	bullets    []microfiche.Rect
	buttons    bool
}

// layoutControls places the buttons at the vertical centre of either edge
// and the bullets in a centred row along the bottom.
func layoutControls(w, h float64, pages int, buttons, bullets bool) controlLayout {
	l := controlLayout{buttons: buttons}
	if buttons {
		y := (h - buttonHeight) / 2
		l.prev = microfiche.Rect{X: buttonMargin, Y: y, Width: buttonWidth, Height: buttonHeight}
		l.next = microfiche.Rect{X: w - buttonMargin - buttonWidth, Y: y, Width: buttonWidth, Height: buttonHeight}
	}
	if bullets && pages > 1 {
		row := float64(pages)*bulletSize + float64(pages-1)*bulletSpacing
		x := (w - row) / 2
		y := h - bulletMargin - bulletSize
		l.bullets = make([]microfiche.Rect, pages)
		for i := range l.bullets {
			l.bullets[i] = microfiche.Rect{X: x + float64(i)*(bulletSize+bulletSpacing), Y: y, Width: bulletSize, Height: bulletSize}
		}
	}
	return l
}

// hitTest returns the control under (x, y). Disabled buttons still capture
// the press so that clicking one never starts a drag.
func (l controlLayout) hitTest(x, y float64) hit {
	if l.buttons {
		if l.prev.Contains(x, y) {
			return hit{kind: hitPrev}
		}
		if l.next.Contains(x, y) {
			return hit{kind: hitNext}
		}
	}
	for i, r := range l.bullets {
		if r.Contains(x, y) {
			return hit{kind: hitBullet, index: i}
		}
	}
	return hit{kind: hitFilm}
}

func (l controlLayout) draw(dst *ebiten.Image, c microfiche.ControlState) {
	if l.buttons {
		drawButton(dst, l.prev, "<", c.PrevEnabled)
		drawButton(dst, l.next, ">", c.NextEnabled)
	}
	for i, r := range l.bullets {
		clr := colorBullet
		if c.Selected(i) {
			clr = colorBulletSelected
		}
		fillRect(dst, r, clr)
	}
}

func drawButton(dst *ebiten.Image, r microfiche.Rect, label string, enabled bool) {
	clr := colorButtonDisabled
	if enabled {
		clr = colorButton
	}
	fillRect(dst, r, clr)
	ebitenutil.DebugPrintAt(dst, label, int(r.X+r.Width/2)-3, int(r.Y+r.Height/2)-8)
}
