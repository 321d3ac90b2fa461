package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/microfiche"
)

var colorOverlay = color.RGBA{0, 0, 0, 128}

// drawFPS prints the measured FPS and TPS in the top-left corner.
func drawFPS(screen *ebiten.Image) {
	fillRect(screen, microfiche.Rect{Width: 100, Height: 32}, colorOverlay)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()), 2, 0)
}
