package viewer

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Resizable lets the user resize the window; the engine recalibrates
	// after Options.Debounce.
	Resizable bool
	// TPS overrides the tick rate when non-zero.
	TPS int
}

// Run opens a window and runs v until the window is closed or an attached
// test script finishes with Exit set. A finished script returns nil; a
// failed one returns its error.
func Run(v *Viewer, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	err := ebiten.RunGame(v)
	v.engine.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
