// Package viewer presents a microfiche engine with Ebitengine.
//
// A Viewer implements ebiten.Game: it routes mouse, touch and keyboard input
// to the engine, draws the film at the engine's offset together with the
// prev/next buttons and page bullets, and recalibrates the engine when the
// window or the film changes size.
package viewer

import (
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/microfiche"
)

// Viewer draws one carousel. Create it with New.
type Viewer struct {
	engine *microfiche.Engine
	opts   microfiche.Options
	film   Film

	// Updates, when set, delivers replacement films. They are applied at the
	// start of the next frame.
	Updates <-chan Film
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowFPS draws the FPS/TPS overlay.
	ShowFPS bool

	width, height int
	controls      controlLayout

	// Resize debounce: the last size reported by Layout and how long it has
	// been stable.
	pendingW, pendingH int
	pendingFor         time.Duration

	clock   time.Time
	pointer pointerState
	run     []string

	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	runner          *TestRunner

	log bslogger.Logger
}

// New creates a viewer for film with the given engine options. The engine
// starts inert and is calibrated on the first Layout.
func New(film Film, opts microfiche.Options) *Viewer {
	// Startup commands wait for the first usable calibration; an inert
	// engine would ignore them.
	engineOpts := opts
	engineOpts.Run = nil
	return &Viewer{
		opts:          opts,
		film:          film,
		engine:        microfiche.New(microfiche.Geometry{}, engineOpts),
		ScreenshotDir: "screenshots",
		clock:         time.Unix(0, 0),
		run:           opts.Run,
		log:           bslogger.NewLogger("viewer", bslogger.Normal, nil),
	}
}

// Engine returns the engine the viewer drives.
func (v *Viewer) Engine() *microfiche.Engine { return v.engine }

// SetFilm replaces the film and recalibrates at once.
func (v *Viewer) SetFilm(f Film) {
	v.film = f
	v.calibrate()
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	return v.step(dt, true)
}

// step advances one frame. Real input is read only when readInput is set and
// no injected event is pending.
func (v *Viewer) step(dt time.Duration, readInput bool) error {
	v.clock = v.clock.Add(dt)
	v.receiveFilm()
	v.settleSize(dt)

	if v.runner != nil {
		if err := v.runner.step(v); err != nil {
			return err
		}
	}
	if !v.processInjectedInput() && readInput {
		v.processInput()
	}
	v.engine.Update(dt)

	if v.runner != nil && v.runner.Done() && v.runner.exit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.film != nil {
		x := -v.engine.Offset()
		v.film.Draw(screen, x)
		g := v.engine.Geometry()
		if v.opts.Cyclic && !g.Inert() {
			// Duplicates one period away cover the overshoot on either side.
			v.film.Draw(screen, x-g.Period())
			v.film.Draw(screen, x+g.Period())
		}
	}
	v.controls.draw(screen, v.engine.Controls())
	if v.ShowFPS {
		drawFPS(screen)
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The first size is applied at once; later
// changes wait for Options.Debounce of stability.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (v *Viewer) resize(w, h int) {
	if v.width == 0 && v.height == 0 {
		v.width, v.height = w, h
		v.pendingW, v.pendingH = w, h
		v.calibrate()
		return
	}
	if w != v.pendingW || h != v.pendingH {
		v.pendingW, v.pendingH = w, h
		v.pendingFor = 0
	}
}

func (v *Viewer) settleSize(dt time.Duration) {
	if v.pendingW == v.width && v.pendingH == v.height {
		return
	}
	v.pendingFor += dt
	if v.pendingFor < v.opts.Debounce {
		return
	}
	v.width, v.height = v.pendingW, v.pendingH
	v.pendingFor = 0
	v.calibrate()
}

func (v *Viewer) receiveFilm() {
	if v.Updates == nil {
		return
	}
	select {
	case f := <-v.Updates:
		v.SetFilm(f)
	default:
	}
}

// calibrate measures the film against the current size and hands the result
// to the engine.
func (v *Viewer) calibrate() {
	g := microfiche.Geometry{Screen: float64(v.width)}
	if v.film != nil {
		g.Film = v.film.Measure(v.width, v.height)
	}
	v.engine.Calibrate(g)
	v.controls = layoutControls(float64(v.width), float64(v.height), v.engine.Controls().Pages,
		v.opts.Buttons, v.opts.Bullets)
	if v.opts.Debug {
		v.log.Infof("calibrated %dx%d film=%.0f pages=%d", v.width, v.height, g.Film, v.engine.Controls().Pages)
	}
	if len(v.run) > 0 && !v.engine.Inert() {
		if err := v.engine.RunLines(v.run...); err != nil {
			v.log.Warningf("run commands: %v", err)
		}
		v.run = nil
	}
}

// Command parses and runs one text command (see microfiche.ParseCommand).
func (v *Viewer) Command(line string) error {
	cmd, err := microfiche.ParseCommand(line)
	if err != nil {
		return err
	}
	return v.engine.Run(cmd)
}
