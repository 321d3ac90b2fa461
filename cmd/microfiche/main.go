// Command microfiche shows a directory of images as a windowed carousel.
//
//	microfiche -slides ./photos -options reel.yaml
//
// The directory is watched: adding, replacing or removing an image reloads
// the film and recalibrates the carousel.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrugadaSyndrome/bslogger"

	"github.com/phanxgames/microfiche"
	"github.com/phanxgames/microfiche/slides"
	"github.com/phanxgames/microfiche/viewer"
)

func main() {
	logger := bslogger.NewLogger("microfiche", bslogger.Normal, nil)

	var (
		dir         = flag.String("slides", ".", "directory of slide images")
		optionsPath = flag.String("options", "", "options file (.yaml, .yml or .toml)")
		width       = flag.Int("width", 800, "window width")
		height      = flag.Int("height", 450, "window height")
		script      = flag.String("script", "", "JSON test script to run")
		shots       = flag.String("screenshots", "screenshots", "directory for test script screenshots")
		showFPS     = flag.Bool("fps", false, "show the FPS overlay")
		cyclic      = flag.Bool("cyclic", false, "wrap from the last slide to the first")
		debug       = flag.Bool("debug", false, "log engine activity")
	)
	flag.Parse()

	opts := microfiche.DefaultOptions()
	if *optionsPath != "" {
		var err error
		if opts, err = microfiche.LoadOptions(*optionsPath); err != nil {
			logger.Fatalf("%v", err)
		}
	}
	if *cyclic {
		opts.Cyclic = true
	}
	if *debug {
		opts.Debug = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loaded, err := slides.Load(ctx, *dir)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if len(loaded) == 0 {
		logger.Warningf("no slides in %s yet; waiting for images", *dir)
	}

	v := viewer.New(viewer.NewImageFilm(loaded), opts)
	v.ScreenshotDir = *shots
	v.ShowFPS = *showFPS

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			logger.Fatalf("read script: %v", err)
		}
		runner, err := viewer.LoadTestScript(data)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		v.SetTestRunner(runner)
	}

	w, err := slides.Watch(ctx, *dir, opts.Debounce)
	if err != nil {
		logger.Warningf("not watching %s: %v", *dir, err)
	} else {
		defer w.Close()
		films := make(chan viewer.Film, 1)
		v.Updates = films
		go forward(ctx, w, films, &logger)
	}

	if err := viewer.Run(v, viewer.RunConfig{
		Title:     "microfiche: " + *dir,
		Width:     *width,
		Height:    *height,
		Resizable: true,
	}); err != nil {
		logger.Fatalf("%v", err)
	}
}

// forward turns reloaded slide sets into films for the viewer, keeping only
// the latest when the game loop has not picked up the previous one.
func forward(ctx context.Context, w *slides.Watcher, films chan viewer.Film, logger *bslogger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-w.Errors():
			logger.Errorf("reload: %v", err)
		case s := <-w.Changes():
			logger.Infof("reloaded %d slides", len(s))
			f := viewer.NewImageFilm(s)
			select {
			case <-films:
			default:
			}
			films <- f
		}
	}
}
