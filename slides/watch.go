package slides

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a slide directory after it changes. Bursts of file events
// are coalesced: a reload starts once no event has arrived for the debounce
// interval.
type Watcher struct {
	dir      string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	changes  chan []Slide
	errs     chan error
	done     chan struct{}
	cancel   context.CancelFunc
	log      bslogger.Logger
}

// Watch starts watching dir. Reloaded slides are delivered on Changes; only
// the latest set is kept if the receiver falls behind.
func Watch(ctx context.Context, dir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch slides: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch slides %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		dir:      dir,
		debounce: debounce,
		fsw:      fsw,
		changes:  make(chan []Slide, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
		cancel:   cancel,
		log:      bslogger.NewLogger("slides", bslogger.Normal, nil),
	}
	go w.loop(ctx)
	return w, nil
}

// Changes delivers the slide set after each settled change.
func (w *Watcher) Changes() <-chan []Slide { return w.changes }

// Errors delivers watch and reload errors. Errors are dropped when nobody
// is receiving.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return w.fsw.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.report(err)

		case <-timer.C:
			slides, err := Load(ctx, w.dir)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				w.report(err)
				continue
			}
			w.publish(slides)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !IsSlide(ev.Name) || filepath.Base(ev.Name)[0] == '.' {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) publish(slides []Slide) {
	select {
	case <-w.changes:
	default:
	}
	w.changes <- slides
}

func (w *Watcher) report(err error) {
	w.log.Warningf("%v", err)
	select {
	case w.errs <- err:
	default:
	}
}
