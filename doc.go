// Package microfiche is the state engine behind a horizontally paged
// carousel: a strip of content (the film) wider than its viewport (the
// screen), moved one screenful at a time.
//
// The package owns no rendering. It tracks a target offset, turns commands,
// touch samples and timer ticks into transitions, and reports what buttons
// and page bullets should show. The viewer package draws an [Engine] with
// Ebitengine; the tui package drives one from a terminal.
//
// # Quick start
//
//	e := microfiche.New(microfiche.Geometry{Screen: 300, Film: 1200}, microfiche.DefaultOptions())
//	e.OnDidMove(func(ev microfiche.MoveEvent) { fmt.Println("page", ev.Page) })
//	e.Next()
//
//	// once per frame:
//	e.Update(dt)
//	draw(e.Offset(), e.Controls())
//
// # Geometry
//
// Offsets run from 0 to Film-Screen. Every target the engine settles on is a
// multiple of Screen, clamped to that range, except the final page of a film
// that is not a whole number of screens long, which settles at the upper
// bound. A film no longer than its screen (or a zero-width screen) makes the
// engine inert: every operation is ignored and the controls are disabled.
//
// # Cyclic mode
//
// With [Options.Cyclic], moving past either end continues onto a duplicate
// of the film drawn one period ([Geometry.Period]) away. When the move
// completes the offset is shifted back by a period, which is invisible to
// the viewer, and [Engine.OnDidMove] reports the wrapped target.
//
// # Transitions
//
// A [Driver] moves the presented offset. [TweenDriver] eases with
// [gween]; [InstantDriver] completes on the next frame. A new request
// always supersedes the one in flight, and a superseded transition never
// reports didMove.
//
// # Input
//
// [Engine.TouchStart], [Engine.TouchMove] and [Engine.TouchEnd] accept
// single-contact samples. Movement past [Options.DragThreshold] on the
// vertical axis abandons the sequence; on the horizontal axis it becomes a
// drag that the film follows. Releasing a drag shifts by one page when it
// covered [Options.SwipeThreshold] of the screen, with a duration derived
// from the release velocity.
//
// # Commands
//
// Every operation has a [Command] form with a text syntax understood by
// [ParseCommand], so options files, scripts and remote controls share one
// vocabulary:
//
//	next
//	slide-to-page 2
//	autoplay 4s
//
// [gween]: https://github.com/tanema/gween
package microfiche
