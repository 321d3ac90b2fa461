package viewer

// syntheticPointerEvent is one injected pointer sample in screen
// coordinates, processed exactly like real input.
type syntheticPointerEvent struct {
	x, y     float64
	pressed  bool
	contacts int
}

// InjectPress queues a single-contact press at (x, y). Each queued event
// consumes one frame.
func (v *Viewer) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true, contacts: 1})
}

// InjectMove queues a move with the pointer held down. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (v *Viewer) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true, contacts: 1})
}

// InjectRelease queues a release at (x, y).
func (v *Viewer) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, contacts: 1})
}

// InjectMultiPress queues a press with the given number of contacts, which
// the engine refuses when it is more than one.
func (v *Viewer) InjectMultiPress(x, y float64, contacts int) {
	v.injectQueue = append(v.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true, contacts: contacts})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (v *Viewer) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, then a move and release at (toX, toY). The sequence
// consumes frames+1 frames; frames below 2 are raised to 2.
func (v *Viewer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	v.InjectMove(toX, toY)
	v.InjectRelease(toX, toY)
}

// Pending reports the number of queued injected events.
func (v *Viewer) Pending() int {
	return len(v.injectQueue)
}

// processInjectedInput pops one queued event and feeds it through
// processPointer. It reports whether an event was consumed, in which case
// real input is skipped for the frame.
func (v *Viewer) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	v.processPointer(evt.x, evt.y, evt.pressed, evt.contacts)
	return true
}
