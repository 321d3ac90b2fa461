package microfiche

import "time"

// MoveEvent describes a transition. From is the presented offset when the
// move was requested, To the settled target (after any cyclic wrap for
// didMove).
type MoveEvent struct {
	From     float64
	To       float64
	Page     int
	Duration time.Duration
}

type moveHandler struct {
	id uint32
	fn func(MoveEvent)
}

type handlerRegistry struct {
	willMove []moveHandler
	didMove  []moveHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered engine callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventWillMove:
		h.reg.willMove = removeMoveHandler(h.reg.willMove, h.id)
	case EventDidMove:
		h.reg.didMove = removeMoveHandler(h.reg.didMove, h.id)
	}
}

func removeMoveHandler(s []moveHandler, id uint32) []moveHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = moveHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnWillMove registers a callback fired before any transition begins.
func (e *Engine) OnWillMove(fn func(MoveEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.willMove = append(e.handlers.willMove, moveHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventWillMove}
}

// OnDidMove registers a callback fired once per completed transition, after
// any cyclic wrap-fixup.
func (e *Engine) OnDidMove(fn func(MoveEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.didMove = append(e.handlers.didMove, moveHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventDidMove}
}

func (e *Engine) fireWillMove(ev MoveEvent) {
	for _, h := range e.handlers.willMove {
		h.fn(ev)
	}
}

func (e *Engine) fireDidMove(ev MoveEvent) {
	for _, h := range e.handlers.didMove {
		h.fn(ev)
	}
}
