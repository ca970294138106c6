package game

import "github.com/plus3/flickball/ecs"

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer sample in screen coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Apply feeds the event to t.
func (e PointerEvent) Apply(t *InputTracker) {
	switch e.Kind {
	case PointerDown:
		t.PointerDown(e.X, e.Y)
	case PointerMove:
		t.PointerMove(e.X, e.Y)
	case PointerUp:
		t.PointerUp(e.X, e.Y)
	}
}

// PointerQueueSystem applies queued pointer events at the start of a
// frame, for frontends that read input on another goroutine.
type PointerQueueSystem struct {
	Input  *InputTracker
	Events <-chan PointerEvent
}

func (s *PointerQueueSystem) Execute(frame *ecs.UpdateFrame) {
	for {
		select {
		case event := <-s.Events:
			event.Apply(s.Input)
		default:
			return
		}
	}
}
