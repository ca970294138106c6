package render

import "github.com/plus3/flickball/game"

// PointerSampler turns polled button state into pointer events. Views that
// poll the mouse once per frame feed it the button and cursor position.
type PointerSampler struct {
	pressed bool
	x, y    float64
}

// Sample returns the event implied by the current state, if any. A press
// is ignored while captured is set, but a drag that already started keeps
// going so its release is never lost to an overlay.
func (p *PointerSampler) Sample(down bool, x, y float64, captured bool) (game.PointerEvent, bool) {
	switch {
	case down && !p.pressed:
		if captured {
			return game.PointerEvent{}, false
		}
		p.pressed = true
		p.x, p.y = x, y
		return game.PointerEvent{Kind: game.PointerDown, X: x, Y: y}, true
	case down && p.pressed:
		if x == p.x && y == p.y {
			return game.PointerEvent{}, false
		}
		p.x, p.y = x, y
		return game.PointerEvent{Kind: game.PointerMove, X: x, Y: y}, true
	case !down && p.pressed:
		p.pressed = false
		return game.PointerEvent{Kind: game.PointerUp, X: x, Y: y}, true
	}
	return game.PointerEvent{}, false
}

// Pressed reports whether a drag is in progress.
func (p *PointerSampler) Pressed() bool {
	return p.pressed
}
