package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/ecs"
)

// InputTracker turns pointer events into ball drags and flicks. Its
// methods must be called from the goroutine that runs the frames.
type InputTracker struct {
	drag   ecs.Singleton[DragState]
	drift  ecs.Singleton[Drift]
	arena  ecs.Singleton[Arena]
	params ecs.Singleton[Params]
}

func NewInputTracker(storage *ecs.Storage) *InputTracker {
	t := &InputTracker{}
	t.drag.Init(storage)
	t.drift.Init(storage)
	t.arena.Init(storage)
	t.params.Init(storage)
	return t
}

// PointerDown starts a drag and cancels any drift.
func (t *InputTracker) PointerDown(x, y float64) {
	drag := t.drag.Get()
	drag.Dragging = true
	drag.LastX, drag.LastY = x, y

	drift := t.drift.Get()
	drift.X, drift.Z = 0, 0
}

// PointerMove teleports the ball by the scaled pointer delta while
// dragging.
func (t *InputTracker) PointerMove(x, y float64) {
	drag := t.drag.Get()
	if !drag.Dragging {
		return
	}

	scale := t.params.Get().DragScale
	dx := (x - drag.LastX) * scale
	dz := (y - drag.LastY) * scale

	arena := t.arena.Get()
	pos := arena.World.Translation(arena.BallBody)
	arena.World.SetTranslation(arena.BallBody, mgl64.Vec3{pos.X() + dx, pos.Y(), pos.Z() + dz}, true)

	drag.LastX, drag.LastY = x, y
}

// PointerUp ends the drag and flicks the ball. The impulse is applied
// even when no drag was in progress.
func (t *InputTracker) PointerUp(x, y float64) {
	drag := t.drag.Get()
	drag.Dragging = false

	params := t.params.Get()
	ix := (x - drag.LastX) * params.FlickScale
	iz := (y - drag.LastY) * params.FlickScale

	arena := t.arena.Get()
	arena.World.ApplyImpulse(arena.BallBody, mgl64.Vec3{ix + params.FlickBiasX, 0, iz + params.FlickBiasZ}, true)
}

func (t *InputTracker) Dragging() bool {
	return t.drag.Get().Dragging
}
