package game

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/ecs"
)

// DriftSystem nudges the ball's visual position while it is not dragged.
type DriftSystem struct {
	Drag   ecs.Singleton[DragState]
	Drift  ecs.Singleton[Drift]
	Params ecs.Singleton[Params]
	Balls  ecs.Query[struct {
		*Transform
		*Ball
	}]
}

func (s *DriftSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Drag.Get().Dragging {
		return
	}

	params := s.Params.Get()
	drift := s.Drift.Get()
	// A sleeping body is not synced back, so keep the visual inside the walls.
	limit := params.ArenaHalfSize - params.BallRadius
	for ball := range s.Balls.Values() {
		pos := &ball.Transform.Position
		pos[0] = mgl64.Clamp(pos[0]+drift.X+params.DriftX, -limit, limit)
		pos[2] = mgl64.Clamp(pos[2]+drift.Z+params.DriftZ, -limit, limit)
	}
	drift.X *= params.DriftFriction
	drift.Z *= params.DriftFriction
}

// StepSystem advances the physics world by one fixed step.
type StepSystem struct {
	Arena ecs.Singleton[Arena]
}

func (s *StepSystem) Execute(frame *ecs.UpdateFrame) {
	s.Arena.Get().World.Step()
}

// SyncSystem copies awake physics bodies onto their transforms.
type SyncSystem struct {
	Arena  ecs.Singleton[Arena]
	Bodies ecs.Query[struct {
		*Transform
		*Body
	}]
}

func (s *SyncSystem) Execute(frame *ecs.UpdateFrame) {
	world := s.Arena.Get().World
	for item := range s.Bodies.Values() {
		if world.IsSleeping(item.Body.Handle) {
			continue
		}
		item.Transform.Position = world.Translation(item.Body.Handle)
		item.Transform.Rotation = world.Rotation(item.Body.Handle)
	}
}

// ResetSystem returns the ball and target to their spawn points once the
// ball drops to the plane.
type ResetSystem struct {
	Arena    ecs.Singleton[Arena]
	Params   ecs.Singleton[Params]
	Counter  ecs.Singleton[HitCounter]
	Events   ecs.Singleton[FrameEvents]
	Spawners ecs.Query[struct {
		*Transform
		*Body
		*Spawn
	}]
}

func (s *ResetSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	params := s.Params.Get()

	if arena.World.Translation(arena.BallBody).Y() > arena.PlaneY+params.ResetMargin {
		return
	}

	for item := range s.Spawners.Values() {
		arena.World.SetTranslation(item.Body.Handle, item.Spawn.Position, true)
		arena.World.SetLinvel(item.Body.Handle, mgl64.Vec3{}, true)
		item.Transform.Position = item.Spawn.Position
	}

	counter := s.Counter.Get()
	counter.Resets++
	s.Events.Get().Reset = true

	if params.Debug {
		log.Printf("[GAME] reset #%d at frame %d", counter.Resets, frame.Number)
	}
}

// ScoreSystem counts ball-target contacts, ignoring contacts within
// HitCooldown of the last counted hit.
type ScoreSystem struct {
	Clock Clock

	Arena   ecs.Singleton[Arena]
	Params  ecs.Singleton[Params]
	Counter ecs.Singleton[HitCounter]
	Events  ecs.Singleton[FrameEvents]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	contact, ok := arena.World.ContactPair(arena.BallCollider, arena.TargetCollider)
	if !ok {
		return
	}

	counter := s.Counter.Get()
	params := s.Params.Get()
	now := s.Clock.Now()
	if counter.HasHit && now <= counter.LastHit+params.HitCooldown {
		return
	}

	counter.Count++
	counter.HasHit = true
	counter.LastHit = now

	events := s.Events.Get()
	events.Hits = append(events.Hits, HitEvent{
		Count: counter.Count,
		At:    now,
		Point: contact.Point,
		Depth: contact.Depth,
	})

	if params.Debug {
		log.Printf("[GAME] hit %d at %v", counter.Count, now)
	}
}
