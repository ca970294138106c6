package game

import (
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/physics"
)

// Transform is the visual pose of an entity.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Body links an entity to its physics body.
type Body struct {
	Handle   physics.BodyHandle
	Collider physics.ColliderHandle
}

type MeshKind int

const (
	MeshSphere MeshKind = iota
	MeshBox
	MeshPlane
)

func (k MeshKind) String() string {
	switch k {
	case MeshSphere:
		return "sphere"
	case MeshBox:
		return "box"
	case MeshPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Mesh describes how to draw an entity. Size holds full extents along the
// world axes for boxes and planes.
type Mesh struct {
	Kind   MeshKind
	Radius float64
	Size   mgl64.Vec3
	Color  color.RGBA
}

// Name labels an entity in debug views.
type Name string

type Ball struct{}

type Target struct{}

// Spawn is where an entity returns to on reset.
type Spawn struct {
	Position mgl64.Vec3
}

var (
	BallColor   = color.RGBA{0x00, 0xff, 0x00, 0xff}
	TargetColor = color.RGBA{0xff, 0x33, 0x55, 0xff}
	PlaneColor  = color.RGBA{0xff, 0xbf, 0x00, 0xff}
	WallColor   = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// DragState tracks the pointer gesture.
type DragState struct {
	Dragging bool
	LastX    float64
	LastY    float64
}

// Drift is the extra per-frame visual velocity of the ball, zeroed on
// pointer down.
type Drift struct {
	X, Z float64
}

// HitCounter counts ball-target contacts. LastHit is a Clock reading.
type HitCounter struct {
	Count   int
	HasHit  bool
	LastHit time.Duration
	Resets  int
}

// HitEvent is published for every counted hit.
type HitEvent struct {
	Count int
	At    time.Duration
	Point mgl64.Vec3
	Depth float64
}

// FrameEvents collects what happened during the current frame.
type FrameEvents struct {
	Hits  []HitEvent
	Reset bool
}

// Arena holds the physics world and the handles of the two balls.
type Arena struct {
	World *physics.World

	Ball   ecs.EntityId
	Target ecs.EntityId

	BallBody       physics.BodyHandle
	BallCollider   physics.ColliderHandle
	TargetBody     physics.BodyHandle
	TargetCollider physics.ColliderHandle

	PlaneY float64
}

// NewComponentRegistry registers every entity component used by the game.
func NewComponentRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Mesh](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Ball](registry)
	ecs.RegisterComponent[Target](registry)
	ecs.RegisterComponent[Spawn](registry)
	return registry
}
