package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/physics"
)

const (
	wallOffset    = 4.85
	wallHeight    = 1.0
	wallThickness = 0.3
)

type wallDesc struct {
	name    string
	x, z    float64
	along   bool // runs along Z
	collide physics.ColliderDesc
}

// BuildArena creates the physics world and spawns the plane, the four
// walls, the ball and the target into storage. The Arena singleton is
// returned.
func BuildArena(storage *ecs.Storage, params Params) *Arena {
	world := physics.NewWorld(mgl64.Vec3{0, -params.Gravity, 0})
	half := params.ArenaHalfSize

	plane := world.CreateRigidBody(physics.FixedBody().WithTranslation(0, params.PlaneY, 0))
	world.CreateCollider(physics.CuboidCollider(half, 0.5, half), plane)
	storage.Spawn(
		Name("plane"),
		Transform{Position: mgl64.Vec3{0, params.PlaneY + 0.5, 0}, Rotation: mgl64.QuatIdent()},
		Mesh{Kind: MeshPlane, Size: mgl64.Vec3{2 * half, 0, 2 * half}, Color: PlaneColor},
	)

	walls := []wallDesc{
		{"wall right", wallOffset, 0, true, physics.CuboidCollider(0.5, 5, 5)},
		{"wall left", -wallOffset, 0, true, physics.CuboidCollider(0.5, 5, 5)},
		{"wall bottom", 0, -wallOffset, false, physics.CuboidCollider(5, 0.5, 0.15)},
		{"wall top", 0, wallOffset, false, physics.CuboidCollider(5, 0.5, 0.15)},
	}
	for _, w := range walls {
		body := world.CreateRigidBody(physics.FixedBody().WithTranslation(w.x, 0.5, w.z))
		world.CreateCollider(w.collide, body)

		size := mgl64.Vec3{2 * half, wallHeight, wallThickness}
		if w.along {
			size = mgl64.Vec3{wallThickness, wallHeight, 2 * half}
		}
		storage.Spawn(
			Name(w.name),
			Transform{Position: mgl64.Vec3{w.x, 0.5, w.z}, Rotation: mgl64.QuatIdent()},
			Mesh{Kind: MeshBox, Size: size, Color: WallColor},
		)
	}

	arena := &Arena{World: world, PlaneY: params.PlaneY}

	arena.BallBody, arena.BallCollider = spawnSphere(world, params.BallSpawn, params.BallRadius, params.BallMass, params.Restitution)
	arena.Ball = storage.Spawn(
		Name("ball"),
		Ball{},
		Spawn{Position: params.BallSpawn},
		Transform{Position: params.BallSpawn, Rotation: mgl64.QuatIdent()},
		Body{Handle: arena.BallBody, Collider: arena.BallCollider},
		Mesh{Kind: MeshSphere, Radius: params.BallRadius, Color: BallColor},
	)

	arena.TargetBody, arena.TargetCollider = spawnSphere(world, params.TargetSpawn, params.TargetRadius, params.TargetMass, params.Restitution)
	arena.Target = storage.Spawn(
		Name("target"),
		Target{},
		Spawn{Position: params.TargetSpawn},
		Transform{Position: params.TargetSpawn, Rotation: mgl64.QuatIdent()},
		Body{Handle: arena.TargetBody, Collider: arena.TargetCollider},
		Mesh{Kind: MeshSphere, Radius: params.TargetRadius, Color: TargetColor},
	)

	storage.AddSingleton(arena)
	return ecs.NewSingleton[Arena](storage).Get()
}

func spawnSphere(world *physics.World, at mgl64.Vec3, radius, mass, restitution float64) (physics.BodyHandle, physics.ColliderHandle) {
	body := world.CreateRigidBody(physics.DynamicBody().WithTranslation(at.X(), at.Y(), at.Z()))
	collider := world.CreateCollider(
		physics.BallCollider(radius).WithMass(mass).WithRestitution(restitution),
		body,
	)
	return body, collider
}
