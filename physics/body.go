package physics

import "github.com/go-gl/mathgl/mgl64"

// BodyType selects how a rigid body takes part in the simulation.
type BodyType int

const (
	// Dynamic bodies are moved by gravity, contacts and impulses.
	Dynamic BodyType = iota
	// Fixed bodies never move and have infinite mass.
	Fixed
)

func (t BodyType) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// BodyHandle identifies a rigid body inside its World.
type BodyHandle int

// BodyDesc describes a rigid body before it is inserted into a World.
type BodyDesc struct {
	Type           BodyType
	Translation    mgl64.Vec3
	Rotation       mgl64.Quat
	Linvel         mgl64.Vec3
	Angvel         mgl64.Vec3
	LinearDamping  float64
	AngularDamping float64
	CanSleep       bool
}

// DynamicBody returns a description of a dynamic body at the origin.
func DynamicBody() BodyDesc {
	return BodyDesc{Type: Dynamic, Rotation: mgl64.QuatIdent(), CanSleep: true}
}

// FixedBody returns a description of a fixed body at the origin.
func FixedBody() BodyDesc {
	return BodyDesc{Type: Fixed, Rotation: mgl64.QuatIdent()}
}

func (d BodyDesc) WithTranslation(x, y, z float64) BodyDesc {
	d.Translation = mgl64.Vec3{x, y, z}
	return d
}

func (d BodyDesc) WithRotation(q mgl64.Quat) BodyDesc {
	d.Rotation = q.Normalize()
	return d
}

func (d BodyDesc) WithLinvel(v mgl64.Vec3) BodyDesc {
	d.Linvel = v
	return d
}

func (d BodyDesc) WithDamping(linear, angular float64) BodyDesc {
	d.LinearDamping = linear
	d.AngularDamping = angular
	return d
}

func (d BodyDesc) WithCanSleep(canSleep bool) BodyDesc {
	d.CanSleep = canSleep
	return d
}

type rigidBody struct {
	kind BodyType

	pos    mgl64.Vec3
	rot    mgl64.Quat
	linvel mgl64.Vec3
	angvel mgl64.Vec3

	mass       float64
	invMass    float64
	invInertia float64

	linDamping float64
	angDamping float64

	canSleep   bool
	sleeping   bool
	sleepTimer float64

	colliders []ColliderHandle
}

func newRigidBody(desc BodyDesc) *rigidBody {
	rot := desc.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	return &rigidBody{
		kind:       desc.Type,
		pos:        desc.Translation,
		rot:        rot.Normalize(),
		linvel:     desc.Linvel,
		angvel:     desc.Angvel,
		linDamping: desc.LinearDamping,
		angDamping: desc.AngularDamping,
		canSleep:   desc.CanSleep && desc.Type == Dynamic,
	}
}

func (b *rigidBody) isDynamic() bool {
	return b.kind == Dynamic
}

// active reports whether the body is simulated this step.
func (b *rigidBody) active() bool {
	return b.kind == Dynamic && !b.sleeping
}

func (b *rigidBody) wake() {
	if b.kind != Dynamic {
		return
	}
	b.sleeping = false
	b.sleepTimer = 0
}

// velocityAt returns the velocity of the body at the world-space offset r
// from its center.
func (b *rigidBody) velocityAt(r mgl64.Vec3) mgl64.Vec3 {
	return b.linvel.Add(b.angvel.Cross(r))
}

func (b *rigidBody) applyImpulseAt(impulse, r mgl64.Vec3) {
	if !b.isDynamic() {
		return
	}
	b.linvel = b.linvel.Add(impulse.Mul(b.invMass))
	b.angvel = b.angvel.Add(r.Cross(impulse).Mul(b.invInertia))
}

// recomputeMass sums the mass properties of the attached colliders. All
// colliders sit at the body center, so inertia is a plain sum.
func (b *rigidBody) recomputeMass(colliders []*collider) {
	b.mass, b.invMass, b.invInertia = 0, 0, 0
	if !b.isDynamic() {
		return
	}

	inertia := 0.0
	for _, c := range colliders {
		m := c.mass()
		b.mass += m
		inertia += c.shape.inertia(m)
	}
	if b.mass > 0 {
		b.invMass = 1 / b.mass
	}
	if inertia > 0 {
		b.invInertia = 1 / inertia
	}
}
