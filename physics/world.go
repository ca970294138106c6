package physics

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"
)

// IntegrationParameters tune the fixed-step solver.
type IntegrationParameters struct {
	Dt               float64
	SolverIterations int

	// Erp is the fraction of remaining penetration corrected per step.
	Erp float64
	// AllowedLinearError is the penetration left uncorrected.
	AllowedLinearError float64
	// PredictionDistance keeps contacts alive while shapes are this close.
	PredictionDistance float64
	// RestitutionThreshold is the approach speed below which contacts do
	// not bounce.
	RestitutionThreshold float64

	LinearSleepThreshold  float64
	AngularSleepThreshold float64
	TimeUntilSleep        float64
}

// DefaultIntegrationParameters steps at 60 Hz.
func DefaultIntegrationParameters() IntegrationParameters {
	return IntegrationParameters{
		Dt:                    1.0 / 60.0,
		SolverIterations:      8,
		Erp:                   0.2,
		AllowedLinearError:    0.005,
		PredictionDistance:    0.002,
		RestitutionThreshold:  1.0,
		LinearSleepThreshold:  0.4,
		AngularSleepThreshold: 0.5,
		TimeUntilSleep:        2.0,
	}
}

// ContactEvent reports a pair of colliders entering or leaving contact
// during the last step.
type ContactEvent struct {
	Collider1 ColliderHandle
	Collider2 ColliderHandle
	Started   bool
}

// World owns bodies, colliders and contacts. It is not safe for
// concurrent use.
type World struct {
	Gravity mgl64.Vec3
	Params  IntegrationParameters

	bodies    []*rigidBody
	colliders []*collider

	manifolds *intmap.Map[uint64, *Manifold]
	previous  *intmap.Map[uint64, *Manifold]
	active    []*Manifold
	events    []ContactEvent

	steps uint64
}

// NewWorld creates an empty world with the given gravity.
func NewWorld(gravity mgl64.Vec3) *World {
	return &World{
		Gravity:   gravity,
		Params:    DefaultIntegrationParameters(),
		manifolds: intmap.New[uint64, *Manifold](32),
		previous:  intmap.New[uint64, *Manifold](32),
	}
}

// CreateRigidBody inserts a body and returns its handle.
func (w *World) CreateRigidBody(desc BodyDesc) BodyHandle {
	w.bodies = append(w.bodies, newRigidBody(desc))
	return BodyHandle(len(w.bodies) - 1)
}

// CreateCollider attaches a collider to body and updates the body's mass.
func (w *World) CreateCollider(desc ColliderDesc, body BodyHandle) ColliderHandle {
	b := w.body(body)
	c := &collider{
		shape:       desc.Shape,
		density:     desc.Density,
		fixedMass:   desc.Mass,
		restitution: desc.Restitution,
		friction:    desc.Friction,
		body:        body,
	}
	w.colliders = append(w.colliders, c)
	handle := ColliderHandle(len(w.colliders) - 1)

	b.colliders = append(b.colliders, handle)
	attached := make([]*collider, len(b.colliders))
	for i, h := range b.colliders {
		attached[i] = w.colliders[h]
	}
	b.recomputeMass(attached)
	return handle
}

func (w *World) body(h BodyHandle) *rigidBody {
	if h < 0 || int(h) >= len(w.bodies) {
		panic(fmt.Sprintf("physics: invalid body handle %d", h))
	}
	return w.bodies[h]
}

func (w *World) collider(h ColliderHandle) *collider {
	if h < 0 || int(h) >= len(w.colliders) {
		panic(fmt.Sprintf("physics: invalid collider handle %d", h))
	}
	return w.colliders[h]
}

// Bodies yields every body handle in creation order.
func (w *World) Bodies() iter.Seq[BodyHandle] {
	return func(yield func(BodyHandle) bool) {
		for i := range w.bodies {
			if !yield(BodyHandle(i)) {
				return
			}
		}
	}
}

func (w *World) NumBodies() int { return len(w.bodies) }
func (w *World) NumColliders() int { return len(w.colliders) }

// Steps returns how many times Step has run.
func (w *World) Steps() uint64 { return w.steps }

func (w *World) BodyType(h BodyHandle) BodyType { return w.body(h).kind }
func (w *World) Mass(h BodyHandle) float64 { return w.body(h).mass }
func (w *World) Translation(h BodyHandle) mgl64.Vec3 { return w.body(h).pos }
func (w *World) Rotation(h BodyHandle) mgl64.Quat { return w.body(h).rot }
func (w *World) Linvel(h BodyHandle) mgl64.Vec3 { return w.body(h).linvel }
func (w *World) Angvel(h BodyHandle) mgl64.Vec3 { return w.body(h).angvel }
func (w *World) IsSleeping(h BodyHandle) bool { return w.body(h).sleeping }
func (w *World) ColliderBody(c ColliderHandle) BodyHandle { return w.collider(c).body }
func (w *World) ColliderShape(c ColliderHandle) Shape { return w.collider(c).shape }

// SetTranslation teleports the body.
func (w *World) SetTranslation(h BodyHandle, v mgl64.Vec3, wake bool) {
	b := w.body(h)
	b.pos = v
	if wake {
		b.wake()
	}
}

func (w *World) SetRotation(h BodyHandle, q mgl64.Quat, wake bool) {
	b := w.body(h)
	b.rot = q.Normalize()
	if wake {
		b.wake()
	}
}

func (w *World) SetLinvel(h BodyHandle, v mgl64.Vec3, wake bool) {
	b := w.body(h)
	if !b.isDynamic() {
		return
	}
	b.linvel = v
	if wake {
		b.wake()
	}
}

func (w *World) SetAngvel(h BodyHandle, v mgl64.Vec3, wake bool) {
	b := w.body(h)
	if !b.isDynamic() {
		return
	}
	b.angvel = v
	if wake {
		b.wake()
	}
}

// ApplyImpulse changes the body's linear velocity by impulse / mass.
func (w *World) ApplyImpulse(h BodyHandle, impulse mgl64.Vec3, wake bool) {
	b := w.body(h)
	if !b.isDynamic() {
		return
	}
	b.linvel = b.linvel.Add(impulse.Mul(b.invMass))
	if wake {
		b.wake()
	}
}

func (w *World) WakeUp(h BodyHandle) {
	w.body(h).wake()
}

// ContactPair returns the contact between c1 and c2 with the normal
// pointing from c1 to c2.
func (w *World) ContactPair(c1, c2 ColliderHandle) (Manifold, bool) {
	m, ok := w.manifolds.Get(pairKey(c1, c2))
	if !ok {
		return Manifold{}, false
	}
	if m.Collider1 != c1 {
		return m.Flipped(), true
	}
	return *m, true
}

// ContactEvents returns the contact changes produced by the last Step.
func (w *World) ContactEvents() []ContactEvent {
	return w.events
}

// Step advances the simulation by Params.Dt.
func (w *World) Step() {
	dt := w.Params.Dt
	w.steps++

	for _, b := range w.bodies {
		if !b.active() {
			continue
		}
		b.linvel = b.linvel.Add(w.Gravity.Mul(dt))
		if b.linDamping > 0 {
			b.linvel = b.linvel.Mul(1 / (1 + dt*b.linDamping))
		}
		if b.angDamping > 0 {
			b.angvel = b.angvel.Mul(1 / (1 + dt*b.angDamping))
		}
	}

	w.findContacts()
	w.solveVelocities(dt)

	for _, b := range w.bodies {
		if !b.active() {
			continue
		}
		b.pos = b.pos.Add(b.linvel.Mul(dt))
		spin := mgl64.Quat{W: 0, V: b.angvel}
		b.rot = b.rot.Add(spin.Mul(b.rot).Scale(0.5 * dt)).Normalize()
	}

	w.correctPositions()
	w.updateSleep(dt)
}

// findContacts runs the broad and narrow phase, wakes sleeping bodies hit
// by moving ones and records contact events. Pairs where nothing is awake
// keep their previous manifold.
func (w *World) findContacts() {
	w.previous, w.manifolds = w.manifolds, w.previous
	w.manifolds.Clear()
	w.active = w.active[:0]
	w.events = w.events[:0]

	margin := w.Params.PredictionDistance
	for i := 0; i < len(w.colliders); i++ {
		c1 := w.colliders[i]
		b1 := w.bodies[c1.body]
		lo1, hi1 := c1.shape.bounds(b1.pos, b1.rot)

		for j := i + 1; j < len(w.colliders); j++ {
			c2 := w.colliders[j]
			if c1.body == c2.body {
				continue
			}
			b2 := w.bodies[c2.body]
			if !b1.isDynamic() && !b2.isDynamic() {
				continue
			}

			key := pairKey(ColliderHandle(i), ColliderHandle(j))
			if !b1.active() && !b2.active() {
				if m, ok := w.previous.Get(key); ok {
					w.manifolds.Put(key, m)
				}
				continue
			}

			lo2, hi2 := c2.shape.bounds(b2.pos, b2.rot)
			if !overlaps(lo1, hi1, lo2, hi2, margin) {
				continue
			}

			normal, point, depth, ok := collide(c1.shape, pose{b1.pos, b1.rot}, c2.shape, pose{b2.pos, b2.rot}, margin)
			if !ok {
				continue
			}

			m, ok := w.previous.Get(key)
			if !ok {
				m = &Manifold{Collider1: ColliderHandle(i), Collider2: ColliderHandle(j)}
			}
			m.Normal, m.Point, m.Depth = normal, point, depth
			w.manifolds.Put(key, m)
			w.active = append(w.active, m)

			wakeTouched(b1, b2)
			wakeTouched(b2, b1)
		}
	}

	w.collectEvents()
}

// wakeTouched wakes other when mover is awake and has not started to
// settle.
func wakeTouched(mover, other *rigidBody) {
	if mover.active() && mover.sleepTimer == 0 && other.isDynamic() && other.sleeping {
		other.wake()
	}
}

func (w *World) collectEvents() {
	for key, m := range w.manifolds.All() {
		if !w.previous.Has(key) {
			w.events = append(w.events, ContactEvent{Collider1: m.Collider1, Collider2: m.Collider2, Started: true})
		}
	}
	for key, m := range w.previous.All() {
		if !w.manifolds.Has(key) {
			w.events = append(w.events, ContactEvent{Collider1: m.Collider1, Collider2: m.Collider2})
		}
	}
	slices.SortFunc(w.events, func(a, b ContactEvent) int {
		if c := int(a.Collider1) - int(b.Collider1); c != 0 {
			return c
		}
		return int(a.Collider2) - int(b.Collider2)
	})
}

func overlaps(lo1, hi1, lo2, hi2 mgl64.Vec3, margin float64) bool {
	for i := 0; i < 3; i++ {
		if lo1[i] > hi2[i]+margin || lo2[i] > hi1[i]+margin {
			return false
		}
	}
	return true
}

func (w *World) updateSleep(dt float64) {
	lin := w.Params.LinearSleepThreshold
	ang := w.Params.AngularSleepThreshold
	for _, b := range w.bodies {
		if !b.active() || !b.canSleep {
			continue
		}
		if b.linvel.LenSqr() > lin*lin || b.angvel.LenSqr() > ang*ang {
			b.sleepTimer = 0
			continue
		}
		b.sleepTimer += dt
		if b.sleepTimer >= w.Params.TimeUntilSleep {
			b.sleeping = true
			b.linvel = mgl64.Vec3{}
			b.angvel = mgl64.Vec3{}
		}
	}
}
