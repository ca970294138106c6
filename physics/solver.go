package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// contactBodies resolves the two bodies of m along with the inverse mass
// and inertia they contribute. Sleeping and fixed bodies contribute zero.
func (w *World) contactBodies(m *Manifold) (b1, b2 *rigidBody, im1, im2, ii1, ii2 float64) {
	b1 = w.bodies[w.colliders[m.Collider1].body]
	b2 = w.bodies[w.colliders[m.Collider2].body]
	if b1.active() {
		im1, ii1 = b1.invMass, b1.invInertia
	}
	if b2.active() {
		im2, ii2 = b2.invMass, b2.invInertia
	}
	return
}

func angularTerm(r, dir mgl64.Vec3, invInertia float64) float64 {
	c := r.Cross(dir)
	return invInertia * c.Dot(c)
}

// solveVelocities runs the sequential impulse solver over the active
// contacts. Restitution uses the approach speed measured before solving.
// Separated contacts allow approach up to the gap closed in one step.
func (w *World) solveVelocities(dt float64) {
	for _, m := range w.active {
		b1, b2, im1, im2, ii1, ii2 := w.contactBodies(m)
		r1 := m.Point.Sub(b1.pos)
		r2 := m.Point.Sub(b2.pos)

		k := im1 + im2 + angularTerm(r1, m.Normal, ii1) + angularTerm(r2, m.Normal, ii2)
		m.effectiveMass = 0
		if k > 0 {
			m.effectiveMass = 1 / k
		}
		m.normalImpulse = 0
		m.tangentImpulse = mgl64.Vec3{}

		vn := b2.velocityAt(r2).Sub(b1.velocityAt(r1)).Dot(m.Normal)
		switch {
		case m.Depth < 0:
			m.targetVel = m.Depth / dt
		case vn < -w.Params.RestitutionThreshold:
			c1, c2 := w.colliders[m.Collider1], w.colliders[m.Collider2]
			m.targetVel = -combine(c1.restitution, c2.restitution) * vn
		default:
			m.targetVel = 0
		}
	}

	for range w.Params.SolverIterations {
		for _, m := range w.active {
			if m.effectiveMass == 0 {
				continue
			}
			w.solveContact(m)
		}
	}
}

func (w *World) solveContact(m *Manifold) {
	b1, b2, im1, im2, ii1, ii2 := w.contactBodies(m)
	r1 := m.Point.Sub(b1.pos)
	r2 := m.Point.Sub(b2.pos)

	rel := b2.velocityAt(r2).Sub(b1.velocityAt(r1))
	vn := rel.Dot(m.Normal)

	lambda := (m.targetVel - vn) * m.effectiveMass
	total := math.Max(m.normalImpulse+lambda, 0)
	lambda = total - m.normalImpulse
	m.normalImpulse = total
	applyPair(b1, b2, m.Normal.Mul(lambda), r1, r2)

	if m.normalImpulse == 0 {
		return
	}

	rel = b2.velocityAt(r2).Sub(b1.velocityAt(r1))
	tangential := rel.Sub(m.Normal.Mul(rel.Dot(m.Normal)))
	speed := tangential.Len()
	if speed < 1e-9 {
		return
	}
	dir := tangential.Mul(1 / speed)

	k := im1 + im2 + angularTerm(r1, dir, ii1) + angularTerm(r2, dir, ii2)
	if k == 0 {
		return
	}

	c1, c2 := w.colliders[m.Collider1], w.colliders[m.Collider2]
	limit := combine(c1.friction, c2.friction) * m.normalImpulse

	next := m.tangentImpulse.Add(dir.Mul(-speed / k))
	if l := next.Len(); l > limit {
		next = next.Mul(limit / l)
	}
	applyPair(b1, b2, next.Sub(m.tangentImpulse), r1, r2)
	m.tangentImpulse = next
}

// applyPair applies impulse to b2 and its opposite to b1.
func applyPair(b1, b2 *rigidBody, impulse, r1, r2 mgl64.Vec3) {
	if b1.active() {
		b1.applyImpulseAt(impulse.Mul(-1), r1)
	}
	if b2.active() {
		b2.applyImpulseAt(impulse, r2)
	}
}

// correctPositions pushes overlapping bodies apart by a fraction of the
// penetration beyond the allowed error.
func (w *World) correctPositions() {
	slop := w.Params.AllowedLinearError
	for _, m := range w.active {
		b1, b2, im1, im2, _, _ := w.contactBodies(m)
		total := im1 + im2
		if total == 0 {
			continue
		}

		c1, c2 := w.colliders[m.Collider1], w.colliders[m.Collider2]
		normal, _, depth, ok := collide(c1.shape, pose{b1.pos, b1.rot}, c2.shape, pose{b2.pos, b2.rot}, 0)
		if !ok || depth <= slop {
			continue
		}

		shift := normal.Mul((depth - slop) * w.Params.Erp / total)
		b1.pos = b1.pos.Sub(shift.Mul(im1))
		b2.pos = b2.pos.Add(shift.Mul(im2))
	}
}
