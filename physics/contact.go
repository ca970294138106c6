package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Manifold is the contact between two colliders. Normal points from
// Collider1 towards Collider2. Depth is positive when the shapes overlap
// and negative when they are separated by less than the prediction
// distance.
type Manifold struct {
	Collider1 ColliderHandle
	Collider2 ColliderHandle
	Normal    mgl64.Vec3
	Point     mgl64.Vec3
	Depth     float64

	normalImpulse  float64
	tangentImpulse mgl64.Vec3

	effectiveMass float64
	targetVel     float64
}

// Flipped returns the manifold as seen from Collider2.
func (m Manifold) Flipped() Manifold {
	m.Collider1, m.Collider2 = m.Collider2, m.Collider1
	m.Normal = m.Normal.Mul(-1)
	return m
}

// NormalImpulse is the total impulse the solver applied along Normal
// during the last step.
func (m *Manifold) NormalImpulse() float64 {
	return m.normalImpulse
}

func pairKey(a, b ColliderHandle) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(uint32(b))
}

type pose struct {
	pos mgl64.Vec3
	rot mgl64.Quat
}

// collide computes the contact between two shapes, returning false when
// they are farther apart than margin. Cuboid pairs are never generated.
func collide(s1 Shape, p1 pose, s2 Shape, p2 pose, margin float64) (normal, point mgl64.Vec3, depth float64, ok bool) {
	switch {
	case s1.Kind == ShapeBall && s2.Kind == ShapeBall:
		return ballBall(s1.Radius, p1.pos, s2.Radius, p2.pos, margin)
	case s1.Kind == ShapeBall && s2.Kind == ShapeCuboid:
		return ballCuboid(s1.Radius, p1.pos, s2.HalfExtents, p2, margin)
	case s1.Kind == ShapeCuboid && s2.Kind == ShapeBall:
		normal, point, depth, ok = ballCuboid(s2.Radius, p2.pos, s1.HalfExtents, p1, margin)
		return normal.Mul(-1), point, depth, ok
	}
	return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
}

func ballBall(r1 float64, c1 mgl64.Vec3, r2 float64, c2 mgl64.Vec3, margin float64) (mgl64.Vec3, mgl64.Vec3, float64, bool) {
	delta := c2.Sub(c1)
	dist := delta.Len()
	depth := r1 + r2 - dist
	if depth < -margin {
		return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
	}

	normal := mgl64.Vec3{0, 1, 0}
	if dist > 1e-9 {
		normal = delta.Mul(1 / dist)
	}
	point := c1.Add(normal.Mul(r1 - depth/2))
	return normal, point, depth, true
}

// ballCuboid returns the contact with the normal pointing from the ball
// towards the box.
func ballCuboid(r float64, center mgl64.Vec3, half mgl64.Vec3, box pose, margin float64) (mgl64.Vec3, mgl64.Vec3, float64, bool) {
	inv := box.rot.Conjugate()
	local := inv.Rotate(center.Sub(box.pos))

	closest := mgl64.Vec3{
		mgl64.Clamp(local.X(), -half.X(), half.X()),
		mgl64.Clamp(local.Y(), -half.Y(), half.Y()),
		mgl64.Clamp(local.Z(), -half.Z(), half.Z()),
	}

	var normal mgl64.Vec3
	var depth float64
	if closest != local {
		// Center outside the box.
		delta := local.Sub(closest)
		dist := delta.Len()
		depth = r - dist
		if depth < -margin {
			return mgl64.Vec3{}, mgl64.Vec3{}, 0, false
		}
		normal = delta.Mul(-1 / dist)
	} else {
		// Center inside: push out through the nearest face.
		axis, sign, best := 0, 1.0, math.Inf(1)
		for i := 0; i < 3; i++ {
			for _, s := range []float64{1, -1} {
				gap := half[i] - s*local[i]
				if gap < best {
					axis, sign, best = i, s, gap
				}
			}
		}
		closest[axis] = sign * half[axis]
		normal[axis] = -sign
		depth = r + best
	}

	point := box.pos.Add(box.rot.Rotate(closest))
	return box.rot.Rotate(normal), point, depth, true
}
