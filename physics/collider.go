package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind is the geometric primitive of a collider.
type ShapeKind int

const (
	ShapeBall ShapeKind = iota
	ShapeCuboid
)

// Shape is a ball (Radius) or an axis-aligned box in body space
// (HalfExtents).
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
}

func (s Shape) volume() float64 {
	switch s.Kind {
	case ShapeBall:
		return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
	case ShapeCuboid:
		return 8 * s.HalfExtents.X() * s.HalfExtents.Y() * s.HalfExtents.Z()
	}
	return 0
}

// inertia returns a scalar moment of inertia. Boxes use the mean of their
// three principal moments.
func (s Shape) inertia(mass float64) float64 {
	switch s.Kind {
	case ShapeBall:
		return 0.4 * mass * s.Radius * s.Radius
	case ShapeCuboid:
		h := s.HalfExtents
		return 2 * mass * (h.X()*h.X() + h.Y()*h.Y() + h.Z()*h.Z()) / 9
	}
	return 0
}

// bounds returns the world-space AABB of the shape at pos/rot.
func (s Shape) bounds(pos mgl64.Vec3, rot mgl64.Quat) (lo, hi mgl64.Vec3) {
	var ext mgl64.Vec3
	switch s.Kind {
	case ShapeBall:
		ext = mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	case ShapeCuboid:
		m := rot.Mat4()
		for i := 0; i < 3; i++ {
			ext[i] = math.Abs(m.At(i, 0))*s.HalfExtents[0] +
				math.Abs(m.At(i, 1))*s.HalfExtents[1] +
				math.Abs(m.At(i, 2))*s.HalfExtents[2]
		}
	}
	return pos.Sub(ext), pos.Add(ext)
}

// ColliderHandle identifies a collider inside its World.
type ColliderHandle int

// ColliderDesc describes a collider before it is attached to a body. Mass,
// when positive, overrides the density-derived mass.
type ColliderDesc struct {
	Shape       Shape
	Density     float64
	Mass        float64
	Restitution float64
	Friction    float64
}

// BallCollider describes a sphere of radius r.
func BallCollider(r float64) ColliderDesc {
	return ColliderDesc{
		Shape:    Shape{Kind: ShapeBall, Radius: r},
		Density:  1,
		Friction: 0.5,
	}
}

// CuboidCollider describes a box with the given half extents.
func CuboidCollider(hx, hy, hz float64) ColliderDesc {
	return ColliderDesc{
		Shape:    Shape{Kind: ShapeCuboid, HalfExtents: mgl64.Vec3{hx, hy, hz}},
		Density:  1,
		Friction: 0.5,
	}
}

func (d ColliderDesc) WithMass(m float64) ColliderDesc {
	d.Mass = m
	return d
}

func (d ColliderDesc) WithDensity(density float64) ColliderDesc {
	d.Density = density
	d.Mass = 0
	return d
}

func (d ColliderDesc) WithRestitution(e float64) ColliderDesc {
	d.Restitution = e
	return d
}

func (d ColliderDesc) WithFriction(mu float64) ColliderDesc {
	d.Friction = mu
	return d
}

type collider struct {
	shape       Shape
	density     float64
	fixedMass   float64
	restitution float64
	friction    float64
	body        BodyHandle
}

func (c *collider) mass() float64 {
	if c.fixedMass > 0 {
		return c.fixedMass
	}
	return c.density * c.shape.volume()
}

// combine averages two material coefficients.
func combine(a, b float64) float64 {
	return (a + b) / 2
}
