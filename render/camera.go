package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFOV                 = 55.0
	DefaultNear                = 0.5
	DefaultFar                 = 100.0
	DefaultCameraHeight        = 12.0
	DefaultCompactCameraHeight = 21.0
	DefaultCameraDistance      = 4.0
	DefaultCompactWidth        = 512
)

// Camera is a perspective camera looking at Target from above and in
// front of the arena. Viewports narrower than CompactWidth use
// CompactHeight so the whole arena stays visible.
type Camera struct {
	FOV           float64 // vertical, degrees
	Near, Far     float64
	Height        float64
	CompactHeight float64
	CompactWidth  int
	Distance      float64
	Target        mgl64.Vec3

	width, height int
	eye           mgl64.Vec3
	view          mgl64.Mat4
	proj          mgl64.Mat4
}

// NewCamera returns a camera with the default lens sized to width x height.
func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:           DefaultFOV,
		Near:          DefaultNear,
		Far:           DefaultFar,
		Height:        DefaultCameraHeight,
		CompactHeight: DefaultCompactCameraHeight,
		CompactWidth:  DefaultCompactWidth,
		Distance:      DefaultCameraDistance,
	}
	c.Resize(width, height)
	return c
}

// Resize updates the viewport and recomputes the matrices.
func (c *Camera) Resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)

	y := c.Height
	if c.Compact() {
		y = c.CompactHeight
	}
	c.eye = mgl64.Vec3{c.Target.X(), c.Target.Y() + y, c.Target.Z() + c.Distance}
	c.view = mgl64.LookAtV(c.eye, c.Target, mgl64.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect(), c.Near, c.Far)
}

func (c *Camera) Compact() bool {
	return c.width < c.CompactWidth
}

func (c *Camera) Eye() mgl64.Vec3 {
	return c.eye
}

func (c *Camera) Viewport() (width, height int) {
	return c.width, c.height
}

func (c *Camera) Aspect() float64 {
	return float64(c.width) / float64(c.height)
}

// Project maps a world point to screen pixels, origin top-left. depth is
// the distance along the view direction; ok is false for points behind
// the near plane.
func (c *Camera) Project(p mgl64.Vec3) (screen mgl64.Vec2, depth float64, ok bool) {
	clip := c.proj.Mul4(c.view).Mul4x1(p.Vec4(1))
	if clip.W() < c.Near {
		return mgl64.Vec2{}, clip.W(), false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	screen = mgl64.Vec2{
		(ndc.X() + 1) / 2 * float64(c.width),
		(1 - ndc.Y()) / 2 * float64(c.height),
	}
	return screen, clip.W(), true
}

// ProjectRadius returns the on-screen radius of a sphere of radius r at
// the given view depth.
func (c *Camera) ProjectRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	f := 1 / math.Tan(mgl64.DegToRad(c.FOV)/2)
	return r * f * float64(c.height) / 2 / depth
}
