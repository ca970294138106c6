package render

import (
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/game"
)

// Background is the clear color of every view.
var Background = color.RGBA{0xe5, 0xe4, 0xe2, 0xff}

// Drawable is one projected primitive: a circle when Polygon is empty,
// otherwise a filled polygon.
type Drawable struct {
	Entity  ecs.EntityId
	Center  mgl64.Vec2
	Radius  float64
	Polygon []mgl64.Vec2
	Color   color.RGBA
	Depth   float64
}

func (d Drawable) IsCircle() bool {
	return len(d.Polygon) == 0
}

// Scene projects every mesh in storage through a camera.
type Scene struct {
	meshes *ecs.View[struct {
		ecs.EntityId
		*game.Transform
		*game.Mesh
	}]
	drawables []Drawable
}

func NewScene(storage *ecs.Storage) *Scene {
	return &Scene{
		meshes: ecs.NewView[struct {
			ecs.EntityId
			*game.Transform
			*game.Mesh
		}](storage),
	}
}

// Build returns the drawables ordered back to front. The slice is reused
// by the next call.
func (s *Scene) Build(cam *Camera) []Drawable {
	s.drawables = s.drawables[:0]

	for item := range s.meshes.Values() {
		pos := item.Transform.Position
		switch item.Mesh.Kind {
		case game.MeshSphere:
			center, depth, ok := cam.Project(pos)
			if !ok {
				continue
			}
			s.drawables = append(s.drawables, Drawable{
				Entity: item.EntityId,
				Center: center,
				Radius: cam.ProjectRadius(item.Mesh.Radius, depth),
				Color:  item.Mesh.Color,
				Depth:  depth,
			})
		case game.MeshPlane:
			half := item.Mesh.Size.Mul(0.5)
			corners := []mgl64.Vec3{
				pos.Add(mgl64.Vec3{-half.X(), 0, -half.Z()}),
				pos.Add(mgl64.Vec3{half.X(), 0, -half.Z()}),
				pos.Add(mgl64.Vec3{half.X(), 0, half.Z()}),
				pos.Add(mgl64.Vec3{-half.X(), 0, half.Z()}),
			}
			// The ground is always drawn first.
			s.addFace(cam, item.EntityId, corners, item.Mesh.Color, cam.Far)
		case game.MeshBox:
			s.addBox(cam, item.EntityId, pos, item.Mesh.Size.Mul(0.5), item.Mesh.Color)
		}
	}

	slices.SortStableFunc(s.drawables, func(a, b Drawable) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})
	return s.drawables
}

type boxFace struct {
	normal  mgl64.Vec3
	corners [4]mgl64.Vec3
	shade   float64
}

func boxFaces(h mgl64.Vec3) []boxFace {
	x, y, z := h.X(), h.Y(), h.Z()
	return []boxFace{
		{mgl64.Vec3{0, 1, 0}, [4]mgl64.Vec3{{-x, y, -z}, {x, y, -z}, {x, y, z}, {-x, y, z}}, 1.0},
		{mgl64.Vec3{0, 0, 1}, [4]mgl64.Vec3{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}, 0.8},
		{mgl64.Vec3{0, 0, -1}, [4]mgl64.Vec3{{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}}, 0.8},
		{mgl64.Vec3{1, 0, 0}, [4]mgl64.Vec3{{x, -y, -z}, {x, -y, z}, {x, y, z}, {x, y, -z}}, 0.65},
		{mgl64.Vec3{-1, 0, 0}, [4]mgl64.Vec3{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}, 0.65},
	}
}

// addBox emits the faces of an axis-aligned box that face the camera.
func (s *Scene) addBox(cam *Camera, id ecs.EntityId, pos, half mgl64.Vec3, c color.RGBA) {
	for _, face := range boxFaces(half) {
		center := pos.Add(face.normal.Mul(face.normal.Dot(half)))
		if face.normal.Dot(cam.Eye().Sub(center)) <= 0 {
			continue
		}
		corners := make([]mgl64.Vec3, 4)
		for i, corner := range face.corners {
			corners[i] = pos.Add(corner)
		}
		_, depth, ok := cam.Project(center)
		if !ok {
			continue
		}
		s.addFace(cam, id, corners, Shade(c, face.shade), depth)
	}
}

func (s *Scene) addFace(cam *Camera, id ecs.EntityId, corners []mgl64.Vec3, c color.RGBA, depth float64) {
	polygon := make([]mgl64.Vec2, 0, len(corners))
	for _, corner := range corners {
		p, _, ok := cam.Project(corner)
		if !ok {
			return
		}
		polygon = append(polygon, p)
	}
	s.drawables = append(s.drawables, Drawable{
		Entity:  id,
		Polygon: polygon,
		Color:   c,
		Depth:   depth,
	})
}

// Shade scales the color channels by factor, keeping alpha.
func Shade(c color.RGBA, factor float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(min(255, float64(v)*factor))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
