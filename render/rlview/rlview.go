// Package rlview draws a game session in 3D with raylib.
package rlview

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render"
)

type View struct {
	session *game.Session
	camera  *render.Camera
	pointer render.PointerSampler
	meshes  *ecs.View[struct {
		*game.Transform
		*game.Mesh
	}]
}

func New(session *game.Session, camera *render.Camera) *View {
	return &View{
		session: session,
		camera:  camera,
		meshes: ecs.NewView[struct {
			*game.Transform
			*game.Mesh
		}](session.Storage),
	}
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// Camera3D mirrors the render camera, including compact mode.
func (v *View) Camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(v.camera.Eye()),
		Target:     vec3(v.camera.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(v.camera.FOV),
		Projection: rl.CameraPerspective,
	}
}

// Run opens the window and runs frames until it is closed.
func (v *View) Run(title string, width, height, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(fps))

	for !rl.WindowShouldClose() {
		v.camera.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())

		mouse := rl.GetMousePosition()
		down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
		if event, ok := v.pointer.Sample(down, float64(mouse.X), float64(mouse.Y), false); ok {
			event.Apply(v.session.Input)
		}

		v.session.Frame()
		v.draw()
	}
}

func (v *View) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(render.Background)

	rl.BeginMode3D(v.Camera3D())
	for item := range v.meshes.Values() {
		pos := vec3(item.Transform.Position)
		size := item.Mesh.Size
		switch item.Mesh.Kind {
		case game.MeshSphere:
			rl.DrawSphere(pos, float32(item.Mesh.Radius), item.Mesh.Color)
		case game.MeshBox:
			rl.DrawCube(pos, float32(size.X()), float32(size.Y()), float32(size.Z()), item.Mesh.Color)
			rl.DrawCubeWires(pos, float32(size.X()), float32(size.Y()), float32(size.Z()), render.Shade(item.Mesh.Color, 0.6))
		case game.MeshPlane:
			rl.DrawPlane(pos, rl.NewVector2(float32(size.X()), float32(size.Z())), item.Mesh.Color)
		}
	}
	rl.EndMode3D()

	for i, line := range render.HUDLines(v.session.HitCount()) {
		rl.DrawText(line, 10, int32(10+i*22), 20, rl.Black)
	}
	rl.DrawFPS(int32(rl.GetScreenWidth()-90), 10)
}
