package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/physics"
)

// gameWindow shows the hit counter, drag state and both physics bodies.
func gameWindow(storage *ecs.Storage) func() {
	return func() {
		var counter *game.HitCounter
		var drag *game.DragState
		var arena *game.Arena
		if !storage.ReadSingleton(&counter) || !storage.ReadSingleton(&arena) {
			return
		}
		storage.ReadSingleton(&drag)

		imgui.SetNextWindowPosV(imgui.NewVec2(10, 370), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(360, 200), imgui.CondOnce)
		if imgui.BeginV("Game", nil, 0) {
			imgui.Text(fmt.Sprintf("Hits: %d  Resets: %d", counter.Count, counter.Resets))
			if counter.HasHit {
				imgui.Text(fmt.Sprintf("Last hit: %s", counter.LastHit))
			}
			if drag != nil {
				imgui.Text(fmt.Sprintf("Dragging: %v", drag.Dragging))
			}
			imgui.Separator()
			bodyText(arena.World, "Ball", arena.BallBody)
			bodyText(arena.World, "Target", arena.TargetBody)
		}
		imgui.End()
	}
}

func bodyText(world *physics.World, name string, h physics.BodyHandle) {
	pos := world.Translation(h)
	vel := world.Linvel(h)
	state := "awake"
	if world.IsSleeping(h) {
		state = "sleeping"
	}
	imgui.Text(fmt.Sprintf("%s (%s)", name, state))
	imgui.Text(fmt.Sprintf("  pos (%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z()))
	imgui.Text(fmt.Sprintf("  vel (%.2f, %.2f, %.2f)", vel.X(), vel.Y(), vel.Z()))
}
