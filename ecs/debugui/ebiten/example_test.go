package ebiten_test

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/ecs/debugui"
	debugui_ebiten "github.com/plus3/flickball/ecs/debugui/ebiten"
)

type Scoreboard struct {
	Hits int
}

type Game struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	g.backend.Get().Frame(func() {
		g.scheduler.Once(1.0 / 60.0)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Get().Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	backend := debugui_ebiten.NewImguiBackend(storage, "flickball debug", 1280, 720)
	scoreboard := ecs.NewSingleton[Scoreboard](storage)

	scheduler := ecs.NewScheduler(storage)
	debugui.SpawnDebugUI(storage, scheduler, func() {
		imgui.Begin("Score")
		imgui.Text(fmt.Sprintf("Hit: %d", scoreboard.Get().Hits))
		imgui.End()
	})

	if err := ebiten.RunGame(&Game{scheduler: scheduler, backend: backend}); err != nil {
		panic(err)
	}
}
