package debugui

import "github.com/plus3/flickball/ecs"

// SpawnDebugUI adds the stats and entity windows plus any extra render
// functions to storage, and registers ImguiSystem with scheduler. Call it
// once, after every other system has been registered.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler, extra ...func()) {
	RegisterComponents(storage.Registry())
	ecs.NewSingleton[ImguiInputState](storage)

	stats := NewPerformanceStats(120)
	browser := NewEntityBrowser()

	storage.Spawn(ImguiItem{Render: func() { stats.Render(storage, scheduler) }})
	storage.Spawn(ImguiItem{Render: func() { browser.Render(storage) }})
	for _, render := range extra {
		storage.Spawn(ImguiItem{Render: render})
	}

	scheduler.Register(&ImguiSystem{})
}
