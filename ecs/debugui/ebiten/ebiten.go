// Package ebiten hosts the debug UI on cimgui-go's ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flickball/ecs"
)

// ImguiBackend wraps the ebiten Dear ImGui backend. It is stored as a
// singleton so the frontend and systems share one instance.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend window and adds it to storage as a
// singleton. imgui.ini persistence is disabled.
func NewImguiBackend(storage *ecs.Storage, title string, width, height int) *ecs.Singleton[ImguiBackend] {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: backend})
}

// Frame runs fn between BeginFrame and EndFrame. ImguiSystem must run
// inside fn so its deferred windows are emitted in the open frame.
func (b *ImguiBackend) Frame(fn func()) {
	b.BeginFrame()
	defer b.EndFrame()
	fn()
}

// Overlay draws the last ImGui frame on top of screen.
func (b *ImguiBackend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}
