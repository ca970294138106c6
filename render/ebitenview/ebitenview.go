// Package ebitenview draws a game session in an ebiten window. The scene
// is projected with render.Camera and filled as 2D shapes, and the debug
// UI can be layered on top.
package ebitenview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/ecs/debugui"
	debugui_ebiten "github.com/plus3/flickball/ecs/debugui/ebiten"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Game implements ebiten.Game for a session.
type Game struct {
	session *game.Session
	camera  *render.Camera
	scene   *render.Scene
	pointer render.PointerSampler

	overlay *ecs.Singleton[debugui_ebiten.ImguiBackend]
	capture *ecs.Singleton[debugui.ImguiInputState]

	vertices []ebiten.Vertex
	indices  []uint16
}

func New(session *game.Session, camera *render.Camera) *Game {
	return &Game{
		session: session,
		camera:  camera,
		scene:   render.NewScene(session.Storage),
	}
}

// WithOverlay wraps every frame in an ImGui frame and drops presses the
// overlay captures. SpawnDebugUI must already have run on the session.
func (g *Game) WithOverlay(overlay *ecs.Singleton[debugui_ebiten.ImguiBackend]) *Game {
	g.overlay = overlay
	g.capture = ecs.NewSingleton[debugui.ImguiInputState](g.session.Storage)
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	captured := g.capture != nil && g.capture.Get().WantCaptureMouse
	if event, ok := g.pointer.Sample(down, float64(x), float64(y), captured); ok {
		event.Apply(g.session.Input)
	}

	if g.overlay != nil {
		g.overlay.Get().Frame(g.session.Frame)
	} else {
		g.session.Frame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.Background)

	for _, d := range g.scene.Build(g.camera) {
		if d.IsCircle() {
			vector.DrawFilledCircle(screen, float32(d.Center.X()), float32(d.Center.Y()), float32(d.Radius), d.Color, true)
			continue
		}
		g.fillPolygon(screen, d)
	}

	for i, line := range render.HUDLines(g.session.HitCount()) {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
	}

	if g.overlay != nil {
		g.overlay.Get().Overlay(screen)
	}
}

func (g *Game) fillPolygon(screen *ebiten.Image, d render.Drawable) {
	var path vector.Path
	for i, p := range d.Polygon {
		if i == 0 {
			path.MoveTo(float32(p.X()), float32(p.Y()))
		} else {
			path.LineTo(float32(p.X()), float32(p.Y()))
		}
	}
	path.Close()

	g.vertices, g.indices = path.AppendVerticesAndIndicesForFilling(g.vertices[:0], g.indices[:0])
	r, gr, b, a := float32(d.Color.R)/255, float32(d.Color.G)/255, float32(d.Color.B)/255, float32(d.Color.A)/255
	for i := range g.vertices {
		g.vertices[i].SrcX = 1
		g.vertices[i].SrcY = 1
		g.vertices[i].ColorR = r
		g.vertices[i].ColorG = gr
		g.vertices[i].ColorB = b
		g.vertices[i].ColorA = a
	}

	screen.DrawTriangles(g.vertices, g.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.Resize(outsideWidth, outsideHeight)
	if g.overlay != nil {
		g.overlay.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or Escape is
// pressed.
func Run(g *Game, title string, width, height, tps int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	return ebiten.RunGame(g)
}
