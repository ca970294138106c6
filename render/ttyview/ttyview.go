// Package ttyview draws a top-down view of a game session in a terminal
// and feeds mouse drags back into it.
package ttyview

import (
	"context"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flickball/ecs"
	"github.com/plus3/flickball/game"
	"github.com/plus3/flickball/render"
)

const ballRune = '●'

// View owns a tcell screen. Events are read on the caller's goroutine and
// handed to the session with Enqueue; drawing happens on the frame
// goroutine.
type View struct {
	screen  tcell.Screen
	session *game.Session
	pointer render.PointerSampler
	params  game.Params
	meshes  *ecs.View[struct {
		*game.Transform
		*game.Mesh
	}]
}

// New wraps an initialized screen and enables mouse drag reporting.
func New(screen tcell.Screen, session *game.Session) *View {
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()
	return &View{
		screen:  screen,
		session: session,
		params:  session.Params(),
		meshes: ecs.NewView[struct {
			*game.Transform
			*game.Mesh
		}](session.Storage),
	}
}

func (v *View) grid() Grid {
	w, h := v.screen.Size()
	return NewGrid(w, h, v.params.ArenaHalfSize)
}

// HandleEvent processes one terminal event and reports whether the view
// should quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := v.grid().Pixels(col, row, v.params.DragScale)
		down := ev.Buttons()&tcell.Button1 != 0
		if event, ok := v.pointer.Sample(down, x, y, false); ok {
			v.session.Enqueue(event)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventInterrupt:
		return true
	}
	return false
}

// Draw renders the arena, both balls and the HUD.
func (v *View) Draw() {
	v.screen.Clear()
	grid := v.grid()

	plane := tcell.StyleDefault.Background(tcell.FromImageColor(game.PlaneColor))
	wall := tcell.StyleDefault.Foreground(tcell.FromImageColor(game.WallColor)).Background(tcell.FromImageColor(game.WallColor))
	for row := grid.Top; row < grid.Top+grid.Rows; row++ {
		for col := grid.Left; col < grid.Left+grid.Cols; col++ {
			if grid.Border(col, row) {
				v.screen.SetContent(col, row, '█', nil, wall)
			} else {
				v.screen.SetContent(col, row, ' ', nil, plane)
			}
		}
	}

	for item := range v.meshes.Values() {
		if item.Mesh.Kind != game.MeshSphere {
			continue
		}
		col, row := grid.Cell(item.Transform.Position.X(), item.Transform.Position.Z())
		v.screen.SetContent(col, row, ballRune, nil, plane.Foreground(tcell.FromImageColor(item.Mesh.Color)))
	}

	hud := strings.Join(render.HUDLines(v.session.HitCount()), "  ")
	for i, r := range hud {
		v.screen.SetContent(i, 0, r, nil, tcell.StyleDefault)
	}

	v.screen.Show()
}

type drawSystem struct {
	view *View
}

func (s *drawSystem) Execute(frame *ecs.UpdateFrame) {
	s.view.Draw()
}

// Run drives the session with Scheduler.Run at interval and reads
// terminal events until the user quits or ctx is cancelled.
func (v *View) Run(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v.session.Scheduler.Register(&drawSystem{view: v})

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.session.Scheduler.Run(ctx, interval)
	}()
	go func() {
		<-ctx.Done()
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		ev := v.screen.PollEvent()
		if ev == nil || v.HandleEvent(ev) {
			break
		}
	}
	cancel()
	<-done
}
