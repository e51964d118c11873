// Package terminal renders the simulation into a character grid with tcell.
// Each cell covers cellW×2cellW camera pixels so the default view fits the
// terminal; trails are drawn as dots and bodies as filled discs.
package terminal

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/orbits/game"
)

const (
	bodyRune  = '●'
	trailRune = '·'
)

// Frontend drives a Game from a tcell screen.
type Frontend struct {
	screen tcell.Screen
	game   *game.Game

	status     tcell.Style
	mouseDown  bool
	trailAlpha uint8
}

// New creates a frontend. The screen must already be initialised.
func New(screen tcell.Screen, g *game.Game) *Frontend {
	screen.EnableMouse()
	return &Frontend{
		screen:     screen,
		game:       g,
		status:     tcell.StyleDefault.Foreground(tcell.ColorSilver),
		trailAlpha: g.Config().Render.TrailAlpha,
	}
}

// cellWidth returns the camera pixels covered by one cell horizontally.
// Cells are twice as tall as they are wide.
func (f *Frontend) cellWidth() float64 {
	cols, rows := f.screen.Size()
	rows-- // status line
	if cols < 1 || rows < 1 {
		return 1
	}
	cam := f.game.Camera()
	return math.Max(cam.ViewportW/float64(cols), cam.ViewportH/(2*float64(rows)))
}

// CellToScreen returns the camera pixel at the center of cell (cx, cy).
func (f *Frontend) CellToScreen(cx, cy int) (sx, sy float64) {
	w := f.cellWidth()
	return (float64(cx) + 0.5) * w, (float64(cy) + 0.5) * 2 * w
}

// ScreenToCell returns the cell containing camera pixel (sx, sy).
func (f *Frontend) ScreenToCell(sx, sy float64) (cx, cy int) {
	w := f.cellWidth()
	return int(math.Floor(sx / w)), int(math.Floor(sy / (2 * w)))
}

func (f *Frontend) worldToCell(p r2.Vec) (int, int) {
	return f.ScreenToCell(f.game.Camera().WorldToScreen(p))
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ev)
	case *tcell.EventMouse:
		f.handleMouse(ev)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

func (f *Frontend) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		f.pan(game.ActionPanUp)
	case tcell.KeyDown:
		f.pan(game.ActionPanDown)
	case tcell.KeyLeft:
		f.pan(game.ActionPanLeft)
	case tcell.KeyRight:
		f.pan(game.ActionPanRight)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case '+', '=':
			f.game.Apply(game.ActionZoomIn)
		case '-':
			f.game.Apply(game.ActionZoomOut)
		case ' ':
			f.game.Apply(game.ActionTogglePause)
		case 'r', 'R':
			f.game.Apply(game.ActionReset)
		case 'c', 'C':
			f.game.Apply(game.ActionToggleCollisions)
		case 'n', 'N':
			f.game.Apply(game.ActionStepOnce)
		}
	}
	return true
}

// pan moves the view by about one cell per key press, since terminals
// report presses rather than held keys.
func (f *Frontend) pan(a game.Action) {
	speed := f.game.Config().Camera.PanSpeed
	repeat := 1
	if speed > 0 {
		repeat = int(math.Ceil(f.cellWidth() / speed))
	}
	if a == game.ActionPanUp || a == game.ActionPanDown {
		repeat *= 2
	}
	for i := 0; i < repeat; i++ {
		f.game.Apply(a)
	}
}

func (f *Frontend) handleMouse(ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	if down && !f.mouseDown {
		cx, cy := ev.Position()
		sx, sy := f.CellToScreen(cx, cy)
		if _, err := f.game.PlaceDefaultAt(sx, sy); err != nil {
			slog.Warn("placement rejected", "error", err)
		}
	}
	f.mouseDown = down
}

// Draw renders the current state and shows it.
func (f *Frontend) Draw() {
	s := f.screen
	s.Clear()
	cols, rows := s.Size()
	field := rows - 1

	put := func(cx, cy int, r rune, st tcell.Style) {
		if cx >= 0 && cx < cols && cy >= 0 && cy < field {
			s.SetContent(cx, cy, r, nil, st)
		}
	}

	g := f.game
	g.EachBody(func(b game.BodyView) {
		st := tcell.StyleDefault.Foreground(dim(b.Color, f.trailAlpha))
		for _, p := range b.Trail {
			cx, cy := f.worldToCell(p)
			put(cx, cy, trailRune, st)
		}
	})

	w := f.cellWidth()
	g.EachBody(func(b game.BodyView) {
		st := tcell.StyleDefault.Foreground(rgb(b.Color))
		cx, cy := f.worldToCell(b.Pos)
		put(cx, cy, bodyRune, st)

		// Fill the disc when it spans more than one cell.
		rc := int(g.DrawRadius(b.Radius) / w)
		for dy := -rc; dy <= rc; dy++ {
			for dx := -2 * rc; dx <= 2*rc; dx++ {
				if float64(dx*dx)/4+float64(dy*dy) <= float64(rc*rc) {
					put(cx+dx, cy+dy, bodyRune, st)
				}
			}
		}
	})

	f.drawStatus(cols, rows-1)
	s.Show()
}

func (f *Frontend) drawStatus(cols, row int) {
	g := f.game
	state := "running"
	switch {
	case g.Halted():
		state = "COLLISION"
	case g.Paused():
		state = "paused"
	}
	collisions := "halt"
	if !g.CollisionsHalt() {
		collisions = "off"
	}
	line := fmt.Sprintf(" bodies %d | day %.0f | %.1f d/s | %s | collisions %s | q quit",
		g.BodyCount(), g.SimDays(), g.SimRate(), state, collisions)

	st := f.status
	if g.Halted() {
		st = st.Foreground(tcell.ColorRed).Bold(true)
	}
	for i, r := range []rune(line) {
		if i >= cols {
			break
		}
		f.screen.SetContent(i, row, r, nil, st)
	}
}

// Run processes events and frames until quit or maxSteps steps
// (0 = unlimited). fps paces the frames.
func (f *Frontend) Run(fps int, maxSteps int64) {
	if fps < 1 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go f.screen.ChannelEvents(events, quit)

	for {
		select {
		case ev, ok := <-events:
			if !ok || !f.HandleEvent(ev) {
				return
			}

		case <-ticker.C:
			f.game.BeginFrame()
			f.game.Update()
			f.Draw()
			f.game.EndFrame()

			if maxSteps > 0 && f.game.StepCount() >= maxSteps {
				slog.Info("max steps reached", "step", f.game.StepCount())
				return
			}
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// dim blends c toward black by alpha/255.
func dim(c color.RGBA, alpha uint8) tcell.Color {
	k := int32(alpha)
	return tcell.NewRGBColor(int32(c.R)*k/255, int32(c.G)*k/255, int32(c.B)*k/255)
}
