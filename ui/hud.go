package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbits/systems"
	"github.com/pthm-cable/orbits/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Bodies         int
	Step           int64
	SimDays        float64
	DaysPerSecond  float64
	FPS            int32
	Zoom           float64
	Paused         bool
	CollisionsHalt bool
	Halted         bool
	PlacementMode  string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Bodies: %d | Step: %d | Day: %.0f", data.Bodies, data.Step, data.SimDays),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("%.1f days/s | FPS: %d | Zoom: %.2fx", data.DaysPerSecond, data.FPS, data.Zoom),
		10, 55, 16, rl.LightGray,
	)

	collisions := "Collisions: halt"
	if !data.CollisionsHalt {
		collisions = "Collisions: ignored"
	}
	rl.DrawText(fmt.Sprintf("%s | Click: %s", collisions, data.PlacementMode), 10, 75, 16, rl.LightGray)

	switch {
	case data.Halted:
		rl.DrawText("HALTED", 10, 95, 16, h.renderer.Theme.Alert)
	case data.Paused:
		rl.DrawText("PAUSED", 10, 95, 16, rl.Yellow)
	default:
		rl.DrawText("Running", 10, 95, 16, rl.Green)
	}
}

// DrawCollisionBanner renders the centred banner shown while a collision
// holds the simulation.
func (h *HUD) DrawCollisionBanner(screenWidth, screenHeight int32) {
	const text = "COLLISION"
	const size = 40
	w := rl.MeasureText(text, size)
	x := (screenWidth - w) / 2
	y := screenHeight/2 - size
	rl.DrawText(text, x, y, size, h.renderer.Theme.Alert)

	hint := "press R to reset or C to ignore collisions"
	hw := rl.MeasureText(hint, 16)
	rl.DrawText(hint, (screenWidth-hw)/2, y+size+8, 16, rl.LightGray)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(registry *systems.SystemRegistry, x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: registry,
		x:        x,
		y:        y,
		width:    260,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the drawn panel height.
func (p *PerfPanel) Height() int32 {
	return int32(len(p.registry.IDs()))*14 + 36 + p.renderer.Theme.Padding*2
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.Height())
	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | %.0f fps", stats.AvgTickDuration.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range p.registry.IDs() {
		avg := stats.PhaseAvg[id]
		pct := stats.PhasePct[id]

		color := r.Theme.LabelColor
		if pct > 50 {
			color = r.Theme.Alert
		} else if pct > 25 {
			color = r.Theme.Warning
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", p.registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
