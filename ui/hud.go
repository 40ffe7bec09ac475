package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/states/telemetry"
)

// HUDData holds what the heads-up display shows.
type HUDData struct {
	Title      string
	Tick       uint64
	FrameIndex uint32
	Elapsed    float64
	FPS        int32
	State      string
}

// HUD renders the heads-up display in the top-left corner.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x := r.Theme.Padding
	rl.DrawText(data.Title, x, x, 20, rl.White)

	y := r.DrawSectionHeader(x, x+26, data.State)
	y = r.DrawLabelValue(x, y, "tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "frame", fmt.Sprintf("%d", data.FrameIndex))
	y = r.DrawLabelValue(x, y, "elapsed", fmt.Sprintf("%.1fs", data.Elapsed))
	r.DrawLabelValue(x, y, "fps", fmt.Sprintf("%d", data.FPS))
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the phase timings in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	theme := p.renderer.Theme
	x, y := p.x, p.y

	rl.DrawText("Tick Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("avg %s  p95 %s  %.0f fps",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond),
		stats.FPS,
	), x, y, 14, theme.SectionHeader)
	y += 18

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := theme.LabelColor
		if pct > 50 {
			color = theme.HotColor
		} else if pct > 25 {
			color = theme.WarnColor
		}
		rl.DrawText(
			fmt.Sprintf("%-17s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
