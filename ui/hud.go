package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antigravity/telemetry"
)

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Bodies    int
	Sleeping  int
	Hovered   int // object id, or -1
	Escaped   int
	Clicks    int
	WallSwaps int
	Clients   int
	Tick      int32
	FPS       int32
	Paused    bool
}

// HUD renders the debug heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Lines returns the HUD text lines for data.
func (h *HUD) Lines(data HUDData) []string {
	hovered := "-"
	if data.Hovered >= 0 {
		hovered = fmt.Sprintf("#%d", data.Hovered)
	}
	lines := []string{
		fmt.Sprintf("Bodies: %d | Sleeping: %d | Escaped: %d", data.Bodies, data.Sleeping, data.Escaped),
		fmt.Sprintf("Hovered: %s | Clicks: %d | Wall swaps: %d", hovered, data.Clicks, data.WallSwaps),
		fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS),
	}
	if data.Clients > 0 {
		lines = append(lines, fmt.Sprintf("Remote clients: %d", data.Clients))
	}
	return lines
}

// Draw renders the HUD anchored at the bottom right.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	t := h.renderer.Theme
	lines := h.Lines(data)
	width := int32(0)
	for _, l := range lines {
		width = max(width, rl.MeasureText(l, t.FontSize))
	}
	height := int32(len(lines)+1)*t.LineHeight + t.Padding*2
	x, y := AnchorPosition(AnchorBottomRight, width+t.Padding*2, height, screenW, screenH, 16)

	h.renderer.DrawPanel(x, y, width+t.Padding*2, height)
	y += t.Padding
	for _, l := range lines {
		rl.DrawText(l, x+t.Padding, y, t.FontSize, t.LabelColor)
		y += t.LineHeight
	}

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	rl.DrawText(status, x+t.Padding, y, t.FontSize, rl.Yellow)
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s | FPS: %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.FPS), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
