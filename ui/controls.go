package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel displays.
type ControlsState struct {
	Paused bool
	Bodies int
}

// ControlsAction reports which buttons were pressed this frame.
type ControlsAction struct {
	TogglePause bool
	NudgeAll    bool
	Step        bool
}

// ControlsPanel renders the debug controls: simulation buttons plus one
// checkbox per overlay.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height for the given registry.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	rows := int32(0)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return r.Theme.Padding*3 + r.Theme.LineHeight + 2*36 + rows*(r.Theme.LineHeight+4)
}

// Draw renders the panel and applies overlay checkbox changes directly to
// the registry. Simulation actions are returned to the caller.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsAction {
	var act ControlsAction
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	x := float32(c.x + padding)
	y := c.y + padding

	rl.DrawText(fmt.Sprintf("Controls (%d bodies)", state.Bodies), c.x+padding, y, 16, rl.White)
	y += lineHeight + 6

	half := float32(c.width-padding*3) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 28}, toggleText(state.Paused, "Resume", "Pause")) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: float32(y), Width: half, Height: 28}, "Step") {
		act.Step = true
	}
	y += 36
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: float32(c.width - padding*2), Height: 28}, "Nudge all") {
		act.NudgeAll = true
	}
	y += 36

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight + 4

		for _, desc := range overlays.ByCategory(category) {
			label := desc.Name
			if desc.KeyLabel != "" {
				label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			}
			enabled := overlays.IsEnabled(desc.ID)
			checked := gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 12, Height: 12}, label, enabled)
			if checked != enabled {
				overlays.SetEnabled(desc.ID, checked)
			}
			y += lineHeight + 4
		}
	}

	return act
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "scene":
		return "Scene"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
