package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// mouseHelp lists the pointer bindings shown under the overlay keys.
var mouseHelp = []string{
	"Drag: orbit the viewport under the pointer",
	"Wheel: dolly",
}

// HelpPanel lists the overlay key bindings and mouse controls.
type HelpPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHelpPanel creates a help panel.
func NewHelpPanel(x, y, width int32) *HelpPanel {
	return &HelpPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *HelpPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the Y position below it.
func (c *HelpPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	items := len(overlays.All()) + len(mouseHelp)
	height := int32(items+1)*lineHeight + padding*3
	r.DrawPanel(c.x, c.y, c.width, height)

	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Keys")
	for _, desc := range overlays.All() {
		c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
		y += lineHeight
	}
	y += 4
	for _, line := range mouseHelp {
		rl.DrawText(line, c.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		y += lineHeight
	}
	return c.y + height
}

// drawToggle draws one overlay line with its state and key.
func (c *HelpPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}
