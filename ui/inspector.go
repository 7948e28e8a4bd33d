package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/game"
)

// Inspector shows the fields of the selected agent.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates an inspector panel anchored at (x, y).
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders one inspection.
func (i *Inspector) Draw(in game.Inspection) {
	r := i.renderer
	t := r.Theme

	height := int32(len(in.Fields)+3)*(t.LineHeight+2) + 2*t.Padding
	r.DrawPanel(i.x, i.y, i.width, height)

	x := i.x + t.Padding
	y := i.y + t.Padding
	inner := i.width - 2*t.Padding

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Agent #%d", in.ID))
	y = r.DrawLabelValue(x, y, "Species", in.Species)
	parent := "founder"
	if in.Parent != 0 {
		parent = fmt.Sprintf("#%d", in.Parent)
	}
	y = r.DrawLabelValue(x, y, "Parent", parent)

	for _, f := range in.Fields {
		if f.Bar >= 0 {
			y = r.DrawBar(x, y, f.Label, f.Bar, f.Text, inner)
			continue
		}
		y = r.DrawLabelValue(x, y, f.Label, f.Text)
	}
}

// DrawEmpty renders the hint shown when nothing is selected.
func (i *Inspector) DrawEmpty() {
	t := i.renderer.Theme
	rl.DrawText("Click an agent to inspect it", i.x+t.Padding, i.y+t.Padding, t.FontSize, t.LabelColor)
}
