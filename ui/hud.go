package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/species"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Tick        int32
	FPS         int32
	TickRate    int
	Paused      bool
	FoodCount   int
	Populations []int
	Species     *species.Table
}

// HUD renders the top-left status readout.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at (x, y).
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD and returns the Y just below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	t := r.Theme

	lines := int32(5 + data.Species.Len())
	height := lines*t.LineHeight + 2*t.Padding + 8
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + t.Padding
	y := h.y + t.Padding

	rl.DrawText(data.Title, x, y, 18, rl.White)
	y += t.LineHeight + 8

	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprint(data.Tick))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d (target %d)", data.FPS, data.TickRate))
	y = r.DrawLabelValue(x, y, "Food", fmt.Sprint(data.FoodCount))

	for _, sp := range data.Species.All() {
		n := 0
		if int(sp.ID) < len(data.Populations) {
			n = data.Populations[sp.ID]
		}
		y = r.DrawSwatchLine(x, y, sp.Color, sp.Name, n)
	}

	status, c := "Running", rl.Green
	if data.Paused {
		status, c = "PAUSED", rl.Yellow
	}
	rl.DrawText(status, x, y, t.FontSize, c)

	return h.y + height
}
