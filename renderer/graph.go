package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/species"
	"github.com/pthm-cable/blobs/telemetry"
)

var (
	graphBg     = rl.Color{R: 20, G: 25, B: 30, A: 220}
	graphBorder = rl.Color{R: 60, G: 70, B: 80, A: 255}
	graphGrid   = rl.Color{R: 45, G: 50, B: 58, A: 255}
)

// DrawPopulationGraph plots each species' share of the population in bounds,
// 0% at the bottom and 100% at the top, oldest sample on the left.
func DrawPopulationGraph(h *telemetry.PopulationHistory, table *species.Table, bounds rl.Rectangle) {
	rl.DrawRectangleRec(bounds, graphBg)
	rl.DrawRectangleLinesEx(bounds, 1, graphBorder)

	for _, pct := range []float32{25, 50, 75} {
		y := bounds.Y + bounds.Height*(1-pct/100)
		rl.DrawLineV(rl.Vector2{X: bounds.X, Y: y}, rl.Vector2{X: bounds.X + bounds.Width, Y: y}, graphGrid)
	}

	samples := h.Samples()
	if len(samples) < 2 {
		rl.DrawText("collecting...", int32(bounds.X)+6, int32(bounds.Y)+6, 12, rl.LightGray)
		return
	}

	step := bounds.Width / float32(max(h.MaxSamples()-1, 1))
	points := make([]rl.Vector2, len(samples))

	for _, sp := range table.All() {
		for i, s := range samples {
			points[i] = rl.Vector2{
				X: bounds.X + float32(i)*step,
				Y: bounds.Y + bounds.Height*(1-float32(s.Percent[sp.ID])/100),
			}
		}
		rl.DrawLineStrip(points, sp.Color)
	}

	// Legend with the latest counts
	last := samples[len(samples)-1]
	y := int32(bounds.Y) + 4
	for _, sp := range table.All() {
		label := fmt.Sprintf("%s %d (%.0f%%)", sp.Name, last.Counts[sp.ID], last.Percent[sp.ID])
		rl.DrawText(label, int32(bounds.X)+6, y, 10, sp.Color)
		y += 12
	}
}
