package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/game"
)

// Slider ranges for the food knobs.
const (
	maxSpawnInterval = 1000
	maxSpawnAmount   = 50
)

// Action is a one-shot request from the control panel.
type Action int

const (
	ActionNone Action = iota
	ActionReset
)

// ControlPanel edits the simulation knobs with sliders and buttons.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlPanel creates a control panel anchored at (x, y).
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Contains reports whether a screen point lies over the panel, so clicks
// there are not treated as agent selection.
func (c *ControlPanel) Contains(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, c.bounds())
}

func (c *ControlPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height())}
}

func (c *ControlPanel) height() int32 {
	t := c.renderer.Theme
	return 3*(t.LineHeight+28) + 2*32 + t.LineHeight + 2*t.Padding
}

// HandleKeys applies keyboard shortcuts: Space pauses, V toggles vision, R resets.
func HandleKeys(g *game.Game) Action {
	k := g.Knobs()
	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!k.Paused)
	}
	if rl.IsKeyPressed(rl.KeyV) {
		g.SetShowVision(!k.ShowVision)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		return ActionReset
	}
	return ActionNone
}

// Draw renders the panel and writes any changed knob back to the game.
func (c *ControlPanel) Draw(g *game.Game) Action {
	r := c.renderer
	t := r.Theme
	k := g.Knobs()
	action := ActionNone

	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x + t.Padding)
	y := c.y + t.Padding
	inner := float32(c.width - 2*t.Padding)

	y = r.DrawSectionHeader(int32(x), y, "Controls")

	if v := c.slider(x, &y, inner, fmt.Sprintf("Tick rate: %d/s", k.TargetTickRate),
		k.TargetTickRate, game.MinTickRate, game.MaxTickRate); v != k.TargetTickRate {
		g.SetTargetTickRate(v)
	}
	if v := c.slider(x, &y, inner, fmt.Sprintf("Food every %d ticks", k.FoodSpawnInterval),
		k.FoodSpawnInterval, 1, maxSpawnInterval); v != k.FoodSpawnInterval {
		g.SetFoodSpawnInterval(v)
	}
	if v := c.slider(x, &y, inner, fmt.Sprintf("Food per spawn: %d", k.FoodSpawnAmount),
		k.FoodSpawnAmount, 0, maxSpawnAmount); v != k.FoodSpawnAmount {
		g.SetFoodSpawnAmount(v)
	}

	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 26}, toggleText(k.Paused, "Resume", "Pause")) {
		g.SetPaused(!k.Paused)
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: float32(y), Width: half, Height: 26}, toggleText(k.ShowVision, "Hide vision", "Show vision")) {
		g.SetShowVision(!k.ShowVision)
	}
	y += 32
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 26}, "Reset") {
		action = ActionReset
	}

	return action
}

// slider draws a labelled integer slider and returns its value.
func (c *ControlPanel) slider(x float32, y *int32, width float32, label string, value, lo, hi int) int {
	t := c.renderer.Theme
	rl.DrawText(label, int32(x), *y, t.FontSize, t.LabelColor)
	*y += t.LineHeight

	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(*y), Width: width, Height: 18},
		"", "",
		float32(value), float32(lo), float32(hi),
	)
	*y += 28
	return int(v + 0.5)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
