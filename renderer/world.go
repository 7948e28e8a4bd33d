// Package renderer draws simulation snapshots with raylib.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/blobs/camera"
	"github.com/pthm-cable/blobs/game"
)

// Colors used by the world renderer.
var (
	BackgroundColor = rl.Color{R: 12, G: 14, B: 20, A: 255}
	FoodColor       = rl.Color{R: 90, G: 200, B: 90, A: 255}
	SelectionColor  = rl.Color{R: 255, G: 230, B: 120, A: 255}
)

const (
	visionAlpha    = 0.08
	visionSegments = 24
	headingLength  = 1.6 // times the body radius
)

// WorldRenderer draws agents, food and optional vision cones through a camera.
type WorldRenderer struct {
	cam    *camera.Camera
	ghosts [][2]float64
}

// NewWorldRenderer creates a renderer drawing through cam.
func NewWorldRenderer(cam *camera.Camera) *WorldRenderer {
	return &WorldRenderer{cam: cam}
}

// Draw renders one snapshot. selected is highlighted when hasSelection is set.
func (r *WorldRenderer) Draw(s game.Snapshot, selected uint32, hasSelection bool) {
	rl.ClearBackground(BackgroundColor)

	for _, f := range s.Food {
		r.each(f.X, f.Y, f.Radius, func(c rl.Vector2, scale float32) {
			rl.DrawCircleV(c, float32(f.Radius)*scale, FoodColor)
		})
	}

	if s.ShowVision {
		for _, a := range s.Agents {
			r.each(a.X, a.Y, a.SenseRadius, func(c rl.Vector2, scale float32) {
				drawVision(a, c, scale)
			})
		}
	}

	for _, a := range s.Agents {
		highlight := hasSelection && a.ID == selected
		r.each(a.X, a.Y, a.Radius, func(c rl.Vector2, scale float32) {
			drawAgent(a, c, scale, highlight)
		})
	}
}

// each calls draw at every on-screen position of a disc, including its
// copies across the wrap.
func (r *WorldRenderer) each(x, y, radius float64, draw func(rl.Vector2, float32)) {
	if !r.cam.IsVisible(x, y, radius) {
		return
	}
	scale := float32(r.cam.Zoom)

	sx, sy := r.cam.WorldToScreen(x, y)
	draw(rl.Vector2{X: float32(sx), Y: float32(sy)}, scale)

	r.ghosts = r.cam.Ghosts(x, y, radius, r.ghosts[:0])
	for _, g := range r.ghosts {
		draw(rl.Vector2{X: float32(g[0]), Y: float32(g[1])}, scale)
	}
}

func drawAgent(a game.AgentSnapshot, center rl.Vector2, scale float32, highlight bool) {
	radius := float32(a.Radius) * scale
	rl.DrawCircleV(center, radius, rl.ColorAlpha(a.Color, float32(a.Alpha)))

	if a.Moving {
		length := radius * headingLength
		tip := rl.Vector2{
			X: center.X + float32(math.Cos(a.Heading))*length,
			Y: center.Y + float32(math.Sin(a.Heading))*length,
		}
		rl.DrawLineV(center, tip, rl.ColorAlpha(rl.White, float32(a.Alpha)))
	}

	if highlight {
		rl.DrawCircleLinesV(center, radius+4, SelectionColor)
	}
}

// drawVision draws the sensing area: a sector for a limited field of view,
// a circle for omnidirectional sensing or an agent with no heading yet.
func drawVision(a game.AgentSnapshot, center rl.Vector2, scale float32) {
	tint := rl.ColorAlpha(a.Color, visionAlpha)
	radius := float32(a.SenseRadius) * scale

	if a.FOV >= 2*math.Pi || !a.Moving {
		rl.DrawCircleV(center, radius, tint)
		return
	}

	heading := a.Heading * 180 / math.Pi
	half := a.FOV * 90 / math.Pi
	rl.DrawCircleSector(center, radius, float32(heading-half), float32(heading+half), visionSegments, tint)
}
