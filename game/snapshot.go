package game

import (
	"image/color"
	"math"
)

// Alpha bounds for agent rendering; energy fraction is clamped into this range.
const (
	MinAgentAlpha = 0.2
	MaxAgentAlpha = 1.0
)

// AgentSnapshot is the render state of one agent.
type AgentSnapshot struct {
	ID          uint32
	Species     uint8
	X, Y        float64
	Radius      float64
	Color       color.RGBA
	Alpha       float64 // energy / max energy, clamped to [MinAgentAlpha, MaxAgentAlpha]
	Heading     float64 // radians; meaningless when !Moving
	Moving      bool
	FOV         float64 // full angle, radians
	SenseRadius float64
}

// FoodSnapshot is the render state of one food item.
type FoodSnapshot struct {
	X, Y   float64
	Radius float64
}

// Snapshot is a read-only copy of the world after a completed tick.
type Snapshot struct {
	Tick          int32
	Width, Height float64
	Agents        []AgentSnapshot
	Food          []FoodSnapshot
	ShowVision    bool
}

// Snapshot copies the state needed to draw the world.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Width:      g.world.width,
		Height:     g.world.height,
		ShowVision: g.Knobs().ShowVision,
	}

	for _, a := range g.world.Agents() {
		sp := a.Species
		s.Agents = append(s.Agents, AgentSnapshot{
			ID:          a.Org.ID,
			Species:     sp.ID,
			X:           a.Pos.X,
			Y:           a.Pos.Y,
			Radius:      a.Body.Radius,
			Color:       sp.Color,
			Alpha:       agentAlpha(a.Vitals.Energy, sp.MaxEnergy),
			Heading:     math.Atan2(a.Vel.Y, a.Vel.X),
			Moving:      !a.Vel.IsZero(),
			FOV:         sp.FOV,
			SenseRadius: sp.SenseRadius,
		})
	}

	query := g.world.foodFilter.Query()
	for query.Next() {
		pos, food := query.Get()
		s.Food = append(s.Food, FoodSnapshot{X: pos.X, Y: pos.Y, Radius: food.Radius})
	}

	return s
}

func agentAlpha(energy, maxEnergy float64) float64 {
	return min(max(energy/maxEnergy, MinAgentAlpha), MaxAgentAlpha)
}
