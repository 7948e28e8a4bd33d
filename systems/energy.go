package systems

import (
	"math"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/species"
)

// UpdateEnergy applies the per-tick metabolic and movement costs and ages the agent.
// Movement cost is proportional to (speed/maxSpeed)^2.
func UpdateEnergy(vit *components.Vitals, vel components.Velocity, sp *species.Descriptor) {
	vit.Energy -= sp.MetabolicRate

	if sp.MaxSpeed > 0 {
		ratio := math.Hypot(vel.X, vel.Y) / sp.MaxSpeed
		vit.Energy -= sp.MoveCost * ratio * ratio
	}

	vit.Age++
}

// addEnergy adds amount to the agent's energy, capped at the species maximum.
func (a *Agent) addEnergy(amount float64) {
	a.Vitals.Energy = math.Min(a.Vitals.Energy+amount, a.Species.MaxEnergy)
}
