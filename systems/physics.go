package systems

import (
	"math"

	"github.com/pthm-cable/blobs/species"
)

// Motor constants.
const (
	AccelGain      = 0.1  // acceleration output to velocity change
	MinSpeedFactor = 0.1  // min speed as a fraction of max speed
	DirEpsilon     = 0.01 // direction magnitude below which the agent coasts
	CoastDamping   = 0.9  // velocity factor per tick while coasting
)

// Act applies the last decided outputs to velocity, integrates position,
// then charges metabolism and ages the agent by one tick.
// The caller wraps the resulting position.
func (a *Agent) Act() {
	switch len(a.Brain.Outputs) {
	case species.MotorsAcceleration:
		a.accelerate(a.Brain.Outputs[0], a.Brain.Outputs[1])
	case species.MotorsDirectional:
		// Outputs[3] is the action intent; it has no effect.
		a.steer(a.Brain.Outputs[0], a.Brain.Outputs[1], a.Brain.Outputs[2])
	}

	a.Pos.X += a.Vel.X
	a.Pos.Y += a.Vel.Y

	UpdateEnergy(a.Vitals, *a.Vel, a.Species)
}

// accelerate integrates an acceleration and clamps speed to the species maximum.
func (a *Agent) accelerate(ax, ay float64) {
	a.Vel.X += ax * AccelGain
	a.Vel.Y += ay * AccelGain

	maxSpeed := a.Species.MaxSpeed
	if speed := math.Hypot(a.Vel.X, a.Vel.Y); speed > maxSpeed {
		scale := maxSpeed / speed
		a.Vel.X *= scale
		a.Vel.Y *= scale
	}
}

// steer points the velocity along (dx, dy) at a speed picked by intent in [-1, 1].
// A near-zero direction lets the agent coast to a stop.
func (a *Agent) steer(dx, dy, intent float64) {
	mag := math.Hypot(dx, dy)
	if mag <= DirEpsilon {
		a.Vel.X *= CoastDamping
		a.Vel.Y *= CoastDamping
		return
	}

	maxSpeed := a.Species.MaxSpeed
	minSpeed := MinSpeedFactor * maxSpeed
	desired := minSpeed + ((intent+1)/2)*(maxSpeed-minSpeed)
	a.Vel.X = dx / mag * desired
	a.Vel.Y = dy / mag * desired
}
