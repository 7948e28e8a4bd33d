package systems

import (
	"math"

	"github.com/pthm-cable/blobs/species"
)

// ThreatNormalization scales a creature's steal amount into the threat input.
const ThreatNormalization = 50.0

// Input type markers for the nearest-entity schema.
const (
	typeCreature = -1.0
	typeFood     = 1.0
)

// Sense fills the agent's controller inputs from the neighbors src reports.
// scratch is reset and reused for the query; nil allocates a fresh one.
func (a *Agent) Sense(src NeighborSource, scratch *Neighborhood) {
	inputs := a.resetInputs()

	// No heading without velocity.
	if a.Vel.IsZero() {
		return
	}

	if scratch == nil {
		scratch = &Neighborhood{}
	}
	scratch.Reset()
	src.Neighbors(a.Pos.X, a.Pos.Y, a.Species.SenseRadius, scratch)

	switch len(inputs) {
	case species.SensorsNearest:
		a.senseNearest(inputs, scratch)
	case species.SensorsOmni:
		a.senseOmni(inputs, scratch)
	}
}

func (a *Agent) resetInputs() []float64 {
	n := a.Species.Inputs()
	if cap(a.Brain.Inputs) < n {
		a.Brain.Inputs = make([]float64, n)
	}
	a.Brain.Inputs = a.Brain.Inputs[:n]
	clear(a.Brain.Inputs)
	return a.Brain.Inputs
}

// senseNearest emits [dx/R, dy/R, type] for the nearest entity inside the field of view.
// Creatures are scanned before food; on equal distance the first one wins.
func (a *Agent) senseNearest(inputs []float64, nb *Neighborhood) {
	r := a.Species.SenseRadius
	forward := math.Atan2(a.Vel.Y, a.Vel.X)
	halfFOV := a.Species.FOV / 2

	best := r
	var found bool
	var bx, by, kind float64

	visible := func(dx, dy float64) (float64, bool) {
		d := math.Hypot(dx, dy)
		if d >= best {
			return d, false
		}
		dev := normalizeAngle(math.Atan2(dy, dx) - forward)
		return d, math.Abs(dev) < halfFOV
	}

	for i := range nb.Agents {
		o := &nb.Agents[i]
		if o.ID == a.Org.ID {
			continue
		}
		dx, dy := o.X-a.Pos.X, o.Y-a.Pos.Y
		if d, ok := visible(dx, dy); ok {
			best, found = d, true
			bx, by, kind = dx, dy, typeCreature
		}
	}
	for i := range nb.Food {
		f := &nb.Food[i]
		dx, dy := f.X-a.Pos.X, f.Y-a.Pos.Y
		if d, ok := visible(dx, dy); ok {
			best, found = d, true
			bx, by, kind = dx, dy, typeFood
		}
	}

	if !found {
		return
	}
	inputs[0] = bx / r
	inputs[1] = by / r
	inputs[2] = kind
}

// senseOmni emits [energy/max, dxF/R, dyF/R, distF/R, dxC/R, dyC/R, threat]
// from the nearest food and nearest other creature, ignoring the field of view.
func (a *Agent) senseOmni(inputs []float64, nb *Neighborhood) {
	r := a.Species.SenseRadius
	inputs[0] = a.Vitals.Energy / a.Species.MaxEnergy

	bestFood := r
	for i := range nb.Food {
		f := &nb.Food[i]
		dx, dy := f.X-a.Pos.X, f.Y-a.Pos.Y
		if d := math.Hypot(dx, dy); d < bestFood {
			bestFood = d
			inputs[1], inputs[2], inputs[3] = dx/r, dy/r, d/r
		}
	}

	bestCreature := r
	var nearest *AgentEntry
	for i := range nb.Agents {
		o := &nb.Agents[i]
		if o.ID == a.Org.ID {
			continue
		}
		dx, dy := o.X-a.Pos.X, o.Y-a.Pos.Y
		if d := math.Hypot(dx, dy); d < bestCreature {
			bestCreature = d
			nearest = o
			inputs[4], inputs[5] = dx/r, dy/r
		}
	}

	if nearest != nil && nearest.Species != nil {
		inputs[6] = nearest.Species.StealAmount / ThreatNormalization
	}
}
