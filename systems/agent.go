package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/species"
)

// Agent bundles pointers to one creature's components so the agent logic can
// run against ECS storage or against plain structs in tests.
type Agent struct {
	E       ecs.Entity
	Pos     *components.Position
	Vel     *components.Velocity
	Body    *components.Body
	Vitals  *components.Vitals
	Org     *components.Organism
	Brain   *components.Brain
	Species *species.Descriptor
}

// IsAlive reports whether the agent still has energy and has not outlived its species lifespan.
func (a *Agent) IsAlive() bool {
	return a.Vitals.Energy > 0 && a.Vitals.Age < a.Species.Lifespan
}

// CanReproduce reports whether the agent has enough energy to attempt a litter.
// The population cap is checked by the caller.
func (a *Agent) CanReproduce() bool {
	return a.Vitals.Energy >= a.Species.ReproductionEnergy()
}

// Entry returns the grid record for the agent's current state.
func (a *Agent) Entry() AgentEntry {
	return AgentEntry{
		E:       a.E,
		ID:      a.Org.ID,
		X:       a.Pos.X,
		Y:       a.Pos.Y,
		Radius:  a.Body.Radius,
		Species: a.Species,
	}
}

// Decide evaluates the controller on the last sensed inputs.
func (a *Agent) Decide() error {
	out, err := a.Brain.Controller.Evaluate(a.Brain.Inputs)
	if err != nil {
		return err
	}
	a.Brain.Outputs = append(a.Brain.Outputs[:0], out...)
	return nil
}
