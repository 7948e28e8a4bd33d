// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/blobs/neural"

// Brain stores an agent's genome, the controller built from it,
// and the last sensed inputs and decided outputs.
// The genome length is fixed at creation.
type Brain struct {
	Genome     []float64
	Controller *neural.Controller
	Inputs     []float64
	Outputs    []float64
}

// NewBrain builds a controller for the topology and loads the genome into it.
func NewBrain(layers []int, genome []float64) (Brain, error) {
	c, err := neural.NewControllerWithGenome(layers, genome)
	if err != nil {
		return Brain{}, err
	}
	return Brain{
		Genome:     genome,
		Controller: c,
		Inputs:     make([]float64, c.Inputs()),
		Outputs:    make([]float64, c.Outputs()),
	}, nil
}

// ActionIntent returns the fourth motor output, if the controller has one.
// It is recorded for inspection only.
func (b *Brain) ActionIntent() float64 {
	if len(b.Outputs) < 4 {
		return 0
	}
	return b.Outputs[3]
}
