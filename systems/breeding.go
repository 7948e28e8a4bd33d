package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/blobs/neural"
)

// Offspring is a child produced by Reproduce that has not been added to the world yet.
type Offspring struct {
	X, Y   float64 // unwrapped; the world wraps on insert
	Genome []float64
	Energy float64
}

// Litter is the result of one reproduction attempt.
// An empty litter always has zero cost.
type Litter struct {
	Children []Offspring
	Cost     float64
}

// Empty reports whether the attempt produced no children.
func (l Litter) Empty() bool { return len(l.Children) == 0 }

// Reproduce builds a litter of mutated clones around the agent.
// It does not change the parent; the caller debits Cost and adds the children.
// Parents that cannot pay the flat reproduction cost get an empty litter.
func (a *Agent) Reproduce(rng *rand.Rand) Litter {
	sp := a.Species
	if a.Vitals.Energy < sp.ReproductionCost {
		return Litter{}
	}

	n := sp.MinOffspring
	if sp.MaxOffspring > sp.MinOffspring {
		n += rng.Intn(sp.MaxOffspring - sp.MinOffspring + 1)
	}
	if n <= 0 {
		return Litter{}
	}

	// Children share the parent's species, so their radius is the parent's.
	offset := a.Body.Radius + sp.Radius + 1

	litter := Litter{
		Children: make([]Offspring, n),
		Cost:     sp.ReproductionCost,
	}
	for i := range litter.Children {
		genome := neural.CloneGenome(a.Brain.Genome)
		neural.Mutate(genome, rng, sp.MutationRate, sp.MutationAmount)

		angle := rng.Float64() * 2 * math.Pi
		litter.Children[i] = Offspring{
			X:      a.Pos.X + math.Cos(angle)*offset,
			Y:      a.Pos.Y + math.Sin(angle)*offset,
			Genome: genome,
			Energy: sp.MaxEnergy / 2,
		}
	}
	return litter
}
