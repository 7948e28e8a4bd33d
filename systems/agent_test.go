package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/species"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tol }

// testSpecies returns a descriptor with a direct inputs->outputs topology.
func testSpecies(id uint8, inputs, outputs int) *species.Descriptor {
	return &species.Descriptor{
		ID:                    id,
		Name:                  "test",
		Radius:                5,
		Layers:                []int{inputs, outputs},
		MaxEnergy:             100,
		ReproductionThreshold: 0.5,
		ReproductionCost:      40,
		MutationRate:          0.5,
		MutationAmount:        0.1,
		MetabolicRate:         0.1,
		MoveCost:              0.2,
		FOV:                   math.Pi / 2,
		SenseRadius:           50,
		MaxSpeed:              2,
		Lifespan:              100,
		PopulationCap:         10,
		MinOffspring:          1,
		MaxOffspring:          3,
		Interactions:          make([]species.Interaction, 4),
	}
}

// newTestAgent builds an agent backed by standalone components and a zero genome.
func newTestAgent(t testing.TB, sp *species.Descriptor, id uint32, x, y float64) *Agent {
	t.Helper()
	brain, err := components.NewBrain(sp.Layers, make([]float64, neural.GenomeLength(sp.Layers)))
	if err != nil {
		t.Fatalf("NewBrain: %v", err)
	}
	return &Agent{
		Pos:     &components.Position{X: x, Y: y},
		Vel:     &components.Velocity{},
		Body:    &components.Body{Radius: sp.Radius},
		Vitals:  &components.Vitals{Energy: sp.MaxEnergy / 2},
		Org:     &components.Organism{ID: id, Species: sp.ID},
		Brain:   &brain,
		Species: sp,
	}
}

// staticSource reports a fixed neighborhood for every query.
type staticSource struct {
	nb Neighborhood
}

func (s *staticSource) Neighbors(_, _, _ float64, dst *Neighborhood) {
	dst.Agents = append(dst.Agents, s.nb.Agents...)
	dst.Food = append(dst.Food, s.nb.Food...)
}

func TestIsAlive(t *testing.T) {
	sp := testSpecies(0, 3, 2)
	tests := []struct {
		name   string
		energy float64
		age    int32
		want   bool
	}{
		{"healthy", 10, 0, true},
		{"no energy", 0, 0, false},
		{"negative energy", -1, 0, false},
		{"last tick of life", 10, sp.Lifespan - 1, true},
		{"too old", 10, sp.Lifespan, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAgent(t, sp, 1, 0, 0)
			a.Vitals.Energy = tc.energy
			a.Vitals.Age = tc.age
			if got := a.IsAlive(); got != tc.want {
				t.Errorf("IsAlive() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanReproduce(t *testing.T) {
	sp := testSpecies(0, 3, 2)
	a := newTestAgent(t, sp, 1, 0, 0)

	a.Vitals.Energy = sp.ReproductionEnergy() - 0.01
	if a.CanReproduce() {
		t.Error("below threshold should not reproduce")
	}
	a.Vitals.Energy = sp.ReproductionEnergy()
	if !a.CanReproduce() {
		t.Error("at threshold should reproduce")
	}
}

func TestDecide(t *testing.T) {
	sp := testSpecies(0, 3, 2)
	a := newTestAgent(t, sp, 1, 0, 0)

	// w is 3x2 row-major, then 2 biases.
	genome := []float64{1, 0, 0, 1, 0, 0, 0.5, -0.5}
	if err := a.Brain.Controller.SetGenome(genome); err != nil {
		t.Fatal(err)
	}
	a.Brain.Inputs = []float64{2, 3, 4}

	if err := a.Decide(); err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !approx(a.Brain.Outputs[0], 2.5) || !approx(a.Brain.Outputs[1], 2.5) {
		t.Errorf("outputs = %v, want [2.5 2.5]", a.Brain.Outputs)
	}
}

func TestDecideInputWidth(t *testing.T) {
	a := newTestAgent(t, testSpecies(0, 3, 2), 1, 0, 0)
	a.Brain.Inputs = []float64{1}
	if err := a.Decide(); err == nil {
		t.Error("expected an input width error")
	}
}
