package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/blobs/species"
)

func TestSenseZeroVelocity(t *testing.T) {
	for _, inputs := range []int{species.SensorsNearest, species.SensorsOmni} {
		sp := testSpecies(0, inputs, 2)
		a := newTestAgent(t, sp, 1, 100, 100)
		a.Brain.Inputs = []float64{9, 9, 9}

		src := &staticSource{nb: Neighborhood{
			Food: []FoodEntry{{X: 110, Y: 100, Radius: 5}},
		}}
		a.Sense(src, nil)

		if len(a.Brain.Inputs) != inputs {
			t.Fatalf("inputs len = %d, want %d", len(a.Brain.Inputs), inputs)
		}
		for i, v := range a.Brain.Inputs {
			if v != 0 {
				t.Errorf("%d-input: input[%d] = %v, want 0", inputs, i, v)
			}
		}
	}
}

func TestSenseNearest(t *testing.T) {
	sp := testSpecies(0, species.SensorsNearest, 2) // FOV 90deg, R 50
	other := testSpecies(1, species.SensorsNearest, 2)

	tests := []struct {
		name string
		vx   float64
		vy   float64
		nb   Neighborhood
		want [3]float64
	}{
		{
			name: "food ahead",
			vx:   1,
			nb:   Neighborhood{Food: []FoodEntry{{X: 120, Y: 110}}},
			want: [3]float64{20.0 / 50, 10.0 / 50, 1},
		},
		{
			name: "food behind is invisible",
			vx:   1,
			nb:   Neighborhood{Food: []FoodEntry{{X: 80, Y: 100}}},
		},
		{
			name: "food outside fov is invisible",
			vx:   1,
			nb:   Neighborhood{Food: []FoodEntry{{X: 110, Y: 120}}},
		},
		{
			name: "heading follows velocity",
			vy:   -1,
			nb:   Neighborhood{Food: []FoodEntry{{X: 100, Y: 70}}},
			want: [3]float64{0, -30.0 / 50, 1},
		},
		{
			name: "out of sense radius",
			vx:   1,
			nb:   Neighborhood{Food: []FoodEntry{{X: 150, Y: 100}}},
		},
		{
			name: "nearest wins across types",
			vx:   1,
			nb: Neighborhood{
				Agents: []AgentEntry{{ID: 2, X: 130, Y: 100, Species: other}},
				Food:   []FoodEntry{{X: 120, Y: 100}},
			},
			want: [3]float64{20.0 / 50, 0, 1},
		},
		{
			name: "creature wins a distance tie",
			vx:   1,
			nb: Neighborhood{
				Agents: []AgentEntry{{ID: 2, X: 120, Y: 100, Species: other}},
				Food:   []FoodEntry{{X: 120, Y: 100}},
			},
			want: [3]float64{20.0 / 50, 0, -1},
		},
		{
			name: "self is excluded",
			vx:   1,
			nb:   Neighborhood{Agents: []AgentEntry{{ID: 1, X: 101, Y: 100, Species: sp}}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAgent(t, sp, 1, 100, 100)
			a.Vel.X, a.Vel.Y = tc.vx, tc.vy
			a.Sense(&staticSource{nb: tc.nb}, &Neighborhood{})

			for i := range tc.want {
				if !approx(a.Brain.Inputs[i], tc.want[i]) {
					t.Errorf("inputs = %v, want %v", a.Brain.Inputs, tc.want)
					break
				}
			}
		})
	}
}

func TestSenseOmni(t *testing.T) {
	sp := testSpecies(0, species.SensorsOmni, 4)
	hunter := testSpecies(1, species.SensorsOmni, 4)
	hunter.Interactions[0] = species.Interaction{Kind: species.InteractionStealEnergy, Amount: 30, Efficiency: 0.8}
	hunter.StealAmount = 30
	grazer := testSpecies(2, species.SensorsNearest, 2)

	a := newTestAgent(t, sp, 1, 100, 100)
	a.Vel.X = -1 // food and creature are behind: no FOV gating
	a.Vitals.Energy = 25

	nb := Neighborhood{
		Agents: []AgentEntry{
			{ID: 1, X: 100, Y: 100, Species: sp},
			{ID: 2, X: 100, Y: 140, Species: grazer},
			{ID: 3, X: 130, Y: 100, Species: hunter},
		},
		Food: []FoodEntry{
			{X: 100, Y: 60},
			{X: 110, Y: 100},
			{X: 200, Y: 100},
		},
	}
	a.Sense(&staticSource{nb: nb}, nil)

	want := []float64{0.25, 10.0 / 50, 0, 10.0 / 50, 30.0 / 50, 0, 30.0 / ThreatNormalization}
	for i := range want {
		if !approx(a.Brain.Inputs[i], want[i]) {
			t.Fatalf("inputs = %v, want %v", a.Brain.Inputs, want)
		}
	}
}

func TestSenseOmniNoThreatOrTargets(t *testing.T) {
	sp := testSpecies(0, species.SensorsOmni, 4)
	peer := testSpecies(1, species.SensorsOmni, 4)

	a := newTestAgent(t, sp, 1, 0, 0)
	a.Vel.Y = 1
	a.Vitals.Energy = sp.MaxEnergy

	a.Sense(&staticSource{nb: Neighborhood{Agents: []AgentEntry{{ID: 2, X: 0, Y: 20, Species: peer}}}}, nil)
	want := []float64{1, 0, 0, 0, 0, 20.0 / 50, 0}
	for i := range want {
		if !approx(a.Brain.Inputs[i], want[i]) {
			t.Fatalf("inputs = %v, want %v", a.Brain.Inputs, want)
		}
	}
}

func TestSenseOmniThreatFromAnyStealer(t *testing.T) {
	// Hunters steal from species 0 only, yet another hunter still reads as a threat.
	hunter := testSpecies(1, species.SensorsOmni, 4)
	hunter.Interactions[0] = species.Interaction{Kind: species.InteractionStealEnergy, Amount: 30, Efficiency: 0.8}
	hunter.StealAmount = 30

	a := newTestAgent(t, hunter, 1, 100, 100)
	a.Sense(&staticSource{nb: Neighborhood{Agents: []AgentEntry{{ID: 2, X: 120, Y: 100, Species: hunter}}}}, nil)

	if got, want := a.Brain.Inputs[6], 30.0/ThreatNormalization; !approx(got, want) {
		t.Errorf("threat = %v, want %v", got, want)
	}
}

func TestSenseUsesGrid(t *testing.T) {
	sp := testSpecies(0, species.SensorsNearest, 2)
	sp.FOV = 2 * math.Pi

	g := NewSpatialGrid(500, 500, 100)
	g.InsertFood(FoodEntry{X: 260, Y: 250})
	g.InsertFood(FoodEntry{X: 400, Y: 400})

	a := newTestAgent(t, sp, 1, 250, 250)
	a.Vel.X = 1
	g.InsertAgent(a.Entry())

	a.Sense(g, &Neighborhood{})
	want := []float64{10.0 / 50, 0, 1}
	for i := range want {
		if !approx(a.Brain.Inputs[i], want[i]) {
			t.Fatalf("inputs = %v, want %v", a.Brain.Inputs, want)
		}
	}
}
