package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestGridNeighborsSuperset(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const w, h = 1400.0, 1000.0

	for _, cell := range []float64{37, 100, 250} {
		g := NewSpatialGrid(w, h, cell)

		agents := make([]AgentEntry, 300)
		for i := range agents {
			agents[i] = AgentEntry{ID: uint32(i + 1), X: rng.Float64() * w, Y: rng.Float64() * h}
			g.InsertAgent(agents[i])
		}
		food := make([]FoodEntry, 100)
		for i := range food {
			food[i] = FoodEntry{X: rng.Float64() * w, Y: rng.Float64() * h, Energy: float64(i)}
			g.InsertFood(food[i])
		}

		var nb Neighborhood
		for q := 0; q < 200; q++ {
			x, y := rng.Float64()*w, rng.Float64()*h
			r := rng.Float64() * 300

			nb.Reset()
			g.Neighbors(x, y, r, &nb)

			gotAgents := make(map[uint32]bool, len(nb.Agents))
			for _, e := range nb.Agents {
				gotAgents[e.ID] = true
			}
			for _, e := range agents {
				if math.Hypot(e.X-x, e.Y-y) <= r && !gotAgents[e.ID] {
					t.Fatalf("cell %v: agent %d at distance %.2f <= %.2f missing", cell, e.ID, math.Hypot(e.X-x, e.Y-y), r)
				}
			}

			gotFood := make(map[float64]bool, len(nb.Food))
			for _, f := range nb.Food {
				gotFood[f.Energy] = true
			}
			for _, f := range food {
				if math.Hypot(f.X-x, f.Y-y) <= r && !gotFood[f.Energy] {
					t.Fatalf("cell %v: food %v missing", cell, f.Energy)
				}
			}
		}
	}
}

func TestGridClearDropsStale(t *testing.T) {
	g := NewSpatialGrid(500, 500, 100)
	g.InsertAgent(AgentEntry{ID: 1, X: 50, Y: 50})
	g.InsertFood(FoodEntry{X: 60, Y: 60})

	g.Clear()
	g.InsertAgent(AgentEntry{ID: 1, X: 450, Y: 450})

	var nb Neighborhood
	g.Neighbors(50, 50, 10, &nb)
	if len(nb.Agents) != 0 || len(nb.Food) != 0 {
		t.Errorf("stale entries after Clear: %+v", nb)
	}

	nb.Reset()
	g.Neighbors(450, 450, 10, &nb)
	if len(nb.Agents) != 1 || nb.Agents[0].X != 450 {
		t.Errorf("rebuilt entry missing: %+v", nb.Agents)
	}
}

func TestGridClampsOutOfRange(t *testing.T) {
	g := NewSpatialGrid(300, 300, 100)
	g.InsertAgent(AgentEntry{ID: 1, X: -20, Y: 1e6})

	var nb Neighborhood
	g.Neighbors(0, 299, 1, &nb)
	if len(nb.Agents) != 1 {
		t.Errorf("clamped entry not found, got %d agents", len(nb.Agents))
	}
}

func TestGridDims(t *testing.T) {
	g := NewSpatialGrid(1400, 1000, 100)
	cols, rows := g.Dims()
	if cols != 14 || rows != 10 {
		t.Errorf("Dims() = %d, %d, want 14, 10", cols, rows)
	}
}

func BenchmarkGridNeighbors(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	g := NewSpatialGrid(1400, 1000, 100)
	for i := 0; i < 500; i++ {
		g.InsertAgent(AgentEntry{ID: uint32(i), X: rng.Float64() * 1400, Y: rng.Float64() * 1000})
	}

	var nb Neighborhood
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nb.Reset()
		g.Neighbors(700, 500, 200, &nb)
	}
}
