package telemetry

import (
	"math"
	"testing"
)

func TestComputeEnergyStats(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   EnergyStats
	}{
		{"empty", nil, EnergyStats{}},
		{"single", []float64{7}, EnergyStats{Mean: 7, P10: 7, P50: 7, P90: 7}},
		{"unsorted ten", []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}, EnergyStats{
			Mean: 5.5,
			Std:  math.Sqrt(55.0 / 6.0),
			P10:  1,
			P50:  5,
			P90:  9,
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeEnergyStats(tc.values)
			if math.Abs(got.Mean-tc.want.Mean) > 1e-9 || math.Abs(got.Std-tc.want.Std) > 1e-9 {
				t.Errorf("mean/std = %v/%v, want %v/%v", got.Mean, got.Std, tc.want.Mean, tc.want.Std)
			}
			if got.P10 != tc.want.P10 || got.P50 != tc.want.P50 || got.P90 != tc.want.P90 {
				t.Errorf("percentiles = %v/%v/%v, want %v/%v/%v", got.P10, got.P50, got.P90, tc.want.P10, tc.want.P50, tc.want.P90)
			}
		})
	}
}

func TestComputeEnergyStatsDoesNotSortInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeEnergyStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100, []string{"blue", "red"})

	if c.ShouldFlush(99) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(100) {
		t.Error("no flush at window end")
	}

	c.RecordBirth(0)
	c.RecordBirth(0)
	c.RecordMeal(1)
	c.RecordSteal(1, 0, 30)
	c.RecordSteal(1, 0, 0) // nothing taken
	c.RecordDeath(0, 40, false)
	c.RecordDeath(0, 60, true)

	ws := c.Flush(100, []int{3, 1}, [][]float64{{10, 20, 30}, {5}}, []uint32{2, 0}, 17)

	if ws.WindowStartTick != 0 || ws.WindowEndTick != 100 || ws.FoodCount != 17 {
		t.Errorf("window = %+v", ws)
	}
	blue, red := ws.Species[0], ws.Species[1]
	if blue.Species != "blue" || blue.Count != 3 || blue.Births != 2 {
		t.Errorf("blue = %+v", blue)
	}
	if blue.Starved != 1 || blue.DiedOfAge != 1 || blue.MeanAgeAtDeath != 50 {
		t.Errorf("blue deaths = %+v", blue)
	}
	if blue.EnergyLost != 30 || blue.EnergyMean != 20 || blue.MaxGeneration != 2 {
		t.Errorf("blue energy = %+v", blue)
	}
	if red.Steals != 1 || red.EnergyStolen != 30 || red.MealsEaten != 1 {
		t.Errorf("red = %+v", red)
	}

	// Counters reset and the next window starts at the flush tick.
	ws = c.Flush(200, []int{0, 0}, [][]float64{nil, nil}, []uint32{0, 0}, 0)
	if ws.WindowStartTick != 100 || ws.Species[0].Births != 0 || ws.Species[1].Steals != 0 {
		t.Errorf("counters not reset: %+v", ws)
	}
}
