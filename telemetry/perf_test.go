package telemetry

import (
	"math"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// runTicks records n ticks whose phases take the given durations, in order.
func runTicks(pc *PerfCollector, clk *fakeClock, n int, phases []string, durs []time.Duration) {
	for range n {
		pc.StartTick()
		for i, ph := range phases {
			pc.StartPhase(ph)
			clk.advance(durs[i])
		}
		pc.EndTick()
	}
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(10, clk.now)

	runTicks(pc, clk, 5,
		[]string{PhaseSpatialGrid, PhaseAgents},
		[]time.Duration{100 * time.Microsecond, 200 * time.Microsecond})

	stats := pc.Stats()

	if stats.AvgTickDuration != 300*time.Microsecond {
		t.Errorf("avg tick = %v, want 300us", stats.AvgTickDuration)
	}
	if stats.MinTickDuration != stats.MaxTickDuration {
		t.Errorf("min %v != max %v for identical ticks", stats.MinTickDuration, stats.MaxTickDuration)
	}
	if got := stats.PhaseAvg[PhaseSpatialGrid]; got != 100*time.Microsecond {
		t.Errorf("spatial_grid avg = %v, want 100us", got)
	}
	if got := stats.PhaseAvg[PhaseAgents]; got != 200*time.Microsecond {
		t.Errorf("agents avg = %v, want 200us", got)
	}
	if math.Abs(stats.TicksPerSecond-float64(time.Second)/float64(300*time.Microsecond)) > 1e-6 {
		t.Errorf("ticks/s = %v", stats.TicksPerSecond)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(10, clk.now)

	runTicks(pc, clk, 5,
		[]string{PhaseCollisions, PhaseAgents},
		[]time.Duration{time.Millisecond, 3 * time.Millisecond})

	stats := pc.Stats()
	if got := stats.PhasePct[PhaseCollisions]; math.Abs(got-25) > 1e-9 {
		t.Errorf("collisions = %v%%, want 25%%", got)
	}
	if got := stats.PhasePct[PhaseAgents]; math.Abs(got-75) > 1e-9 {
		t.Errorf("agents = %v%%, want 75%%", got)
	}
}

func TestPerfCollector_WindowDropsOldTicks(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(3, clk.now)

	phases := []string{PhaseFeeding}
	runTicks(pc, clk, 3, phases, []time.Duration{10 * time.Millisecond})
	runTicks(pc, clk, 3, phases, []time.Duration{time.Millisecond})

	if got := pc.Stats().AvgTickDuration; got != time.Millisecond {
		t.Errorf("avg tick = %v, want only the last 3 ticks (1ms)", got)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(10, clk.now)

	pc.RecordFrame()
	clk.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond || math.Abs(stats.FPS-50) > 1e-9 {
		t.Errorf("frame = %v, fps = %v, want 20ms and 50", stats.FrameDuration, stats.FPS)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	// Empty collector should return zero values without panicking
	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}

	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}

	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		TicksPerSecond:  666,
		PhasePct: map[string]float64{
			PhaseAgents:     60,
			PhaseCollisions: 25,
		},
	}

	row := stats.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.AgentsPct != 60 || row.CollisionsPct != 25 || row.FeedingPct != 0 {
		t.Errorf("phase columns = %v, %v, %v", row.AgentsPct, row.CollisionsPct, row.FeedingPct)
	}
}

func TestPhaseOrderComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range PhaseOrder {
		if seen[p] {
			t.Errorf("phase %q listed twice", p)
		}
		seen[p] = true
	}
	if len(PhaseOrder) != 8 {
		t.Errorf("PhaseOrder has %d phases, want 8", len(PhaseOrder))
	}
}
