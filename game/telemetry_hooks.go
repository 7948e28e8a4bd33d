package game

import "log/slog"

// sampleHistory records a population sample every graph.ticks_per_sample ticks.
func (g *Game) sampleHistory() {
	every := int32(max(g.cfg.Graph.TicksPerSample, 1))
	if g.tick%every != 0 {
		return
	}

	sample := g.history.Record(g.tick, g.world.Populations())
	if err := g.outputManager.WritePopulation(sample, g.speciesNames); err != nil {
		slog.Error("failed to write population", "error", err)
	}
}

// flushTelemetry closes the stats window when it is due and writes it out.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	counts, energies, maxGen := g.sampleSpecies()

	stats := g.collector.Flush(g.tick, counts, energies, maxGen, g.world.FoodCount())
	perfStats := g.perfCollector.Stats()

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// sampleSpecies collects live counts, energy samples and the deepest
// generation per species, and refreshes lifetime peak energy.
func (g *Game) sampleSpecies() (counts []int, energies [][]float64, maxGen []uint32) {
	n := g.species.Len()
	counts = make([]int, n)
	energies = make([][]float64, n)
	maxGen = make([]uint32, n)

	for _, a := range g.world.Agents() {
		if !a.IsAlive() {
			continue
		}
		sp := a.Org.Species
		counts[sp]++
		energies[sp] = append(energies[sp], a.Vitals.Energy)
		maxGen[sp] = max(maxGen[sp], a.Org.Generation)

		g.lifetimeTracker.UpdateEnergy(a.Org.ID, a.Vitals.Energy)
	}
	return counts, energies, maxGen
}
