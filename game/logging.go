package game

import "log/slog"

// logWorldStateIfDue logs world state every simulation.log_interval ticks when stats logging is on.
func (g *Game) logWorldStateIfDue() {
	interval := int32(g.cfg.Simulation.LogInterval)
	if !g.logStats || interval <= 0 || g.tick%interval != 0 {
		return
	}
	g.logWorldState()
}

// logWorldState logs the current world state.
func (g *Game) logWorldState() {
	counts := g.world.Populations()
	attrs := make([]any, 0, 2*len(counts)+6)
	attrs = append(attrs,
		"tick", g.tick,
		"agents", g.world.AgentCount(),
		"food", g.world.FoodCount(),
	)
	for i, n := range counts {
		attrs = append(attrs, g.speciesNames[i], n)
	}
	slog.Info("world_state", attrs...)
}

// logReset records a reset and the reseeded population.
func (g *Game) logReset() {
	slog.Info("simulation_reset",
		"seed", g.seed,
		"agents", g.world.AgentCount(),
		"food", g.world.FoodCount(),
	)
}
