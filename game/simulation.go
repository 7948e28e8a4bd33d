package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/systems"
)

// updateSpatialGrid rebuilds the spatial index.
func (g *Game) updateSpatialGrid() {
	g.world.RebuildIndex()
}

// updateAgents runs sense and decide for every agent against the fresh grid,
// then moves them one by one and reindexes the moved positions.
func (g *Game) updateAgents() {
	agents := g.world.Agents()

	if err := g.workers.senseAndDecide(g.world.grid, agents, &g.scratch); err != nil {
		// Species tables validated every controller width at load.
		panic(fmt.Errorf("tick %d: %w", g.tick, err))
	}

	for i := range agents {
		a := &agents[i]
		a.Act()
		a.Pos.X, a.Pos.Y = g.world.Wrap(a.Pos.X, a.Pos.Y)
	}

	g.world.RebuildIndex()
}

// resolveCollisions separates every overlapping pair once and applies both
// directions of the species interaction.
func (g *Game) resolveCollisions() {
	agents := g.world.Agents()
	reach := g.species.MaxRadius()
	clear(g.seen)

	for i := range agents {
		a := &agents[i]

		g.scratch.Reset()
		g.world.grid.Neighbors(a.Pos.X, a.Pos.Y, a.Body.Radius+reach, &g.scratch)

		for _, n := range g.scratch.Agents {
			if n.E == a.E {
				continue
			}
			j, ok := g.world.viewOf(n.E)
			if !ok {
				continue
			}
			b := &agents[j]

			key := systems.MakePairKey(a.Org.ID, b.Org.ID)
			if _, done := g.seen[key]; done {
				continue
			}
			if !systems.Collides(a, b) {
				continue
			}
			g.seen[key] = struct{}{}

			g.recordSteal(a, b, a.OnCollide(b))
			g.recordSteal(b, a, b.OnCollide(a))

			// Separation can push a centre across an edge.
			a.Pos.X, a.Pos.Y = g.world.Wrap(a.Pos.X, a.Pos.Y)
			b.Pos.X, b.Pos.Y = g.world.Wrap(b.Pos.X, b.Pos.Y)
		}
	}
}

func (g *Game) recordSteal(thief, victim *systems.Agent, amount float64) {
	if amount <= 0 {
		return
	}
	g.collector.RecordSteal(thief.Species.ID, victim.Species.ID, amount)
	g.lifetimeTracker.RecordSteal(thief.Org.ID, amount)
}

// resolveFeeding lets each agent, in iteration order, eat the first unclaimed
// food it touches. Eaten food is removed after the pass.
func (g *Game) resolveFeeding() {
	agents := g.world.Agents()
	foodRadius := g.cfg.Food.Radius
	clear(g.claimed)
	g.claimedOrder = g.claimedOrder[:0]

	for i := range agents {
		a := &agents[i]

		g.scratch.Reset()
		g.world.grid.Neighbors(a.Pos.X, a.Pos.Y, a.Body.Radius+foodRadius, &g.scratch)

		f, ok := systems.ClaimFood(a, g.scratch.Food, g.claimed)
		if !ok {
			continue
		}
		g.claimedOrder = append(g.claimedOrder, f.E)
		g.collector.RecordMeal(a.Species.ID)
		g.lifetimeTracker.RecordMeal(a.Org.ID)
	}

	for _, e := range g.claimedOrder {
		g.world.Remove(e)
	}
}

// updateReproduction lets eligible agents breed while their species is under
// its population cap. Litters are truncated to the remaining room and
// children join the world after the pass.
func (g *Game) updateReproduction() {
	agents := g.world.Agents()

	counts := make([]int, g.species.Len())
	for i := range agents {
		if agents[i].IsAlive() {
			counts[agents[i].Org.Species]++
		}
	}

	g.births = g.births[:0]
	for i := range agents {
		a := &agents[i]
		sp := a.Species

		if !a.IsAlive() || !a.CanReproduce() || counts[sp.ID] >= sp.PopulationCap {
			continue
		}

		litter := a.Reproduce(g.rng)
		if litter.Empty() {
			continue
		}
		if room := sp.PopulationCap - counts[sp.ID]; len(litter.Children) > room {
			litter.Children = litter.Children[:room]
		}

		a.Vitals.Energy -= litter.Cost
		counts[sp.ID] += len(litter.Children)
		g.lifetimeTracker.RecordChildren(a.Org.ID, len(litter.Children))

		for _, c := range litter.Children {
			g.births = append(g.births, birth{
				species:    sp,
				parentID:   a.Org.ID,
				generation: a.Org.Generation + 1,
				child:      c,
			})
		}
	}

	for _, b := range g.births {
		g.spawnChild(b)
	}
}

// cleanupDead removes agents that ran out of energy or outlived their lifespan.
func (g *Game) cleanupDead() {
	// First pass: collect (views alias storage)
	type deadInfo struct {
		entity  ecs.Entity
		id      uint32
		species uint8
		age     int32
		oldAge  bool
	}
	var toRemove []deadInfo

	for _, a := range g.world.Agents() {
		if a.IsAlive() {
			continue
		}
		toRemove = append(toRemove, deadInfo{
			entity:  a.E,
			id:      a.Org.ID,
			species: a.Org.Species,
			age:     a.Vitals.Age,
			oldAge:  a.Vitals.Energy > 0,
		})
	}

	// Second pass: remove
	for _, dead := range toRemove {
		g.collector.RecordDeath(dead.species, dead.age, dead.oldAge)
		g.lifetimeTracker.Remove(dead.id)
		g.world.Remove(dead.entity)
	}
}

// spawnFood advances the tick counter and injects a food batch every
// FoodSpawnInterval ticks.
func (g *Game) spawnFood(k Knobs) {
	g.tick++
	if g.tick%int32(k.FoodSpawnInterval) != 0 {
		return
	}
	for range k.FoodSpawnAmount {
		g.addRandomFood()
	}
}
