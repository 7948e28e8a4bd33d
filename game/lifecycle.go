package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/species"
	"github.com/pthm-cable/blobs/systems"
)

// birth is a child queued during reproduction and created after the pass.
type birth struct {
	species    *species.Descriptor
	parentID   uint32
	generation uint32
	child      systems.Offspring
}

// populate replaces the world with a fresh one holding the initial agents and food.
func (g *Game) populate() error {
	cfg := g.cfg
	g.world = NewWorld(g.species, cfg.Derived.WorldWidth, cfg.Derived.WorldHeight, cfg.Grid.CellSize)
	g.nextID = 1

	for _, sp := range g.species.All() {
		for range sp.InitialCount {
			x := g.rng.Float64() * g.world.width
			y := g.rng.Float64() * g.world.height
			genome := neural.RandomGenome(g.rng, sp.GenomeLength())
			if _, err := g.spawnAgent(sp, x, y, sp.MaxEnergy/2, genome, 0, 0); err != nil {
				return fmt.Errorf("seeding %s: %w", sp.Name, err)
			}
		}
	}

	for range cfg.Food.InitialCount {
		g.addRandomFood()
	}
	return nil
}

// spawnAgent creates an agent with a controller built from genome.
// IDs start at 1 so that Parent 0 marks a founder.
func (g *Game) spawnAgent(sp *species.Descriptor, x, y, energy float64, genome []float64, generation, parent uint32) (ecs.Entity, error) {
	brain, err := components.NewBrain(sp.Layers, genome)
	if err != nil {
		return ecs.Entity{}, err
	}

	id := g.nextID
	g.nextID++

	org := components.Organism{
		ID:         id,
		Generation: generation,
		Parent:     parent,
	}
	e := g.world.AddAgent(sp, org, x, y, energy, brain)

	g.lifetimeTracker.Register(id, g.tick, sp.ID, generation, energy)
	return e, nil
}

// spawnChild adds a queued child to the world.
func (g *Game) spawnChild(b birth) {
	c := b.child
	if _, err := g.spawnAgent(b.species, c.X, c.Y, c.Energy, c.Genome, b.generation, b.parentID); err != nil {
		// Children clone a genome that already built a controller of this topology.
		panic(fmt.Errorf("spawning child of %d: %w", b.parentID, err))
	}
	g.collector.RecordBirth(b.species.ID)
}

// addRandomFood places one food item at a uniform random position.
func (g *Game) addRandomFood() {
	x := g.rng.Float64() * g.world.width
	y := g.rng.Float64() * g.world.height
	g.world.AddFood(x, y, g.cfg.Food.Energy, g.cfg.Food.Radius)
}
