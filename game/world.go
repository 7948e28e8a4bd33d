package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/components"
	"github.com/pthm-cable/blobs/species"
	"github.com/pthm-cable/blobs/systems"
)

// World owns the ECS storage for agents and food, the arena bounds and the spatial index.
type World struct {
	ecs *ecs.World

	agentMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Vitals,
		components.Organism,
		components.Brain,
	]
	agentFilter *ecs.Filter6[
		components.Position,
		components.Velocity,
		components.Body,
		components.Vitals,
		components.Organism,
		components.Brain,
	]
	foodMapper *ecs.Map2[components.Position, components.Food]
	foodFilter *ecs.Filter2[components.Position, components.Food]

	species *species.Table
	width   float64
	height  float64
	grid    *systems.SpatialGrid

	// Scratch, valid until the next structural change.
	views []systems.Agent
	index map[ecs.Entity]int
}

// NewWorld creates an empty arena of the given size.
func NewWorld(table *species.Table, width, height, cellSize float64) *World {
	w := ecs.NewWorld()
	return &World{
		ecs: w,
		agentMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Vitals,
			components.Organism,
			components.Brain,
		](w),
		agentFilter: ecs.NewFilter6[
			components.Position,
			components.Velocity,
			components.Body,
			components.Vitals,
			components.Organism,
			components.Brain,
		](w),
		foodMapper: ecs.NewMap2[components.Position, components.Food](w),
		foodFilter: ecs.NewFilter2[components.Position, components.Food](w),
		species:    table,
		width:      width,
		height:     height,
		grid:       systems.NewSpatialGrid(width, height, cellSize),
		index:      make(map[ecs.Entity]int),
	}
}

// Size returns the arena width and height.
func (w *World) Size() (width, height float64) { return w.width, w.height }

// Grid returns the spatial index. It reflects the last RebuildIndex.
func (w *World) Grid() *systems.SpatialGrid { return w.grid }

// Wrap maps a position into the arena.
func (w *World) Wrap(x, y float64) (float64, float64) {
	return systems.Wrap(x, y, w.width, w.height)
}

// AddAgent stores a new agent at a wrapped position with zero velocity.
func (w *World) AddAgent(sp *species.Descriptor, org components.Organism, x, y, energy float64, brain components.Brain) ecs.Entity {
	x, y = w.Wrap(x, y)
	org.Species = sp.ID
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Radius: sp.Radius}
	vit := components.Vitals{Energy: energy}
	return w.agentMapper.NewEntity(&pos, &vel, &body, &vit, &org, &brain)
}

// AddFood stores a food item at a wrapped position.
func (w *World) AddFood(x, y, energy, radius float64) ecs.Entity {
	x, y = w.Wrap(x, y)
	pos := components.Position{X: x, Y: y}
	food := components.Food{Energy: energy, Radius: radius}
	return w.foodMapper.NewEntity(&pos, &food)
}

// Remove deletes an agent or food entity. Stale handles are ignored.
func (w *World) Remove(e ecs.Entity) {
	if w.ecs.Alive(e) {
		w.ecs.RemoveEntity(e)
	}
}

// Agents returns views of every stored agent in storage order.
// The views alias ECS storage and are invalidated by AddAgent, AddFood and Remove.
func (w *World) Agents() []systems.Agent {
	w.views = w.views[:0]
	clear(w.index)

	query := w.agentFilter.Query()
	for query.Next() {
		pos, vel, body, vit, org, brain := query.Get()
		e := query.Entity()
		w.index[e] = len(w.views)
		w.views = append(w.views, systems.Agent{
			E:       e,
			Pos:     pos,
			Vel:     vel,
			Body:    body,
			Vitals:  vit,
			Org:     org,
			Brain:   brain,
			Species: w.species.Get(org.Species),
		})
	}
	return w.views
}

// viewOf returns the position of e in the slice last returned by Agents.
func (w *World) viewOf(e ecs.Entity) (int, bool) {
	i, ok := w.index[e]
	return i, ok
}

// AgentCount returns the number of stored agents.
func (w *World) AgentCount() int {
	n := 0
	query := w.agentFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// FoodCount returns the number of stored food items.
func (w *World) FoodCount() int {
	n := 0
	query := w.foodFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// RebuildIndex clears the grid and reinserts every agent and food item.
func (w *World) RebuildIndex() {
	w.grid.Clear()

	query := w.agentFilter.Query()
	for query.Next() {
		pos, _, body, _, org, _ := query.Get()
		w.grid.InsertAgent(systems.AgentEntry{
			E:       query.Entity(),
			ID:      org.ID,
			X:       pos.X,
			Y:       pos.Y,
			Radius:  body.Radius,
			Species: w.species.Get(org.Species),
		})
	}

	foodQuery := w.foodFilter.Query()
	for foodQuery.Next() {
		pos, food := foodQuery.Get()
		w.grid.InsertFood(systems.FoodEntry{
			E:      foodQuery.Entity(),
			X:      pos.X,
			Y:      pos.Y,
			Radius: food.Radius,
			Energy: food.Energy,
		})
	}
}

// Populations counts live agents per species ordinal.
func (w *World) Populations() []int {
	counts := make([]int, w.species.Len())
	for _, a := range w.Agents() {
		if a.IsAlive() {
			counts[a.Org.Species]++
		}
	}
	return counts
}
