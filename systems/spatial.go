// Package systems holds the per-agent simulation logic: spatial indexing,
// sensing, motor control, collision response, feeding and reproduction.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/species"
)

// AgentEntry is a grid record for one agent, copied at insert time.
type AgentEntry struct {
	E       ecs.Entity
	ID      uint32
	X, Y    float64
	Radius  float64
	Species *species.Descriptor
}

// FoodEntry is a grid record for one food item, copied at insert time.
type FoodEntry struct {
	E      ecs.Entity
	X, Y   float64
	Radius float64
	Energy float64
}

// Neighborhood receives the result of a grid query.
// Reuse one per caller across queries to avoid allocations.
type Neighborhood struct {
	Agents []AgentEntry
	Food   []FoodEntry
}

// Reset empties the neighborhood, keeping capacity.
func (n *Neighborhood) Reset() {
	n.Agents = n.Agents[:0]
	n.Food = n.Food[:0]
}

// NeighborSource answers "what might be within radius of (x, y)".
// Implementations may return a superset; callers apply the exact distance test.
type NeighborSource interface {
	Neighbors(x, y, radius float64, dst *Neighborhood)
}

// SpatialGrid buckets agents and food into square cells for neighbor lookups.
// It is a snapshot: entries keep the positions they were inserted with until
// the next Clear.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	agents   [][]AgentEntry // flat grid, row-major
	food     [][]FoodEntry
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	g := &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		agents:   make([][]AgentEntry, cols*rows),
		food:     make([][]FoodEntry, cols*rows),
	}
	for i := range g.agents {
		g.agents[i] = make([]AgentEntry, 0, 8) // pre-allocate small capacity
		g.food[i] = make([]FoodEntry, 0, 4)
	}
	return g
}

// Dims returns the number of columns and rows.
func (g *SpatialGrid) Dims() (cols, rows int) { return g.cols, g.rows }

// CellSize returns the cell edge length.
func (g *SpatialGrid) CellSize() float64 { return g.cellSize }

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.agents {
		g.agents[i] = g.agents[i][:0]
		g.food[i] = g.food[i][:0]
	}
}

// InsertAgent adds an agent entry to the cell containing its position.
func (g *SpatialGrid) InsertAgent(e AgentEntry) {
	idx := g.cellIndex(e.X, e.Y)
	g.agents[idx] = append(g.agents[idx], e)
}

// InsertFood adds a food entry to the cell containing its position.
func (g *SpatialGrid) InsertFood(e FoodEntry) {
	idx := g.cellIndex(e.X, e.Y)
	g.food[idx] = append(g.food[idx], e)
}

// Neighbors appends every entry in the cells within ceil(radius/cellSize)
// of the query cell to dst. The result is a superset of the entries within
// radius of (x, y); no distance test is applied. dst is not reset.
func (g *SpatialGrid) Neighbors(x, y, radius float64, dst *Neighborhood) {
	reach := int(math.Ceil(radius / g.cellSize))
	col, row := g.cellCoords(x, y)

	c0, c1 := clampInt(col-reach, 0, g.cols-1), clampInt(col+reach, 0, g.cols-1)
	r0, r1 := clampInt(row-reach, 0, g.rows-1), clampInt(row+reach, 0, g.rows-1)

	for r := r0; r <= r1; r++ {
		base := r * g.cols
		for c := c0; c <= c1; c++ {
			idx := base + c
			dst.Agents = append(dst.Agents, g.agents[idx]...)
			dst.Food = append(dst.Food, g.food[idx]...)
		}
	}
}

// cellCoords returns the clamped column and row for a world position.
func (g *SpatialGrid) cellCoords(x, y float64) (col, row int) {
	col = clampInt(int(math.Floor(x/g.cellSize)), 0, g.cols-1)
	row = clampInt(int(math.Floor(y/g.cellSize)), 0, g.rows-1)
	return col, row
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
