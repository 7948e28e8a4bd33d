package systems

import (
	"math"

	"github.com/pthm-cable/blobs/species"
)

// coincidentEpsilon is the push direction used when two centres coincide exactly.
const coincidentEpsilon = 1e-6

// Collides reports whether two agents' discs overlap.
func Collides(a, b *Agent) bool {
	return distance(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y) < a.Body.Radius+b.Body.Radius
}

// PairKey identifies an unordered agent pair, lower ID first.
type PairKey struct {
	Lo, Hi uint32
}

// MakePairKey returns the canonical key for two agent IDs.
func MakePairKey(a, b uint32) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// OnCollide separates the two agents and applies this agent's interaction
// with the other's species. It returns the energy taken from other.
//
// Separation moves both centres apart by half the overlap each, so calling
// OnCollide from the other side afterwards finds no overlap left to resolve.
func (a *Agent) OnCollide(other *Agent) float64 {
	a.separate(other)

	in := a.Species.InteractionWith(other.Species.ID)
	switch in.Kind {
	case species.InteractionStealEnergy:
		return a.steal(other, in)
	}
	return 0
}

func (a *Agent) separate(other *Agent) {
	dx := a.Pos.X - other.Pos.X
	dy := a.Pos.Y - other.Pos.Y
	d := math.Hypot(dx, dy)

	overlap := a.Body.Radius + other.Body.Radius - d
	if overlap <= 0 {
		return
	}

	var nx, ny float64
	if d == 0 {
		nx, ny = coincidentEpsilon, 0
		d = coincidentEpsilon
	} else {
		nx, ny = dx, dy
	}
	push := overlap / 2 / d
	a.Pos.X += nx * push
	a.Pos.Y += ny * push
	other.Pos.X -= nx * push
	other.Pos.Y -= ny * push
}

// steal moves up to in.Amount energy from other; this agent keeps the
// efficiency fraction, capped at its maximum.
func (a *Agent) steal(other *Agent, in species.Interaction) float64 {
	stolen := math.Min(math.Max(other.Vitals.Energy, 0), in.Amount)
	other.Vitals.Energy -= stolen
	a.addEnergy(stolen * in.Efficiency)
	return stolen
}
