package systems

import "github.com/mlange-42/ark/ecs"

// ClaimFood lets the agent eat the first food in candidates that it touches
// and nobody has claimed yet this tick. candidates are scanned in order and
// scanning stops at the first claim. The eaten food is added to claimed and
// returned; its energy is added to the agent, capped at the species maximum.
func ClaimFood(a *Agent, candidates []FoodEntry, claimed map[ecs.Entity]struct{}) (FoodEntry, bool) {
	for _, f := range candidates {
		if _, taken := claimed[f.E]; taken {
			continue
		}
		if distance(a.Pos.X, a.Pos.Y, f.X, f.Y) >= a.Body.Radius+f.Radius {
			continue
		}
		claimed[f.E] = struct{}{}
		a.addEnergy(f.Energy)
		return f, true
	}
	return FoodEntry{}, false
}
