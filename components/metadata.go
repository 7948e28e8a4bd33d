package components

import "math"

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float64 // Minimum value (for bars)
	Max    float64 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

// AgentFieldDescriptors returns metadata for the inspector panel of a selected agent.
// Field IDs must match cases in AgentValue().
func AgentFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "energy", Label: "Energy", Format: "%.0f", Min: 0, Max: 1, IsBar: true, Group: "vitals"},
		{ID: "age", Label: "Age", Format: "%.0f", Group: "vitals"},
		{ID: "generation", Label: "Gen", Format: "%.0f", Group: "lineage"},
		{ID: "speed", Label: "Speed", Format: "%.2f", Group: "motion"},
		{ID: "action", Label: "Action", Format: "%+.2f", Min: -1, Max: 1, Group: "motion"},
	}
}

// AgentValue extracts an agent field value by ID. Unknown IDs return 0.
func AgentValue(vel *Velocity, vit *Vitals, org *Organism, brain *Brain, fieldID string) float64 {
	switch fieldID {
	case "energy":
		return vit.Energy
	case "age":
		return float64(vit.Age)
	case "generation":
		return float64(org.Generation)
	case "speed":
		return math.Hypot(vel.X, vel.Y)
	case "action":
		return brain.ActionIntent()
	default:
		return 0
	}
}
