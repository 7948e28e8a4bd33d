package components

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in world units per tick.
type Velocity struct {
	X, Y float64
}

// IsZero reports whether the velocity is exactly zero.
func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
