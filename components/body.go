package components

// Body holds physical properties of an entity.
type Body struct {
	Radius float64 `inspect:"label,fmt:%.1f"`
}

// Food is a passive energy item. It is removed from the world once eaten.
type Food struct {
	Energy float64
	Radius float64
}
