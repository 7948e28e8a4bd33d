package components

// Vitals tracks an agent's metabolic state.
// Energy and age are the only quantities that can end an agent's life.
type Vitals struct {
	Energy float64 `inspect:"bar"`
	Age    int32   `inspect:"label"` // ticks alive
}

// Organism bundles identity and lineage.
type Organism struct {
	ID         uint32 `inspect:"label"`
	Species    uint8  `inspect:"label"` // ordinal into the species table
	Generation uint32 `inspect:"label"`
	Parent     uint32 `inspect:"label"` // 0 for founders
}
