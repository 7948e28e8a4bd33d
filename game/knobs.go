package game

// Tick rate bounds accepted by SetTargetTickRate.
const (
	MinTickRate = 1
	MaxTickRate = 300
)

// Knobs are the runtime controls the UI may change between ticks.
// Step reads them once at the start of each tick.
type Knobs struct {
	TargetTickRate    int  // ticks per second in windowed mode
	FoodSpawnInterval int  // ticks between food spawn events, >= 1
	FoodSpawnAmount   int  // food items per spawn event, >= 0
	ShowVision        bool // render-only
	Paused            bool
}

// Knobs returns a copy of the current knob values.
func (g *Game) Knobs() Knobs {
	g.knobMu.Lock()
	defer g.knobMu.Unlock()
	return g.knobs
}

// SetTargetTickRate sets the windowed tick rate, clamped to [MinTickRate, MaxTickRate].
func (g *Game) SetTargetTickRate(rate int) {
	g.knobMu.Lock()
	g.knobs.TargetTickRate = clampTickRate(rate)
	g.knobMu.Unlock()
}

// SetFoodSpawnInterval sets the ticks between spawn events; values below 1 become 1.
func (g *Game) SetFoodSpawnInterval(ticks int) {
	g.knobMu.Lock()
	g.knobs.FoodSpawnInterval = max(ticks, 1)
	g.knobMu.Unlock()
}

// SetFoodSpawnAmount sets the food per spawn event; negative values become 0.
func (g *Game) SetFoodSpawnAmount(n int) {
	g.knobMu.Lock()
	g.knobs.FoodSpawnAmount = max(n, 0)
	g.knobMu.Unlock()
}

// SetShowVision toggles the vision overlay.
func (g *Game) SetShowVision(show bool) {
	g.knobMu.Lock()
	g.knobs.ShowVision = show
	g.knobMu.Unlock()
}

// SetPaused pauses or resumes Update.
func (g *Game) SetPaused(paused bool) {
	g.knobMu.Lock()
	g.knobs.Paused = paused
	g.knobMu.Unlock()
}

func clampTickRate(rate int) int {
	return min(max(rate, MinTickRate), MaxTickRate)
}
