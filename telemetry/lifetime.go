package telemetry

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	BirthTick  int32
	Species    uint8
	Generation uint32

	Children     int
	Meals        int
	EnergyStolen float64
	PeakEnergy   float64
}

// LifetimeTracker manages per-agent lifetime statistics keyed by agent ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new agent.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, species uint8, generation uint32, energy float64) {
	lt.stats[id] = &LifetimeStats{
		BirthTick:  birthTick,
		Species:    species,
		Generation: generation,
		PeakEnergy: energy,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes an agent's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChildren adds to the agent's offspring count.
func (lt *LifetimeTracker) RecordChildren(id uint32, n int) {
	if s := lt.stats[id]; s != nil {
		s.Children += n
	}
}

// RecordMeal increments the agent's food count.
func (lt *LifetimeTracker) RecordMeal(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Meals++
	}
}

// RecordSteal adds energy taken from another agent.
func (lt *LifetimeTracker) RecordSteal(id uint32, amount float64) {
	if s := lt.stats[id]; s != nil {
		s.EnergyStolen += amount
	}
}

// UpdateEnergy updates peak energy if the current value is higher.
func (lt *LifetimeTracker) UpdateEnergy(id uint32, energy float64) {
	if s := lt.stats[id]; s != nil && energy > s.PeakEnergy {
		s.PeakEnergy = energy
	}
}

// Len returns the number of tracked agents.
func (lt *LifetimeTracker) Len() int { return len(lt.stats) }

// Clear drops every record.
func (lt *LifetimeTracker) Clear() { clear(lt.stats) }
