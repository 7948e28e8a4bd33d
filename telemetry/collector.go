package telemetry

// speciesCounters are the event counters for one species in the current window.
type speciesCounters struct {
	births       int
	starved      int
	diedOfAge    int
	meals        int
	steals       int
	energyStolen float64
	energyLost   float64
	ageAtDeath   int64
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int32
	windowStartTick int32
	names           []string
	counters        []speciesCounters
}

// NewCollector creates a stats collector for the named species.
// windowTicks is the number of ticks per stats window.
func NewCollector(windowTicks int32, speciesNames []string) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks: windowTicks,
		names:       append([]string(nil), speciesNames...),
		counters:    make([]speciesCounters, len(speciesNames)),
	}
}

// RecordBirth records a child born to the species.
func (c *Collector) RecordBirth(species uint8) {
	c.counters[species].births++
}

// RecordDeath records a death and the age at which it happened.
// oldAge distinguishes lifespan deaths from starvation.
func (c *Collector) RecordDeath(species uint8, age int32, oldAge bool) {
	sc := &c.counters[species]
	if oldAge {
		sc.diedOfAge++
	} else {
		sc.starved++
	}
	sc.ageAtDeath += int64(age)
}

// RecordMeal records a food item eaten by the species.
func (c *Collector) RecordMeal(species uint8) {
	c.counters[species].meals++
}

// RecordSteal records an energy theft between two species.
func (c *Collector) RecordSteal(thief, victim uint8, amount float64) {
	if amount <= 0 {
		return
	}
	c.counters[thief].steals++
	c.counters[thief].energyStolen += amount
	c.counters[victim].energyLost += amount
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// counts, energies and maxGen are indexed by species ordinal and sampled at window end.
func (c *Collector) Flush(currentTick int32, counts []int, energies [][]float64, maxGen []uint32, foodCount int) WindowStats {
	ws := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		FoodCount:       foodCount,
		Species:         make([]SpeciesWindow, len(c.names)),
	}

	for i, name := range c.names {
		sc := c.counters[i]
		es := ComputeEnergyStats(energies[i])

		var meanAge float64
		if deaths := sc.starved + sc.diedOfAge; deaths > 0 {
			meanAge = float64(sc.ageAtDeath) / float64(deaths)
		}

		ws.Species[i] = SpeciesWindow{
			WindowStartTick: c.windowStartTick,
			WindowEndTick:   currentTick,
			Species:         name,
			Count:           counts[i],
			Births:          sc.births,
			Starved:         sc.starved,
			DiedOfAge:       sc.diedOfAge,
			MealsEaten:      sc.meals,
			Steals:          sc.steals,
			EnergyStolen:    sc.energyStolen,
			EnergyLost:      sc.energyLost,
			MeanAgeAtDeath:  meanAge,
			EnergyMean:      es.Mean,
			EnergyStd:       es.Std,
			EnergyP10:       es.P10,
			EnergyP50:       es.P50,
			EnergyP90:       es.P90,
			MaxGeneration:   maxGen[i],
		}
	}

	// Reset for next window
	c.windowStartTick = currentTick
	clear(c.counters)

	return ws
}

// Reset discards the current window and restarts it at tick.
func (c *Collector) Reset(tick int32) {
	c.windowStartTick = tick
	clear(c.counters)
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
