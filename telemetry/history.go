package telemetry

// PopulationSample is one point of the population graph.
type PopulationSample struct {
	Tick    int32
	Counts  []int     // live agents per species
	Percent []float64 // share of the live population, 0..100; all zero when nobody is alive
}

// PopulationHistory is a bounded series of population samples, oldest first.
type PopulationHistory struct {
	maxSamples int
	samples    []PopulationSample
}

// NewPopulationHistory creates a history that keeps at most maxSamples points.
func NewPopulationHistory(maxSamples int) *PopulationHistory {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &PopulationHistory{
		maxSamples: maxSamples,
		samples:    make([]PopulationSample, 0, maxSamples),
	}
}

// Record appends a sample built from per-species counts, dropping the oldest
// sample once the history is full. counts is copied.
func (h *PopulationHistory) Record(tick int32, counts []int) PopulationSample {
	total := 0
	for _, n := range counts {
		total += n
	}

	s := PopulationSample{
		Tick:    tick,
		Counts:  append([]int(nil), counts...),
		Percent: make([]float64, len(counts)),
	}
	if total > 0 {
		for i, n := range counts {
			s.Percent[i] = float64(n) / float64(total) * 100
		}
	}

	if len(h.samples) == h.maxSamples {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}
	h.samples = append(h.samples, s)
	return s
}

// Samples returns the retained samples, oldest first. The slice must not be modified.
func (h *PopulationHistory) Samples() []PopulationSample { return h.samples }

// Len returns the number of retained samples.
func (h *PopulationHistory) Len() int { return len(h.samples) }

// MaxSamples returns the retention limit.
func (h *PopulationHistory) MaxSamples() int { return h.maxSamples }

// Reset drops every sample.
func (h *PopulationHistory) Reset() { h.samples = h.samples[:0] }
