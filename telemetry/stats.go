package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SpeciesWindow holds one species' aggregated statistics for a stats window.
// One row per species per window is written to telemetry.csv.
type SpeciesWindow struct {
	Run             string  `csv:"run"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	Species         string  `csv:"species"`
	Count           int     `csv:"count"`
	Births          int     `csv:"births"`
	Starved         int     `csv:"starved"`
	DiedOfAge       int     `csv:"died_of_age"`
	MealsEaten      int     `csv:"meals"`
	Steals          int     `csv:"steals"`
	EnergyStolen    float64 `csv:"energy_stolen"`
	EnergyLost      float64 `csv:"energy_lost"`
	MeanAgeAtDeath  float64 `csv:"mean_age_at_death"`
	EnergyMean      float64 `csv:"energy_mean"`
	EnergyStd       float64 `csv:"energy_std"`
	EnergyP10       float64 `csv:"energy_p10"`
	EnergyP50       float64 `csv:"energy_p50"`
	EnergyP90       float64 `csv:"energy_p90"`
	MaxGeneration   uint32  `csv:"max_generation"`
}

// WindowStats holds every species' statistics for one window.
type WindowStats struct {
	WindowStartTick int32
	WindowEndTick   int32
	FoodCount       int
	Species         []SpeciesWindow
}

// EnergyStats summarises an energy sample.
type EnergyStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeEnergyStats calculates mean, standard deviation and empirical percentiles.
// Empty input yields zeros; a single value has zero deviation.
func ComputeEnergyStats(values []float64) EnergyStats {
	if len(values) == 0 {
		return EnergyStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var es EnergyStats
	if len(sorted) == 1 {
		es.Mean = sorted[0]
	} else {
		es.Mean, es.Std = stat.MeanStdDev(sorted, nil)
	}
	es.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	es.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	es.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return es
}

// LogValue implements slog.LogValuer for structured logging.
func (s SpeciesWindow) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("species", s.Species),
		slog.Int("count", s.Count),
		slog.Int("births", s.Births),
		slog.Int("starved", s.Starved),
		slog.Int("died_of_age", s.DiedOfAge),
		slog.Int("meals", s.MealsEaten),
		slog.Int("steals", s.Steals),
		slog.Float64("energy_stolen", s.EnergyStolen),
		slog.Float64("energy_lost", s.EnergyLost),
		slog.Float64("mean_age_at_death", s.MeanAgeAtDeath),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Int("max_generation", int(s.MaxGeneration)),
	)
}

// LogStats logs the window stats using slog, one record per species.
func (s WindowStats) LogStats() {
	for _, sp := range s.Species {
		slog.Info("window_stats",
			"window_start", s.WindowStartTick,
			"window_end", s.WindowEndTick,
			"food", s.FoodCount,
			"stats", sp,
		)
	}
}
