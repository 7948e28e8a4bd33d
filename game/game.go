// Package game runs the blob simulation: world storage, the per-tick phase
// pipeline, knobs, telemetry hooks and the read-only views used by the UI.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/species"
	"github.com/pthm-cable/blobs/systems"
	"github.com/pthm-cable/blobs/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed      int64          // RNG seed (0 = time-based)
	LogStats  bool           // emit window stats and periodic world state via slog
	OutputDir string         // directory for CSV output (empty = disabled)
	RunID     string         // tag for CSV rows
	Headless  bool           // no window; Update ignores pause
	Parallel  bool           // sense/decide on a worker group; overrides config when set
	Config    *config.Config // nil = config.Cfg()
}

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	species *species.Table
	world   *World
	rng     *rand.Rand
	seed    int64

	tick     int32
	nextID   uint32
	headless bool

	knobMu sync.Mutex
	knobs  Knobs

	// Phase scratch, reused across ticks.
	scratch      systems.Neighborhood
	seen         map[systems.PairKey]struct{}
	claimed      map[ecs.Entity]struct{}
	claimedOrder []ecs.Entity
	births       []birth
	workers      *workerPool

	// Telemetry
	history         *telemetry.PopulationHistory
	collector       *telemetry.Collector
	perfCollector   *telemetry.PerfCollector
	lifetimeTracker *telemetry.LifetimeTracker
	outputManager   *telemetry.OutputManager
	logStats        bool
	runID           string
	speciesNames    []string
}

// NewGameWithOptions builds the species table, seeds the world and opens output.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	table, err := species.Build(cfg.Species)
	if err != nil {
		return nil, fmt.Errorf("building species table: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	names := make([]string, table.Len())
	for i, sp := range table.All() {
		names[i] = sp.Name
	}

	g := &Game{
		cfg:      cfg,
		species:  table,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		headless: opts.Headless,
		knobs: Knobs{
			TargetTickRate:    clampTickRate(cfg.Screen.TargetTPS),
			FoodSpawnInterval: max(cfg.Food.SpawnInterval, 1),
			FoodSpawnAmount:   max(cfg.Food.SpawnAmount, 0),
		},
		seen:            make(map[systems.PairKey]struct{}),
		claimed:         make(map[ecs.Entity]struct{}),
		workers:         newWorkerPool(opts.Parallel || cfg.Simulation.ParallelSense),
		history:         telemetry.NewPopulationHistory(cfg.Graph.MaxSamples),
		collector:       telemetry.NewCollector(int32(cfg.Telemetry.StatsWindow), names),
		perfCollector:   telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		lifetimeTracker: telemetry.NewLifetimeTracker(),
		logStats:        opts.LogStats,
		runID:           opts.RunID,
		speciesNames:    names,
	}

	if err := g.populate(); err != nil {
		return nil, err
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir, opts.RunID)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g, nil
}

// Step advances the simulation by exactly one tick.
func (g *Game) Step() {
	k := g.Knobs()
	perf := g.perfCollector

	perf.StartTick()

	perf.StartPhase(telemetry.PhaseSpatialGrid)
	g.updateSpatialGrid()

	perf.StartPhase(telemetry.PhaseAgents)
	g.updateAgents()

	perf.StartPhase(telemetry.PhaseCollisions)
	g.resolveCollisions()

	perf.StartPhase(telemetry.PhaseFeeding)
	g.resolveFeeding()

	perf.StartPhase(telemetry.PhaseReproduction)
	g.updateReproduction()

	perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	perf.StartPhase(telemetry.PhaseFoodSpawn)
	g.spawnFood(k)

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.sampleHistory()
	g.flushTelemetry()
	g.logWorldStateIfDue()

	perf.EndTick()
}

// Update runs one tick unless paused. Headless games ignore pause.
func (g *Game) Update() {
	if !g.headless && g.Knobs().Paused {
		return
	}
	g.Step()
}

// UpdateHeadless runs one tick without checking the pause knob.
func (g *Game) UpdateHeadless() {
	g.Step()
}

// Reset clears agents and food and reseeds the world from the species table.
// Knobs and the RNG stream are kept.
func (g *Game) Reset() {
	g.tick = 0
	g.history.Reset()
	g.collector.Reset(0)
	g.lifetimeTracker.Clear()

	if err := g.populate(); err != nil {
		// The same tables seeded the first world.
		panic(fmt.Errorf("reseeding world: %w", err))
	}

	g.logReset()
}

// RecordFrame feeds render frame timing into the perf collector.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// Species returns the species table.
func (g *Game) Species() *species.Table {
	return g.species
}

// Populations returns the live agent count per species ordinal.
func (g *Game) Populations() []int {
	return g.world.Populations()
}

// History returns the sampled population series.
func (g *Game) History() *telemetry.PopulationHistory {
	return g.history
}

// WorldSize returns the arena dimensions.
func (g *Game) WorldSize() (width, height float64) {
	return g.world.Size()
}

// FoodCount returns the number of food items in the arena.
func (g *Game) FoodCount() int {
	return g.world.FoodCount()
}

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
