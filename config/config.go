// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Grid       GridConfig       `yaml:"grid"`
	Food       FoodConfig       `yaml:"food"`
	Graph      GraphConfig      `yaml:"graph"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Species    []SpeciesConfig  `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetTPS int `yaml:"target_tps"` // ticks per second in windowed mode
}

// WorldConfig holds arena dimensions.
// Zero means "same as the screen".
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GridConfig holds spatial index parameters.
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// FoodConfig holds food placement and energy parameters.
type FoodConfig struct {
	InitialCount  int     `yaml:"initial_count"`
	Energy        float64 `yaml:"energy"`
	Radius        float64 `yaml:"radius"`
	SpawnInterval int     `yaml:"spawn_interval"` // ticks between spawn events
	SpawnAmount   int     `yaml:"spawn_amount"`   // food created per spawn event
}

// GraphConfig holds population history sampling parameters.
type GraphConfig struct {
	TicksPerSample int `yaml:"ticks_per_sample"`
	MaxSamples     int `yaml:"max_samples"`
}

// SimulationConfig holds engine behaviour switches.
type SimulationConfig struct {
	ParallelSense bool `yaml:"parallel_sense"` // run sense/decide on a worker group
	LogInterval   int  `yaml:"log_interval"`   // ticks between world_state logs (0 = off)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// SpeciesConfig is one species blueprint as written in yaml.
// Fields left at zero are defaulted in computeDerived.
type SpeciesConfig struct {
	Name                  string            `yaml:"name"`
	Count                 int               `yaml:"count"`
	Color                 []int             `yaml:"color,flow"`
	Radius                float64           `yaml:"radius"`
	Layers                []int             `yaml:"nn_layer_sizes,flow"`
	MaxEnergy             float64           `yaml:"max_energy"`
	ReproductionThreshold float64           `yaml:"reproduction_threshold"` // fraction of max_energy
	ReproductionCost      float64           `yaml:"reproduction_cost"`      // flat energy per litter
	MutationRate          float64           `yaml:"mutation_rate"`
	MutationAmount        float64           `yaml:"mutation_amount"`
	MetabolicRate         float64           `yaml:"metabolic_rate"`
	MoveCost              float64           `yaml:"move_cost"`
	FOVDegrees            float64           `yaml:"fov_angle_degrees"`
	SenseRadius           float64           `yaml:"sense_radius"`
	MaxSpeed              float64           `yaml:"max_speed"`
	Lifespan              int               `yaml:"lifespan"`
	PopulationCap         int               `yaml:"population_cap"`
	MinOffspring          int               `yaml:"min_offspring"`
	MaxOffspring          int               `yaml:"max_offspring"`
	StealAmount           float64           `yaml:"steal_amount"`
	StealEfficiency       float64           `yaml:"steal_efficiency"`
	Interactions          map[string]string `yaml:"interactions"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldWidth   float64        // Effective world width
	WorldHeight  float64        // Effective world height
	SpeciesIndex map[string]int // name -> ordinal
	MaxRadius    float64        // largest species radius
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays data on the embedded defaults, computes derived values and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// A user species list replaces the default list wholesale.
		var raw struct {
			Species []SpeciesConfig `yaml:"species"`
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if raw.Species != nil {
			cfg.Species = nil
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config and fills species defaults.
func (c *Config) computeDerived() {
	c.Derived.WorldWidth = c.World.Width
	if c.Derived.WorldWidth == 0 {
		c.Derived.WorldWidth = float64(c.Screen.Width)
	}
	c.Derived.WorldHeight = c.World.Height
	if c.Derived.WorldHeight == 0 {
		c.Derived.WorldHeight = float64(c.Screen.Height)
	}

	for i := range c.Species {
		sp := &c.Species[i]
		if sp.SenseRadius == 0 {
			sp.SenseRadius = 200
		}
		if sp.MaxSpeed == 0 {
			sp.MaxSpeed = 2
		}
		if sp.Lifespan == 0 {
			sp.Lifespan = 5000
		}
		if sp.PopulationCap == 0 {
			sp.PopulationCap = 100
		}
		if sp.MinOffspring == 0 && sp.MaxOffspring == 0 {
			sp.MinOffspring, sp.MaxOffspring = 1, 1
		}
		if sp.FOVDegrees == 0 {
			sp.FOVDegrees = 360
		}
		if sp.StealEfficiency == 0 {
			sp.StealEfficiency = 1
		}
	}

	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	c.Derived.MaxRadius = 0
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = i
		if sp.Radius > c.Derived.MaxRadius {
			c.Derived.MaxRadius = sp.Radius
		}
	}
}

// Validate checks global constants and species blueprints for consistency.
// Topology and interaction resolution are checked again by species.Build.
func (c *Config) Validate() error {
	if c.Derived.WorldWidth <= 0 || c.Derived.WorldHeight <= 0 {
		return fmt.Errorf("%w: world size %.0fx%.0f", ErrInvalid, c.Derived.WorldWidth, c.Derived.WorldHeight)
	}
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("%w: grid.cell_size must be positive", ErrInvalid)
	}
	if c.Food.SpawnInterval < 1 {
		return fmt.Errorf("%w: food.spawn_interval must be >= 1", ErrInvalid)
	}
	if c.Food.SpawnAmount < 0 || c.Food.InitialCount < 0 {
		return fmt.Errorf("%w: food counts must not be negative", ErrInvalid)
	}
	if c.Graph.TicksPerSample < 1 || c.Graph.MaxSamples < 1 {
		return fmt.Errorf("%w: graph sampling must be >= 1", ErrInvalid)
	}
	if len(c.Species) == 0 {
		return fmt.Errorf("%w: no species configured", ErrInvalid)
	}
	if len(c.Species) > 255 {
		return fmt.Errorf("%w: at most 255 species are supported", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Species))
	for _, sp := range c.Species {
		if sp.Name == "" {
			return fmt.Errorf("%w: species without a name", ErrInvalid)
		}
		if seen[sp.Name] {
			return fmt.Errorf("%w: duplicate species %q", ErrInvalid, sp.Name)
		}
		seen[sp.Name] = true

		switch {
		case sp.Radius <= 0:
			return fmt.Errorf("%w: species %q: radius must be positive", ErrInvalid, sp.Name)
		case sp.MaxEnergy <= 0:
			return fmt.Errorf("%w: species %q: max_energy must be positive", ErrInvalid, sp.Name)
		case sp.MaxSpeed <= 0:
			return fmt.Errorf("%w: species %q: max_speed must be positive", ErrInvalid, sp.Name)
		case sp.SenseRadius <= 0:
			return fmt.Errorf("%w: species %q: sense_radius must be positive", ErrInvalid, sp.Name)
		case sp.Lifespan <= 0:
			return fmt.Errorf("%w: species %q: lifespan must be positive", ErrInvalid, sp.Name)
		case sp.MinOffspring < 0 || sp.MaxOffspring < sp.MinOffspring:
			return fmt.Errorf("%w: species %q: offspring range [%d, %d]", ErrInvalid, sp.Name, sp.MinOffspring, sp.MaxOffspring)
		case sp.MutationRate < 0 || sp.MutationRate > 1:
			return fmt.Errorf("%w: species %q: mutation_rate outside [0, 1]", ErrInvalid, sp.Name)
		case sp.Count < 0 || sp.PopulationCap < 0:
			return fmt.Errorf("%w: species %q: counts must not be negative", ErrInvalid, sp.Name)
		case len(sp.Color) != 3:
			return fmt.Errorf("%w: species %q: color needs 3 components", ErrInvalid, sp.Name)
		}
		for _, ch := range sp.Color {
			if ch < 0 || ch > 255 {
				return fmt.Errorf("%w: species %q: color component %d outside [0, 255]", ErrInvalid, sp.Name, ch)
			}
		}
	}
	return nil
}

// Clone returns a deep copy by round-tripping through yaml.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return Parse(data)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
