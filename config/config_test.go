package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Derived.WorldWidth != 1400 || cfg.Derived.WorldHeight != 1000 {
		t.Errorf("world = %vx%v, want 1400x1000", cfg.Derived.WorldWidth, cfg.Derived.WorldHeight)
	}
	if cfg.Grid.CellSize != 100 {
		t.Errorf("cell size = %v, want 100", cfg.Grid.CellSize)
	}
	if cfg.Food.InitialCount != 20 || cfg.Food.SpawnInterval != 100 || cfg.Food.SpawnAmount != 2 {
		t.Errorf("unexpected food defaults: %+v", cfg.Food)
	}
	if len(cfg.Species) != 3 {
		t.Fatalf("got %d species, want 3", len(cfg.Species))
	}
	if idx, ok := cfg.Derived.SpeciesIndex["scavenger_red"]; !ok || idx != 1 {
		t.Errorf("SpeciesIndex[scavenger_red] = %d, %v", idx, ok)
	}
	if cfg.Derived.MaxRadius != 10 {
		t.Errorf("MaxRadius = %v, want 10", cfg.Derived.MaxRadius)
	}
}

func TestUserOverlay(t *testing.T) {
	data := []byte(`
food:
  spawn_amount: 7
species:
  - name: solo
    count: 2
    color: [1, 2, 3]
    radius: 4
    nn_layer_sizes: [3, 2]
    max_energy: 50
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Overridden field
	if cfg.Food.SpawnAmount != 7 {
		t.Errorf("spawn_amount = %d, want 7", cfg.Food.SpawnAmount)
	}
	// Untouched field keeps its default
	if cfg.Food.SpawnInterval != 100 {
		t.Errorf("spawn_interval = %d, want default 100", cfg.Food.SpawnInterval)
	}
	// Species list is replaced, not merged
	if len(cfg.Species) != 1 || cfg.Species[0].Name != "solo" {
		t.Fatalf("species = %+v, want only solo", cfg.Species)
	}

	sp := cfg.Species[0]
	if sp.SenseRadius != 200 || sp.MaxSpeed != 2 || sp.Lifespan != 5000 {
		t.Errorf("defaults not applied: %+v", sp)
	}
	if sp.MinOffspring != 1 || sp.MaxOffspring != 1 {
		t.Errorf("offspring defaults = [%d, %d], want [1, 1]", sp.MinOffspring, sp.MaxOffspring)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero cell size", "grid:\n  cell_size: 0\n"},
		{"zero spawn interval", "food:\n  spawn_interval: 0\n"},
		{"bad graph", "graph:\n  max_samples: 0\n"},
		{"duplicate species", `
species:
  - {name: a, color: [1, 1, 1], radius: 1, nn_layer_sizes: [3, 2], max_energy: 1}
  - {name: a, color: [1, 1, 1], radius: 1, nn_layer_sizes: [3, 2], max_energy: 1}
`},
		{"inverted offspring", `
species:
  - {name: a, color: [1, 1, 1], radius: 1, nn_layer_sizes: [3, 2], max_energy: 1, min_offspring: 3, max_offspring: 1}
`},
		{"short color", `
species:
  - {name: a, color: [1, 1], radius: 1, nn_layer_sizes: [3, 2], max_energy: 1}
`},
		{"mutation rate above one", `
species:
  - {name: a, color: [1, 1, 1], radius: 1, nn_layer_sizes: [3, 2], max_energy: 1, mutation_rate: 1.5}
`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load of written config failed: %v", err)
	}
	if len(loaded.Species) != len(cfg.Species) {
		t.Errorf("species count = %d, want %d", len(loaded.Species), len(cfg.Species))
	}
	if loaded.Species[2].Interactions["herbivore_blue"] != "steal_energy" {
		t.Errorf("interactions lost: %+v", loaded.Species[2].Interactions)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Defaults()
	cfg.Food.SpawnAmount = 9

	clone, err := cfg.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}
	if clone.Food.SpawnAmount != 9 {
		t.Errorf("clone spawn amount = %d, want 9", clone.Food.SpawnAmount)
	}

	clone.Species[0].MetabolicRate = 1
	clone.Species[2].Interactions["scavenger_red"] = "none"
	if cfg.Species[0].MetabolicRate == 1 {
		t.Error("species slice shared with clone")
	}
	if cfg.Species[2].Interactions["scavenger_red"] != "steal_energy" {
		t.Error("interaction map shared with clone")
	}
}
