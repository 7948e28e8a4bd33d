// Package species resolves yaml blueprints into immutable species descriptors.
package species

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/neural"
)

// Sensor and motor schema widths.
const (
	SensorsNearest     = 3 // [dx, dy, type] nearest visible entity inside the FOV
	SensorsOmni        = 7 // energy, nearest food, nearest creature, threat
	MotorsAcceleration = 2 // [ax, ay]
	MotorsDirectional  = 4 // [dirX, dirY, speedIntent, actionIntent]
)

var (
	// ErrUnknownSpecies is returned when an interaction names a species that does not exist.
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrUnknownInteraction is returned for interaction names other than the supported ones.
	ErrUnknownInteraction = errors.New("unknown interaction")
	// ErrSchema is returned when a topology's input or output width has no sensor/motor schema.
	ErrSchema = errors.New("unsupported controller schema")
)

// InteractionKind selects the effect a collision has on the other party.
type InteractionKind uint8

const (
	InteractionNone InteractionKind = iota
	InteractionStealEnergy
)

// String returns the yaml name of the interaction.
func (k InteractionKind) String() string {
	switch k {
	case InteractionStealEnergy:
		return "steal_energy"
	default:
		return "none"
	}
}

// ParseInteraction maps a yaml interaction name to its kind.
func ParseInteraction(name string) (InteractionKind, error) {
	switch name {
	case "", "none":
		return InteractionNone, nil
	case "steal_energy":
		return InteractionStealEnergy, nil
	}
	return InteractionNone, fmt.Errorf("%w: %q", ErrUnknownInteraction, name)
}

// Interaction is the resolved effect of colliding with one target species.
type Interaction struct {
	Kind       InteractionKind
	Amount     float64 // energy taken per collision
	Efficiency float64 // fraction of the taken amount the stealer keeps
}

// Descriptor is the immutable parameter record shared by every agent of a species.
type Descriptor struct {
	ID    uint8
	Name  string
	Color color.RGBA

	Radius float64
	Layers []int

	MaxEnergy             float64
	ReproductionThreshold float64 // fraction of MaxEnergy
	ReproductionCost      float64 // flat, per litter
	MutationRate          float64
	MutationAmount        float64
	MetabolicRate         float64
	MoveCost              float64

	FOV         float64 // full field-of-view angle in radians
	SenseRadius float64
	MaxSpeed    float64
	Lifespan    int32

	InitialCount  int
	PopulationCap int
	MinOffspring  int
	MaxOffspring  int

	// Interactions is indexed by target species ID.
	Interactions []Interaction

	// StealAmount is the energy this species takes per steal, or 0 when it
	// steals from nobody.
	StealAmount float64
}

// InteractionWith returns the effect of colliding with an agent of the given species.
// Out-of-range ids resolve to InteractionNone.
func (d *Descriptor) InteractionWith(target uint8) Interaction {
	if int(target) >= len(d.Interactions) {
		return Interaction{}
	}
	return d.Interactions[target]
}

// Inputs returns the controller input width.
func (d *Descriptor) Inputs() int { return d.Layers[0] }

// Outputs returns the controller output width.
func (d *Descriptor) Outputs() int { return d.Layers[len(d.Layers)-1] }

// GenomeLength returns the number of genes implied by the topology.
func (d *Descriptor) GenomeLength() int { return neural.GenomeLength(d.Layers) }

// ReproductionEnergy is the absolute energy needed before a litter is attempted.
func (d *Descriptor) ReproductionEnergy() float64 {
	return d.ReproductionThreshold * d.MaxEnergy
}

// Table holds every species in ordinal order.
type Table struct {
	list   []*Descriptor
	byName map[string]*Descriptor
}

// Build resolves and validates yaml blueprints into a species table.
func Build(blueprints []config.SpeciesConfig) (*Table, error) {
	if len(blueprints) > math.MaxUint8 {
		return nil, fmt.Errorf("too many species: %d", len(blueprints))
	}

	t := &Table{
		list:   make([]*Descriptor, len(blueprints)),
		byName: make(map[string]*Descriptor, len(blueprints)),
	}
	for i, bp := range blueprints {
		d, err := newDescriptor(uint8(i), bp)
		if err != nil {
			return nil, fmt.Errorf("species %q: %w", bp.Name, err)
		}
		t.list[i] = d
		t.byName[bp.Name] = d
	}

	// Interactions can only be resolved once every name has an ordinal.
	for i, bp := range blueprints {
		d := t.list[i]
		d.Interactions = make([]Interaction, len(blueprints))
		for target, name := range bp.Interactions {
			other, ok := t.byName[target]
			if !ok {
				return nil, fmt.Errorf("species %q: %w: %q", bp.Name, ErrUnknownSpecies, target)
			}
			kind, err := ParseInteraction(name)
			if err != nil {
				return nil, fmt.Errorf("species %q: %w", bp.Name, err)
			}
			if kind == InteractionNone {
				continue
			}
			d.Interactions[other.ID] = Interaction{
				Kind:       kind,
				Amount:     bp.StealAmount,
				Efficiency: bp.StealEfficiency,
			}
			d.StealAmount = bp.StealAmount
		}
	}

	return t, nil
}

func newDescriptor(id uint8, bp config.SpeciesConfig) (*Descriptor, error) {
	if len(bp.Layers) < 2 {
		return nil, fmt.Errorf("%w: topology needs at least an input and an output layer", ErrSchema)
	}
	for _, n := range bp.Layers {
		if n <= 0 {
			return nil, fmt.Errorf("%w: layer widths must be positive, got %v", ErrSchema, bp.Layers)
		}
	}
	in, out := bp.Layers[0], bp.Layers[len(bp.Layers)-1]
	if in != SensorsNearest && in != SensorsOmni {
		return nil, fmt.Errorf("%w: %d inputs", ErrSchema, in)
	}
	if out != MotorsAcceleration && out != MotorsDirectional {
		return nil, fmt.Errorf("%w: %d outputs", ErrSchema, out)
	}

	c := color.RGBA{A: 255}
	if len(bp.Color) == 3 {
		c.R, c.G, c.B = uint8(bp.Color[0]), uint8(bp.Color[1]), uint8(bp.Color[2])
	}

	layers := make([]int, len(bp.Layers))
	copy(layers, bp.Layers)

	return &Descriptor{
		ID:                    id,
		Name:                  bp.Name,
		Color:                 c,
		Radius:                bp.Radius,
		Layers:                layers,
		MaxEnergy:             bp.MaxEnergy,
		ReproductionThreshold: bp.ReproductionThreshold,
		ReproductionCost:      bp.ReproductionCost,
		MutationRate:          bp.MutationRate,
		MutationAmount:        bp.MutationAmount,
		MetabolicRate:         bp.MetabolicRate,
		MoveCost:              bp.MoveCost,
		FOV:                   bp.FOVDegrees * math.Pi / 180,
		SenseRadius:           bp.SenseRadius,
		MaxSpeed:              bp.MaxSpeed,
		Lifespan:              int32(bp.Lifespan),
		InitialCount:          bp.Count,
		PopulationCap:         bp.PopulationCap,
		MinOffspring:          bp.MinOffspring,
		MaxOffspring:          bp.MaxOffspring,
	}, nil
}

// Len returns the number of species.
func (t *Table) Len() int { return len(t.list) }

// Get returns the descriptor with the given ordinal.
func (t *Table) Get(id uint8) *Descriptor { return t.list[id] }

// ByName looks a species up by name.
func (t *Table) ByName(name string) (*Descriptor, bool) {
	d, ok := t.byName[name]
	return d, ok
}

// All returns the descriptors in ordinal order. The slice must not be modified.
func (t *Table) All() []*Descriptor { return t.list }

// MaxRadius returns the largest agent radius of any species.
func (t *Table) MaxRadius() float64 {
	var r float64
	for _, d := range t.list {
		r = math.Max(r, d.Radius)
	}
	return r
}
