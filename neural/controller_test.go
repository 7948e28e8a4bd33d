package neural

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestGenomeLength(t *testing.T) {
	tests := []struct {
		layers []int
		want   int
	}{
		{[]int{3, 5, 2}, 3*5 + 5 + 5*2 + 2},
		{[]int{3, 6, 2}, 3*6 + 6 + 6*2 + 2},
		{[]int{7, 8, 4}, 7*8 + 8 + 8*4 + 4},
		{[]int{3, 2}, 3*2 + 2},
		{[]int{4, 4, 4, 4}, 3 * (16 + 4)},
	}

	for _, tc := range tests {
		if got := GenomeLength(tc.layers); got != tc.want {
			t.Errorf("GenomeLength(%v) = %d, want %d", tc.layers, got, tc.want)
		}
		c, err := NewController(tc.layers)
		if err != nil {
			t.Fatalf("NewController(%v): %v", tc.layers, err)
		}
		if got := c.GenomeLength(); got != tc.want {
			t.Errorf("Controller(%v).GenomeLength() = %d, want %d", tc.layers, got, tc.want)
		}
	}
}

func TestNewControllerRejectsBadTopology(t *testing.T) {
	for _, layers := range [][]int{nil, {3}, {3, 0, 2}, {-1, 2}} {
		if _, err := NewController(layers); !errors.Is(err, ErrTopology) {
			t.Errorf("NewController(%v) error = %v, want ErrTopology", layers, err)
		}
	}
}

func TestSetGenomeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	layers := []int{7, 8, 4}
	genome := RandomGenome(rng, GenomeLength(layers))

	c, err := NewControllerWithGenome(layers, genome)
	if err != nil {
		t.Fatalf("NewControllerWithGenome: %v", err)
	}

	got := c.Genome()
	if len(got) != len(genome) {
		t.Fatalf("Genome() length = %d, want %d", len(got), len(genome))
	}
	for i := range genome {
		if got[i] != genome[i] {
			t.Fatalf("gene %d = %v, want %v", i, got[i], genome[i])
		}
	}
}

func TestSetGenomeLengthMismatch(t *testing.T) {
	c, _ := NewController([]int{3, 5, 2})
	for _, n := range []int{0, c.GenomeLength() - 1, c.GenomeLength() + 1} {
		if err := c.SetGenome(make([]float64, n)); !errors.Is(err, ErrGenomeLength) {
			t.Errorf("SetGenome(len %d) error = %v, want ErrGenomeLength", n, err)
		}
	}
}

// TestSlicingOrder pins the layout: weights row-major (input-major) then biases, per layer.
func TestSlicingOrder(t *testing.T) {
	c, _ := NewController([]int{2, 1})
	// w[0][0]=2, w[1][0]=3, b[0]=1
	if err := c.SetGenome([]float64{2, 3, 1}); err != nil {
		t.Fatal(err)
	}

	out, err := c.Evaluate([]float64{10, 100})
	if err != nil {
		t.Fatal(err)
	}
	// Single layer is the output layer: identity activation.
	if want := 2*10.0 + 3*100.0 + 1; out[0] != want {
		t.Errorf("output = %v, want %v", out[0], want)
	}
}

func TestEvaluateHiddenTanh(t *testing.T) {
	// 1 -> 1 -> 1: hidden = tanh(w0*x + b0), out = w1*hidden + b1
	c, _ := NewController([]int{1, 1, 1})
	if err := c.SetGenome([]float64{0.5, 0.25, 3, -1}); err != nil {
		t.Fatal(err)
	}

	out, err := c.Evaluate([]float64{2})
	if err != nil {
		t.Fatal(err)
	}
	want := 3*math.Tanh(0.5*2+0.25) - 1
	if math.Abs(out[0]-want) > 1e-12 {
		t.Errorf("output = %v, want %v", out[0], want)
	}
}

func TestEvaluateInputWidth(t *testing.T) {
	c, _ := NewController([]int{3, 5, 2})
	if _, err := c.Evaluate([]float64{1, 2}); !errors.Is(err, ErrInputWidth) {
		t.Errorf("Evaluate error = %v, want ErrInputWidth", err)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	layers := []int{3, 6, 2}
	c, _ := NewControllerWithGenome(layers, RandomGenome(rng, GenomeLength(layers)))

	inputs := []float64{0.3, -0.7, 1}
	first, _ := c.Evaluate(inputs)
	for i := 0; i < 10; i++ {
		again, _ := c.Evaluate(inputs)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("call %d output %d = %v, want %v", i, j, again[j], first[j])
			}
		}
	}

	// Input slice must not be modified
	if inputs[0] != 0.3 || inputs[1] != -0.7 || inputs[2] != 1 {
		t.Errorf("Evaluate modified its input: %v", inputs)
	}
}

func TestMutateRates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	parent := RandomGenome(rng, 500)

	child := CloneGenome(parent)
	if n := Mutate(child, rng, 0, 0.5); n != 0 {
		t.Errorf("rate 0 mutated %d genes", n)
	}
	for i := range parent {
		if child[i] != parent[i] {
			t.Fatalf("rate 0 changed gene %d", i)
		}
	}

	child = CloneGenome(parent)
	if n := Mutate(child, rng, 1, 0.5); n != len(parent) {
		t.Errorf("rate 1 mutated %d genes, want %d", n, len(parent))
	}
	for i := range parent {
		d := child[i] - parent[i]
		if d == 0 {
			t.Errorf("rate 1 left gene %d unchanged", i)
		}
		if math.Abs(d) > 0.5 {
			t.Errorf("gene %d delta %v exceeds amount", i, d)
		}
	}
}

func TestCloneGenomeIndependent(t *testing.T) {
	g := []float64{1, 2, 3}
	c := CloneGenome(g)
	c[0] = 99
	if g[0] != 1 {
		t.Error("CloneGenome is not independent")
	}
}

func BenchmarkEvaluate(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	layers := []int{7, 8, 4}
	c, _ := NewControllerWithGenome(layers, RandomGenome(rng, GenomeLength(layers)))
	inputs := []float64{0.5, 0.1, -0.2, 0.3, 0.4, -0.5, 0.6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Evaluate(inputs)
	}
}
