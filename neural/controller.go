// Package neural provides the fixed-topology feedforward controller that drives each creature.
package neural

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTopology is returned for layer lists that cannot form a network.
	ErrTopology = errors.New("invalid topology")
	// ErrGenomeLength is returned when a genome does not match the topology.
	ErrGenomeLength = errors.New("genome length mismatch")
	// ErrInputWidth is returned when an input vector does not match the first layer.
	ErrInputWidth = errors.New("input width mismatch")
)

// GenomeLength returns the number of weights plus biases for a topology:
// the sum over consecutive layer pairs of n_i*n_{i+1} + n_{i+1}.
func GenomeLength(layers []int) int {
	n := 0
	for i := 0; i+1 < len(layers); i++ {
		n += layers[i]*layers[i+1] + layers[i+1]
	}
	return n
}

// Controller is a feedforward network with tanh hidden layers and a linear output layer.
// Its parameters come entirely from a flat genome; Evaluate keeps no state between calls.
type Controller struct {
	layers  []int
	weights []*mat.Dense    // layer i: n_i x n_{i+1}
	biases  []*mat.VecDense // layer i: n_{i+1}
}

// NewController creates a zero-weight controller for the given layer widths.
func NewController(layers []int) (*Controller, error) {
	if len(layers) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrTopology, len(layers))
	}
	for _, n := range layers {
		if n <= 0 {
			return nil, fmt.Errorf("%w: layer widths must be positive, got %v", ErrTopology, layers)
		}
	}

	c := &Controller{
		layers:  append([]int(nil), layers...),
		weights: make([]*mat.Dense, len(layers)-1),
		biases:  make([]*mat.VecDense, len(layers)-1),
	}
	for i := 0; i+1 < len(layers); i++ {
		c.weights[i] = mat.NewDense(layers[i], layers[i+1], nil)
		c.biases[i] = mat.NewVecDense(layers[i+1], nil)
	}
	return c, nil
}

// NewControllerWithGenome creates a controller and loads the genome into it.
func NewControllerWithGenome(layers []int, genome []float64) (*Controller, error) {
	c, err := NewController(layers)
	if err != nil {
		return nil, err
	}
	if err := c.SetGenome(genome); err != nil {
		return nil, err
	}
	return c, nil
}

// Layers returns a copy of the layer widths.
func (c *Controller) Layers() []int {
	return append([]int(nil), c.layers...)
}

// Inputs returns the input width.
func (c *Controller) Inputs() int { return c.layers[0] }

// Outputs returns the output width.
func (c *Controller) Outputs() int { return c.layers[len(c.layers)-1] }

// GenomeLength returns the genome size this controller accepts.
func (c *Controller) GenomeLength() int { return GenomeLength(c.layers) }

// SetGenome slices the genome into per-layer parameters.
// Layer 0->1 comes first, weights (row-major n_i x n_{i+1}) before that layer's biases.
func (c *Controller) SetGenome(genome []float64) error {
	if len(genome) != c.GenomeLength() {
		return fmt.Errorf("%w: got %d, want %d", ErrGenomeLength, len(genome), c.GenomeLength())
	}

	p := 0
	for i, w := range c.weights {
		rows, cols := w.Dims()
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				w.Set(r, col, genome[p])
				p++
			}
		}
		b := c.biases[i]
		for j := 0; j < b.Len(); j++ {
			b.SetVec(j, genome[p])
			p++
		}
	}
	return nil
}

// Genome flattens the parameters back into a genome, in SetGenome order.
func (c *Controller) Genome() []float64 {
	genome := make([]float64, 0, c.GenomeLength())
	for i, w := range c.weights {
		rows, cols := w.Dims()
		for r := 0; r < rows; r++ {
			for col := 0; col < cols; col++ {
				genome = append(genome, w.At(r, col))
			}
		}
		b := c.biases[i]
		for j := 0; j < b.Len(); j++ {
			genome = append(genome, b.AtVec(j))
		}
	}
	return genome
}

// Evaluate runs a forward pass: out = act(in·W + b) per layer,
// tanh on every layer except the last, identity on the last.
func (c *Controller) Evaluate(input []float64) ([]float64, error) {
	if len(input) != c.layers[0] {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputWidth, len(input), c.layers[0])
	}

	x := mat.NewVecDense(len(input), append([]float64(nil), input...))
	last := len(c.weights) - 1
	for i, w := range c.weights {
		_, cols := w.Dims()
		y := mat.NewVecDense(cols, nil)
		y.MulVec(w.T(), x)
		y.AddVec(y, c.biases[i])
		if i != last {
			for j := 0; j < cols; j++ {
				y.SetVec(j, math.Tanh(y.AtVec(j)))
			}
		}
		x = y
	}
	return x.RawVector().Data, nil
}
