package neural

import "math/rand"

// RandomGenome returns n genes drawn uniformly from [-1, 1].
func RandomGenome(rng *rand.Rand, n int) []float64 {
	genome := make([]float64, n)
	for i := range genome {
		genome[i] = rng.Float64()*2 - 1
	}
	return genome
}

// CloneGenome returns an independent copy of genome.
func CloneGenome(genome []float64) []float64 {
	return append([]float64(nil), genome...)
}

// Mutate perturbs genome in place. Each gene independently, with probability rate,
// gets a delta drawn uniformly from [-amount, amount].
// Returns the number of genes that were perturbed.
func Mutate(genome []float64, rng *rand.Rand, rate, amount float64) int {
	if rate <= 0 {
		return 0
	}
	mutated := 0
	for i := range genome {
		if rng.Float64() < rate {
			genome[i] += (rng.Float64()*2 - 1) * amount
			mutated++
		}
	}
	return mutated
}
