package main

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
)

// Ticks between population samples used for the quality score.
const sampleEvery = 60

// Quality component weights.
const (
	qualityWeightEvenness  = 0.6
	qualityWeightStability = 0.4

	qualityWarmupSamples = 5 // skip the founders' first samples
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32   // ticks until the first seeded species died out, or maxTicks
	samples       [][]int // per-species counts every sampleEvery ticks
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is -(survivalTicks × (1 + 0.2×quality)) averaged over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) (float64, error) {
	cfg, err := fe.baseConfig.Clone()
	if err != nil {
		return 0, err
	}
	fe.params.ApplyToConfig(cfg, x)

	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))

	var eg errgroup.Group
	for i, seed := range fe.seeds {
		eg.Go(func() error {
			r, err := fe.runSimulation(cfg, seed)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			quality[i] = computeQuality(r.samples)
			fitness[i] = computeFitness(r.survivalTicks, quality[i])
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil), nil
}

// runSimulation executes a single headless run until a seeded species goes
// extinct or maxTicks is reached. cfg is only read.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	g, err := game.NewGameWithOptions(game.Options{
		Seed:     seed,
		Headless: true,
		Config:   cfg,
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	result := &runResult{survivalTicks: fe.maxTicks}

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()

		pops := g.Populations()
		if extinct(cfg, pops) {
			result.survivalTicks = g.Tick()
			break
		}
		if g.Tick()%sampleEvery == 0 {
			result.samples = append(result.samples, pops)
		}
	}
	return result, nil
}

// extinct reports whether any species that started with agents has none left.
func extinct(cfg *config.Config, pops []int) bool {
	for i, sp := range cfg.Species {
		if sp.Count > 0 && pops[i] == 0 {
			return true
		}
	}
	return false
}

// computeFitness calculates the scalar fitness (lower = better).
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1 + 0.2*quality))
}

// computeQuality scores a run in [0, 1] from how evenly the population is
// shared between species and how steady each species' count is.
func computeQuality(samples [][]int) float64 {
	if len(samples) <= qualityWarmupSamples {
		return 0
	}
	valid := samples[qualityWarmupSamples:]
	k := len(valid[0])
	if k < 2 {
		return 0
	}

	var evenness float64
	series := make([][]float64, k)
	for _, counts := range valid {
		evenness += pielou(counts)
		for i, n := range counts {
			series[i] = append(series[i], float64(n))
		}
	}
	evenness /= float64(len(valid))

	var cvSq float64
	for _, s := range series {
		mean, std := stat.MeanStdDev(s, nil)
		if mean > 0 {
			cvSq += (std / mean) * (std / mean)
		}
	}
	stability := math.Exp(-cvSq / float64(k))

	return min(max(qualityWeightEvenness*evenness+qualityWeightStability*stability, 0), 1)
}

// pielou returns Shannon entropy of the species shares over its maximum
// ln(k): 1 when every species has the same count, 0 when one has all.
func pielou(counts []int) float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 || len(counts) < 2 {
		return 0
	}

	p := make([]float64, len(counts))
	for i, n := range counts {
		p[i] = float64(n) / float64(total)
	}
	return stat.Entropy(p) / math.Log(float64(len(counts)))
}
