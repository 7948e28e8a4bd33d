package game

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/blobs/systems"
)

// parallelThreshold is the minimum agent count to use the worker group.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// workerPool runs sense and decide over contiguous chunks of the agent views.
// Workers read only grid entries and write only their own agents' Brain, so
// the result does not depend on scheduling.
type workerPool struct {
	enabled    bool
	threshold  int
	numWorkers int
	scratches  []systems.Neighborhood
}

func newWorkerPool(enabled bool) *workerPool {
	n := runtime.GOMAXPROCS(0)
	return &workerPool{
		enabled:    enabled,
		threshold:  parallelThreshold,
		numWorkers: n,
		scratches:  make([]systems.Neighborhood, n),
	}
}

// senseAndDecide fills every agent's Brain inputs and outputs.
// scratch is used on the sequential path.
func (p *workerPool) senseAndDecide(src systems.NeighborSource, agents []systems.Agent, scratch *systems.Neighborhood) error {
	if !p.enabled || len(agents) < p.threshold {
		return senseDecideRange(src, agents, scratch)
	}

	chunk := (len(agents) + p.numWorkers - 1) / p.numWorkers

	var eg errgroup.Group
	eg.SetLimit(p.numWorkers)
	for w := 0; w*chunk < len(agents); w++ {
		start := w * chunk
		end := min(start+chunk, len(agents))
		nb := &p.scratches[w]
		eg.Go(func() error {
			return senseDecideRange(src, agents[start:end], nb)
		})
	}
	return eg.Wait()
}

func senseDecideRange(src systems.NeighborSource, agents []systems.Agent, scratch *systems.Neighborhood) error {
	for i := range agents {
		a := &agents[i]
		a.Sense(src, scratch)
		if err := a.Decide(); err != nil {
			return err
		}
	}
	return nil
}
