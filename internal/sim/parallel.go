package sim

import (
	"context"
	"sync"

	"github.com/rkfall/rkfall/internal/dynamo"
)

// Request is one independent simulation for an Ensemble.
type Request struct {
	System dynamo.System
	Config Config
}

// Ensemble runs independent requests concurrently. Each request is still
// computed sequentially, so results match Simulator.Run exactly.
type Ensemble struct {
	base *Simulator
}

func NewEnsemble(s *Simulator) *Ensemble {
	return &Ensemble{base: s}
}

func (e *Ensemble) Run(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s := New(e.base.deriver, e.base.stepper)
			s.SetLimits(e.base.limits)

			results[idx], errs[idx] = s.Run(ctx, reqs[idx].System, reqs[idx].Config)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
