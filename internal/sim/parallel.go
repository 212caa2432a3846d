package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ecosim/internal/organism"
)

// Outcome summarizes one member run of an Ensemble.
type Outcome struct {
	Seed    int64
	Steps   int
	Foxes   int
	Rabbits int
	Metrics map[string]float64
}

// Ensemble runs independent simulations with consecutive seeds. Each
// member owns its simulator and random source; only whole runs execute in
// parallel.
type Ensemble struct {
	depth, width int
	numRuns      int
	seedStart    int64
	workers      int
	opts         []Option
	metrics      func() []Metric
}

func NewEnsemble(depth, width, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{
		depth:     depth,
		width:     width,
		numRuns:   numRuns,
		seedStart: seedStart,
		workers:   4,
		opts:      opts,
	}
}

// WithWorkers bounds how many members run at once.
func (e *Ensemble) WithWorkers(n int) *Ensemble {
	if n > 0 {
		e.workers = n
	}
	return e
}

// WithMetrics installs a fresh set of metrics on every member.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, steps int) ([]Outcome, error) {
	results := make([]Outcome, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			opts := append([]Option{}, e.opts...)
			opts = append(opts, WithSeed(e.seedStart+int64(idx)))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					opts = append(opts, WithMetric(m))
				}
			}

			s := New(e.depth, e.width, opts...)
			s.Reset()
			n, err := s.RunSteps(ctx, steps)
			if err != nil {
				return err
			}

			v := s.View()
			results[idx] = Outcome{
				Seed:    s.Seed(),
				Steps:   n,
				Foxes:   v.Count(organism.Fox),
				Rabbits: v.Count(organism.Rabbit),
				Metrics: s.MetricValues(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
