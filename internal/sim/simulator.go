package sim

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/ecosim/internal/grid"
	"github.com/san-kum/ecosim/internal/organism"
)

// population is the arena grid IDs index into. IDs below len(live) name
// organisms alive at the start of the step; the rest name this step's
// newborns.
type population struct {
	live []organism.Organism
	born []organism.Organism
}

func (p *population) Get(id grid.ID) *organism.Organism {
	if int(id) < len(p.live) {
		return &p.live[id]
	}
	return &p.born[int(id)-len(p.live)]
}

func (p *population) Spawn(o organism.Organism) grid.ID {
	p.born = append(p.born, o)
	return grid.ID(len(p.live) + len(p.born) - 1)
}

// Simulator owns the population and the current/next grid pair.
// It is not safe for concurrent use.
type Simulator struct {
	current   *grid.Grid
	next      *grid.Grid
	pop       population
	step      int
	tally     Tally
	seed      int64
	resets    int
	rng       *rand.Rand
	active    Activity
	observers []Observer
	metrics   []Metric
	log       *slog.Logger
}

// New creates a simulator for a depth x width field. Non-positive
// dimensions fall back to DefaultDepth x DefaultWidth. The field is empty
// until Reset is called.
func New(depth, width int, opts ...Option) *Simulator {
	s := &Simulator{
		seed:      time.Now().UnixNano(),
		observers: make([]Observer, 0),
		metrics:   make([]Metric, 0),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if depth <= 0 || width <= 0 {
		s.log.Warn("dimensions must be greater than zero, using defaults",
			"depth", depth, "width", width,
			"default_depth", DefaultDepth, "default_width", DefaultWidth)
		depth, width = DefaultDepth, DefaultWidth
	}

	s.current = grid.New(depth, width)
	s.next = grid.New(depth, width)
	s.rng = rand.New(rand.NewSource(s.seed))
	return s
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) SetActivity(a Activity) { s.active = a }

func (s *Simulator) Depth() int     { return s.current.Depth() }
func (s *Simulator) Width() int     { return s.current.Width() }
func (s *Simulator) StepCount() int { return s.step }

// Seed returns the seed the current run was populated from.
func (s *Simulator) Seed() int64 { return s.seed }

// Population returns a copy of the living organisms in action order.
func (s *Simulator) Population() []organism.Organism {
	out := make([]organism.Organism, len(s.pop.live))
	copy(out, s.pop.live)
	return out
}

func (s *Simulator) View() View {
	return View{step: s.step, grid: s.current, pop: s.pop.live, tally: s.tally}
}

// MetricValues returns every registered metric's current value by name.
func (s *Simulator) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Reset clears the field and repopulates it. The first Reset uses the
// configured seed; each later one reseeds from the previous run's source.
func (s *Simulator) Reset() {
	if s.resets > 0 {
		s.seed = s.rng.Int63()
	}
	s.resets++
	s.rng = rand.New(rand.NewSource(s.seed))

	s.step = 0
	s.tally = Tally{}
	s.pop.live = s.pop.live[:0]
	s.pop.born = s.pop.born[:0]
	s.current.Clear()
	s.next.Clear()
	s.populate()

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.View())
	}
	s.log.Debug("reset", "seed", s.seed, "population", len(s.pop.live))
	s.publish()
}

// populate fills the current grid cell by cell, then shuffles the
// population so that action order carries no positional bias.
func (s *Simulator) populate() {
	for r := 0; r < s.current.Depth(); r++ {
		for c := 0; c < s.current.Width(); c++ {
			var o organism.Organism
			if s.rng.Float64() <= FoxCreationProbability {
				o = organism.Random(organism.Fox, s.rng)
			} else if s.rng.Float64() <= RabbitCreationProbability {
				o = organism.Random(organism.Rabbit, s.rng)
			} else {
				continue
			}
			o.Pos = grid.Pos(r, c)
			s.pop.live = append(s.pop.live, o)
		}
	}
	s.rng.Shuffle(len(s.pop.live), func(i, j int) {
		s.pop.live[i], s.pop.live[j] = s.pop.live[j], s.pop.live[i]
	})
	s.reindex()
}

// Step advances the whole population by one time step.
func (s *Simulator) Step() {
	s.step++
	s.pop.born = s.pop.born[:0]
	s.tally = Tally{}

	w := organism.World{
		Rng:     s.rng,
		Current: s.current,
		Next:    s.next,
		Arena:   &s.pop,
	}
	for i := range s.pop.live {
		o := &s.pop.live[i]
		if o.Alive {
			o.Act(w, grid.ID(i))
		}
	}

	s.settle()
	s.current, s.next = s.next, s.current
	s.next.Clear()
	s.reindex()

	for _, m := range s.metrics {
		m.Observe(s.View())
	}
	s.log.Debug("step",
		"step", s.step,
		"population", len(s.pop.live),
		"births", s.tally.Births,
		"deaths", s.tally.TotalDeaths())
	s.publish()
}

// settle drops everything that died this step, including organisms whose
// cell in the next grid was taken over by a later placement, and appends
// the surviving newborns.
func (s *Simulator) settle() {
	n := len(s.pop.live)
	for i := range s.pop.live {
		s.discardIfOverwritten(&s.pop.live[i], grid.ID(i))
	}
	for j := range s.pop.born {
		o := &s.pop.born[j]
		s.tally.Births[o.Kind]++
		s.discardIfOverwritten(o, grid.ID(n+j))
	}

	kept := s.pop.live[:0]
	for _, o := range s.pop.live {
		if o.Alive {
			kept = append(kept, o)
		} else {
			s.tally.Deaths[o.Cause]++
		}
	}
	for _, o := range s.pop.born {
		if o.Alive {
			kept = append(kept, o)
		} else {
			s.tally.Deaths[o.Cause]++
		}
	}
	s.pop.live = kept
}

func (s *Simulator) discardIfOverwritten(o *organism.Organism, id grid.ID) {
	if o.Alive && s.next.At(o.Pos) != id {
		o.Die(organism.Overwritten)
	}
}

// reindex rebuilds the current grid against the population's indices.
func (s *Simulator) reindex() {
	s.current.Clear()
	for i, o := range s.pop.live {
		s.current.Place(grid.ID(i), o.Pos)
	}
}

func (s *Simulator) publish() {
	v := s.View()
	for _, obs := range s.observers {
		obs.OnStep(s.step, v)
	}
}

// RunSteps performs up to n steps. It stops early, between steps, when the
// activity check fails or ctx is done, and returns the steps performed.
func (s *Simulator) RunSteps(ctx context.Context, n int) (int, error) {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return i, ctx.Err()
		default:
		}

		if s.active != nil && !s.active(s.View()) {
			s.log.Info("simulation inactive", "step", s.step)
			return i, nil
		}
		s.Step()
	}
	return n, nil
}

// RunLong runs LongRunSteps steps.
func (s *Simulator) RunLong(ctx context.Context) (int, error) {
	return s.RunSteps(ctx, LongRunSteps)
}
