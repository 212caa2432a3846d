package sim

import (
	"log/slog"

	"github.com/san-kum/ecosim/internal/grid"
	"github.com/san-kum/ecosim/internal/organism"
)

const (
	DefaultDepth = 50
	DefaultWidth = 50

	// Chance that a cell starts with a fox, and, failing that, with a rabbit.
	FoxCreationProbability    = 0.02
	RabbitCreationProbability = 0.08

	LongRunSteps = 500
)

// Observer is notified after every Reset and Step.
type Observer interface {
	OnStep(step int, v View)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, v View)

func (f ObserverFunc) OnStep(step int, v View) { f(step, v) }

// Metric accumulates a single summary value over a run.
type Metric interface {
	Name() string
	Observe(v View)
	Value() float64
	Reset()
}

// Activity reports whether a run is still worth continuing. It must not
// modify the simulation.
type Activity func(v View) bool

// Tally counts what happened during the last step.
type Tally struct {
	Births [organism.NumKinds]int
	Deaths [organism.NumCauses]int
}

func (t Tally) TotalDeaths() int {
	n := 0
	for _, d := range t.Deaths[organism.OldAge:] {
		n += d
	}
	return n
}

// View is a read-only look at the current grid. It is only valid until the
// simulator is stepped or reset again.
type View struct {
	step  int
	grid  *grid.Grid
	pop   []organism.Organism
	tally Tally
}

func (v View) Step() int    { return v.step }
func (v View) Depth() int   { return v.grid.Depth() }
func (v View) Width() int   { return v.grid.Width() }
func (v View) Tally() Tally { return v.tally }

// At returns a copy of the organism at p.
func (v View) At(p grid.Position) (organism.Organism, bool) {
	id := v.grid.At(p)
	if id == grid.Empty {
		return organism.Organism{}, false
	}
	return v.pop[id], true
}

// KindAt is At for renderers that only need the species.
func (v View) KindAt(p grid.Position) (organism.Kind, bool) {
	o, ok := v.At(p)
	return o.Kind, ok
}

// Count returns the number of organisms of kind k on the grid.
func (v View) Count(k organism.Kind) int {
	n := 0
	v.grid.Each(func(_ grid.Position, id grid.ID) {
		if v.pop[id].Kind == k {
			n++
		}
	})
	return n
}

// Each calls fn for every organism on the grid in row-major order.
func (v View) Each(fn func(o organism.Organism)) {
	v.grid.Each(func(_ grid.Position, id grid.ID) {
		fn(v.pop[id])
	})
}

type Option func(*Simulator)

func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.seed = seed }
}

func WithActivity(a Activity) Option {
	return func(s *Simulator) { s.active = a }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}
