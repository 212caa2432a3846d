// Package census counts the field after each step and decides whether a
// run is still worth continuing.
package census

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/ecosim/internal/organism"
	"github.com/san-kum/ecosim/internal/sim"
)

// Census is the population of the current grid plus what happened in the
// step that produced it.
type Census struct {
	Step         int `csv:"step" json:"step"`
	Foxes        int `csv:"foxes" json:"foxes"`
	Rabbits      int `csv:"rabbits" json:"rabbits"`
	FoxBirths    int `csv:"fox_births" json:"fox_births"`
	RabbitBirths int `csv:"rabbit_births" json:"rabbit_births"`
	OldAge       int `csv:"died_old_age" json:"died_old_age"`
	Starved      int `csv:"died_starved" json:"died_starved"`
	Eaten        int `csv:"died_eaten" json:"died_eaten"`
	Overcrowded  int `csv:"died_overcrowded" json:"died_overcrowded"`
	Overwritten  int `csv:"died_overwritten" json:"died_overwritten"`
}

// Count takes a census of v.
func Count(v sim.View) Census {
	c := Census{Step: v.Step()}
	v.Each(func(o organism.Organism) {
		switch o.Kind {
		case organism.Fox:
			c.Foxes++
		case organism.Rabbit:
			c.Rabbits++
		}
	})

	t := v.Tally()
	c.FoxBirths = t.Births[organism.Fox]
	c.RabbitBirths = t.Births[organism.Rabbit]
	c.OldAge = t.Deaths[organism.OldAge]
	c.Starved = t.Deaths[organism.Starvation]
	c.Eaten = t.Deaths[organism.Eaten]
	c.Overcrowded = t.Deaths[organism.Overcrowding]
	c.Overwritten = t.Deaths[organism.Overwritten]
	return c
}

func (c Census) Total() int { return c.Foxes + c.Rabbits }

// Of returns the count for kind k.
func (c Census) Of(k organism.Kind) int {
	if k == organism.Fox {
		return c.Foxes
	}
	return c.Rabbits
}

// Species returns how many kinds have at least one living member.
func (c Census) Species() int {
	n := 0
	for _, k := range organism.Kinds {
		if c.Of(k) > 0 {
			n++
		}
	}
	return n
}

// Viable reports whether more than one species is still alive.
func (c Census) Viable() bool { return c.Species() > 1 }

// Viable is the default activity check: a run stops once a species has
// died out.
func Viable(v sim.View) bool { return Count(v).Viable() }

func (c Census) String() string {
	return fmt.Sprintf("step %d: foxes %d, rabbits %d", c.Step, c.Foxes, c.Rabbits)
}

// LogValue implements slog.LogValuer.
func (c Census) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", c.Step),
		slog.Int("foxes", c.Foxes),
		slog.Int("rabbits", c.Rabbits),
		slog.Int("fox_births", c.FoxBirths),
		slog.Int("rabbit_births", c.RabbitBirths),
		slog.Int("died_old_age", c.OldAge),
		slog.Int("died_starved", c.Starved),
		slog.Int("died_eaten", c.Eaten),
		slog.Int("died_overcrowded", c.Overcrowded),
		slog.Int("died_overwritten", c.Overwritten),
	)
}
