// Package organism holds the fox and rabbit model: per-species traits, the
// organism record stored in the simulator's arena, and the behavior each
// organism runs once per step.
package organism

import (
	"fmt"

	"github.com/san-kum/ecosim/internal/grid"
)

// Kind tags which species an Organism belongs to.
type Kind uint8

const (
	Rabbit Kind = iota
	Fox

	NumKinds = int(Fox) + 1
)

// Kinds lists every species in display order.
var Kinds = []Kind{Fox, Rabbit}

func (k Kind) String() string {
	switch k {
	case Rabbit:
		return "rabbit"
	case Fox:
		return "fox"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Cause records why an organism died.
type Cause uint8

const (
	Living Cause = iota
	OldAge
	Starvation
	Overcrowding
	Eaten
	Overwritten

	NumCauses = int(Overwritten) + 1
)

func (c Cause) String() string {
	switch c {
	case Living:
		return "living"
	case OldAge:
		return "old_age"
	case Starvation:
		return "starvation"
	case Overcrowding:
		return "overcrowding"
	case Eaten:
		return "eaten"
	case Overwritten:
		return "overwritten"
	default:
		return fmt.Sprintf("cause(%d)", uint8(c))
	}
}

// Organism is a single fox or rabbit. Food is only meaningful for foxes.
type Organism struct {
	Kind  Kind
	Age   int
	Alive bool
	Pos   grid.Position
	Food  int
	Cause Cause
}

// Newborn returns an organism of age zero. Foxes start fully fed.
func Newborn(k Kind) Organism {
	o := Organism{Kind: k, Alive: true}
	if k == Fox {
		o.Food = k.Traits().Nutrition
	}
	return o
}

// Random returns an organism with a random age, and for foxes a random
// food level, as used when seeding the field.
func Random(k Kind, rng grid.Rand) Organism {
	t := k.Traits()
	o := Organism{Kind: k, Alive: true}
	o.Age = rng.Intn(t.MaxAge)
	if k == Fox {
		o.Food = rng.Intn(t.Nutrition)
	}
	return o
}

// Die marks the organism dead. The first cause sticks.
func (o *Organism) Die(c Cause) {
	if !o.Alive {
		return
	}
	o.Alive = false
	o.Cause = c
}

func (o Organism) String() string {
	if o.Kind == Fox {
		return fmt.Sprintf("%s age=%d food=%d at %v", o.Kind, o.Age, o.Food, o.Pos)
	}
	return fmt.Sprintf("%s age=%d at %v", o.Kind, o.Age, o.Pos)
}
