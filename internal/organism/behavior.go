package organism

import "github.com/san-kum/ecosim/internal/grid"

// Arena resolves grid IDs to organisms and takes in newborns.
type Arena interface {
	Get(id grid.ID) *Organism
	Spawn(o Organism) grid.ID
}

// World is everything an organism touches during one step. Current is read
// only; all placements go to Next.
type World struct {
	Rng     grid.Rand
	Current *grid.Grid
	Next    *grid.Grid
	Arena   Arena
}

// Act advances o, stored in the arena as self, by one step. It is a no-op
// for dead organisms.
func (o *Organism) Act(w World, self grid.ID) {
	if !o.Alive {
		return
	}
	t := o.Kind.Traits()

	o.Age++
	if o.Age > t.MaxAge {
		o.Die(OldAge)
		return
	}
	if o.Kind == Fox {
		o.Food--
		if o.Food <= 0 {
			o.Die(Starvation)
			return
		}
	}

	o.breed(w, t)

	var (
		dest grid.Position
		ok   bool
	)
	if o.Kind == Fox {
		dest, ok = o.hunt(w, t)
	}
	if !ok {
		dest, ok = w.Next.FreeNeighborOrSelf(w.Rng, o.Pos)
	}
	if !ok {
		o.Die(Overcrowding)
		return
	}
	o.Pos = dest
	w.Next.Place(self, dest)
}

// litterSize draws once for the birth check and, on success, once more
// for the litter size.
func (o *Organism) litterSize(rng grid.Rand, t Traits) int {
	draw := rng.Float64()
	if !t.CanBreed(o.Age) || draw > t.BirthProbability {
		return 0
	}
	return rng.Intn(t.MaxLitter) + 1
}

func (o *Organism) breed(w World, t Traits) {
	n := o.litterSize(w.Rng, t)
	for i := 0; i < n; i++ {
		young := Newborn(o.Kind)
		young.Pos = w.Next.RandomNeighborOrSelf(w.Rng, o.Pos)
		id := w.Arena.Spawn(young)
		w.Next.Place(id, young.Pos)
	}
}

// hunt eats the first living rabbit among the shuffled neighbors in the
// current grid and returns its cell.
func (o *Organism) hunt(w World, t Traits) (grid.Position, bool) {
	for _, p := range w.Current.Neighbors(w.Rng, o.Pos) {
		id := w.Current.At(p)
		if id == grid.Empty {
			continue
		}
		prey := w.Arena.Get(id)
		if prey.Kind != Rabbit || !prey.Alive {
			continue
		}
		prey.Die(Eaten)
		// A rabbit that already moved this step sits in Next too.
		w.Next.Remove(id, prey.Pos)
		o.Food = t.Nutrition
		return p, true
	}
	return grid.Position{}, false
}
