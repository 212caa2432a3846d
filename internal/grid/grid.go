package grid

// ID is an index into the simulator's population arena.
type ID int32

// Empty marks a cell with no occupant.
const Empty ID = -1

// Rand is the subset of *math/rand.Rand the grid and the behavior rules
// draw from.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Grid is a Depth x Width field of occupant slots.
type Grid struct {
	depth, width int
	cells        []ID
}

// New creates an empty grid. Both dimensions must be positive.
func New(depth, width int) *Grid {
	if depth <= 0 || width <= 0 {
		panic(&BoundsError{Pos: Pos(depth, width), Depth: depth, Width: width})
	}
	g := &Grid{
		depth: depth,
		width: width,
		cells: make([]ID, depth*width),
	}
	g.Clear()
	return g
}

func (g *Grid) Depth() int { return g.depth }
func (g *Grid) Width() int { return g.width }
func (g *Grid) Size() int  { return len(g.cells) }

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Row < g.depth && p.Col >= 0 && p.Col < g.width
}

func (g *Grid) index(p Position) int {
	if !g.Contains(p) {
		panic(&BoundsError{Pos: p, Depth: g.depth, Width: g.width})
	}
	return p.Row*g.width + p.Col
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Place puts id at p. Whatever occupied p before is dropped.
func (g *Grid) Place(id ID, p Position) {
	g.cells[g.index(p)] = id
}

// Remove empties p if it still holds id.
func (g *Grid) Remove(id ID, p Position) {
	i := g.index(p)
	if g.cells[i] == id {
		g.cells[i] = Empty
	}
}

// At returns the occupant of p, or Empty.
func (g *Grid) At(p Position) ID {
	return g.cells[g.index(p)]
}

// Lookup is At for callers that cannot guarantee p is in range.
func (g *Grid) Lookup(p Position) (ID, error) {
	if !g.Contains(p) {
		return Empty, &BoundsError{Pos: p, Depth: g.depth, Width: g.width}
	}
	return g.cells[p.Row*g.width+p.Col], nil
}

// IsFree reports whether p has no occupant.
func (g *Grid) IsFree(p Position) bool {
	return g.At(p) == Empty
}

// RandomNeighborOrSelf picks a row and a column offset in {-1, 0, +1}.
// If the result leaves the grid, p itself is returned.
func (g *Grid) RandomNeighborOrSelf(rng Rand, p Position) Position {
	g.index(p)
	next := Position{
		Row: p.Row + rng.Intn(3) - 1,
		Col: p.Col + rng.Intn(3) - 1,
	}
	if !g.Contains(next) {
		return p
	}
	return next
}

// FreeNeighborOrSelf returns the first empty cell among p's shuffled
// neighbors, then p itself if empty. ok is false when neither exists.
func (g *Grid) FreeNeighborOrSelf(rng Rand, p Position) (pos Position, ok bool) {
	for _, n := range g.Neighbors(rng, p) {
		if g.cells[n.Row*g.width+n.Col] == Empty {
			return n, true
		}
	}
	if g.At(p) == Empty {
		return p, true
	}
	return Position{}, false
}

// Neighbors returns the up to eight in-bounds cells around p, excluding p,
// in a fresh random order.
func (g *Grid) Neighbors(rng Rand, p Position) []Position {
	g.index(p)
	out := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		r := p.Row + dr
		if r < 0 || r >= g.depth {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := p.Col + dc
			if c < 0 || c >= g.width || (dr == 0 && dc == 0) {
				continue
			}
			out = append(out, Position{Row: r, Col: c})
		}
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Each calls fn for every occupied cell in row-major order.
func (g *Grid) Each(fn func(p Position, id ID)) {
	for i, id := range g.cells {
		if id != Empty {
			fn(Position{Row: i / g.width, Col: i % g.width}, id)
		}
	}
}
