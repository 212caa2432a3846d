// Package grid provides the bounded two-dimensional field the simulation
// runs on.
//
// A [Grid] stores, per cell, the arena index ([ID]) of at most one organism
// or [Empty]. It never owns organisms; the simulator's population arena
// does. Spatial queries that involve chance take an explicit [Rand] so that
// a single seeded source drives the whole run:
//
//   - [Grid.RandomNeighborOrSelf]: birth placement, clamps to self at edges
//   - [Grid.FreeNeighborOrSelf]: movement destination or none
//   - [Grid.Neighbors]: shuffled in-bounds neighbors, e.g. for hunting
//
// Out-of-range coordinates are caller bugs and panic with a [*BoundsError].
package grid
