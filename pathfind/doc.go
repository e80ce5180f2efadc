// Package pathfind provides least-cost-path search over terrain cost fields:
// point-to-point A* and single-source Dijkstra cumulative cost surfaces.
//
// Overview:
//
//   - AStar computes the cheapest path between two cells of a
//     costgrid.Field, expanding cells in order of f = g + h with an
//     admissible straight-line-over-best-speed heuristic.
//   - Dijkstra computes the full cumulative cost surface from a source cell
//     to every reachable cell, the input for corridors and isolines.
//   - Both use the same lazy-decrease-key binary heap: duplicates are pushed
//     on improvement and stale entries are skipped when popped.
//
// When to use:
//
//   - AStar for a single origin→destination route (fastest; the heuristic
//     prunes most of the grid on open terrain).
//   - Dijkstra when you need costs to *all* cells — catchments, corridors,
//     travel-time isolines — or many destinations from one origin.
//
// Heuristic admissibility:
//
//   - In time mode, no move can be faster than straight-line distance at the
//     model's best speed (Model.MaxSpeed), so h = euclid/vmax never
//     overestimates. With a friction field, h is additionally scaled by
//     min(1, min friction) so sub-unit multipliers cannot break the bound.
//   - In energy mode no comparable lower bound exists, so h = 0 and AStar
//     degrades gracefully to Dijkstra. Results stay exact either way.
//
// Complexity:
//
//   - Time:  O(N log N) for N = rows·cols grid cells (each cell popped at
//     most once; up to 8 pushes per cell under lazy decrease-key).
//   - Space: O(N) for the dense g-score, predecessor and heap arrays.
//
// Error handling (sentinel errors):
//
//   - ErrNilField:       nil *costgrid.Field passed in.
//   - ErrOutOfBounds:    an endpoint lies outside the grid.
//   - ErrNoDataEndpoint: an endpoint sits on a NoData cell.
//   - ErrTooManyCells:   rows·cols exceeds the configured cell cap; shrink
//     the window or raise WithMaxCells.
//   - ErrNoPath:         the destination is unreachable from the start.
//   - ErrCancelled:      the context was cancelled mid-search; wraps
//     context.Canceled so errors.Is works against either sentinel.
//   - ErrBadMaxCells / ErrBadProgressEvery: (via panic) invalid option values.
//
// Determinism:
//
//   - Runs are reproducible: ties are broken by (f, g) ordering and then by
//     heap insertion order, with no randomized state.
//
// See also:
//
//   - costgrid.Field: the move model, per-edge costs and friction.
//   - corridor: least-cost corridors and isolines built from two Surfaces.
//   - network: multi-point movement networks built from repeated searches.
package pathfind
