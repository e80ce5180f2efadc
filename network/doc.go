// Package network builds movement networks over terrain: many pairwise
// least-cost paths assembled into a minimum spanning tree, a k-nearest
// graph, a hub-and-spoke layout, or all three at once.
//
// Overview:
//
//   - A Builder is bound to one grid, cost model and cost mode. Build takes
//     a set of Nodes (points in the grid's coordinate space) and a Mode and
//     returns a Graph whose edges carry real terrain-following polylines.
//   - Candidate pairs are proposed by Euclidean proximity (cheap), then each
//     candidate is solved with A* in both directions inside a windowed
//     subgrid (expensive, parallel). Slopes make costs asymmetric, so the
//     two directions are symmetrized (avg/min/max) before MST selection.
//
// Modes:
//
//   - ModeMST:  Kruskal minimum spanning tree over symmetrized candidate
//     costs. Fails with ErrDisconnected rather than returning a partial
//     tree. Geometry is re-solved only for the n−1 chosen edges.
//   - ModeKNN:  each node keeps its k cheapest candidate neighbors by
//     directed cost; an edge survives if either endpoint kept the other.
//   - ModeHub:  every non-hub node joins its single cheapest reachable hub;
//     optionally the hubs themselves are joined by an internal MST.
//   - ModeAll:  the union of the three, each edge tagged with its kind.
//
// Concurrency:
//
//   - Candidate pairs are independent and run in parallel under an errgroup
//     with a configurable worker limit. Each worker owns its search scratch;
//     results merge into a shared pair→cost map under one mutex.
//     Cancellation propagates promptly and never yields a partial graph.
//
// Error handling (sentinel errors):
//
//   - ErrTooFewNodes:   fewer than two usable nodes after grid filtering.
//   - ErrNoHubs:        ModeHub requested but no node is flagged as a hub.
//   - ErrNoCandidates:  candidate generation produced no pairs.
//   - ErrWindowTooLarge: a pair's analysis window exceeds the cell cap; the
//     whole build fails fast so the caller can shrink the buffer.
//   - ErrDisconnected:  MST (or hub-MST) could not accept n−1 edges at the
//     given candidate density; retry with a larger k or buffer.
//
// See also:
//
//   - pathfind: the A* search each candidate pair is solved with.
//   - costgrid: windowed subgrids, friction subfields, move models.
package network
