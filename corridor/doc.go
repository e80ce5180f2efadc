// Package corridor derives least-cost corridors and travel-cost isolines
// from cumulative cost surfaces.
//
// Overview:
//
//   - Mask combines two Dijkstra surfaces — one from the route's start, one
//     from its end — into the set of cells whose total detour cost stays
//     within a percentage of the best path cost. With pct = 0 the mask is
//     exactly the cells lying on some optimal path; growing pct widens the
//     corridor monotonically.
//   - Levels produces a progressive contour schedule for a surface: fine
//     steps near the origin where detail matters, coarser steps beyond a
//     plateau, capped at a maximum count.
//   - Trace extracts isolines (equal-cost contours) from a surface with
//     marching squares over cell-center samples, interpolating crossings
//     linearly and stitching segments into polylines.
//
// The corridor identity: for any cell x, fromStart[x] + fromEnd[x] is the
// cost of the cheapest start→end path forced through x. Thresholding that
// sum against bestCost·(1 + pct/100) is what Mask does; a tiny relative
// slack absorbs floating-point drift so the pct = 0 corridor never loses
// genuine optimal-path cells to rounding.
//
// Error handling (sentinel errors):
//
//   - ErrNilSurface:    a nil surface or grid was passed in.
//   - ErrShapeMismatch: the two surfaces (or surface and grid) disagree on
//     rows×cols.
//   - ErrBadPercent:    pct is negative or not finite.
//   - ErrBadCost:       bestCost is negative or not finite.
//   - ErrBadSchedule:   (via panic) non-positive level-schedule parameters.
//
// See also:
//
//   - pathfind.Dijkstra: produces the Surfaces consumed here.
//   - costgrid.Grid: supplies world coordinates for isoline geometry.
package corridor
