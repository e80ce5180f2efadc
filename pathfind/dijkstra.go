// Package pathfind: single-source Dijkstra cumulative cost surfaces.
//
// Dijkstra sweeps the whole grid from one source cell, producing the
// Surface that corridors, isolines and catchment queries are built from.
// It shares the lazy decrease-key heap with AStar; with h = 0 the two
// searches expand cells in the same order.
package pathfind

import (
	"container/heap"
	"context"
	"math"

	"github.com/katalvlaran/terracost/costgrid"
)

// Dijkstra computes the cumulative cost surface from source to every
// reachable cell of the field.
//
// Returns:
//
//   - *Surface with per-cell minimal costs (+Inf where unreachable) and the
//     predecessor tree for path reconstruction.
//   - ErrNilField, ErrOutOfBounds, ErrNoDataEndpoint, ErrTooManyCells for
//     invalid inputs; ErrCancelled (and no partial surface) if ctx is
//     cancelled mid-sweep.
//
// Progress reporting: when Options.Progress is set, it is called every
// ProgressEvery pops with min(99, 100·popped/total) and once with 100 when
// the sweep completes. The percentage is monotone but approximate: cells on
// NoData are never popped, so long sweeps may sit below 100 until the end.
//
// Complexity: O(N log N) time, O(N) space for N = rows·cols.
func Dijkstra(ctx context.Context, field *costgrid.Field, source costgrid.Cell, opts ...Option) (*Surface, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate the field, the cell cap and the source cell.
	if err := validate(field, cfg.MaxCells, source); err != nil {
		return nil, err
	}
	g := field.Grid

	// 3) Dense per-cell state: distances at +Inf, predecessors at -1.
	n := g.Rows * g.Cols
	surf := &Surface{
		Rows: g.Rows,
		Cols: g.Cols,
		Dist: make([]float64, n),
		Prev: make([]int32, n),
	}
	for i := range surf.Dist {
		surf.Dist[i] = math.Inf(1)
		surf.Prev[i] = noPrev
	}

	// 4) Seed the heap with the source at distance 0.
	srcIdx := int32(g.Index(source.Row, source.Col))
	surf.Dist[srcIdx] = 0

	pq := make(cellPQ, 0, 64)
	heap.Init(&pq)
	heap.Push(&pq, cellItem{f: 0, g: 0, idx: srcIdx})

	moves := field.Moves()
	popped := 0
	for pq.Len() > 0 {
		// 5) Honor cancellation at every expansion.
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		item := heap.Pop(&pq).(cellItem)

		// 6) Skip stale entries superseded by a later improvement.
		if item.g != surf.Dist[item.idx] {
			continue
		}

		// 7) Periodic progress: capped at 99 until the sweep finishes.
		popped++
		if cfg.Progress != nil && popped%cfg.ProgressEvery == 0 {
			pct := 100 * popped / n
			if pct > 99 {
				pct = 99
			}
			cfg.Progress(pct)
		}

		// 8) Relax all moves out of the popped cell.
		row, col := int(item.idx)/g.Cols, int(item.idx)%g.Cols
		for _, mv := range moves {
			toR, toC := row+mv.DR, col+mv.DC
			if !g.InBounds(toR, toC) {
				continue
			}
			w := field.MoveCost(row, col, mv)
			if math.IsInf(w, 1) {
				continue
			}

			toIdx := int32(g.Index(toR, toC))
			cand := item.g + w
			if cand >= surf.Dist[toIdx] {
				continue
			}

			surf.Dist[toIdx] = cand
			surf.Prev[toIdx] = item.idx
			heap.Push(&pq, cellItem{f: cand, g: cand, idx: toIdx})
		}
	}

	if cfg.Progress != nil {
		cfg.Progress(100)
	}

	return surf, nil
}

// PathTo reconstructs the cheapest path from the surface's source to end.
// The boolean is false when end is out of bounds or unreachable.
func (s *Surface) PathTo(end costgrid.Cell) ([]costgrid.Cell, bool) {
	if end.Row < 0 || end.Row >= s.Rows || end.Col < 0 || end.Col >= s.Cols {
		return nil, false
	}
	endIdx := int32(s.Index(end.Row, end.Col))
	if math.IsInf(s.Dist[endIdx], 1) {
		return nil, false
	}

	// Walk to the tree root: the source is the one reachable cell with no
	// predecessor.
	startIdx := endIdx
	steps := 0
	for s.Prev[startIdx] != noPrev && steps <= s.Rows*s.Cols {
		startIdx = s.Prev[startIdx]
		steps++
	}

	return ReconstructPath(s.Prev, startIdx, endIdx, s.Rows, s.Cols), true
}
