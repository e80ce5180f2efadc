// Package pathfind: point-to-point A* over a terrain cost field.
//
// AStar expands cells in order of f = g + h using the shared lazy
// decrease-key heap. The heuristic is straight-line distance divided by the
// model's best speed (zero in energy mode), scaled down by any sub-unit
// friction minimum, so it never overestimates and the result is exact.
package pathfind

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
)

// AStar computes the least-cost path between two cells of the field.
//
// Returns:
//
//   - *PathResult with the accumulated cost and the full start→end cell
//     sequence on success.
//   - ErrNilField, ErrOutOfBounds, ErrNoDataEndpoint, ErrTooManyCells for
//     invalid inputs; ErrNoPath if end is unreachable; ErrCancelled if ctx
//     is cancelled mid-search.
//
// start == end is a valid degenerate query: a single-cell path of cost 0.
//
// Complexity: O(N log N) time, O(N) space for N = rows·cols.
func AStar(ctx context.Context, field *costgrid.Field, start, end costgrid.Cell, opts ...Option) (*PathResult, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate the field, the cell cap and both endpoints.
	if err := validate(field, cfg.MaxCells, start, end); err != nil {
		return nil, err
	}
	g := field.Grid

	// 3) Degenerate query: start and end coincide.
	if start == end {
		return &PathResult{Cost: 0, Cells: []costgrid.Cell{start}}, nil
	}

	// 4) Precompute the heuristic scale: 1/vmax in time mode, 0 in energy
	//    mode (no admissible speed bound exists for metabolic joules).
	//    A friction minimum below 1 shrinks real costs, so it shrinks h too.
	hScale := heuristicScale(field)
	ex, ey := g.CellCenter(end)

	// 5) Dense per-cell state: g-scores at +Inf, predecessors at -1.
	n := g.Rows * g.Cols
	gscore := make([]float64, n)
	for i := range gscore {
		gscore[i] = math.Inf(1)
	}
	prev := make([]int32, n)
	for i := range prev {
		prev[i] = noPrev
	}

	// 6) Seed the heap with the start cell.
	startIdx := int32(g.Index(start.Row, start.Col))
	endIdx := int32(g.Index(end.Row, end.Col))
	gscore[startIdx] = 0

	pq := make(cellPQ, 0, 64)
	heap.Init(&pq)
	heap.Push(&pq, cellItem{f: heuristic(g, start.Row, start.Col, ex, ey, hScale), g: 0, idx: startIdx})

	moves := field.Moves()
	for pq.Len() > 0 {
		// 7) Honor cancellation at every expansion.
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		item := heap.Pop(&pq).(cellItem)

		// 8) Skip stale entries superseded by a later improvement.
		if item.g != gscore[item.idx] {
			continue
		}

		// 9) The destination's g-score is final once popped.
		if item.idx == endIdx {
			return &PathResult{
				Cost:  item.g,
				Cells: ReconstructPath(prev, startIdx, endIdx, g.Rows, g.Cols),
			}, nil
		}

		// 10) Relax all moves out of the popped cell.
		row, col := int(item.idx)/g.Cols, int(item.idx)%g.Cols
		for _, mv := range moves {
			toR, toC := row+mv.DR, col+mv.DC
			if !g.InBounds(toR, toC) {
				continue
			}
			w := field.MoveCost(row, col, mv)
			if math.IsInf(w, 1) {
				continue // NoData neighbor or impassable slope
			}

			toIdx := int32(g.Index(toR, toC))
			cand := item.g + w
			if cand >= gscore[toIdx] {
				continue
			}

			gscore[toIdx] = cand
			prev[toIdx] = item.idx
			heap.Push(&pq, cellItem{
				f:   cand + heuristic(g, toR, toC, ex, ey, hScale),
				g:   cand,
				idx: toIdx,
			})
		}
	}

	return nil, ErrNoPath
}

// heuristicScale returns the factor converting straight-line meters into an
// admissible cost lower bound: 1/vmax (scaled by sub-unit friction minima) in
// time mode, 0 in energy mode.
func heuristicScale(field *costgrid.Field) float64 {
	if field.Mode == costmodel.ModeEnergy {
		return 0
	}
	scale := 1.0 / field.Model.MaxSpeed()
	if fm := field.FrictionMin(); fm < 1 {
		scale *= fm
	}

	return scale
}

// heuristic estimates the remaining cost from (row, col) to the world-space
// target (ex, ey) as euclidean distance times the admissible scale.
func heuristic(g *costgrid.Grid, row, col int, ex, ey, scale float64) float64 {
	if scale == 0 {
		return 0
	}
	x, y := g.CellCenter(costgrid.Cell{Row: row, Col: col})

	return math.Hypot(ex-x, ey-y) * scale
}

// validate checks the field, the cell cap and every endpoint, in that order,
// returning the first applicable sentinel.
func validate(field *costgrid.Field, maxCells int, cells ...costgrid.Cell) error {
	if field == nil || field.Grid == nil {
		return ErrNilField
	}
	g := field.Grid
	if g.Rows*g.Cols > maxCells {
		return fmt.Errorf("%w: %d×%d = %d cells > %d; shrink the window or raise WithMaxCells",
			ErrTooManyCells, g.Rows, g.Cols, g.Rows*g.Cols, maxCells)
	}
	for _, c := range cells {
		if !g.InBounds(c.Row, c.Col) {
			return fmt.Errorf("%w: cell (%d, %d)", ErrOutOfBounds, c.Row, c.Col)
		}
		if !g.Valid(c.Row, c.Col) {
			return fmt.Errorf("%w: cell (%d, %d)", ErrNoDataEndpoint, c.Row, c.Col)
		}
	}

	return nil
}
