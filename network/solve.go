// Package network: parallel per-pair least-cost solving inside windowed
// subgrids, plus polyline extraction.
package network

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/pathfind"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
)

// pairResult holds the two directed costs of a solved pair and, when
// requested, the A→B polyline. A nil polyline means geometry was skipped.
type pairResult struct {
	costAB   float64
	costBA   float64
	polyline []r2.Vec
	distM    float64
}

// solvePairs runs solvePair over every candidate under an errgroup bounded
// by Workers. Each worker owns its own search scratch; results land in the
// shared map under one mutex. Unreachable pairs are silently dropped;
// ErrWindowTooLarge or cancellation abort the whole build.
func (b *Builder) solvePairs(ctx context.Context, kept []Node, pairs []pairKey, wantGeom bool) (map[pairKey]*pairResult, error) {
	results := make(map[pairKey]*pairResult, len(pairs))
	var mu sync.Mutex
	solved := 0

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.cfg.Workers)
	for _, pk := range pairs {
		pk := pk
		eg.Go(func() error {
			res, err := b.solvePair(ctx, kept[pk.a], kept[pk.b], wantGeom)
			if err != nil {
				return err
			}

			mu.Lock()
			if res != nil {
				results[pk] = res
			}
			solved++
			if b.cfg.Progress != nil {
				b.cfg.Progress(100 * solved / len(pairs))
			}
			mu.Unlock()

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// solvePair computes both directed least costs between two nodes inside a
// buffered window around them. Returns (nil, nil) when either direction is
// unreachable — the pair simply produces no edge. Window overflow and
// cancellation are returned as errors and fail the build.
func (b *Builder) solvePair(ctx context.Context, na, nb Node, wantGeom bool) (*pairResult, error) {
	// 1) Window the grid to the pair's buffered bounding box.
	//    BufferM == 0 routes over the whole grid.
	win := b.grid
	friction := b.friction
	if b.cfg.BufferM > 0 {
		minX := math.Min(na.X, nb.X) - b.cfg.BufferM
		maxX := math.Max(na.X, nb.X) + b.cfg.BufferM
		minY := math.Min(na.Y, nb.Y) - b.cfg.BufferM
		maxY := math.Max(na.Y, nb.Y) + b.cfg.BufferM
		row0, col0, rows, cols := b.grid.Window(minX, minY, maxX, maxY)

		if rows*cols > b.cfg.MaxWindowCells {
			return nil, fmt.Errorf("%w: %q–%q needs %d×%d = %d cells > %d",
				ErrWindowTooLarge, na.ID, nb.ID, rows, cols, rows*cols, b.cfg.MaxWindowCells)
		}

		sub, err := b.grid.Subgrid(row0, col0, rows, cols)
		if err != nil {
			return nil, err
		}
		win = sub
		if friction != nil {
			friction, err = b.friction.Subfield(row0, col0, rows, cols)
			if err != nil {
				return nil, err
			}
		}
	} else if b.grid.Rows*b.grid.Cols > b.cfg.MaxWindowCells {
		return nil, fmt.Errorf("%w: whole grid is %d×%d = %d cells > %d",
			ErrWindowTooLarge, b.grid.Rows, b.grid.Cols, b.grid.Rows*b.grid.Cols, b.cfg.MaxWindowCells)
	}

	field, err := costgrid.NewField(win, b.model, fieldOptions(b.costMode, friction, b.cfg.AllowDiagonal)...)
	if err != nil {
		return nil, err
	}

	ca, okA := win.WorldToCell(na.X, na.Y)
	cb, okB := win.WorldToCell(nb.X, nb.Y)
	if !okA || !okB {
		return nil, nil // clamping pushed a node out of its window
	}

	// 2) Both directions; a slope-limited model can pass one way only.
	resAB, err := pathfind.AStar(ctx, field, ca, cb, pathfind.WithMaxCells(b.cfg.MaxWindowCells))
	if errors.Is(err, pathfind.ErrNoPath) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resBA, err := pathfind.AStar(ctx, field, cb, ca, pathfind.WithMaxCells(b.cfg.MaxWindowCells))
	if errors.Is(err, pathfind.ErrNoPath) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := &pairResult{costAB: resAB.Cost, costBA: resBA.Cost}
	if wantGeom {
		out.polyline = simplifyTurnPoints(win.Polyline(resAB.Cells))
		out.distM = polylineLength(out.polyline)
	}

	return out, nil
}

// simplifyTurnPoints drops interior vertices where the direction does not
// change, collapsing each straight grid run into a single segment.
func simplifyTurnPoints(pts []r2.Vec) []r2.Vec {
	if len(pts) <= 2 {
		return pts
	}

	out := make([]r2.Vec, 0, len(pts))
	out = append(out, pts[0])
	for i := 1; i < len(pts)-1; i++ {
		d1 := r2.Sub(pts[i], out[len(out)-1])
		d2 := r2.Sub(pts[i+1], pts[i])
		// Collinear when the cross product vanishes; grid steps make this
		// exact up to float rounding.
		if math.Abs(r2.Cross(d1, d2)) > 1e-9 {
			out = append(out, pts[i])
		}
	}

	return append(out, pts[len(pts)-1])
}

// polylineLength sums the segment lengths of a polyline in meters.
func polylineLength(pts []r2.Vec) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += r2.Norm(r2.Sub(pts[i], pts[i-1]))
	}

	return total
}
