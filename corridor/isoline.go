// Package corridor: isoline extraction via marching squares over
// cell-center samples of a cumulative cost surface.
package corridor

import (
	"fmt"
	"math"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/pathfind"
	"gonum.org/v1/gonum/spatial/r2"
)

// Isoline is the set of equal-cost contours extracted for one level.
type Isoline struct {
	Level float64
	Lines [][]r2.Vec
}

// square edges, indexing the crossing between two adjacent corners.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// segTable maps the 4-bit corner occupancy (TL·8 | TR·4 | BR·2 | BL·1,
// a bit set when the corner value is below the level) to the edge pairs a
// contour crosses. The two ambiguous saddles (5, 10) split into two
// separate segments.
var segTable = [16][][2]int{
	0:  nil,
	1:  {{edgeLeft, edgeBottom}},
	2:  {{edgeBottom, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeTop, edgeRight}},
	5:  {{edgeTop, edgeRight}, {edgeLeft, edgeBottom}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeTop, edgeLeft}},
	8:  {{edgeTop, edgeLeft}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeTop, edgeLeft}, {edgeBottom, edgeRight}},
	11: {{edgeTop, edgeRight}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeBottom, edgeRight}},
	14: {{edgeLeft, edgeBottom}},
	15: nil,
}

// segment is one raw marching-squares crossing before stitching.
type segment struct {
	a, b r2.Vec
}

// Trace extracts the isolines of the given cost levels from a surface.
// The grid supplies world coordinates: samples sit at cell centers and
// crossings are interpolated linearly between them. Squares touching an
// unreachable or NoData cell are skipped, so contours stop at data edges
// rather than inventing geometry across holes.
func Trace(surf *pathfind.Surface, grid *costgrid.Grid, levels []float64) ([]Isoline, error) {
	if surf == nil || grid == nil {
		return nil, ErrNilSurface
	}
	if surf.Rows != grid.Rows || surf.Cols != grid.Cols {
		return nil, fmt.Errorf("%w: surface %d×%d vs grid %d×%d",
			ErrShapeMismatch, surf.Rows, surf.Cols, grid.Rows, grid.Cols)
	}

	out := make([]Isoline, 0, len(levels))
	for _, level := range levels {
		segs := traceLevel(surf, grid, level)
		out = append(out, Isoline{Level: level, Lines: stitch(segs)})
	}

	return out, nil
}

// traceLevel runs marching squares for one level and returns raw segments.
func traceLevel(surf *pathfind.Surface, grid *costgrid.Grid, level float64) []segment {
	var segs []segment
	for r := 0; r < surf.Rows-1; r++ {
		for c := 0; c < surf.Cols-1; c++ {
			vTL := surf.At(r, c)
			vTR := surf.At(r, c+1)
			vBR := surf.At(r+1, c+1)
			vBL := surf.At(r+1, c)
			if math.IsInf(vTL, 1) || math.IsInf(vTR, 1) || math.IsInf(vBR, 1) || math.IsInf(vBL, 1) {
				continue // square touches unreachable or NoData ground
			}

			idx := 0
			if vTL < level {
				idx |= 8
			}
			if vTR < level {
				idx |= 4
			}
			if vBR < level {
				idx |= 2
			}
			if vBL < level {
				idx |= 1
			}

			for _, pair := range segTable[idx] {
				segs = append(segs, segment{
					a: crossing(grid, r, c, pair[0], level, vTL, vTR, vBR, vBL),
					b: crossing(grid, r, c, pair[1], level, vTL, vTR, vBR, vBL),
				})
			}
		}
	}

	return segs
}

// crossing interpolates the contour's intersection with one square edge.
func crossing(grid *costgrid.Grid, r, c, edge int, level, vTL, vTR, vBR, vBL float64) r2.Vec {
	var p0, p1 r2.Vec
	var v0, v1 float64
	switch edge {
	case edgeTop:
		p0, v0 = center(grid, r, c), vTL
		p1, v1 = center(grid, r, c+1), vTR
	case edgeRight:
		p0, v0 = center(grid, r, c+1), vTR
		p1, v1 = center(grid, r+1, c+1), vBR
	case edgeBottom:
		p0, v0 = center(grid, r+1, c), vBL
		p1, v1 = center(grid, r+1, c+1), vBR
	default: // edgeLeft
		p0, v0 = center(grid, r, c), vTL
		p1, v1 = center(grid, r+1, c), vBL
	}

	t := (level - v0) / (v1 - v0)

	return r2.Vec{X: p0.X + t*(p1.X-p0.X), Y: p0.Y + t*(p1.Y-p0.Y)}
}

// center returns the world coordinates of a cell center.
func center(grid *costgrid.Grid, r, c int) r2.Vec {
	x, y := grid.CellCenter(costgrid.Cell{Row: r, Col: c})

	return r2.Vec{X: x, Y: y}
}

// stitch chains raw segments that share endpoints into polylines.
// Endpoints are matched on micrometer-quantized coordinates, which is far
// below any realistic cell size and far above float interpolation noise.
func stitch(segs []segment) [][]r2.Vec {
	type key struct{ x, y int64 }
	quant := func(p r2.Vec) key {
		return key{x: int64(math.Round(p.X * 1e6)), y: int64(math.Round(p.Y * 1e6))}
	}

	adj := make(map[key][]int, len(segs)*2)
	for i, s := range segs {
		adj[quant(s.a)] = append(adj[quant(s.a)], i)
		adj[quant(s.b)] = append(adj[quant(s.b)], i)
	}

	takeNext := func(k key, used []bool) int {
		for _, j := range adj[k] {
			if !used[j] {
				return j
			}
		}

		return -1
	}

	used := make([]bool, len(segs))
	var lines [][]r2.Vec
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		line := []r2.Vec{segs[i].a, segs[i].b}

		// Grow the tail.
		for {
			j := takeNext(quant(line[len(line)-1]), used)
			if j == -1 {
				break
			}
			used[j] = true
			if quant(segs[j].a) == quant(line[len(line)-1]) {
				line = append(line, segs[j].b)
			} else {
				line = append(line, segs[j].a)
			}
		}

		// Grow the head.
		for {
			j := takeNext(quant(line[0]), used)
			if j == -1 {
				break
			}
			used[j] = true
			var p r2.Vec
			if quant(segs[j].a) == quant(line[0]) {
				p = segs[j].b
			} else {
				p = segs[j].a
			}
			line = append([]r2.Vec{p}, line...)
		}

		lines = append(lines, line)
	}

	return lines
}
