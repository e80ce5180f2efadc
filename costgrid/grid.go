package costgrid

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Grid is an immutable elevation raster: row-major elevations, a same-shaped
// validity mask, the cell sizes derived from its geotransform, and the
// transform itself. Construction deep-copies the input; a Grid is safe to
// share between concurrent analyses.
type Grid struct {
	Rows, Cols int
	DX, DY     float64 // cell size in meters, both > 0

	elev      []float64
	valid     []bool
	transform GeoTransform
	inverse   GeoTransform
}

// NewGrid constructs a Grid from rectangular elevation rows. Cells equal to
// the NoData sentinel, or NaN, are marked invalid. The cell sizes are taken
// from the transform (|T[1]|, |T[5]|) and must be strictly positive.
//
// Returns ErrEmptyGrid, ErrNonRectangular, ErrBadCellSize or ErrBadTransform.
// Complexity: O(rows·cols) time and memory.
func NewGrid(elevations [][]float64, nodata float64, transform GeoTransform) (*Grid, error) {
	if len(elevations) == 0 || len(elevations[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(elevations), len(elevations[0])
	for _, row := range elevations {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}

	dx, dy := math.Abs(transform[1]), math.Abs(transform[5])
	if dx <= 0 || dy <= 0 || math.IsNaN(dx) || math.IsNaN(dy) {
		return nil, ErrBadCellSize
	}
	inverse, err := transform.Invert()
	if err != nil {
		return nil, err
	}

	g := &Grid{
		Rows:      rows,
		Cols:      cols,
		DX:        dx,
		DY:        dy,
		elev:      make([]float64, rows*cols),
		valid:     make([]bool, rows*cols),
		transform: transform,
		inverse:   inverse,
	}
	for r := 0; r < rows; r++ {
		base := r * cols
		for c := 0; c < cols; c++ {
			z := elevations[r][c]
			g.elev[base+c] = z
			g.valid[base+c] = !math.IsNaN(z) && z != nodata
		}
	}

	return g, nil
}

// Index maps (row, col) to the row-major index row·Cols + col.
func (g *Grid) Index(row, col int) int { return row*g.Cols + col }

// CellAt converts a row-major index back to a Cell.
func (g *Grid) CellAt(idx int) Cell { return Cell{Row: idx / g.Cols, Col: idx % g.Cols} }

// InBounds reports whether (row, col) lies within the raster.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Valid reports whether the cell holds usable data. Out-of-bounds cells are
// never valid.
func (g *Grid) Valid(row, col int) bool {
	return g.InBounds(row, col) && g.valid[g.Index(row, col)]
}

// Elevation returns the raw elevation at (row, col). The caller must check
// Valid first; NoData cells return whatever sentinel the raster carried.
func (g *Grid) Elevation(row, col int) float64 { return g.elev[g.Index(row, col)] }

// Transform returns the grid's geotransform.
func (g *Grid) Transform() GeoTransform { return g.transform }

// CellCenter returns the world coordinates of the center of the given cell.
func (g *Grid) CellCenter(cell Cell) (x, y float64) {
	return g.transform.CellCenter(cell.Row, cell.Col)
}

// WorldToCell maps world coordinates to the containing cell. The second
// return value reports whether the cell lies inside the raster.
func (g *Grid) WorldToCell(x, y float64) (Cell, bool) {
	px, py := g.inverse.Apply(x, y)
	cell := Cell{Row: int(math.Floor(py)), Col: int(math.Floor(px))}

	return cell, g.InBounds(cell.Row, cell.Col)
}

// Polyline maps a sequence of cells to their world-space centers.
func (g *Grid) Polyline(cells []Cell) []r2.Vec {
	if len(cells) == 0 {
		return nil
	}
	pts := make([]r2.Vec, len(cells))
	for i, cell := range cells {
		x, y := g.CellCenter(cell)
		pts[i] = r2.Vec{X: x, Y: y}
	}

	return pts
}

// Subgrid extracts the window with top-left cell (row0, col0) and the given
// shape as a new Grid with a window-shifted geotransform. The window must lie
// entirely inside the raster.
// Complexity: O(window cells).
func (g *Grid) Subgrid(row0, col0, rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if row0 < 0 || col0 < 0 || row0+rows > g.Rows || col0+cols > g.Cols {
		return nil, ErrOutsideGrid
	}

	sub := &Grid{
		Rows:      rows,
		Cols:      cols,
		DX:        g.DX,
		DY:        g.DY,
		elev:      make([]float64, rows*cols),
		valid:     make([]bool, rows*cols),
		transform: g.transform.shifted(col0, row0),
	}
	inverse, err := sub.transform.Invert()
	if err != nil {
		return nil, err
	}
	sub.inverse = inverse

	for r := 0; r < rows; r++ {
		src := (row0+r)*g.Cols + col0
		dst := r * cols
		copy(sub.elev[dst:dst+cols], g.elev[src:src+cols])
		copy(sub.valid[dst:dst+cols], g.valid[src:src+cols])
	}

	return sub, nil
}

// Window locates a world-space bounding box on the raster: the clamped
// top-left cell plus the window shape, following the source raster's pixel
// convention. The result always has at least one row and one column and
// never exceeds the raster.
func (g *Grid) Window(minX, minY, maxX, maxY float64) (row0, col0, rows, cols int) {
	px0, py0 := g.inverse.Apply(minX, maxY)
	px1, py1 := g.inverse.Apply(maxX, minY)

	c0 := clampInt(int(math.Floor(math.Min(px0, px1))), 0, g.Cols-1)
	c1 := clampInt(int(math.Ceil(math.Max(px0, px1))), 0, g.Cols-1)
	r0 := clampInt(int(math.Floor(math.Min(py0, py1))), 0, g.Rows-1)
	r1 := clampInt(int(math.Ceil(math.Max(py0, py1))), 0, g.Rows-1)

	return r0, c0, maxInt(1, r1-r0+1), maxInt(1, c1-c0+1)
}

// BilinearElevation samples the elevation at world (x, y) by bilinear
// interpolation between the four surrounding cell centers. When any of the
// four neighbors is invalid the sample falls back to the nearest valid cell.
// Returns ErrOutsideGrid when the point lies beyond the outermost cell
// centers or only NoData is available.
func (g *Grid) BilinearElevation(x, y float64) (float64, error) {
	px, py := g.inverse.Apply(x, y)

	// Shift from pixel-corner coordinates to cell-center array coordinates.
	colF := px - 0.5
	rowF := py - 0.5
	if colF < 0 || rowF < 0 || colF > float64(g.Cols-1) || rowF > float64(g.Rows-1) {
		return 0, ErrOutsideGrid
	}

	c0 := int(math.Floor(colF))
	r0 := int(math.Floor(rowF))
	c1 := minInt(c0+1, g.Cols-1)
	r1 := minInt(r0+1, g.Rows-1)
	fc := colF - float64(c0)
	fr := rowF - float64(r0)

	// Nearest-neighbor fallback keeps edge/mask samples usable.
	if !g.Valid(r0, c0) || !g.Valid(r0, c1) || !g.Valid(r1, c0) || !g.Valid(r1, c1) {
		rn := clampInt(int(math.Round(rowF)), 0, g.Rows-1)
		cn := clampInt(int(math.Round(colF)), 0, g.Cols-1)
		if !g.Valid(rn, cn) {
			return 0, ErrOutsideGrid
		}

		return g.Elevation(rn, cn), nil
	}

	v0 := g.Elevation(r0, c0)*(1-fc) + g.Elevation(r0, c1)*fc
	v1 := g.Elevation(r1, c0)*(1-fc) + g.Elevation(r1, c1)*fc

	return v0*(1-fr) + v1*fr, nil
}

// FrictionField is an optional per-cell multiplicative penalty raster with
// the same shape as its grid. Multipliers must be strictly positive; 1.0 is
// neutral. Immutable after construction.
type FrictionField struct {
	rows, cols int
	values     []float64
	min        float64
}

// NewFrictionField validates and deep-copies a friction raster.
// Returns ErrEmptyGrid, ErrNonRectangular or ErrBadFriction.
func NewFrictionField(values [][]float64) (*FrictionField, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])

	f := &FrictionField{
		rows:   rows,
		cols:   cols,
		values: make([]float64, rows*cols),
		min:    math.Inf(1),
	}
	for r, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
		for c, v := range row {
			if v <= 0 || math.IsNaN(v) {
				return nil, ErrBadFriction
			}
			f.values[r*cols+c] = v
			if v < f.min {
				f.min = v
			}
		}
	}

	return f, nil
}

// At returns the multiplier at (row, col).
func (f *FrictionField) At(row, col int) float64 { return f.values[row*f.cols+col] }

// Min returns the smallest multiplier in the field, used to keep the A*
// heuristic admissible when friction can fall below 1.
func (f *FrictionField) Min() float64 { return f.min }

// Subfield extracts the window matching a Grid.Subgrid call.
func (f *FrictionField) Subfield(row0, col0, rows, cols int) (*FrictionField, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if row0 < 0 || col0 < 0 || row0+rows > f.rows || col0+cols > f.cols {
		return nil, ErrOutsideGrid
	}

	sub := &FrictionField{
		rows:   rows,
		cols:   cols,
		values: make([]float64, rows*cols),
		min:    math.Inf(1),
	}
	for r := 0; r < rows; r++ {
		src := (row0+r)*f.cols + col0
		dst := r * cols
		copy(sub.values[dst:dst+cols], f.values[src:src+cols])
	}
	for _, v := range sub.values {
		if v < sub.min {
			sub.min = v
		}
	}

	return sub, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
