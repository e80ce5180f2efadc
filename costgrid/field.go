package costgrid

import (
	"math"

	"github.com/katalvlaran/terracost/costmodel"
)

// Move is one precomputed neighbor offset with its horizontal run length.
type Move struct {
	DR, DC int
	Run    float64 // dx, dy, or hypot(dx, dy) on diagonals
}

// FieldOptions configures a Field.
//
// AllowDiagonal — use 8-connectivity instead of 4-connectivity.
// Mode          — the cost domain edges are evaluated in (default ModeTime).
// Friction      — optional per-cell multiplier raster (nil means neutral).
type FieldOptions struct {
	AllowDiagonal bool
	Mode          costmodel.CostMode
	Friction      *FrictionField
}

// FieldOption is a functional option for NewField.
type FieldOption func(*FieldOptions)

// WithDiagonal enables 8-connected neighbor moves.
func WithDiagonal() FieldOption {
	return func(o *FieldOptions) { o.AllowDiagonal = true }
}

// WithMode selects the cost domain (ModeTime or ModeEnergy).
func WithMode(mode costmodel.CostMode) FieldOption {
	return func(o *FieldOptions) { o.Mode = mode }
}

// WithFriction attaches a per-cell friction multiplier raster. Its shape must
// match the grid; NewField validates it.
func WithFriction(f *FrictionField) FieldOption {
	return func(o *FieldOptions) { o.Friction = f }
}

// Field binds a Grid to a cost model, cost mode, connectivity and optional
// friction, and evaluates directed edge costs between adjacent cells. A Field
// is immutable and safe for concurrent use.
type Field struct {
	Grid     *Grid
	Model    costmodel.Model
	Mode     costmodel.CostMode
	friction *FrictionField
	moves    []Move
}

// NewField validates the combination and precomputes neighbor moves.
//
// Returns ErrNilGrid, ErrNilModel, ErrShapeMismatch (friction shape) or
// ErrEnergyUnsupported (ModeEnergy with a non-Pandolf model).
func NewField(g *Grid, model costmodel.Model, opts ...FieldOption) (*Field, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if model == nil {
		return nil, ErrNilModel
	}

	var cfg FieldOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Mode == costmodel.ModeEnergy && model.Kind() != costmodel.Pandolf {
		return nil, ErrEnergyUnsupported
	}
	if cfg.Friction != nil && (cfg.Friction.rows != g.Rows || cfg.Friction.cols != g.Cols) {
		return nil, ErrShapeMismatch
	}

	moves := []Move{
		{DR: -1, DC: 0, Run: g.DY},
		{DR: 1, DC: 0, Run: g.DY},
		{DR: 0, DC: -1, Run: g.DX},
		{DR: 0, DC: 1, Run: g.DX},
	}
	if cfg.AllowDiagonal {
		diag := math.Hypot(g.DX, g.DY)
		moves = append(moves,
			Move{DR: -1, DC: -1, Run: diag},
			Move{DR: -1, DC: 1, Run: diag},
			Move{DR: 1, DC: -1, Run: diag},
			Move{DR: 1, DC: 1, Run: diag},
		)
	}

	return &Field{Grid: g, Model: model, Mode: cfg.Mode, friction: cfg.Friction, moves: moves}, nil
}

// Moves returns the precomputed neighbor offsets (4 or 8).
func (f *Field) Moves() []Move { return f.moves }

// AllowDiagonal reports whether the field uses 8-connectivity.
func (f *Field) AllowDiagonal() bool { return len(f.moves) == 8 }

// FrictionMin returns the smallest friction multiplier, or 1 when the field
// carries no friction raster.
func (f *Field) FrictionMin() float64 {
	if f.friction == nil {
		return 1.0
	}

	return f.friction.Min()
}

// MoveCost returns the cost of leaving (row, col) along the given move. The
// caller must have bound-checked the target cell. Returns +Inf when either
// endpoint is invalid.
func (f *Field) MoveCost(row, col int, mv Move) float64 {
	toR, toC := row+mv.DR, col+mv.DC
	if !f.Grid.valid[f.Grid.Index(row, col)] || !f.Grid.valid[f.Grid.Index(toR, toC)] {
		return math.Inf(1)
	}

	dz := f.Grid.Elevation(toR, toC) - f.Grid.Elevation(row, col)
	w := f.Model.EdgeCost(mv.Run, dz, f.Mode)
	if f.friction != nil {
		w *= 0.5 * (f.friction.At(row, col) + f.friction.At(toR, toC))
	}

	return w
}

// EdgeCost returns the cost of the directed edge from one cell to an adjacent
// cell, computing the run length from the cell offsets. Out-of-bounds or
// invalid endpoints cost +Inf.
func (f *Field) EdgeCost(from, to Cell) float64 {
	if !f.Grid.InBounds(from.Row, from.Col) || !f.Grid.InBounds(to.Row, to.Col) {
		return math.Inf(1)
	}
	run := math.Hypot(float64(to.Col-from.Col)*f.Grid.DX, float64(to.Row-from.Row)*f.Grid.DY)

	return f.MoveCost(from.Row, from.Col, Move{DR: to.Row - from.Row, DC: to.Col - from.Col, Run: run})
}

// StraightLineCost estimates the cost of traveling the straight segment from
// (sx, sy) to (ex, ey) by sampling the DEM every stepM meters with bilinear
// interpolation — the "direct route" figure callers compare an LCP against.
// Returns the accumulated cost and the segment length, or ErrOutsideGrid
// when any sample leaves the raster or lands on NoData.
func (f *Field) StraightLineCost(sx, sy, ex, ey, stepM float64) (cost, distance float64, err error) {
	distance = math.Hypot(ex-sx, ey-sy)
	if distance <= 0 {
		return 0, 0, nil
	}
	stepM = math.Max(0.001, stepM)
	steps := int(math.Ceil(distance / stepM))
	if steps < 1 {
		steps = 1
	}

	zPrev, err := f.Grid.BilinearElevation(sx, sy)
	if err != nil {
		return 0, distance, err
	}

	xPrev, yPrev := sx, sy
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := sx*(1-t) + ex*t
		y := sy*(1-t) + ey*t
		z, zerr := f.Grid.BilinearElevation(x, y)
		if zerr != nil {
			return 0, distance, zerr
		}
		cost += f.Model.EdgeCost(math.Hypot(x-xPrev, y-yPrev), z-zPrev, f.Mode)
		xPrev, yPrev, zPrev = x, y, z
	}

	return cost, distance, nil
}
