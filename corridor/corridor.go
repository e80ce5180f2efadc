// Package corridor: the corridor mask and the progressive level schedule.
package corridor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/terracost/pathfind"
)

// Sentinel errors returned by Mask, Levels and Trace.
var (
	// ErrNilSurface indicates a nil surface or grid argument.
	ErrNilSurface = errors.New("corridor: surface is nil")

	// ErrShapeMismatch indicates that the inputs disagree on rows×cols.
	ErrShapeMismatch = errors.New("corridor: shape mismatch")

	// ErrBadPercent indicates that pct is negative or not finite.
	ErrBadPercent = errors.New("corridor: percent must be finite and non-negative")

	// ErrBadCost indicates that bestCost is negative or not finite.
	ErrBadCost = errors.New("corridor: best cost must be finite and non-negative")

	// ErrBadSchedule indicates (via panic) a non-positive schedule value.
	ErrBadSchedule = errors.New("corridor: level schedule values must be positive")
)

// relSlack absorbs float drift in the corridor threshold: two sums of the
// same edge weights taken in different orders may differ by a few ulps, and
// the pct = 0 corridor must still keep every true optimal-path cell.
const relSlack = 1e-9

// Mask returns the least-cost corridor as a flat rows×cols boolean mask.
//
// fromStart and fromEnd are cumulative surfaces computed from the route's
// two endpoints; bestCost is the optimal start→end cost. A cell is inside
// the corridor iff both surface values are finite and their sum does not
// exceed bestCost·(1 + pct/100), up to a relative slack of a few ulps.
// The mask grows monotonically with pct.
func Mask(fromStart, fromEnd *pathfind.Surface, bestCost, pct float64) ([]bool, error) {
	if fromStart == nil || fromEnd == nil {
		return nil, ErrNilSurface
	}
	if fromStart.Rows != fromEnd.Rows || fromStart.Cols != fromEnd.Cols {
		return nil, fmt.Errorf("%w: %d×%d vs %d×%d",
			ErrShapeMismatch, fromStart.Rows, fromStart.Cols, fromEnd.Rows, fromEnd.Cols)
	}
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 {
		return nil, ErrBadPercent
	}
	if math.IsNaN(bestCost) || math.IsInf(bestCost, 0) || bestCost < 0 {
		return nil, ErrBadCost
	}

	budget := bestCost * (1 + pct/100)
	budget += relSlack * budget

	mask := make([]bool, len(fromStart.Dist))
	for i := range mask {
		ds, de := fromStart.Dist[i], fromEnd.Dist[i]
		if math.IsInf(ds, 1) || math.IsInf(de, 1) {
			continue
		}
		mask[i] = ds+de <= budget
	}

	return mask, nil
}

// LevelOptions shapes the progressive contour schedule built by Levels.
//
// FineStep   – spacing of the first contours, in surface units.
// Plateau    – cost beyond which the schedule switches to CoarseStep.
// CoarseStep – spacing past the plateau.
// MaxLevels  – hard cap on the number of contours.
type LevelOptions struct {
	FineStep   float64
	Plateau    float64
	CoarseStep float64
	MaxLevels  int
}

// LevelOption is a functional option for configuring Levels.
type LevelOption func(*LevelOptions)

// WithFineStep sets the near-origin contour spacing.
// Must be positive; other values panic with ErrBadSchedule.
func WithFineStep(step float64) LevelOption {
	return func(o *LevelOptions) {
		if step <= 0 || math.IsNaN(step) {
			panic(ErrBadSchedule.Error())
		}
		o.FineStep = step
	}
}

// WithPlateau sets the cost where the schedule coarsens.
// Must be positive; other values panic with ErrBadSchedule.
func WithPlateau(v float64) LevelOption {
	return func(o *LevelOptions) {
		if v <= 0 || math.IsNaN(v) {
			panic(ErrBadSchedule.Error())
		}
		o.Plateau = v
	}
}

// WithCoarseStep sets the contour spacing past the plateau.
// Must be positive; other values panic with ErrBadSchedule.
func WithCoarseStep(step float64) LevelOption {
	return func(o *LevelOptions) {
		if step <= 0 || math.IsNaN(step) {
			panic(ErrBadSchedule.Error())
		}
		o.CoarseStep = step
	}
}

// WithMaxLevels caps the number of contours.
// Must be ≥ 1; other values panic with ErrBadSchedule.
func WithMaxLevels(n int) LevelOption {
	return func(o *LevelOptions) {
		if n < 1 {
			panic(ErrBadSchedule.Error())
		}
		o.MaxLevels = n
	}
}

// DefaultLevelOptions returns the schedule Levels starts from: 15-minute
// contours out to one hour, 30-minute contours beyond, at most 64 in total
// (surfaces carry seconds in time mode).
func DefaultLevelOptions() LevelOptions {
	return LevelOptions{
		FineStep:   900,  // 15 min
		Plateau:    3600, // 1 h
		CoarseStep: 1800, // 30 min
		MaxLevels:  64,
	}
}

// Levels builds the contour values for a surface whose finite maximum is
// maxValue: multiples of FineStep up to the plateau, then multiples of
// CoarseStep, all ≤ maxValue, deduplicated, ascending, at most MaxLevels.
// A non-positive maxValue yields no levels.
func Levels(maxValue float64, opts ...LevelOption) []float64 {
	cfg := DefaultLevelOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if maxValue <= 0 || math.IsNaN(maxValue) || math.IsInf(maxValue, 0) {
		return nil
	}

	set := make(map[float64]struct{})
	for v := cfg.FineStep; v <= maxValue && v <= cfg.Plateau; v += cfg.FineStep {
		set[v] = struct{}{}
	}
	start := math.Ceil(cfg.Plateau/cfg.CoarseStep) * cfg.CoarseStep
	for v := start; v <= maxValue; v += cfg.CoarseStep {
		if v > 0 {
			set[v] = struct{}{}
		}
	}

	levels := make([]float64, 0, len(set))
	for v := range set {
		levels = append(levels, v)
	}
	sort.Float64s(levels)
	if len(levels) > cfg.MaxLevels {
		levels = levels[:cfg.MaxLevels]
	}

	return levels
}
