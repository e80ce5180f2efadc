// Package pathfind defines the result types, configuration options and the
// shared priority queue for the A* and Dijkstra searches.
//
// Options:
//
//   - MaxCells:      cap on rows·cols before any dense array is allocated.
//     Default 4,000,000 cells. Must be > 0.
//   - Progress:      optional callback receiving a 0–100 percentage while a
//     full-surface sweep runs. Nil disables reporting.
//   - ProgressEvery: how many heap pops between Progress calls. Default 5000.
//     Must be > 0.
//
// Errors (sentinel):
//
//   - ErrNilField        if the provided *costgrid.Field is nil.
//   - ErrOutOfBounds     if a start or end cell lies outside the grid.
//   - ErrNoDataEndpoint  if a start or end cell sits on NoData.
//   - ErrTooManyCells    if rows·cols exceeds MaxCells.
//   - ErrNoPath          if the destination is unreachable.
//   - ErrCancelled       if the context was cancelled; wraps context.Canceled.
//   - ErrBadMaxCells     (via panic) if WithMaxCells is given a value ≤ 0.
//   - ErrBadProgressEvery (via panic) if WithProgressEvery is given ≤ 0.
package pathfind

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/terracost/costgrid"
	"gonum.org/v1/gonum/floats"
)

// Sentinel errors returned by the pathfind searches.
var (
	// ErrNilField indicates that a nil *costgrid.Field was passed in.
	ErrNilField = errors.New("pathfind: field is nil")

	// ErrOutOfBounds indicates that a start or end cell lies outside the grid.
	ErrOutOfBounds = errors.New("pathfind: endpoint outside the grid")

	// ErrNoDataEndpoint indicates that a start or end cell sits on a NoData cell.
	ErrNoDataEndpoint = errors.New("pathfind: endpoint on a NoData cell")

	// ErrTooManyCells indicates that rows·cols exceeds the configured cap.
	// Shrink the search window or raise the cap via WithMaxCells.
	ErrTooManyCells = errors.New("pathfind: grid exceeds the cell cap")

	// ErrNoPath indicates that the destination is unreachable from the start.
	ErrNoPath = errors.New("pathfind: no path between the endpoints")

	// ErrCancelled indicates that the context was cancelled mid-search.
	// It wraps context.Canceled, so errors.Is matches either sentinel.
	ErrCancelled = fmt.Errorf("pathfind: search cancelled: %w", context.Canceled)

	// ErrBadMaxCells indicates that WithMaxCells was given a value ≤ 0.
	ErrBadMaxCells = errors.New("pathfind: MaxCells must be positive")

	// ErrBadProgressEvery indicates that WithProgressEvery was given ≤ 0.
	ErrBadProgressEvery = errors.New("pathfind: ProgressEvery must be positive")
)

// DefaultMaxCells is the default cap on rows·cols a single search may cover.
// A full float64 g-score array at this size is ~32 MB; callers working on
// larger rasters should window first (costgrid.Subgrid) or raise the cap.
const DefaultMaxCells = 4_000_000

// DefaultProgressEvery is the default number of heap pops between progress
// callbacks during a full-surface sweep.
const DefaultProgressEvery = 5000

// noPrev marks a cell with no recorded predecessor in Surface.Prev.
const noPrev = int32(-1)

// PathResult is the outcome of a successful point-to-point search.
type PathResult struct {
	// Cost is the accumulated cost of the path in the field's cost mode
	// (seconds in time mode, joules in energy mode).
	Cost float64

	// Cells is the full cell sequence from start to end inclusive.
	// A start == end search yields a single-cell path with Cost 0.
	Cells []costgrid.Cell
}

// Surface is a cumulative cost surface: the cheapest known cost from a
// source cell to every cell of the grid, plus the predecessor tree.
type Surface struct {
	// Rows and Cols mirror the shape of the grid the surface was built on.
	Rows, Cols int

	// Dist[r*Cols+c] is the minimal cost from the source to (r, c),
	// or +Inf if the cell is unreachable (NoData cells included).
	Dist []float64

	// Prev[r*Cols+c] is the flat index of the predecessor on a cheapest
	// path to (r, c), or -1 for the source and unreachable cells.
	Prev []int32
}

// Index converts (row, col) to the flat index used by Dist and Prev.
func (s *Surface) Index(row, col int) int { return row*s.Cols + col }

// At returns the cumulative cost at (row, col); +Inf if unreachable.
func (s *Surface) At(row, col int) float64 { return s.Dist[s.Index(row, col)] }

// Reachable reports whether (row, col) was reached from the source.
func (s *Surface) Reachable(row, col int) bool {
	return !math.IsInf(s.Dist[s.Index(row, col)], 1)
}

// Stats returns the minimum and maximum finite cost on the surface and the
// number of reachable cells. With no reachable cells, min and max are 0.
func (s *Surface) Stats() (min, max float64, reachable int) {
	finite := make([]float64, 0, len(s.Dist))
	for _, d := range s.Dist {
		if !math.IsInf(d, 1) {
			finite = append(finite, d)
		}
	}
	if len(finite) == 0 {
		return 0, 0, 0
	}

	return floats.Min(finite), floats.Max(finite), len(finite)
}

// Options configures a pathfind search.
//
// MaxCells      – cap on rows·cols before dense arrays are allocated.
// Progress      – optional 0–100 percentage callback (full sweeps only).
// ProgressEvery – heap pops between Progress calls.
type Options struct {
	MaxCells      int
	Progress      func(pct int)
	ProgressEvery int
}

// Option is a functional option for configuring a search.
type Option func(*Options)

// WithMaxCells caps the number of grid cells a search may cover.
// Must be positive; non-positive values cause ErrBadMaxCells (via panic).
func WithMaxCells(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxCells.Error())
		}
		o.MaxCells = n
	}
}

// WithProgress installs a progress callback for full-surface sweeps.
// The callback receives a monotone percentage in [0, 100]; the final value
// is always exactly 100. Nil restores the default (no reporting).
func WithProgress(fn func(pct int)) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// WithProgressEvery sets how many heap pops pass between Progress calls.
// Must be positive; non-positive values cause ErrBadProgressEvery (via panic).
func WithProgressEvery(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadProgressEvery.Error())
		}
		o.ProgressEvery = n
	}
}

// DefaultOptions returns the Options a search starts from before functional
// overrides are applied.
//
// Defaults:
//   - MaxCells:      DefaultMaxCells (4,000,000 cells).
//   - Progress:      nil (no reporting).
//   - ProgressEvery: DefaultProgressEvery (5000 pops).
func DefaultOptions() Options {
	return Options{
		MaxCells:      DefaultMaxCells,
		Progress:      nil,
		ProgressEvery: DefaultProgressEvery,
	}
}

// cellItem is one heap entry: a flat cell index with its g-score and
// f-score (f = g for Dijkstra). Ordered by (f, g) ascending.
type cellItem struct {
	f, g float64
	idx  int32
}

// cellPQ is a min-heap of cellItem under the lazy-decrease-key strategy:
// improvements push duplicates, and a popped entry whose g no longer matches
// the g-score array is stale and skipped.
type cellPQ []cellItem

// Len returns the number of items in the heap.
func (pq cellPQ) Len() int { return len(pq) }

// Less orders by f ascending, breaking ties by g ascending so that among
// equal estimates the entry closer to completion is expanded first.
func (pq cellPQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}

	return pq[i].g < pq[j].g
}

// Swap swaps two elements in the heap.
func (pq cellPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap. Called by heap.Push.
func (pq *cellPQ) Push(x interface{}) { *pq = append(*pq, x.(cellItem)) }

// Pop removes and returns the smallest element. Called by heap.Pop.
func (pq *cellPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
