// Package network defines the node/edge/graph types, build modes and
// configuration options for terrain movement networks.
//
// Options:
//
//   - CandidateK:     Euclidean-nearest candidates proposed per node.
//     Default 8; raise it when MST builds report ErrDisconnected.
//   - KNNK:           neighbors kept per node in ModeKNN. Default 3.
//   - BufferM:        meters added around each pair's bounding box before
//     windowing. 0 means "use the whole grid" (slow). Default 500.
//   - Symmetry:       how asymmetric A→B / B→A costs collapse into one MST
//     weight. Default SymmetryAvg.
//   - HubMST:         also join hubs with an internal MST in hub modes.
//   - AllowDiagonal:  8-connectivity inside pair windows.
//   - MaxWindowCells: cap on a single pair window. Default 4,000,000.
//   - Workers:        parallel pair solvers. Default runtime.NumCPU().
//   - Progress:       optional 0–100 callback over solved pairs.
//
// Errors (sentinel):
//
//   - ErrTooFewNodes / ErrNoHubs / ErrNoCandidates for input validation.
//   - ErrWindowTooLarge when a pair window exceeds MaxWindowCells.
//   - ErrDisconnected when an MST cannot reach n−1 edges.
//   - ErrBad* (via panic) for invalid option values.
package network

import (
	"errors"
	"runtime"

	"gonum.org/v1/gonum/spatial/r2"
)

// Sentinel errors returned by Build.
var (
	// ErrTooFewNodes indicates fewer than two usable nodes remained after
	// filtering out points outside the grid or on NoData.
	ErrTooFewNodes = errors.New("network: need at least two usable nodes")

	// ErrNoHubs indicates that ModeHub was requested but no usable node is
	// flagged as a hub.
	ErrNoHubs = errors.New("network: hub mode requires at least one hub node")

	// ErrNoCandidates indicates that candidate generation produced no pairs.
	ErrNoCandidates = errors.New("network: no candidate pairs to solve")

	// ErrWindowTooLarge indicates that a pair's analysis window exceeds
	// MaxWindowCells. The whole build fails fast; shrink BufferM or raise
	// the cap.
	ErrWindowTooLarge = errors.New("network: pair window exceeds the cell cap")

	// ErrDisconnected indicates that Kruskal could not accept n−1 edges at
	// the given candidate density. Retry with a larger CandidateK or BufferM.
	ErrDisconnected = errors.New("network: candidate graph is disconnected")

	// ErrBadCandidateK indicates WithCandidateK was given a value < 1.
	ErrBadCandidateK = errors.New("network: CandidateK must be at least 1")

	// ErrBadKNNK indicates WithKNNK was given a value < 1.
	ErrBadKNNK = errors.New("network: KNNK must be at least 1")

	// ErrBadBuffer indicates WithBufferM was given a negative value.
	ErrBadBuffer = errors.New("network: BufferM must be non-negative")

	// ErrBadWorkers indicates WithWorkers was given a value < 1.
	ErrBadWorkers = errors.New("network: Workers must be at least 1")

	// ErrBadMaxWindowCells indicates WithMaxWindowCells was given ≤ 0.
	ErrBadMaxWindowCells = errors.New("network: MaxWindowCells must be positive")
)

// DefaultMaxWindowCells caps a single pair's analysis window.
const DefaultMaxWindowCells = 4_000_000

// Node is a network point in the grid's coordinate space.
type Node struct {
	ID    string  // caller-supplied identifier, carried through to the graph
	X, Y  float64 // world coordinates (same CRS and linear unit as the grid)
	IsHub bool    // participates as a hub in ModeHub / ModeAll
}

// EdgeKind tags which build step produced an edge.
type EdgeKind int

const (
	// KindMST marks an edge selected by the minimum spanning tree.
	KindMST EdgeKind = iota

	// KindKNN marks an edge kept by the k-nearest-neighbor graph.
	KindKNN

	// KindHubLink marks a non-hub node's link to its cheapest hub.
	KindHubLink

	// KindHubMST marks an edge of the internal hub-to-hub MST.
	KindHubMST
)

// String returns the stable textual tag for the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case KindMST:
		return "mst"
	case KindKNN:
		return "knn"
	case KindHubLink:
		return "hub_link"
	case KindHubMST:
		return "hub_mst"
	default:
		return "unknown"
	}
}

// Edge is one link of the built network. A and B index Graph.Nodes.
// CostAB and CostBA are the directed least-cost values (slopes make them
// differ); CostSym is the symmetrized weight MST selection used.
type Edge struct {
	A, B     int
	Kind     EdgeKind
	Polyline []r2.Vec // terrain-following geometry, start at node A
	DistM    float64  // polyline length in meters
	CostAB   float64
	CostBA   float64
	CostSym  float64
}

// Graph is the result of a Build: the usable nodes (points outside the grid
// or on NoData are dropped) and the edges of the requested mode(s).
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Mode selects the network topology to build.
type Mode int

const (
	// ModeMST builds a minimum spanning tree over all usable nodes.
	ModeMST Mode = iota

	// ModeKNN builds a k-nearest-neighbor graph by directed cost.
	ModeKNN

	// ModeHub connects non-hub nodes to their cheapest hub.
	ModeHub

	// ModeAll builds the union of MST, k-NN and hub layouts.
	ModeAll
)

// String returns the mode's textual name.
func (m Mode) String() string {
	switch m {
	case ModeMST:
		return "mst"
	case ModeKNN:
		return "knn"
	case ModeHub:
		return "hub"
	case ModeAll:
		return "all"
	default:
		return "unknown"
	}
}

// Symmetry selects how the two directed costs of a pair collapse into the
// single undirected weight used by MST selection.
type Symmetry int

const (
	// SymmetryAvg uses (CostAB + CostBA) / 2.
	SymmetryAvg Symmetry = iota

	// SymmetryMin uses min(CostAB, CostBA).
	SymmetryMin

	// SymmetryMax uses max(CostAB, CostBA).
	SymmetryMax
)

// Options configures a Builder. See the package comment for semantics.
type Options struct {
	CandidateK     int
	KNNK           int
	BufferM        float64
	Symmetry       Symmetry
	HubMST         bool
	AllowDiagonal  bool
	MaxWindowCells int
	Workers        int
	Progress       func(pct int)
}

// Option is a functional option for configuring a Builder.
type Option func(*Options)

// WithCandidateK sets how many Euclidean-nearest candidates each node
// proposes. Must be ≥ 1; smaller values panic with ErrBadCandidateK.
func WithCandidateK(k int) Option {
	return func(o *Options) {
		if k < 1 {
			panic(ErrBadCandidateK.Error())
		}
		o.CandidateK = k
	}
}

// WithKNNK sets how many cheapest neighbors each node keeps in ModeKNN.
// Must be ≥ 1; smaller values panic with ErrBadKNNK.
func WithKNNK(k int) Option {
	return func(o *Options) {
		if k < 1 {
			panic(ErrBadKNNK.Error())
		}
		o.KNNK = k
	}
}

// WithBufferM sets the bounding-box buffer around each candidate pair, in
// meters. Zero routes every pair over the whole grid (accurate but slow).
// Negative values panic with ErrBadBuffer.
func WithBufferM(m float64) Option {
	return func(o *Options) {
		if m < 0 {
			panic(ErrBadBuffer.Error())
		}
		o.BufferM = m
	}
}

// WithSymmetry selects the symmetrization method for MST weights.
func WithSymmetry(s Symmetry) Option {
	return func(o *Options) {
		o.Symmetry = s
	}
}

// WithHubMST also joins the hubs themselves with an internal MST in
// ModeHub / ModeAll.
func WithHubMST() Option {
	return func(o *Options) {
		o.HubMST = true
	}
}

// WithDiagonal enables 8-connectivity inside pair windows.
func WithDiagonal() Option {
	return func(o *Options) {
		o.AllowDiagonal = true
	}
}

// WithMaxWindowCells caps a single pair's analysis window.
// Must be positive; other values panic with ErrBadMaxWindowCells.
func WithMaxWindowCells(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxWindowCells.Error())
		}
		o.MaxWindowCells = n
	}
}

// WithWorkers bounds how many candidate pairs are solved concurrently.
// Must be ≥ 1; smaller values panic with ErrBadWorkers.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadWorkers.Error())
		}
		o.Workers = n
	}
}

// WithProgress installs a 0–100 progress callback over solved pairs.
func WithProgress(fn func(pct int)) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

// DefaultOptions returns the Options a Builder starts from.
//
// Defaults:
//   - CandidateK:     8
//   - KNNK:           3
//   - BufferM:        500 m
//   - Symmetry:       SymmetryAvg
//   - HubMST:         false
//   - AllowDiagonal:  false
//   - MaxWindowCells: DefaultMaxWindowCells
//   - Workers:        runtime.NumCPU()
//   - Progress:       nil
func DefaultOptions() Options {
	return Options{
		CandidateK:     8,
		KNNK:           3,
		BufferM:        500,
		Symmetry:       SymmetryAvg,
		HubMST:         false,
		AllowDiagonal:  false,
		MaxWindowCells: DefaultMaxWindowCells,
		Workers:        runtime.NumCPU(),
		Progress:       nil,
	}
}
