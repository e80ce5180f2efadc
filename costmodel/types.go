// Package costmodel defines the model kinds, cost modes, parameter types and
// sentinel errors shared by the movement-cost model family.
package costmodel

import "errors"

// Sentinel errors returned by model constructors.
var (
	// ErrBadSpeed indicates a speed or rate parameter that is not strictly positive.
	ErrBadSpeed = errors.New("costmodel: speed must be strictly positive")

	// ErrBadAngle indicates a slope angle parameter outside the open interval (0°, 90°).
	ErrBadAngle = errors.New("costmodel: slope angle must be in (0, 90) degrees")

	// ErrBadWeight indicates a non-positive body or load weight.
	ErrBadWeight = errors.New("costmodel: weight must be strictly positive")

	// ErrBadTerrainFactor indicates a non-positive Pandolf terrain factor.
	ErrBadTerrainFactor = errors.New("costmodel: terrain factor must be strictly positive")
)

// CostMode selects the cost domain an edge cost is measured in.
type CostMode int

const (
	// ModeTime measures edge costs in seconds.
	ModeTime CostMode = iota
	// ModeEnergy measures edge costs in joules. Only the Pandolf model
	// produces meaningful energy costs.
	ModeEnergy
)

// String returns the canonical key for the cost mode.
func (m CostMode) String() string {
	if m == ModeEnergy {
		return "energy_j"
	}

	return "time_s"
}

// Kind identifies one member of the sealed model family.
type Kind int

const (
	// Tobler is the Tobler (1993) hiking function.
	Tobler Kind = iota
	// Naismith is the classic Naismith (1892) rule.
	Naismith
	// HerzogMetabolic is Herzog's metabolic cost model (via Čučković).
	HerzogMetabolic
	// ConollyLake is the Conolly & Lake (2006) relative slope penalty.
	ConollyLake
	// HerzogWheeled is Herzog's wheeled-vehicle model (via Čučković).
	HerzogWheeled
	// Pandolf is the Pandolf et al. (1977) load-carriage energy model.
	Pandolf
)

// String returns the canonical key for the model kind.
func (k Kind) String() string {
	switch k {
	case Tobler:
		return "tobler"
	case Naismith:
		return "naismith"
	case HerzogMetabolic:
		return "herzog_metabolic"
	case ConollyLake:
		return "conolly_lake"
	case HerzogWheeled:
		return "herzog_wheeled"
	case Pandolf:
		return "pandolf"
	default:
		return "unknown"
	}
}

// MinSpeedFloor is the strictly positive floor applied to every speed
// denominator, in m/s. It keeps steep slopes expensive without letting any
// formula divide by zero.
const MinSpeedFloor = 0.05

// denomFloor guards the raw denominators inside the closed-form formulas.
const denomFloor = 1e-9

// kmhToMps converts km/h to m/s.
const kmhToMps = 1000.0 / 3600.0

// SecondsPerMinute and JoulesPerKcal convert engine-native cost units into
// the presentation units the surrounding tooling reports.
const (
	SecondsPerMinute = 60.0
	JoulesPerKcal    = 4184.0
)

// Minutes converts a time cost in seconds to minutes.
func Minutes(seconds float64) float64 { return seconds / SecondsPerMinute }

// Kilocalories converts an energy cost in joules to kilocalories.
func Kilocalories(joules float64) float64 { return joules / JoulesPerKcal }

// Model is one member of the movement-cost family. Implementations are pure
// value types: evaluating a cost performs no I/O and mutates nothing.
type Model interface {
	// Kind reports which member of the family this model is.
	Kind() Kind

	// EdgeCost returns the cost of traversing a directed edge with horizontal
	// run h (meters) and signed elevation delta dz (meters) in the given cost
	// mode. A degenerate edge (h ≤ 0) costs 0; an impassable edge costs +Inf.
	// The result is never NaN.
	EdgeCost(h, dz float64, mode CostMode) float64

	// MaxSpeed reports the model's best-case travel speed in m/s, floored at
	// MinSpeedFloor. A* divides straight-line distance by this speed to form
	// an admissible time heuristic.
	MaxSpeed() float64
}
