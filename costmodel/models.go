package costmodel

import "math"

// floorSpeed applies the configured minimum-speed clamp, falling back to
// MinSpeedFloor when the configured floor is itself non-positive.
func floorSpeed(mps, minMps float64) float64 {
	if minMps <= 0 {
		minMps = MinSpeedFloor
	}
	if mps < minMps {
		return minMps
	}

	return mps
}

// ToblerModel implements the Tobler (1993) hiking function:
//
//	speed_kmh = BaseKmh · exp(−SlopeFactor · |dz/h + SlopeOffset|)
//
// The offset shifts the speed peak slightly downhill, as Tobler's fit does.
type ToblerModel struct {
	BaseKmh     float64 // flat-ground speed, km/h
	SlopeFactor float64 // exponential decay factor per unit slope
	SlopeOffset float64 // slope of maximum speed (negative of), dimensionless
	MinSpeedMps float64 // speed floor, m/s
}

// NewTobler validates and returns a Tobler model.
// Returns ErrBadSpeed unless BaseKmh > 0.
func NewTobler(baseKmh, slopeFactor, slopeOffset, minSpeedMps float64) (ToblerModel, error) {
	if baseKmh <= 0 {
		return ToblerModel{}, ErrBadSpeed
	}

	return ToblerModel{BaseKmh: baseKmh, SlopeFactor: slopeFactor, SlopeOffset: slopeOffset, MinSpeedMps: minSpeedMps}, nil
}

// DefaultTobler returns Tobler's published parameterization: 6 km/h base,
// decay factor 3.5, offset 0.05, floor 0.05 m/s.
func DefaultTobler() ToblerModel {
	return ToblerModel{BaseKmh: 6.0, SlopeFactor: 3.5, SlopeOffset: 0.05, MinSpeedMps: MinSpeedFloor}
}

// Kind reports Tobler.
func (m ToblerModel) Kind() Kind { return Tobler }

// speedMps evaluates the hiking function at the given slope (dz/h).
func (m ToblerModel) speedMps(slope float64) float64 {
	kmh := m.BaseKmh * math.Exp(-m.SlopeFactor*math.Abs(slope+m.SlopeOffset))

	return floorSpeed(kmh*kmhToMps, m.MinSpeedMps)
}

// EdgeCost returns h divided by the slope-dependent hiking speed, in seconds.
func (m ToblerModel) EdgeCost(h, dz float64, _ CostMode) float64 {
	if h <= 0 {
		return 0
	}

	return h / m.speedMps(dz/h)
}

// MaxSpeed reports the base speed in m/s; the exponential factor only ever
// slows the walker down from there.
func (m ToblerModel) MaxSpeed() float64 {
	return floorSpeed(m.BaseKmh*kmhToMps, MinSpeedFloor)
}

// NaismithModel implements the classic Naismith (1892) rule:
//
//	time = h / HorizontalKmh + max(0, dz) / AscentMPerH
//
// Descents incur no penalty.
type NaismithModel struct {
	HorizontalKmh float64 // horizontal walking speed, km/h
	AscentMPerH   float64 // vertical ascent rate, meters climbed per hour
}

// naismithRateFloor matches the source clamp on both Naismith rates.
const naismithRateFloor = 0.0001

// NewNaismith validates and returns a Naismith model.
// Returns ErrBadSpeed unless both rates are strictly positive.
func NewNaismith(horizontalKmh, ascentMPerH float64) (NaismithModel, error) {
	if horizontalKmh <= 0 || ascentMPerH <= 0 {
		return NaismithModel{}, ErrBadSpeed
	}

	return NaismithModel{HorizontalKmh: horizontalKmh, AscentMPerH: ascentMPerH}, nil
}

// DefaultNaismith returns the textbook parameterization: 5 km/h on the flat,
// 600 m of ascent per hour.
func DefaultNaismith() NaismithModel {
	return NaismithModel{HorizontalKmh: 5.0, AscentMPerH: 600.0}
}

// Kind reports Naismith.
func (m NaismithModel) Kind() Kind { return Naismith }

// EdgeCost returns the rule's travel time in seconds.
func (m NaismithModel) EdgeCost(h, dz float64, _ CostMode) float64 {
	if h <= 0 {
		return 0
	}
	horizontalKmh := math.Max(naismithRateFloor, m.HorizontalKmh)
	ascentMPerH := math.Max(naismithRateFloor, m.AscentMPerH)
	hours := h/(horizontalKmh*1000.0) + math.Max(0, dz)/ascentMPerH

	return hours * 3600.0
}

// MaxSpeed reports the horizontal speed in m/s (descents are free, so the
// rule never travels faster than the flat rate).
func (m NaismithModel) MaxSpeed() float64 {
	return floorSpeed(m.HorizontalKmh*kmhToMps, MinSpeedFloor)
}

// HerzogMetabolicModel implements Herzog's metabolic cost polynomial in
// |slope| (via Čučković's Movement Analysis), normalized so that slope = 0
// keeps the base speed.
type HerzogMetabolicModel struct {
	BaseKmh     float64 // flat-ground speed, km/h
	MinSpeedMps float64 // speed floor, m/s
}

// herzogFlatDen is the polynomial's value at slope = 0; the relative speed is
// normalized against it so the base speed is achieved on flat ground.
const herzogFlatDen = 1.64

// NewHerzogMetabolic validates and returns a Herzog metabolic model.
func NewHerzogMetabolic(baseKmh, minSpeedMps float64) (HerzogMetabolicModel, error) {
	if baseKmh <= 0 {
		return HerzogMetabolicModel{}, ErrBadSpeed
	}

	return HerzogMetabolicModel{BaseKmh: baseKmh, MinSpeedMps: minSpeedMps}, nil
}

// DefaultHerzogMetabolic returns the 5 km/h base parameterization.
func DefaultHerzogMetabolic() HerzogMetabolicModel {
	return HerzogMetabolicModel{BaseKmh: 5.0, MinSpeedMps: MinSpeedFloor}
}

// Kind reports HerzogMetabolic.
func (m HerzogMetabolicModel) Kind() Kind { return HerzogMetabolic }

// EdgeCost returns h divided by the polynomial-scaled speed, in seconds.
// The model is isotropic: only |dz|/h matters.
func (m HerzogMetabolicModel) EdgeCost(h, dz float64, _ CostMode) float64 {
	if h <= 0 {
		return 0
	}
	s := math.Abs(dz) / h
	den := 1337.8*math.Pow(s, 6) +
		278.19*math.Pow(s, 5) -
		517.39*math.Pow(s, 4) -
		78.199*math.Pow(s, 3) +
		93.419*s*s +
		19.825*s +
		herzogFlatDen
	relNorm := herzogFlatDen / math.Max(denomFloor, den)
	baseMps := floorSpeed(m.BaseKmh*kmhToMps, m.MinSpeedMps)
	speed := floorSpeed(baseMps*relNorm, m.MinSpeedMps)

	return h / speed
}

// MaxSpeed reports the base speed in m/s.
func (m HerzogMetabolicModel) MaxSpeed() float64 {
	return floorSpeed(m.BaseKmh*kmhToMps, MinSpeedFloor)
}

// ConollyLakeModel implements the Conolly & Lake (2006) relative slope
// penalty: travel time scales linearly with |slope| relative to a reference
// slope, clamped to ≥ 1 so gentle slopes never beat flat terrain.
type ConollyLakeModel struct {
	BaseKmh     float64 // flat-ground speed, km/h
	RefSlopeDeg float64 // reference slope in degrees; penalty = 1 at or below it
	MinSpeedMps float64 // speed floor, m/s
}

// conollyRefFloorDeg keeps the reference slope away from zero.
const conollyRefFloorDeg = 0.1

// NewConollyLake validates and returns a Conolly & Lake model.
// Returns ErrBadAngle unless RefSlopeDeg lies in (0°, 90°).
func NewConollyLake(baseKmh, refSlopeDeg, minSpeedMps float64) (ConollyLakeModel, error) {
	if baseKmh <= 0 {
		return ConollyLakeModel{}, ErrBadSpeed
	}
	if refSlopeDeg <= 0 || refSlopeDeg >= 90 {
		return ConollyLakeModel{}, ErrBadAngle
	}

	return ConollyLakeModel{BaseKmh: baseKmh, RefSlopeDeg: refSlopeDeg, MinSpeedMps: minSpeedMps}, nil
}

// DefaultConollyLake returns the 5 km/h base, 1° reference parameterization.
func DefaultConollyLake() ConollyLakeModel {
	return ConollyLakeModel{BaseKmh: 5.0, RefSlopeDeg: 1.0, MinSpeedMps: MinSpeedFloor}
}

// Kind reports ConollyLake.
func (m ConollyLakeModel) Kind() Kind { return ConollyLake }

// EdgeCost returns the penalized flat-ground travel time in seconds.
func (m ConollyLakeModel) EdgeCost(h, dz float64, _ CostMode) float64 {
	if h <= 0 {
		return 0
	}
	s := math.Abs(dz) / h
	refTan := math.Tan(math.Max(conollyRefFloorDeg, m.RefSlopeDeg) * math.Pi / 180.0)
	factor := math.Max(1.0, s/math.Max(denomFloor, refTan))
	baseMps := floorSpeed(m.BaseKmh*kmhToMps, m.MinSpeedMps)

	return (h / baseMps) * factor
}

// MaxSpeed reports the base speed in m/s (the penalty factor is ≥ 1).
func (m ConollyLakeModel) MaxSpeed() float64 {
	return floorSpeed(m.BaseKmh*kmhToMps, MinSpeedFloor)
}

// HerzogWheeledModel implements Herzog's wheeled-vehicle cost (via Čučković):
// a saturating quadratic speed factor in percent slope, with slopes beyond
// MaxSlopeDeg treated as impassable (+Inf).
type HerzogWheeledModel struct {
	BaseKmh          float64 // flat-ground speed, km/h
	CriticalSlopeDeg float64 // slope at which speed halves, degrees
	MaxSlopeDeg      float64 // slopes steeper than this are impassable, degrees
	MinSpeedMps      float64 // speed floor, m/s
}

// wheeledCriticalFloorDeg keeps the critical slope away from zero.
const wheeledCriticalFloorDeg = 1.0

// NewHerzogWheeled validates and returns a Herzog wheeled model.
// Returns ErrBadAngle unless both angles lie in (0°, 90°).
func NewHerzogWheeled(baseKmh, criticalSlopeDeg, maxSlopeDeg, minSpeedMps float64) (HerzogWheeledModel, error) {
	if baseKmh <= 0 {
		return HerzogWheeledModel{}, ErrBadSpeed
	}
	if criticalSlopeDeg <= 0 || criticalSlopeDeg >= 90 || maxSlopeDeg <= 0 || maxSlopeDeg >= 90 {
		return HerzogWheeledModel{}, ErrBadAngle
	}

	return HerzogWheeledModel{
		BaseKmh:          baseKmh,
		CriticalSlopeDeg: criticalSlopeDeg,
		MaxSlopeDeg:      maxSlopeDeg,
		MinSpeedMps:      minSpeedMps,
	}, nil
}

// DefaultHerzogWheeled returns the 4 km/h base, 12° critical, 25° maximum
// parameterization.
func DefaultHerzogWheeled() HerzogWheeledModel {
	return HerzogWheeledModel{BaseKmh: 4.0, CriticalSlopeDeg: 12.0, MaxSlopeDeg: 25.0, MinSpeedMps: MinSpeedFloor}
}

// Kind reports HerzogWheeled.
func (m HerzogWheeledModel) Kind() Kind { return HerzogWheeled }

// EdgeCost returns the wheeled travel time in seconds, or +Inf when the
// slope exceeds MaxSlopeDeg.
func (m HerzogWheeledModel) EdgeCost(h, dz float64, _ CostMode) float64 {
	if h <= 0 {
		return 0
	}
	s := math.Abs(dz) / h
	if m.MaxSlopeDeg > 0 && s > math.Tan(m.MaxSlopeDeg*math.Pi/180.0) {
		return math.Inf(1)
	}
	criticalDeg := math.Max(wheeledCriticalFloorDeg, m.CriticalSlopeDeg)
	criticalPct := math.Tan(criticalDeg*math.Pi/180.0) * 100.0
	slopePct := s * 100.0
	ratio := slopePct / math.Max(denomFloor, criticalPct)
	speedFactor := 1.0 / (1.0 + ratio*ratio)
	baseMps := floorSpeed(m.BaseKmh*kmhToMps, m.MinSpeedMps)
	speed := floorSpeed(baseMps*speedFactor, m.MinSpeedMps)

	return h / speed
}

// MaxSpeed reports the base speed in m/s.
func (m HerzogWheeledModel) MaxSpeed() float64 {
	return floorSpeed(m.BaseKmh*kmhToMps, MinSpeedFloor)
}

// PandolfModel implements the Pandolf et al. (1977) load-carriage model. In
// ModeEnergy the edge cost is the metabolic work in joules:
//
//	grade% = dz/h · 100
//	M      = 1.5·W + 2·(W+L)·(L/W)² + η·(W+L)·(1.5·V² + 0.35·V·grade%)  [watts]
//	cost   = max(1, M) · h / V
//
// In ModeTime the walker moves at the constant speed V and the cost is h/V.
type PandolfModel struct {
	BodyKg        float64 // walker body weight W, kg
	LoadKg        float64 // carried load L, kg
	SpeedMps      float64 // walking speed V, m/s
	TerrainFactor float64 // terrain factor η (1 = treadmill, >1 = rough ground)
}

// NewPandolf validates and returns a Pandolf model.
// Returns ErrBadWeight, ErrBadSpeed or ErrBadTerrainFactor on invalid input;
// the load may be zero (an unburdened walker) but never negative.
func NewPandolf(bodyKg, loadKg, speedMps, terrainFactor float64) (PandolfModel, error) {
	if bodyKg <= 0 || loadKg < 0 {
		return PandolfModel{}, ErrBadWeight
	}
	if speedMps <= 0 {
		return PandolfModel{}, ErrBadSpeed
	}
	if terrainFactor <= 0 {
		return PandolfModel{}, ErrBadTerrainFactor
	}

	return PandolfModel{BodyKg: bodyKg, LoadKg: loadKg, SpeedMps: speedMps, TerrainFactor: terrainFactor}, nil
}

// DefaultPandolf returns a 70 kg walker with a 20 kg load at 5 km/h over
// unpaved ground (η = 1.2).
func DefaultPandolf() PandolfModel {
	return PandolfModel{BodyKg: 70.0, LoadKg: 20.0, SpeedMps: 5.0 * kmhToMps, TerrainFactor: 1.2}
}

// Kind reports Pandolf.
func (m PandolfModel) Kind() Kind { return Pandolf }

// pandolfWattsFloor keeps the metabolic rate positive on steep descents,
// where the raw regression goes negative.
const pandolfWattsFloor = 1.0

// EdgeCost returns seconds in ModeTime and joules in ModeEnergy.
func (m PandolfModel) EdgeCost(h, dz float64, mode CostMode) float64 {
	if h <= 0 {
		return 0
	}
	v := floorSpeed(m.SpeedMps, MinSpeedFloor)
	if mode != ModeEnergy {
		return h / v
	}

	gradePct := dz / h * 100.0
	w, l := m.BodyKg, m.LoadKg
	eta := m.TerrainFactor
	loadRatio := l / w
	watts := 1.5*w +
		2.0*(w+l)*loadRatio*loadRatio +
		eta*(w+l)*(1.5*v*v+0.35*v*gradePct)
	if watts < pandolfWattsFloor {
		watts = pandolfWattsFloor
	}

	// watts · (h / v) seconds = joules spent crossing the edge.
	return watts * h / v
}

// MaxSpeed reports the constant walking speed in m/s.
func (m PandolfModel) MaxSpeed() float64 {
	return floorSpeed(m.SpeedMps, MinSpeedFloor)
}

// Resolve returns the default parameterization for the given kind. An
// unrecognized kind resolves to the default Naismith model, preserving the
// fallback behavior callers of the original engine rely on.
func Resolve(kind Kind) Model {
	switch kind {
	case Tobler:
		return DefaultTobler()
	case Naismith:
		return DefaultNaismith()
	case HerzogMetabolic:
		return DefaultHerzogMetabolic()
	case ConollyLake:
		return DefaultConollyLake()
	case HerzogWheeled:
		return DefaultHerzogWheeled()
	case Pandolf:
		return DefaultPandolf()
	default:
		return DefaultNaismith()
	}
}
