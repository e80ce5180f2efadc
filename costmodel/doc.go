// Package costmodel provides the family of anisotropic movement-cost models
// used by the terracost engine: pure functions mapping a directed edge between
// two adjacent terrain cells — horizontal run h (meters, > 0) and signed
// elevation delta dz (meters) — to a scalar traversal cost.
//
// Overview:
//
//   - Two cost domains exist: ModeTime (seconds) and ModeEnergy (joules).
//     Only the Pandolf load-carriage model produces energy costs; every other
//     model is a walking/hauling speed model evaluated in time.
//   - Models are a sealed set of strongly-typed parameter structs, one per
//     Kind, validated at construction. There is no free-form parameter map:
//     a speed that must be positive is rejected by the constructor, not
//     discovered mid-evaluation.
//   - Every speed denominator is floored at MinSpeedFloor (0.05 m/s) so that
//     extreme slopes slow movement down but never divide by zero.
//
// Model catalogue:
//
//   - Tobler (1993) hiking function — anisotropic exponential speed decay,
//     speed = base_kmh · exp(−slope_factor · |dz/h + slope_offset|).
//   - Naismith (1892) rule — time = distance/horizontal_speed plus a penalty
//     for every meter of ascent; descents are free.
//   - Herzog metabolic (via Čučković) — isotropic degree-6 polynomial of
//     |slope|, normalized so flat terrain keeps the base speed.
//   - Conolly & Lake (2006) — isotropic linear slope penalty anchored at a
//     reference slope, clamped to ≥ 1 so gentle slopes never beat flat ground.
//   - Herzog wheeled (via Čučković) — isotropic saturating quadratic speed
//     factor in percent slope; slopes beyond MaxSlopeDeg are impassable and
//     cost +Inf.
//   - Pandolf (1977) load carriage — metabolic watts for a walker of body
//     weight W carrying load L at speed V over terrain factor η; ModeTime
//     degrades to constant-speed travel.
//
// Error handling (sentinel errors):
//
//   - ErrBadSpeed         : a speed or rate parameter is not strictly positive.
//   - ErrBadAngle         : a slope angle parameter is outside (0°, 90°).
//   - ErrBadWeight        : a body/load weight parameter is invalid.
//   - ErrBadTerrainFactor : the Pandolf terrain factor is not strictly positive.
//
// Contract:
//
//   - EdgeCost never returns NaN and never panics; impassable edges cost
//     +Inf, degenerate edges (h ≤ 0) cost 0. Callers must guard upstream NaN
//     elevations.
//   - MaxSpeed reports the model's best-case speed in m/s, used by A* as an
//     admissible heuristic divisor in ModeTime.
//
// See pathfind for the searches that consume these costs and costgrid for the
// grid wiring (friction multipliers, NoData handling).
package costmodel
