// Package costgrid turns a digital elevation raster into a navigable cost
// field: an immutable Grid (elevations, validity mask, affine geotransform),
// an optional FrictionField of per-cell multipliers, and a Field that binds a
// grid to a costmodel.Model and exposes neighbor moves and edge costs.
//
// Overview:
//
//   - Grid stores elevations row-major with a same-shaped validity mask;
//     NoData sentinel values and NaNs are both invalid. Grids are deep-copied
//     on construction and never mutated afterwards, so concurrent analyses
//     can share one grid without synchronization.
//   - GeoTransform follows the GDAL convention: world x/y as an affine
//     function of (col, row) pixel coordinates, with the inverse computed
//     from the 2×2 determinant. Cell centers sit at (+0.5, +0.5).
//   - Subgrid and BBoxWindow extract bounded analysis windows so pairwise
//     searches on large rasters stay within the configured cell cap.
//   - Field precomputes the 4- or 8-connected neighbor offsets with their run
//     lengths (dx, dy, or hypot(dx, dy) on diagonals) and evaluates directed
//     edge costs: model cost × mean of the two endpoint friction values,
//     +Inf when either endpoint is invalid.
//
// Guarantees:
//
//   - Field.EdgeCost never indexes out of bounds provided the caller
//     bound-checks the target cell (pathfind does); the cost of a fixed edge
//     is deterministic and side-effect free.
//   - ModeEnergy is only accepted with the Pandolf model; NewField rejects
//     every other combination with ErrEnergyUnsupported.
//
// Error handling (sentinel errors):
//
//   - ErrEmptyGrid          : the elevation input has no rows or no columns.
//   - ErrNonRectangular     : rows of differing lengths.
//   - ErrBadCellSize        : the geotransform yields a non-positive dx or dy.
//   - ErrBadTransform       : the geotransform is singular (no inverse).
//   - ErrShapeMismatch      : friction and grid shapes differ.
//   - ErrBadFriction        : a friction multiplier is not strictly positive.
//   - ErrNilGrid / ErrNilModel : missing required Field inputs.
//   - ErrEnergyUnsupported  : ModeEnergy requested with a non-Pandolf model.
//   - ErrOutsideGrid        : a sampled world coordinate falls off the raster.
//
// Complexity: construction is O(rows·cols); every lookup and edge-cost
// evaluation is O(1).
package costgrid
