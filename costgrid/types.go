// Package costgrid defines the grid types, geotransform and sentinel errors
// shared by the cost-field layer.
package costgrid

import (
	"errors"
	"math"
)

// Sentinel errors for grid and field construction.
var (
	// ErrEmptyGrid indicates input elevations with no rows or no columns.
	ErrEmptyGrid = errors.New("costgrid: elevation grid must have at least one row and one column")
	// ErrNonRectangular indicates elevation rows of differing lengths.
	ErrNonRectangular = errors.New("costgrid: all elevation rows must have the same length")
	// ErrBadCellSize indicates a geotransform with a non-positive pixel size.
	ErrBadCellSize = errors.New("costgrid: cell size must be strictly positive")
	// ErrBadTransform indicates a singular geotransform that cannot be inverted.
	ErrBadTransform = errors.New("costgrid: geotransform is not invertible")
	// ErrShapeMismatch indicates a friction field whose shape differs from the grid.
	ErrShapeMismatch = errors.New("costgrid: friction field shape must match the grid")
	// ErrBadFriction indicates a non-positive friction multiplier.
	ErrBadFriction = errors.New("costgrid: friction multipliers must be strictly positive")
	// ErrNilGrid indicates a nil *Grid where one is required.
	ErrNilGrid = errors.New("costgrid: grid is nil")
	// ErrNilModel indicates a nil cost model where one is required.
	ErrNilModel = errors.New("costgrid: cost model is nil")
	// ErrEnergyUnsupported indicates ModeEnergy requested with a model other
	// than Pandolf, the only member of the family with an energy domain.
	ErrEnergyUnsupported = errors.New("costgrid: energy mode requires the Pandolf model")
	// ErrOutsideGrid indicates a world coordinate outside the raster extent.
	ErrOutsideGrid = errors.New("costgrid: coordinate outside grid extent")
)

// Cell addresses one raster cell by row and column.
type Cell struct {
	Row, Col int
}

// GeoTransform is a GDAL-convention affine transform from pixel space to
// world space:
//
//	x = T[0] + col·T[1] + row·T[2]
//	y = T[3] + col·T[4] + row·T[5]
//
// Pixel coordinates address the top-left corner of a cell; cell centers sit
// at (col+0.5, row+0.5).
type GeoTransform [6]float64

// SimpleTransform builds the common north-up transform: top-left corner at
// (originX, originY), pixel width dx and pixel height dy (dy is stored
// negative, rows grow southwards).
func SimpleTransform(originX, originY, dx, dy float64) GeoTransform {
	return GeoTransform{originX, dx, 0, originY, 0, -dy}
}

// Apply maps pixel coordinates to world coordinates.
func (t GeoTransform) Apply(px, py float64) (x, y float64) {
	return t[0] + px*t[1] + py*t[2], t[3] + px*t[4] + py*t[5]
}

// CellCenter returns the world coordinates of the center of cell (row, col).
func (t GeoTransform) CellCenter(row, col int) (x, y float64) {
	return t.Apply(float64(col)+0.5, float64(row)+0.5)
}

// Invert returns the inverse transform, mapping world coordinates back to
// pixel coordinates. Returns ErrBadTransform when the 2×2 linear part is
// singular.
func (t GeoTransform) Invert() (GeoTransform, error) {
	det := t[1]*t[5] - t[2]*t[4]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return GeoTransform{}, ErrBadTransform
	}
	inv := 1.0 / det

	var out GeoTransform
	out[1] = t[5] * inv
	out[2] = -t[2] * inv
	out[4] = -t[4] * inv
	out[5] = t[1] * inv
	out[0] = -(out[1]*t[0] + out[2]*t[3])
	out[3] = -(out[4]*t[0] + out[5]*t[3])

	return out, nil
}

// shifted returns the transform of a window whose top-left pixel is
// (colOff, rowOff) in the parent raster.
func (t GeoTransform) shifted(colOff, rowOff int) GeoTransform {
	x0, y0 := t.Apply(float64(colOff), float64(rowOff))

	return GeoTransform{x0, t[1], t[2], y0, t[4], t[5]}
}
