// Package terracost is an anisotropic terrain cost-surface engine: least-cost
// paths, cumulative cost surfaces and movement networks over digital elevation
// rasters.
//
// 🚀 What is terracost?
//
//	A pure algorithmic library that brings together:
//		• Movement-cost models: Tobler, Naismith, Herzog (metabolic & wheeled),
//		  Conolly & Lake, Pandolf load carriage (time and energy domains)
//		• Grid cost fields: elevation + NoData mask + optional friction rasters
//		• Pathfinding: A* least-cost paths, full-grid Dijkstra cost surfaces
//		• Networks: MST, k-NN and hub-and-spoke graphs from pairwise LCPs
//		• Derivatives: cost corridors and isochrone/isoenergy levels & contours
//
// ✨ Why choose terracost?
//
//   - Deterministic – every result is a pure function of its inputs
//   - Cancelable – context-aware inner loops, progress callbacks, no partial
//     results on cancellation
//   - Bounded – explicit cell-count caps fail fast before large allocations
//   - Pure Go – no cgo, no GDAL; rasters in, typed results out
//
// Under the hood, everything is organized under five subpackages:
//
//	costmodel/ — edge-cost formula family and unit conversions
//	costgrid/  — elevation grids, geotransforms, friction, cost fields
//	pathfind/  — A* and Dijkstra over dense row-major grids
//	network/   — candidate pairs, symmetrization, MST / k-NN / hub graphs
//	corridor/  — corridor masks, isoline level schedules, contour tracing
//
// Quick ASCII example:
//
//	    elevation grid            least-cost path
//	    0 0 0 9 0                 S · · ▒ ·
//	    0 0 0 9 0                 · ╲ · ▒ ·
//	    0 0 0 0 0        ⇒        · · ╲ _ ·
//	    0 9 9 9 0                 · ▒ ▒ ▒ ╲
//	    0 0 0 0 0                 · · · · E
//
//	the path bends around the high-cost ridge instead of climbing it.
//
// Raster and vector I/O, CRS handling and styling belong to the caller; the
// engine consumes grids and node coordinates and hands back paths, surfaces
// and graphs.
//
//	go get github.com/katalvlaran/terracost
package terracost
