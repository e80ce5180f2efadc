package costgrid_test

import (
	"fmt"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
)

// ExampleGrid_WorldToCell round-trips a cell through world coordinates on a
// 3×10 raster with 10 m cells anchored at (0, 30).
func ExampleGrid_WorldToCell() {
	elev := make([][]float64, 3)
	for r := range elev {
		elev[r] = make([]float64, 10)
	}
	g, _ := costgrid.NewGrid(elev, -9999, costgrid.SimpleTransform(0, 30, 10, 10))

	x, y := g.CellCenter(costgrid.Cell{Row: 1, Col: 2})
	cell, ok := g.WorldToCell(x, y)

	fmt.Printf("center: (%.0f, %.0f)\n", x, y)
	fmt.Printf("cell:   (%d, %d) ok=%v\n", cell.Row, cell.Col, ok)
	// Output:
	// center: (25, 15)
	// cell:   (1, 2) ok=true
}

// ExampleField_StraightLineCost prices an 80 m beeline across flat ground,
// the baseline figure a least-cost path gets compared against.
func ExampleField_StraightLineCost() {
	elev := make([][]float64, 3)
	for r := range elev {
		elev[r] = make([]float64, 10)
	}
	g, _ := costgrid.NewGrid(elev, -9999, costgrid.SimpleTransform(0, 30, 10, 10))
	f, _ := costgrid.NewField(g, costmodel.DefaultTobler())

	cost, dist, _ := f.StraightLineCost(5, 15, 85, 15, 5)

	fmt.Printf("%.2f s over %.0f m\n", cost, dist)
	// Output:
	// 57.18 s over 80 m
}
