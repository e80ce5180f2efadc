package costmodel_test

import (
	"fmt"

	"github.com/katalvlaran/terracost/costmodel"
)

// ExampleToblerModel_EdgeCost walks 100 m on flat ground and 100 m up a 10 m
// climb with Tobler's hiking function, printing the times in minutes.
func ExampleToblerModel_EdgeCost() {
	m := costmodel.DefaultTobler()

	flat := m.EdgeCost(100, 0, costmodel.ModeTime)
	climb := m.EdgeCost(100, 10, costmodel.ModeTime)

	fmt.Printf("flat:  %.2f min\n", costmodel.Minutes(flat))
	fmt.Printf("climb: %.2f min\n", costmodel.Minutes(climb))
	// Output:
	// flat:  1.19 min
	// climb: 1.69 min
}

// ExamplePandolfModel_EdgeCost compares the energy bill of hauling a load up
// versus down the same 5% grade.
func ExamplePandolfModel_EdgeCost() {
	m, _ := costmodel.NewPandolf(70, 25, 1.25, 1.2)

	up := m.EdgeCost(1000, 50, costmodel.ModeEnergy)
	down := m.EdgeCost(1000, -50, costmodel.ModeEnergy)

	fmt.Printf("uphill:   %.0f kcal\n", costmodel.Kilocalories(up))
	fmt.Printf("downhill: %.0f kcal\n", costmodel.Kilocalories(down))
	// Output:
	// uphill:   123 kcal
	// downhill: 28 kcal
}
