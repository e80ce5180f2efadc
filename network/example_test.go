package network_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
	"github.com/katalvlaran/terracost/network"
)

// ExampleBuilder_Build spans three settlements on one flat row with a
// minimum-spanning tree: two 80 m hops survive, the 160 m chord does not.
func ExampleBuilder_Build() {
	elev := make([][]float64, 20)
	for r := range elev {
		elev[r] = make([]float64, 20)
	}
	g, _ := costgrid.NewGrid(elev, -9999, costgrid.SimpleTransform(0, 200, 10, 10))
	b, _ := network.NewBuilder(g, costmodel.DefaultTobler(), costmodel.ModeTime, nil)

	nodes := []network.Node{
		{ID: "A", X: 15, Y: 185},
		{ID: "B", X: 95, Y: 185},
		{ID: "C", X: 175, Y: 185},
	}
	graph, _ := b.Build(context.Background(), nodes, network.ModeMST)

	for _, e := range graph.Edges {
		fmt.Printf("%s-%s %s %.2f s\n",
			graph.Nodes[e.A].ID, graph.Nodes[e.B].ID, e.Kind, e.CostSym)
	}
	// Output:
	// A-B mst 57.18 s
	// B-C mst 57.18 s
}
