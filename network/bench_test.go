package network_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
	"github.com/katalvlaran/terracost/network"
)

// benchBuilder prepares a builder over a 150×150 rolling grid plus a 4×4
// lattice of nodes spread across it.
func benchBuilder(b *testing.B) (*network.Builder, []network.Node) {
	b.Helper()
	const rows, cols = 150, 150
	elev := make([][]float64, rows)
	for r := range elev {
		elev[r] = make([]float64, cols)
		for c := range elev[r] {
			elev[r][c] = 25 * math.Sin(float64(r+c)/11)
		}
	}
	g, err := costgrid.NewGrid(elev, noData, costgrid.SimpleTransform(0, rows*10, 10, 10))
	if err != nil {
		b.Fatal(err)
	}
	bld, err := network.NewBuilder(g, costmodel.DefaultTobler(), costmodel.ModeTime, nil)
	if err != nil {
		b.Fatal(err)
	}
	nodes := make([]network.Node, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			nodes = append(nodes, network.Node{
				ID: string(rune('A' + i*4 + j)),
				X:  150 + float64(j)*400,
				Y:  150 + float64(i)*400,
			})
		}
	}

	return bld, nodes
}

// BenchmarkBuildMST measures a 16-node minimum-spanning-tree build, the
// cheapest mode since pair geometry is solved only for the chosen edges.
func BenchmarkBuildMST(b *testing.B) {
	bld, nodes := benchBuilder(b) // pre-build grid and nodes once
	b.ResetTimer()                // reset timer to exclude setup
	for i := 0; i < b.N; i++ {
		_, _ = bld.Build(context.Background(), nodes, network.ModeMST)
	}
}

// BenchmarkBuildKNN measures a 16-node k-nearest-neighbour build, which keeps
// full geometry for every surviving pair.
func BenchmarkBuildKNN(b *testing.B) {
	bld, nodes := benchBuilder(b) // pre-build grid and nodes once
	b.ResetTimer()                // reset timer to exclude setup
	for i := 0; i < b.N; i++ {
		_, _ = bld.Build(context.Background(), nodes, network.ModeKNN)
	}
}
