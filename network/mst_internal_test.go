package network

import (
	"context"
	"testing"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAppendKruskal_ResolveUnreachable exercises the geometry re-solve of an
// MST winner: the candidate carries finite costs but no polyline, and the
// re-solve finds the pair separated by a NoData wall. The edge must be
// skipped, not dereferenced.
func TestAppendKruskal_ResolveUnreachable(t *testing.T) {
	const noData = -9999.0
	elev := make([][]float64, 4)
	for r := range elev {
		elev[r] = make([]float64, 4)
		elev[r][1] = noData // wall column between the two nodes
	}
	g, err := costgrid.NewGrid(elev, noData, costgrid.SimpleTransform(0, 40, 10, 10))
	require.NoError(t, err)
	b, err := NewBuilder(g, costmodel.DefaultTobler(), costmodel.ModeTime, nil)
	require.NoError(t, err)

	kept := []Node{
		{ID: "A", X: 5, Y: 35},
		{ID: "B", X: 35, Y: 35},
	}
	results := map[pairKey]*pairResult{
		makePair(0, 1): {costAB: 1, costBA: 1}, // stale costs, nil polyline
	}

	graph := &Graph{Nodes: kept}
	err = b.appendKruskal(context.Background(), graph, kept, []int{0, 1}, results, KindMST)
	require.NoError(t, err)
	assert.Empty(t, graph.Edges)
}
