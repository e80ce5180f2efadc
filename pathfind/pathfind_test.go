package pathfind_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/terracost/costgrid"
	"github.com/katalvlaran/terracost/costmodel"
	"github.com/katalvlaran/terracost/pathfind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const noData = -9999.0

func flatRows(rows, cols int, z float64) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
		for c := range out[r] {
			out[r][c] = z
		}
	}

	return out
}

// flatField builds a rows×cols flat Tobler field with 10 m cells.
func flatField(t *testing.T, rows, cols int, opts ...costgrid.FieldOption) *costgrid.Field {
	t.Helper()
	g, err := costgrid.NewGrid(flatRows(rows, cols, 0), noData, costgrid.SimpleTransform(0, float64(rows)*10, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultTobler(), opts...)
	require.NoError(t, err)

	return f
}

// toblerFlatSpeed is the walking speed on level ground under the default
// Tobler parameters, in m/s.
func toblerFlatSpeed() float64 {
	return 6.0 * math.Exp(-3.5*0.05) * 1000.0 / 3600.0
}

// TestAStar_FlatDiagonal checks the exact cost and shape of the cheapest
// route across flat ground with 8-connectivity: four diagonal steps.
func TestAStar_FlatDiagonal(t *testing.T) {
	f := flatField(t, 5, 5, costgrid.WithDiagonal())

	res, err := pathfind.AStar(context.Background(), f, costgrid.Cell{Row: 0, Col: 0}, costgrid.Cell{Row: 4, Col: 4})
	require.NoError(t, err)

	want := 4 * math.Hypot(10, 10) / toblerFlatSpeed()
	assert.InDelta(t, want, res.Cost, 1e-9)
	require.Len(t, res.Cells, 5)
	assert.Equal(t, costgrid.Cell{Row: 0, Col: 0}, res.Cells[0])
	assert.Equal(t, costgrid.Cell{Row: 4, Col: 4}, res.Cells[4])
}

// TestAStar_FlatAxis checks the 4-connectivity cost on flat ground.
func TestAStar_FlatAxis(t *testing.T) {
	f := flatField(t, 5, 5)

	res, err := pathfind.AStar(context.Background(), f, costgrid.Cell{Row: 0, Col: 0}, costgrid.Cell{Row: 4, Col: 4})
	require.NoError(t, err)

	assert.InDelta(t, 80.0/toblerFlatSpeed(), res.Cost, 1e-9)
	assert.Len(t, res.Cells, 9)
}

// TestAStar_StartEqualsEnd verifies the degenerate single-cell query.
func TestAStar_StartEqualsEnd(t *testing.T) {
	f := flatField(t, 3, 3)

	res, err := pathfind.AStar(context.Background(), f, costgrid.Cell{Row: 1, Col: 1}, costgrid.Cell{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Zero(t, res.Cost)
	assert.Equal(t, []costgrid.Cell{{Row: 1, Col: 1}}, res.Cells)
}

// TestAStar_PathCostConsistency runs A* over uneven terrain and re-sums the
// edge costs along the returned cells; accumulated cost must match and every
// step must be grid-adjacent.
func TestAStar_PathCostConsistency(t *testing.T) {
	rows := [][]float64{
		{0, 4, 9, 2, 0},
		{1, 6, 12, 3, 1},
		{0, 3, 8, 2, 0},
		{2, 1, 4, 1, 2},
		{0, 0, 2, 0, 0},
	}
	g, err := costgrid.NewGrid(rows, noData, costgrid.SimpleTransform(0, 50, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultTobler(), costgrid.WithDiagonal())
	require.NoError(t, err)

	res, err := pathfind.AStar(context.Background(), f, costgrid.Cell{Row: 0, Col: 0}, costgrid.Cell{Row: 4, Col: 4})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Cells), 2)

	sum := 0.0
	for i := 1; i < len(res.Cells); i++ {
		a, b := res.Cells[i-1], res.Cells[i]
		assert.LessOrEqual(t, absInt(b.Row-a.Row), 1)
		assert.LessOrEqual(t, absInt(b.Col-a.Col), 1)
		sum += f.EdgeCost(a, b)
	}
	assert.InDelta(t, res.Cost, sum, 1e-9)
}

// TestAStar_MatchesDijkstra verifies exactness of the heuristic: the A* cost
// must equal the Dijkstra surface value at the destination, on uneven ground,
// with friction, and in energy mode.
func TestAStar_MatchesDijkstra(t *testing.T) {
	rows := [][]float64{
		{0, 4, 9, 2, 0},
		{1, 6, 12, 3, 1},
		{0, 3, 8, 2, 0},
		{2, 1, 4, 1, 2},
		{0, 0, 2, 0, 0},
	}
	friction := [][]float64{
		{0.5, 1, 2, 1, 0.5},
		{1, 1, 3, 1, 1},
		{0.5, 1, 2, 1, 0.5},
		{1, 1, 1, 1, 1},
		{0.5, 0.5, 1, 0.5, 0.5},
	}
	g, err := costgrid.NewGrid(rows, noData, costgrid.SimpleTransform(0, 50, 10, 10))
	require.NoError(t, err)
	fr, err := costgrid.NewFrictionField(friction)
	require.NoError(t, err)

	cases := []struct {
		name string
		opts []costgrid.FieldOption
		mdl  costmodel.Model
	}{
		{"tobler_time", []costgrid.FieldOption{costgrid.WithDiagonal()}, costmodel.DefaultTobler()},
		{"tobler_friction", []costgrid.FieldOption{costgrid.WithDiagonal(), costgrid.WithFriction(fr)}, costmodel.DefaultTobler()},
		{"pandolf_energy", []costgrid.FieldOption{costgrid.WithDiagonal(), costgrid.WithMode(costmodel.ModeEnergy)}, costmodel.DefaultPandolf()},
	}
	start, end := costgrid.Cell{Row: 0, Col: 0}, costgrid.Cell{Row: 4, Col: 4}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := costgrid.NewField(g, tc.mdl, tc.opts...)
			require.NoError(t, err)

			res, err := pathfind.AStar(context.Background(), f, start, end)
			require.NoError(t, err)
			surf, err := pathfind.Dijkstra(context.Background(), f, start)
			require.NoError(t, err)

			assert.InDelta(t, surf.At(end.Row, end.Col), res.Cost, 1e-9)
		})
	}
}

// TestAStar_NoPath blocks the middle column with NoData; no route can cross.
func TestAStar_NoPath(t *testing.T) {
	rows := flatRows(3, 3, 0)
	rows[0][1], rows[1][1], rows[2][1] = noData, noData, noData
	g, err := costgrid.NewGrid(rows, noData, costgrid.SimpleTransform(0, 30, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultTobler(), costgrid.WithDiagonal())
	require.NoError(t, err)

	_, err = pathfind.AStar(context.Background(), f, costgrid.Cell{Row: 1, Col: 0}, costgrid.Cell{Row: 1, Col: 2})
	assert.ErrorIs(t, err, pathfind.ErrNoPath)
}

// TestAStar_WheeledRidge verifies that a slope beyond the wheeled model's
// limit acts as a wall even though the cells themselves carry data.
func TestAStar_WheeledRidge(t *testing.T) {
	rows := flatRows(3, 3, 0)
	rows[0][1], rows[1][1], rows[2][1] = 5, 5, 5 // 26.6° across a 10 m cell
	g, err := costgrid.NewGrid(rows, noData, costgrid.SimpleTransform(0, 30, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultHerzogWheeled())
	require.NoError(t, err)

	_, err = pathfind.AStar(context.Background(), f, costgrid.Cell{Row: 1, Col: 0}, costgrid.Cell{Row: 1, Col: 2})
	assert.ErrorIs(t, err, pathfind.ErrNoPath)
}

// TestAStar_Validation exercises every input sentinel in order.
func TestAStar_Validation(t *testing.T) {
	rows := flatRows(3, 3, 0)
	rows[2][2] = noData
	g, err := costgrid.NewGrid(rows, noData, costgrid.SimpleTransform(0, 30, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultTobler())
	require.NoError(t, err)

	ctx := context.Background()
	a, b := costgrid.Cell{Row: 0, Col: 0}, costgrid.Cell{Row: 1, Col: 1}

	_, err = pathfind.AStar(ctx, nil, a, b)
	assert.ErrorIs(t, err, pathfind.ErrNilField)

	_, err = pathfind.AStar(ctx, f, costgrid.Cell{Row: -1, Col: 0}, b)
	assert.ErrorIs(t, err, pathfind.ErrOutOfBounds)

	_, err = pathfind.AStar(ctx, f, a, costgrid.Cell{Row: 2, Col: 2})
	assert.ErrorIs(t, err, pathfind.ErrNoDataEndpoint)

	_, err = pathfind.AStar(ctx, f, a, b, pathfind.WithMaxCells(8))
	assert.ErrorIs(t, err, pathfind.ErrTooManyCells)

	assert.Panics(t, func() { pathfind.WithMaxCells(0)(&pathfind.Options{}) })
	assert.Panics(t, func() { pathfind.WithProgressEvery(-1)(&pathfind.Options{}) })
}

// TestDijkstra_SurfaceBasics checks reachability, stats and path recovery on
// a flat grid with one NoData hole.
func TestDijkstra_SurfaceBasics(t *testing.T) {
	rows := flatRows(4, 4, 0)
	rows[1][1] = noData
	g, err := costgrid.NewGrid(rows, noData, costgrid.SimpleTransform(0, 40, 10, 10))
	require.NoError(t, err)
	f, err := costgrid.NewField(g, costmodel.DefaultTobler(), costgrid.WithDiagonal())
	require.NoError(t, err)

	surf, err := pathfind.Dijkstra(context.Background(), f, costgrid.Cell{Row: 0, Col: 0})
	require.NoError(t, err)

	assert.Zero(t, surf.At(0, 0))
	assert.True(t, surf.Reachable(3, 3))
	assert.False(t, surf.Reachable(1, 1), "the NoData hole must stay at +Inf")

	min, max, reachable := surf.Stats()
	assert.Zero(t, min)
	assert.Greater(t, max, 0.0)
	assert.Equal(t, 15, reachable)

	cells, ok := surf.PathTo(costgrid.Cell{Row: 3, Col: 3})
	require.True(t, ok)
	assert.Equal(t, costgrid.Cell{Row: 0, Col: 0}, cells[0])
	assert.Equal(t, costgrid.Cell{Row: 3, Col: 3}, cells[len(cells)-1])

	_, ok = surf.PathTo(costgrid.Cell{Row: 1, Col: 1})
	assert.False(t, ok)
}

// TestDijkstra_Progress verifies the callback cadence: monotone percentages
// capped at 99 during the sweep, exactly 100 once at the end.
func TestDijkstra_Progress(t *testing.T) {
	f := flatField(t, 10, 10, costgrid.WithDiagonal())

	var seen []int
	_, err := pathfind.Dijkstra(context.Background(), f, costgrid.Cell{Row: 0, Col: 0},
		pathfind.WithProgress(func(pct int) { seen = append(seen, pct) }),
		pathfind.WithProgressEvery(7))
	require.NoError(t, err)

	require.NotEmpty(t, seen)
	assert.Equal(t, 100, seen[len(seen)-1])
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1])
	}
	for _, pct := range seen[:len(seen)-1] {
		assert.LessOrEqual(t, pct, 99)
	}
}

// TestDijkstra_Cancellation cancels from inside the progress callback and
// expects ErrCancelled (matching context.Canceled too) with no surface.
func TestDijkstra_Cancellation(t *testing.T) {
	f := flatField(t, 20, 20, costgrid.WithDiagonal())

	ctx, cancel := context.WithCancel(context.Background())
	surf, err := pathfind.Dijkstra(ctx, f, costgrid.Cell{Row: 0, Col: 0},
		pathfind.WithProgress(func(int) { cancel() }),
		pathfind.WithProgressEvery(1))

	assert.Nil(t, surf)
	assert.ErrorIs(t, err, pathfind.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestReconstructPath_Unreached verifies the nil result for a destination the
// search never attached to the tree.
func TestReconstructPath_Unreached(t *testing.T) {
	prev := []int32{-1, -1, -1, -1}
	assert.Nil(t, pathfind.ReconstructPath(prev, 0, 3, 2, 2))
}

// TestReconstructPath_Cycle feeds a predecessor array where the chain from
// end loops without ever reaching start; the capped walk must yield nil, not
// a partial path.
func TestReconstructPath_Cycle(t *testing.T) {
	prev := []int32{-1, 2, 3, 1} // 3 → 1 → 2 → 3, start 0 unreachable
	assert.Nil(t, pathfind.ReconstructPath(prev, 0, 3, 2, 2))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
